package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garzaro/uniformes-bff/internal/domain/entity"
	"github.com/garzaro/uniformes-bff/internal/domain/enum"
	"github.com/garzaro/uniformes-bff/pkg/apperror"
)

func TestAddDraftEnforcesLimit(t *testing.T) {
	s := NewDraftStore()

	for i := 0; i < MaxOpenDrafts; i++ {
		_, err := s.AddDraft(enum.DraftKindVenta, DraftInit{})
		require.NoError(t, err)
	}
	assert.Equal(t, MaxOpenDrafts, s.Count())
	assert.False(t, s.CanAdd())

	_, err := s.AddDraft(enum.DraftKindEncargo, DraftInit{})
	assert.ErrorIs(t, err, apperror.ErrDraftLimitReached)
	assert.Equal(t, MaxOpenDrafts, s.Count(), "failed add must not mutate state")
}

func TestAddDraftRejectsUnknownKind(t *testing.T) {
	s := NewDraftStore()
	_, err := s.AddDraft(enum.DraftKind("pedido"), DraftInit{})
	assert.Error(t, err)
	assert.Equal(t, 0, s.Count())
}

func TestRemoveDraftIsIdempotent(t *testing.T) {
	s := NewDraftStore()
	draft, err := s.AddDraft(enum.DraftKindVenta, DraftInit{})
	require.NoError(t, err)

	s.RemoveDraft(draft.ID)
	_, err = s.GetDraft(draft.ID)
	assert.ErrorIs(t, err, apperror.ErrDraftNotFound)

	// Removing again must be a no-op.
	s.RemoveDraft(draft.ID)
	assert.Equal(t, 0, s.Count())
}

func TestRemoveActiveDraftClearsPointer(t *testing.T) {
	s := NewDraftStore()
	draft, err := s.AddDraft(enum.DraftKindVenta, DraftInit{})
	require.NoError(t, err)

	require.NoError(t, s.SetActiveDraft(&draft.ID))
	require.NotNil(t, s.ActiveDraft())

	s.RemoveDraft(draft.ID)
	assert.Nil(t, s.ActiveDraft())
}

func TestSetActiveDraftValidatesID(t *testing.T) {
	s := NewDraftStore()
	unknown := uuid.New()
	err := s.SetActiveDraft(&unknown)
	assert.ErrorIs(t, err, apperror.ErrDraftNotFound)

	assert.NoError(t, s.SetActiveDraft(nil))
	assert.Nil(t, s.ActiveDraft())
}

func TestUpdateDraftRefreshesUpdatedAtOnly(t *testing.T) {
	s := NewDraftStore()
	draft, err := s.AddDraft(enum.DraftKindVenta, DraftInit{ClientName: "María"})
	require.NoError(t, err)

	before := draft.UpdatedAt
	time.Sleep(2 * time.Millisecond)

	notes := "entrega viernes"
	updated, err := s.UpdateDraft(draft.ID, DraftChanges{Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, "entrega viernes", updated.Notes)
	assert.Equal(t, "María", updated.ClientName)
	assert.True(t, !updated.UpdatedAt.Before(before), "updatedAt must never go backwards")
	assert.Equal(t, draft.CreatedAt, updated.CreatedAt, "createdAt is immutable")
}

func TestUpdateDraftUnknownID(t *testing.T) {
	s := NewDraftStore()
	notes := "x"
	_, err := s.UpdateDraft(uuid.New(), DraftChanges{Notes: &notes})
	assert.ErrorIs(t, err, apperror.ErrDraftNotFound)
}

func TestUpdateDraftRejectsKindMismatch(t *testing.T) {
	s := NewDraftStore()
	draft, err := s.AddDraft(enum.DraftKindVenta, DraftInit{})
	require.NoError(t, err)

	email := "cliente@example.com"
	_, err = s.UpdateDraft(draft.ID, DraftChanges{Encargo: &EncargoChanges{ClientEmail: &email}})
	assert.Error(t, err)
}

func TestUpdateDraftItemsRecomputesTotal(t *testing.T) {
	s := NewDraftStore()
	draft, err := s.AddDraft(enum.DraftKindEncargo, DraftInit{})
	require.NoError(t, err)

	items := []entity.LineItem{
		{Name: "Polera piqué", Size: "10", Quantity: 3, UnitPrice: 9990},
		{Name: "Falda", Size: "S", Quantity: 1, UnitPrice: 15990, Custom: &entity.CustomGarment{
			Embroidery: "Colegio San Pedro",
			PriceDelta: 2000,
		}},
	}
	updated, err := s.UpdateDraft(draft.ID, DraftChanges{Items: &items})
	require.NoError(t, err)

	assert.Equal(t, int64(3*9990+15990+2000), updated.Total)
	for _, li := range updated.Items {
		assert.NotEqual(t, uuid.Nil, li.TempID, "new lines get a temp id")
	}
}

func TestUpdateDraftPayments(t *testing.T) {
	s := NewDraftStore()
	draft, err := s.AddDraft(enum.DraftKindVenta, DraftInit{})
	require.NoError(t, err)

	payments := []entity.Payment{{Amount: 20000, Method: enum.PaymentMethodEfectivo}}
	updated, err := s.UpdateDraft(draft.ID, DraftChanges{Venta: &VentaChanges{Payments: &payments}})
	require.NoError(t, err)

	require.Len(t, updated.Venta.Payments, 1)
	assert.NotEqual(t, uuid.Nil, updated.Venta.Payments[0].ID)
	assert.Equal(t, int64(20000), updated.Venta.Payments[0].Amount)
}

func TestDraftLifecycleScenario(t *testing.T) {
	s := NewDraftStore()
	assert.False(t, s.HasDrafts())

	draft, err := s.AddDraft(enum.DraftKindVenta, DraftInit{ClientName: "Juan Pérez"})
	require.NoError(t, err)

	items := []entity.LineItem{{Name: "Polar institucional", Size: "12", Quantity: 2, UnitPrice: 25000}}
	updated, err := s.UpdateDraft(draft.ID, DraftChanges{Items: &items})
	require.NoError(t, err)

	assert.Equal(t, "Venta - 2 items - $50.000", updated.Label())

	s.RemoveDraft(draft.ID)
	assert.False(t, s.HasDrafts())
	assert.Nil(t, s.ActiveDraft())
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := NewDraftStore()
	venta, err := s.AddDraft(enum.DraftKindVenta, DraftInit{SchoolID: "sch-1"})
	require.NoError(t, err)
	_, err = s.AddDraft(enum.DraftKindEncargo, DraftInit{})
	require.NoError(t, err)
	require.NoError(t, s.SetActiveDraft(&venta.ID))

	restored := NewDraftStore()
	restored.Restore(s.Snapshot())

	assert.Equal(t, 2, restored.Count())
	got, err := restored.GetDraft(venta.ID)
	require.NoError(t, err)
	assert.Equal(t, "sch-1", got.SchoolID)
	require.NotNil(t, restored.ActiveDraft())
	assert.Equal(t, venta.ID, restored.ActiveDraft().ID)
}

func TestRestoreDropsDanglingActivePointer(t *testing.T) {
	s := NewDraftStore()
	dangling := uuid.New()
	s.Restore(entity.DraftsSnapshot{ActiveID: &dangling})
	assert.Nil(t, s.ActiveDraft())
}
