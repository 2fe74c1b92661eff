package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/garzaro/uniformes-bff/internal/domain/entity"
	"github.com/garzaro/uniformes-bff/internal/domain/enum"
	"github.com/garzaro/uniformes-bff/pkg/apperror"
)

// MaxOpenDrafts is the hard cap on concurrently open drafts per session.
const MaxOpenDrafts = 5

// DraftStore holds the in-flight venta/encargo drafts of one operator
// session. Each operation is a single synchronous state transition;
// ordering between operations is the order the lock is acquired.
type DraftStore struct {
	mu       sync.Mutex
	drafts   []*entity.Draft
	activeID *uuid.UUID
}

// NewDraftStore creates an empty draft store.
func NewDraftStore() *DraftStore {
	return &DraftStore{}
}

// DraftInit is the optional initial data of a new draft.
type DraftInit struct {
	SchoolID   string
	ClientID   string
	ClientName string
	Notes      string
}

// DraftChanges is a partial update merged into an existing draft. Nil
// fields are left untouched; Items replaces the whole line list.
type DraftChanges struct {
	SchoolID   *string
	ClientID   *string
	ClientName *string
	Notes      *string
	Items      *[]entity.LineItem
	Venta      *VentaChanges
	Encargo    *EncargoChanges
}

// VentaChanges is the sale-specific part of a draft update.
type VentaChanges struct {
	Historical     *bool
	HistoricalDate *time.Time
	Payments       *[]entity.Payment
}

// EncargoChanges is the encargo-specific part of a draft update.
type EncargoChanges struct {
	ClientEmail   *string
	DeliveryDate  *time.Time
	AdvanceAmount *int64
	AdvanceMethod *enum.PaymentMethod
	ActiveTab     *enum.IntakeTab
}

// AddDraft creates a new draft of the given kind. It fails with
// ErrDraftLimitReached once MaxOpenDrafts drafts are open, without
// mutating state.
func (s *DraftStore) AddDraft(kind enum.DraftKind, init DraftInit) (*entity.Draft, error) {
	if !kind.Valid() {
		return nil, apperror.NewBadRequestError("Tipo de borrador desconocido")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.drafts) >= MaxOpenDrafts {
		return nil, apperror.ErrDraftLimitReached
	}

	draft := entity.NewDraft(kind)
	draft.SchoolID = init.SchoolID
	draft.ClientID = init.ClientID
	draft.ClientName = init.ClientName
	draft.Notes = init.Notes

	s.drafts = append(s.drafts, draft)
	return draft.Clone(), nil
}

// UpdateDraft merges changes into the draft and refreshes UpdatedAt.
// Unknown ids are reported as ErrDraftNotFound rather than ignored.
func (s *DraftStore) UpdateDraft(id uuid.UUID, changes DraftChanges) (*entity.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.find(id)
	if draft == nil {
		return nil, apperror.ErrDraftNotFound
	}
	if changes.Venta != nil && draft.Kind != enum.DraftKindVenta {
		return nil, apperror.NewBadRequestError("El borrador no es una venta")
	}
	if changes.Encargo != nil && draft.Kind != enum.DraftKindEncargo {
		return nil, apperror.NewBadRequestError("El borrador no es un encargo")
	}

	if changes.SchoolID != nil {
		draft.SchoolID = *changes.SchoolID
	}
	if changes.ClientID != nil {
		draft.ClientID = *changes.ClientID
	}
	if changes.ClientName != nil {
		draft.ClientName = *changes.ClientName
	}
	if changes.Notes != nil {
		draft.Notes = *changes.Notes
	}
	if changes.Items != nil {
		items := make([]entity.LineItem, len(*changes.Items))
		copy(items, *changes.Items)
		for i := range items {
			if items[i].TempID == uuid.Nil {
				items[i].TempID = uuid.New()
			}
		}
		draft.Items = items
		draft.RecomputeTotal()
	}
	if changes.Venta != nil {
		if changes.Venta.Historical != nil {
			draft.Venta.Historical = *changes.Venta.Historical
		}
		if changes.Venta.HistoricalDate != nil {
			date := *changes.Venta.HistoricalDate
			draft.Venta.HistoricalDate = &date
		}
		if changes.Venta.Payments != nil {
			payments := make([]entity.Payment, len(*changes.Venta.Payments))
			copy(payments, *changes.Venta.Payments)
			for i := range payments {
				if payments[i].ID == uuid.Nil {
					payments[i].ID = uuid.New()
				}
			}
			draft.Venta.Payments = payments
		}
	}
	if changes.Encargo != nil {
		if changes.Encargo.ClientEmail != nil {
			draft.Encargo.ClientEmail = *changes.Encargo.ClientEmail
		}
		if changes.Encargo.DeliveryDate != nil {
			date := *changes.Encargo.DeliveryDate
			draft.Encargo.DeliveryDate = &date
		}
		if changes.Encargo.AdvanceAmount != nil {
			draft.Encargo.AdvanceAmount = *changes.Encargo.AdvanceAmount
		}
		if changes.Encargo.AdvanceMethod != nil {
			draft.Encargo.AdvanceMethod = *changes.Encargo.AdvanceMethod
		}
		if changes.Encargo.ActiveTab != nil {
			draft.Encargo.ActiveTab = *changes.Encargo.ActiveTab
		}
	}

	now := time.Now()
	if now.Before(draft.UpdatedAt) {
		now = draft.UpdatedAt
	}
	draft.UpdatedAt = now

	return draft.Clone(), nil
}

// RemoveDraft deletes the draft. Removing the active draft clears the
// active pointer. Removing an absent id is a no-op.
func (s *DraftStore) RemoveDraft(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range s.drafts {
		if d.ID == id {
			s.drafts = append(s.drafts[:i], s.drafts[i+1:]...)
			if s.activeID != nil && *s.activeID == id {
				s.activeID = nil
			}
			return
		}
	}
}

// GetDraft returns a copy of the draft or ErrDraftNotFound.
func (s *DraftStore) GetDraft(id uuid.UUID) (*entity.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.find(id)
	if draft == nil {
		return nil, apperror.ErrDraftNotFound
	}
	return draft.Clone(), nil
}

// SetActiveDraft points the active pointer at a draft, or clears it when
// id is nil. Pointing at a nonexistent draft is rejected.
func (s *DraftStore) SetActiveDraft(id *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == nil {
		s.activeID = nil
		return nil
	}
	if s.find(*id) == nil {
		return apperror.ErrDraftNotFound
	}
	value := *id
	s.activeID = &value
	return nil
}

// ActiveDraft returns a copy of the focused draft, or nil when none is.
func (s *DraftStore) ActiveDraft() *entity.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeID == nil {
		return nil
	}
	draft := s.find(*s.activeID)
	if draft == nil {
		return nil
	}
	return draft.Clone()
}

// ClearAll empties the collection and the active pointer. Used on logout
// and session reset.
func (s *DraftStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts = nil
	s.activeID = nil
}

// List returns copies of all drafts in creation order.
func (s *DraftStore) List() []entity.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Draft, 0, len(s.drafts))
	for _, d := range s.drafts {
		out = append(out, *d.Clone())
	}
	return out
}

// Count returns the number of open drafts.
func (s *DraftStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// HasDrafts reports whether any draft is open.
func (s *DraftStore) HasDrafts() bool {
	return s.Count() > 0
}

// CanAdd reports whether another draft may be opened.
func (s *DraftStore) CanAdd() bool {
	return s.Count() < MaxOpenDrafts
}

// Snapshot returns the serializable form of the store.
func (s *DraftStore) Snapshot() entity.DraftsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := entity.DraftsSnapshot{Drafts: make([]entity.Draft, 0, len(s.drafts))}
	for _, d := range s.drafts {
		snap.Drafts = append(snap.Drafts, *d.Clone())
	}
	if s.activeID != nil {
		id := *s.activeID
		snap.ActiveID = &id
	}
	return snap
}

// Restore replaces the store contents with a snapshot. Snapshots beyond
// the draft cap are truncated; a dangling active pointer is dropped.
func (s *DraftStore) Restore(snap entity.DraftsSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts := snap.Drafts
	if len(drafts) > MaxOpenDrafts {
		drafts = drafts[:MaxOpenDrafts]
	}
	s.drafts = make([]*entity.Draft, 0, len(drafts))
	for i := range drafts {
		s.drafts = append(s.drafts, drafts[i].Clone())
	}
	s.activeID = nil
	if snap.ActiveID != nil && s.find(*snap.ActiveID) != nil {
		id := *snap.ActiveID
		s.activeID = &id
	}
}

// find must be called with the lock held.
func (s *DraftStore) find(id uuid.UUID) *entity.Draft {
	for _, d := range s.drafts {
		if d.ID == id {
			return d
		}
	}
	return nil
}
