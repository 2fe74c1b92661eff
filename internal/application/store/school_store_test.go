package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garzaro/uniformes-bff/internal/domain/entity"
	"github.com/garzaro/uniformes-bff/pkg/apperror"
)

type fakeDirectory struct {
	schools   []entity.School
	listErr   error
	getCalls  int
	listCalls int
}

func (f *fakeDirectory) ListSchools(ctx context.Context) ([]entity.School, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.schools, nil
}

func (f *fakeDirectory) GetSchool(ctx context.Context, id string) (*entity.School, error) {
	f.getCalls++
	for _, s := range f.schools {
		if s.ID == id {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) ResolveOperator(ctx context.Context, email string) (*entity.OperatorProfile, error) {
	return nil, errors.New("not implemented")
}

func grantedOperator(ids ...string) *entity.OperatorProfile {
	return &entity.OperatorProfile{ID: "op-1", SchoolIDs: ids}
}

func TestLoadSchoolsFiltersByActivityAndGrants(t *testing.T) {
	dir := &fakeDirectory{schools: []entity.School{
		{ID: "A", Name: "Colegio A", Active: true},
		{ID: "B", Name: "Colegio B", Active: true},
		{ID: "C", Name: "Colegio C", Active: false},
	}}
	s := NewSchoolStore(dir)

	require.NoError(t, s.LoadSchools(context.Background(), grantedOperator("A", "C")))

	available := s.Available()
	require.Len(t, available, 1)
	assert.Equal(t, "A", available[0].ID)

	// No previous selection: the first filtered school is auto-selected.
	require.NotNil(t, s.Selected())
	assert.Equal(t, "A", s.Selected().ID)
}

func TestLoadSchoolsSuperuserSeesAllActive(t *testing.T) {
	dir := &fakeDirectory{schools: []entity.School{
		{ID: "A", Active: true},
		{ID: "B", Active: true},
		{ID: "C", Active: false},
	}}
	s := NewSchoolStore(dir)

	op := &entity.OperatorProfile{ID: "op-1", Superuser: true}
	require.NoError(t, s.LoadSchools(context.Background(), op))
	assert.Len(t, s.Available(), 2)
}

func TestLoadSchoolsFallsBackWhenSelectionRevoked(t *testing.T) {
	dir := &fakeDirectory{schools: []entity.School{
		{ID: "A", Active: true},
		{ID: "B", Active: true},
	}}
	s := NewSchoolStore(dir)
	s.SelectSchool(entity.School{ID: "B", Name: "Colegio B"})

	// Access to B is revoked.
	require.NoError(t, s.LoadSchools(context.Background(), grantedOperator("A")))
	require.NotNil(t, s.Selected())
	assert.Equal(t, "A", s.Selected().ID)

	// All access revoked: selection is cleared.
	require.NoError(t, s.LoadSchools(context.Background(), grantedOperator()))
	assert.Nil(t, s.Selected())
}

func TestLoadSchoolsFailureKeepsPreviousState(t *testing.T) {
	dir := &fakeDirectory{schools: []entity.School{{ID: "A", Active: true}}}
	s := NewSchoolStore(dir)
	require.NoError(t, s.LoadSchools(context.Background(), grantedOperator("A")))

	dir.listErr = errors.New("connection refused")
	err := s.LoadSchools(context.Background(), grantedOperator("A"))
	assert.Error(t, err)

	// Selection and list survive the failed refresh; the error is recorded.
	require.NotNil(t, s.Selected())
	assert.Equal(t, "A", s.Selected().ID)
	assert.Len(t, s.Available(), 1)
	assert.NotEmpty(t, s.LoadError())

	// A later successful load clears the recorded error.
	dir.listErr = nil
	require.NoError(t, s.LoadSchools(context.Background(), grantedOperator("A")))
	assert.Empty(t, s.LoadError())
}

func TestSelectSchoolByIDPrefersLoadedList(t *testing.T) {
	dir := &fakeDirectory{schools: []entity.School{{ID: "A", Active: true}}}
	s := NewSchoolStore(dir)
	require.NoError(t, s.LoadSchools(context.Background(), grantedOperator("A")))

	_, err := s.SelectSchoolByID(context.Background(), "A")
	require.NoError(t, err)
	assert.Zero(t, dir.getCalls, "local hit must not fetch")

	// Absent locally: falls back to a direct fetch.
	dir.schools = append(dir.schools, entity.School{ID: "Z", Active: true})
	school, err := s.SelectSchoolByID(context.Background(), "Z")
	require.NoError(t, err)
	assert.Equal(t, "Z", school.ID)
	assert.Equal(t, 1, dir.getCalls)

	_, err = s.SelectSchoolByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperror.ErrSchoolNotFound)
}

func TestSnapshotPersistsSelectionOnly(t *testing.T) {
	dir := &fakeDirectory{schools: []entity.School{{ID: "A", Active: true}}}
	s := NewSchoolStore(dir)
	require.NoError(t, s.LoadSchools(context.Background(), grantedOperator("A")))

	restored := NewSchoolStore(dir)
	restored.Restore(s.Snapshot())

	require.NotNil(t, restored.Selected())
	assert.Equal(t, "A", restored.Selected().ID)
	assert.Empty(t, restored.Available(), "available list is refetched, never persisted")
}

func TestClearSchool(t *testing.T) {
	s := NewSchoolStore(&fakeDirectory{})
	s.SelectSchool(entity.School{ID: "A"})
	s.ClearSchool()
	assert.Nil(t, s.Selected())
}
