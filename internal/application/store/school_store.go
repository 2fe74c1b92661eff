package store

import (
	"context"
	"sync"

	"github.com/garzaro/uniformes-bff/internal/domain/entity"
	domainRepo "github.com/garzaro/uniformes-bff/internal/domain/repository"
	"github.com/garzaro/uniformes-bff/pkg/apperror"
)

// SchoolStore resolves and holds which school the operator is working on,
// bounded by the operator's access grants.
type SchoolStore struct {
	directory domainRepo.SchoolDirectory

	mu        sync.Mutex
	available []entity.School
	selected  *entity.School
	loadError string
}

// NewSchoolStore creates a school store backed by the upstream directory.
func NewSchoolStore(directory domainRepo.SchoolDirectory) *SchoolStore {
	return &SchoolStore{directory: directory}
}

// LoadSchools fetches the school list and filters it to active schools
// the operator is granted (superusers see every active school). On fetch
// failure the previous selection and list are kept and the error is
// recorded for display.
//
// After filtering:
//   - no current selection: the first filtered school is auto-selected
//   - current selection missing from the filtered list (deleted, or
//     access revoked): falls back to the first remaining school, or to no
//     selection when the list is empty
func (s *SchoolStore) LoadSchools(ctx context.Context, operator *entity.OperatorProfile) error {
	schools, err := s.directory.ListSchools(ctx)
	if err != nil {
		s.mu.Lock()
		s.loadError = apperror.ErrBackendUnavailable.Message
		s.mu.Unlock()
		return err
	}

	filtered := make([]entity.School, 0, len(schools))
	for _, school := range schools {
		if !school.Active {
			continue
		}
		if operator != nil && !operator.HasGrant(school.ID) {
			continue
		}
		filtered = append(filtered, school)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadError = ""
	s.available = filtered

	if s.selected != nil {
		if refreshed := findSchool(filtered, s.selected.ID); refreshed != nil {
			s.selected = refreshed
			return nil
		}
	}
	if len(filtered) > 0 {
		first := filtered[0]
		s.selected = &first
	} else {
		s.selected = nil
	}
	return nil
}

// SelectSchool replaces the selection directly. No availability check is
// made; that is the caller's responsibility.
func (s *SchoolStore) SelectSchool(school entity.School) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &school
}

// SelectSchoolByID selects by id, resolving against the already loaded
// list first and only falling back to a direct fetch when absent locally.
func (s *SchoolStore) SelectSchoolByID(ctx context.Context, id string) (*entity.School, error) {
	s.mu.Lock()
	if school := findSchool(s.available, id); school != nil {
		s.selected = school
		out := *school
		s.mu.Unlock()
		return &out, nil
	}
	s.mu.Unlock()

	school, err := s.directory.GetSchool(ctx, id)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, apperror.ErrSchoolNotFound
	}

	s.mu.Lock()
	s.selected = school
	out := *school
	s.mu.Unlock()
	return &out, nil
}

// ClearSchool resets to no selection.
func (s *SchoolStore) ClearSchool() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Selected returns a copy of the current selection, or nil.
func (s *SchoolStore) Selected() *entity.School {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == nil {
		return nil
	}
	out := *s.selected
	return &out
}

// Available returns a copy of the filtered school list.
func (s *SchoolStore) Available() []entity.School {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.School, len(s.available))
	copy(out, s.available)
	return out
}

// LoadError returns the display message of the last failed load, or "".
func (s *SchoolStore) LoadError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadError
}

// Snapshot returns the serializable form of the store. Only the selection
// is persisted; the available list is refetched each session.
func (s *SchoolStore) Snapshot() entity.SchoolSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := entity.SchoolSnapshot{}
	if s.selected != nil {
		selected := *s.selected
		snap.Selected = &selected
	}
	return snap
}

// Restore applies a persisted selection.
func (s *SchoolStore) Restore(snap entity.SchoolSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Selected == nil {
		s.selected = nil
		return
	}
	selected := *snap.Selected
	s.selected = &selected
}

func findSchool(schools []entity.School, id string) *entity.School {
	for i := range schools {
		if schools[i].ID == id {
			out := schools[i]
			return &out
		}
	}
	return nil
}
