package repository

import (
	"context"

	"github.com/garzaro/uniformes-bff/internal/domain/entity"
)

// SchoolDirectory reads school and operator data from the upstream API.
type SchoolDirectory interface {
	// ListSchools retrieves the full school list, active or not
	ListSchools(ctx context.Context) ([]entity.School, error)

	// GetSchool retrieves a single school by id, or nil when absent
	GetSchool(ctx context.Context, id string) (*entity.School, error)

	// ResolveOperator retrieves the operator profile (grants, superuser
	// flag) for an authenticated email
	ResolveOperator(ctx context.Context, email string) (*entity.OperatorProfile, error)
}
