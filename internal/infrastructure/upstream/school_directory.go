// Package upstream implements the domain directory interfaces against the
// upstream catalog/order API.
package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/garzaro/uniformes-bff/internal/domain/entity"
	domainRepo "github.com/garzaro/uniformes-bff/internal/domain/repository"
	"github.com/garzaro/uniformes-bff/pkg/backend"
)

type schoolDirectory struct {
	client *backend.Client
}

// NewSchoolDirectory creates a directory backed by the upstream API client
func NewSchoolDirectory(client *backend.Client) domainRepo.SchoolDirectory {
	return &schoolDirectory{client: client}
}

func (d *schoolDirectory) ListSchools(ctx context.Context) ([]entity.School, error) {
	var schools []entity.School
	if err := d.client.GetJSON(ctx, "/schools", &schools); err != nil {
		return nil, err
	}
	return schools, nil
}

func (d *schoolDirectory) GetSchool(ctx context.Context, id string) (*entity.School, error) {
	var school entity.School
	err := d.client.GetJSON(ctx, "/schools/"+url.PathEscape(id), &school)
	if err != nil {
		var statusErr *backend.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &school, nil
}

func (d *schoolDirectory) ResolveOperator(ctx context.Context, email string) (*entity.OperatorProfile, error) {
	var profile entity.OperatorProfile
	err := d.client.GetJSON(ctx, "/operators/by-email/"+url.PathEscape(email), &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
