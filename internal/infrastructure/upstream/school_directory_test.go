package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garzaro/uniformes-bff/pkg/backend"
)

func TestResolveOperatorEscapesEmailAsPathSegment(t *testing.T) {
	// A quoted local part may contain spaces; the decoded path must give
	// the email back unchanged.
	const email = "ana maria@colegio.cl"

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"op-1","email":"ana maria@colegio.cl","school_ids":["A"]}`)
	}))
	defer srv.Close()

	d := NewSchoolDirectory(backend.NewClient(srv.URL, time.Second))
	profile, err := d.ResolveOperator(context.Background(), email)
	require.NoError(t, err)

	assert.Equal(t, "/operators/by-email/"+email, gotPath)
	assert.Equal(t, "op-1", profile.ID)
}

func TestGetSchoolReturnsNilOnNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail":"No encontrado"}`)
	}))
	defer srv.Close()

	d := NewSchoolDirectory(backend.NewClient(srv.URL, time.Second))
	school, err := d.GetSchool(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, school)
}
