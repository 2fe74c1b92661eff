package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/garzaro/uniformes-bff/internal/application/store"
	"github.com/garzaro/uniformes-bff/internal/domain/entity"
	"github.com/garzaro/uniformes-bff/internal/infrastructure/repository"
	"github.com/garzaro/uniformes-bff/internal/infrastructure/upstream"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/middleware"
	"github.com/garzaro/uniformes-bff/pkg/backend"
)

func storeRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.SessionState{}))

	stores := store.NewManager(repository.NewSessionStateRepository(db), nil, zap.NewNop())
	draftHandler := NewDraftHandler(stores)
	cartHandler := NewCartHandler(stores)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextSessionKey, "sid-test")
		c.Next()
	})
	router.GET("/drafts", draftHandler.List)
	router.POST("/drafts", draftHandler.Create)
	router.DELETE("/drafts/:id", draftHandler.Delete)
	router.PATCH("/drafts/:id", draftHandler.Update)
	router.GET("/cart", cartHandler.Get)
	router.POST("/cart/items", cartHandler.AddItem)
	router.PUT("/cart/items", cartHandler.UpdateItem)
	return router
}

func postJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestDraftLimitSurfacesAsConflict(t *testing.T) {
	router := storeRouter(t)

	for i := 0; i < 5; i++ {
		w := postJSON(router, http.MethodPost, "/drafts", `{"kind":"venta"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := postJSON(router, http.MethodPost, "/drafts", `{"kind":"venta"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "No se pueden tener más de 5 borradores abiertos")
}

func TestDraftLabelRendersLocaleGroupedTotal(t *testing.T) {
	router := storeRouter(t)

	w := postJSON(router, http.MethodPost, "/drafts", `{"kind":"venta","client_name":"Juan"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			Draft entity.Draft `json:"draft"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	update := `{"items":[
		{"name":"Polera","quantity":1,"unit_price":30000},
		{"name":"Falda","quantity":1,"unit_price":20000}
	]}`
	w = postJSON(router, http.MethodPatch, "/drafts/"+created.Data.Draft.ID.String(), update)
	require.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		Data struct {
			Label string `json:"label"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Venta - 2 items - $50.000", updated.Data.Label)
}

func TestDeleteDraftIsIdempotentOverHTTP(t *testing.T) {
	router := storeRouter(t)

	w := postJSON(router, http.MethodPost, "/drafts", `{"kind":"encargo"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			Draft entity.Draft `json:"draft"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.Draft.ID.String()

	w = postJSON(router, http.MethodDelete, "/drafts/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = postJSON(router, http.MethodDelete, "/drafts/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSelectSchoolHidesTransportErrors(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.SessionState{}))

	// Nothing listens on port 1, so the fetch fallback fails in transport.
	directory := upstream.NewSchoolDirectory(backend.NewClient("http://127.0.0.1:1", time.Second))
	stores := store.NewManager(repository.NewSessionStateRepository(db), directory, zap.NewNop())
	schoolHandler := NewSchoolHandler(stores, zap.NewNop())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextSessionKey, "sid-test")
		c.Next()
	})
	router.PUT("/schools/select", schoolHandler.Select)

	w := postJSON(router, http.MethodPut, "/schools/select", `{"school_id":"sch-9"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Error de conexión con el servidor")
	assert.NotContains(t, w.Body.String(), "127.0.0.1")
	assert.NotContains(t, w.Body.String(), "dial")
}

func TestCartTotalsOverHTTP(t *testing.T) {
	router := storeRouter(t)

	w := postJSON(router, http.MethodPost, "/cart/items",
		`{"product_id":"p-1","school_id":"sch-1","name":"Polera","unit_price":9990,"quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Same line again: quantity increments, no duplicate line.
	w = postJSON(router, http.MethodPost, "/cart/items",
		`{"product_id":"p-1","school_id":"sch-1","name":"Polera","unit_price":9990,"quantity":1}`)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Data struct {
			Items      []entity.CartItem `json:"items"`
			TotalItems int               `json:"total_items"`
			TotalPrice int64             `json:"total_price"`
			Display    string            `json:"total_price_display"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Len(t, payload.Data.Items, 1)
	assert.Equal(t, 3, payload.Data.TotalItems)
	assert.Equal(t, int64(29970), payload.Data.TotalPrice)
	assert.Equal(t, "$29.970", payload.Data.Display)

	// Quantity zero removes the line.
	w = postJSON(router, http.MethodPut, "/cart/items",
		`{"product_id":"p-1","school_id":"sch-1","quantity":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Empty(t, payload.Data.Items)
	assert.Zero(t, payload.Data.TotalPrice)
}
