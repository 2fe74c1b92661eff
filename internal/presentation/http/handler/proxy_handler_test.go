package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garzaro/uniformes-bff/internal/config"
	"github.com/garzaro/uniformes-bff/internal/domain/entity"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/middleware"
	"github.com/garzaro/uniformes-bff/pkg/backend"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type upstreamStub struct {
	server *httptest.Server
	calls  int64
	status int
	body   string
}

func newUpstream(t *testing.T, status int, body string) *upstreamStub {
	t.Helper()
	stub := &upstreamStub{status: status, body: body}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&stub.calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(stub.status)
		w.Write([]byte(stub.body))
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *upstreamStub) Calls() int64 {
	return atomic.LoadInt64(&s.calls)
}

func uploadConfig() *config.UploadConfig {
	return &config.UploadConfig{
		MaxSize:      5 * 1024 * 1024,
		AllowedTypes: []string{"image/jpeg", "image/png", "application/pdf"},
	}
}

func proxyRouter(baseURL string) *gin.Engine {
	client := backend.NewClient(baseURL, 2*time.Second)
	h := NewProxyHandler(client, uploadConfig(), zap.NewNop())

	router := gin.New()
	router.POST("/orders", h.CreateOrder)
	router.GET("/orders/:id", h.GetOrder)
	router.POST("/orders/:id/payment-proof", h.UploadPaymentProof)
	router.POST("/accounts/password-reset", h.RequestPasswordReset)
	return router
}

func TestValidationErrorsPassThroughUntouched(t *testing.T) {
	detail := `[{"msg":"field required","loc":["body","client_name"]},{"msg":"invalid email"}]`
	upstream := newUpstream(t, http.StatusUnprocessableEntity, `{"detail":`+detail+`}`)
	router := proxyRouter(upstream.server.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"client_name":""}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.JSONEq(t, detail, string(body["detail"]))
}

func TestSuccessBodiesRelayedVerbatim(t *testing.T) {
	upstream := newUpstream(t, http.StatusCreated, `{"id":"ord-1","total":50000}`)
	router := proxyRouter(upstream.server.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"ord-1","total":50000}`, w.Body.String())
}

func TestOrderIDSegmentIsForwarded(t *testing.T) {
	var seenPath atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath.Store(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"ord-42"}`))
	}))
	defer server.Close()

	router := proxyRouter(server.URL)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/ord-42", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/orders/ord-42", seenPath.Load())
}

func TestTransportFailureYieldsFixedMessage(t *testing.T) {
	// Port that nothing listens on.
	router := proxyRouter("http://127.0.0.1:1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Error de conexión con el servidor")
	assert.NotContains(t, w.Body.String(), "127.0.0.1")
}

func multipartFile(t *testing.T, filename, contentType string, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), size))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestOversizedUploadRejectedBeforeAnyNetworkCall(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `{}`)
	router := proxyRouter(upstream.server.URL)

	body, contentType := multipartFile(t, "boleta.jpg", "image/jpeg", 6*1024*1024)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/ord-1/payment-proof", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "5 MB")
	assert.Zero(t, upstream.Calls())
}

func TestUnsupportedFileTypeRejectedBeforeAnyNetworkCall(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `{}`)
	router := proxyRouter(upstream.server.URL)

	body, contentType := multipartFile(t, "boleta.gif", "image/gif", 1024)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/ord-1/payment-proof", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "JPG, PNG o PDF")
	assert.Zero(t, upstream.Calls())
}

func TestAcceptedUploadIsForwarded(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `{"stored":true}`)
	router := proxyRouter(upstream.server.URL)

	body, contentType := multipartFile(t, "boleta.pdf", "application/pdf", 1024)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/ord-1/payment-proof", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), upstream.Calls())
}

type memoryIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func (r *memoryIdempotencyRepo) GetByKey(ctx context.Context, key, sessionKey string) (*entity.IdempotencyKey, error) {
	return r.keys[key+"|"+sessionKey], nil
}

func (r *memoryIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.keys[ikey.Key+"|"+ikey.SessionKey] = ikey
	return nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

func TestContactCreationReplaysOnSameIdempotencyKey(t *testing.T) {
	upstream := newUpstream(t, http.StatusCreated, `{"id":"ct-1"}`)
	client := backend.NewClient(upstream.server.URL, 2*time.Second)
	h := NewProxyHandler(client, uploadConfig(), zap.NewNop())

	repo := &memoryIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextSessionKey, "sid-test")
		c.Next()
	})
	router.POST("/contacts", middleware.Idempotency(middleware.IdempotencyConfig{Repo: repo}), h.CreateContact)

	send := func(key string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(`{"name":"Juan","email":"juan@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		if key != "" {
			req.Header.Set(middleware.IdempotencyKeyHeader, key)
		}
		router.ServeHTTP(w, req)
		return w
	}

	first := send("key-1")
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, int64(1), upstream.Calls())

	// Retry with the same key: cached response, upstream untouched.
	second := send("key-1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, int64(1), upstream.Calls())

	// The key stays optional on this route.
	third := send("")
	assert.Equal(t, http.StatusCreated, third.Code)
	assert.Equal(t, int64(2), upstream.Calls())
}

func TestPasswordResetAlwaysReportsSuccess(t *testing.T) {
	// Unknown address: upstream rejects, caller still sees the uniform
	// success message.
	upstream := newUpstream(t, http.StatusNotFound, `{"detail":"No existe una cuenta con ese correo"}`)
	router := proxyRouter(upstream.server.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/accounts/password-reset", strings.NewReader(`{"email":"nadie@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Si el correo existe")
	assert.NotContains(t, w.Body.String(), "No existe una cuenta")
	assert.Equal(t, int64(1), upstream.Calls())
}
