package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garzaro/uniformes-bff/internal/config"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/dto/request"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/dto/response"
	"github.com/garzaro/uniformes-bff/pkg/apperror"
	"github.com/garzaro/uniformes-bff/pkg/backend"
)

// ProxyHandler relays browser requests to the upstream catalog/order API.
// Routes here are stateless: forward, re-emit the upstream status with its
// detail untouched, and fall back to a fixed message on transport failure.
type ProxyHandler struct {
	client *backend.Client
	upload *config.UploadConfig
	log    *zap.Logger
}

// NewProxyHandler creates a new proxy handler
func NewProxyHandler(client *backend.Client, upload *config.UploadConfig, log *zap.Logger) *ProxyHandler {
	return &ProxyHandler{client: client, upload: upload, log: log}
}

// CreateOrder forwards a checkout request
// @Summary Create order
// @Tags proxy
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /orders [post]
func (h *ProxyHandler) CreateOrder(c *gin.Context) {
	h.forwardJSON(c, http.MethodPost, "/orders")
}

// GetOrder forwards an order lookup, carrying the order id path segment
// @Summary Get order
// @Tags proxy
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Router /orders/{id} [get]
func (h *ProxyHandler) GetOrder(c *gin.Context) {
	h.forwardJSON(c, http.MethodGet, "/orders/"+url.PathEscape(c.Param("id")))
}

// ListProducts forwards a catalog listing, keeping the query string
// @Summary List products
// @Tags proxy
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /products [get]
func (h *ProxyHandler) ListProducts(c *gin.Context) {
	path := "/products"
	if raw := c.Request.URL.RawQuery; raw != "" {
		path += "?" + raw
	}
	h.forwardJSON(c, http.MethodGet, path)
}

// CreateContact forwards a contact-form message
// @Summary Send contact message
// @Tags proxy
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /contacts [post]
func (h *ProxyHandler) CreateContact(c *gin.Context) {
	h.forwardJSON(c, http.MethodPost, "/contacts")
}

// ActivateAccount forwards a client account activation
// @Summary Activate account
// @Tags proxy
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /accounts/activate [post]
func (h *ProxyHandler) ActivateAccount(c *gin.Context) {
	h.forwardJSON(c, http.MethodPost, "/accounts/activate")
}

// RequestPasswordReset asks the upstream to mail a reset link. The answer
// is the same whether or not the address exists, so accounts cannot be
// enumerated through this route.
// @Summary Request password reset
// @Tags proxy
// @Accept json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /accounts/password-reset [post]
func (h *ProxyHandler) RequestPasswordReset(c *gin.Context) {
	var req request.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.client.PostJSON(c.Request.Context(), "/accounts/password-reset", gin.H{"email": req.Email}, nil)
	if err != nil {
		h.log.Warn("password reset forward failed", zap.Error(err))
	}

	response.OK(c, "Si el correo existe, recibirás un enlace para restablecer tu contraseña", nil)
}

// UploadPaymentProof forwards a payment receipt for an order. The file is
// checked against the accepted MIME types and the 5 MB cap before any
// upstream call; the upstream enforces the same limits again.
// @Summary Upload payment proof
// @Tags proxy
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Order ID"
// @Param file formData file true "Receipt (JPG, PNG or PDF, max 5 MB)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIResponse
// @Router /orders/{id}/payment-proof [post]
func (h *ProxyHandler) UploadPaymentProof(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Archivo no recibido")
		return
	}

	if err := h.validateUpload(fileHeader); err != nil {
		response.Error(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "No se pudo leer el archivo")
		return
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileHeader.Filename)
	if err != nil {
		response.InternalServerError(c, apperror.ErrBackendUnavailable.Message)
		return
	}
	if _, err := io.Copy(part, file); err != nil {
		response.InternalServerError(c, apperror.ErrBackendUnavailable.Message)
		return
	}
	if err := writer.Close(); err != nil {
		response.InternalServerError(c, apperror.ErrBackendUnavailable.Message)
		return
	}

	path := "/orders/" + url.PathEscape(c.Param("id")) + "/payment-proof"
	resp, err := h.client.Do(c.Request.Context(), http.MethodPost, path, writer.FormDataContentType(), &body)
	if err != nil {
		h.log.Error("payment proof forward failed", zap.String("path", path), zap.Error(err))
		response.InternalServerError(c, apperror.ErrBackendUnavailable.Message)
		return
	}

	h.relay(c, resp)
}

// forwardJSON relays the inbound body and re-emits the upstream answer.
func (h *ProxyHandler) forwardJSON(c *gin.Context, method, path string) {
	var body io.Reader
	contentType := ""
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		body = c.Request.Body
		contentType = c.ContentType()
		if contentType == "" {
			contentType = "application/json"
		}
	}

	resp, err := h.client.Do(c.Request.Context(), method, path, contentType, body)
	if err != nil {
		h.log.Error("proxy forward failed", zap.String("path", path), zap.Error(err))
		response.InternalServerError(c, apperror.ErrBackendUnavailable.Message)
		return
	}

	h.relay(c, resp)
}

// relay writes the upstream answer through. Success bodies pass as-is;
// error bodies are re-emitted with their original status and their
// "detail" payload untouched.
func (h *ProxyHandler) relay(c *gin.Context, resp *backend.Response) {
	if resp.Success() {
		contentType := resp.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		c.Data(resp.StatusCode, contentType, resp.Body)
		return
	}

	response.UpstreamError(c, resp.StatusCode, backend.ExtractDetail(resp.Body))
}

func (h *ProxyHandler) validateUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > h.upload.MaxSize {
		return apperror.ErrFileTooLarge
	}

	contentType := fileHeader.Header.Get("Content-Type")
	for _, allowed := range h.upload.AllowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return apperror.ErrFileTypeInvalid
}
