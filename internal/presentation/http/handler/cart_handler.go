package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/garzaro/uniformes-bff/internal/application/store"
	"github.com/garzaro/uniformes-bff/internal/domain/entity"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/dto/request"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/dto/response"
	"github.com/garzaro/uniformes-bff/pkg/money"
)

// CartHandler exposes the storefront cart over HTTP
type CartHandler struct {
	stores *store.Manager
}

// NewCartHandler creates a new cart handler
func NewCartHandler(stores *store.Manager) *CartHandler {
	return &CartHandler{stores: stores}
}

// Get returns the cart contents with derived totals
// @Summary Get cart
// @Tags cart
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	session := h.stores.Session(c.Request.Context(), GetSessionKey(c))
	response.OK(c, "Cart retrieved", cartPayload(session))
}

// AddItem adds a line or increments the matching (product, school) line
// @Summary Add cart item
// @Tags cart
// @Accept json
// @Produce json
// @Param request body request.AddCartItemRequest true "Item"
// @Success 200 {object} response.APIResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sessionKey := GetSessionKey(c)
	session := h.stores.Session(c.Request.Context(), sessionKey)

	session.Cart.AddItem(entity.CartItem{
		ProductID:  req.ProductID,
		SchoolID:   req.SchoolID,
		Name:       req.Name,
		Size:       req.Size,
		UnitPrice:  req.UnitPrice,
		Quantity:   req.Quantity,
		SchoolName: req.SchoolName,
		ImageURL:   req.ImageURL,
	})
	h.stores.SaveCart(c.Request.Context(), sessionKey, session)

	response.OK(c, "Item added", cartPayload(session))
}

// UpdateItem sets the quantity of a line; zero removes it
// @Summary Update cart item
// @Tags cart
// @Accept json
// @Produce json
// @Param request body request.UpdateCartItemRequest true "Quantity update"
// @Success 200 {object} response.APIResponse
// @Router /cart/items [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req request.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sessionKey := GetSessionKey(c)
	session := h.stores.Session(c.Request.Context(), sessionKey)

	session.Cart.UpdateQuantity(req.ProductID, req.SchoolID, req.Quantity)
	h.stores.SaveCart(c.Request.Context(), sessionKey, session)

	response.OK(c, "Cart updated", cartPayload(session))
}

// RemoveItem deletes a line
// @Summary Remove cart item
// @Tags cart
// @Produce json
// @Param productId path string true "Product ID"
// @Param schoolId path string true "School ID"
// @Success 200 {object} response.APIResponse
// @Router /cart/items/{productId}/{schoolId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionKey := GetSessionKey(c)
	session := h.stores.Session(c.Request.Context(), sessionKey)

	session.Cart.RemoveItem(c.Param("productId"), c.Param("schoolId"))
	h.stores.SaveCart(c.Request.Context(), sessionKey, session)

	response.OK(c, "Item removed", cartPayload(session))
}

// Clear empties the cart
// @Summary Clear cart
// @Tags cart
// @Success 204
// @Router /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	sessionKey := GetSessionKey(c)
	session := h.stores.Session(c.Request.Context(), sessionKey)

	session.Cart.Clear()
	h.stores.SaveCart(c.Request.Context(), sessionKey, session)

	response.NoContent(c)
}

func cartPayload(session *store.Session) gin.H {
	totalPrice := session.Cart.TotalPrice()
	return gin.H{
		"items":               session.Cart.Items(),
		"total_items":         session.Cart.TotalItems(),
		"total_price":         totalPrice,
		"total_price_display": money.FormatCLP(totalPrice),
	}
}
