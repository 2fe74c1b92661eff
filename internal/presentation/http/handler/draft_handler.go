package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/garzaro/uniformes-bff/internal/application/store"
	"github.com/garzaro/uniformes-bff/internal/domain/entity"
	"github.com/garzaro/uniformes-bff/internal/domain/enum"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/dto/request"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/dto/response"
	"github.com/garzaro/uniformes-bff/pkg/apperror"
)

// DraftHandler exposes the per-operator draft store over HTTP
type DraftHandler struct {
	stores *store.Manager
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(stores *store.Manager) *DraftHandler {
	return &DraftHandler{stores: stores}
}

// List returns all open drafts of the session
// @Summary List drafts
// @Tags drafts
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /drafts [get]
func (h *DraftHandler) List(c *gin.Context) {
	session := h.stores.Session(c.Request.Context(), GetSessionKey(c))

	drafts := session.Drafts.List()
	items := make([]gin.H, 0, len(drafts))
	for i := range drafts {
		items = append(items, draftPayload(&drafts[i]))
	}

	payload := gin.H{
		"drafts":  items,
		"count":   session.Drafts.Count(),
		"can_add": session.Drafts.CanAdd(),
	}
	if active := session.Drafts.ActiveDraft(); active != nil {
		payload["active_id"] = active.ID
	}

	response.OK(c, "Drafts retrieved", payload)
}

// Create opens a new draft
// @Summary Create draft
// @Tags drafts
// @Accept json
// @Produce json
// @Param request body request.CreateDraftRequest true "Draft data"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /drafts [post]
func (h *DraftHandler) Create(c *gin.Context) {
	var req request.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	kind, err := enum.ParseDraftKind(req.Kind)
	if err != nil {
		response.BadRequest(c, "Tipo de borrador desconocido")
		return
	}

	sessionKey := GetSessionKey(c)
	session := h.stores.Session(c.Request.Context(), sessionKey)

	draft, err := session.Drafts.AddDraft(kind, store.DraftInit{
		SchoolID:   req.SchoolID,
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.stores.SaveDrafts(c.Request.Context(), sessionKey, session)

	response.Created(c, "Draft created", draftPayload(draft))
}

// Get returns one draft
// @Summary Get draft
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /drafts/{id} [get]
func (h *DraftHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft ID")
		return
	}

	session := h.stores.Session(c.Request.Context(), GetSessionKey(c))
	draft, err := session.Drafts.GetDraft(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft retrieved", draftPayload(draft))
}

// Update merges a partial update into a draft
// @Summary Update draft
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body request.UpdateDraftRequest true "Partial changes"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /drafts/{id} [patch]
func (h *DraftHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft ID")
		return
	}

	var req request.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	changes, err := draftChanges(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	sessionKey := GetSessionKey(c)
	session := h.stores.Session(c.Request.Context(), sessionKey)

	draft, err := session.Drafts.UpdateDraft(id, changes)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.stores.SaveDrafts(c.Request.Context(), sessionKey, session)

	response.OK(c, "Draft updated", draftPayload(draft))
}

// Delete removes a draft. Deleting an absent draft succeeds.
// @Summary Delete draft
// @Tags drafts
// @Param id path string true "Draft ID"
// @Success 204
// @Router /drafts/{id} [delete]
func (h *DraftHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft ID")
		return
	}

	sessionKey := GetSessionKey(c)
	session := h.stores.Session(c.Request.Context(), sessionKey)
	session.Drafts.RemoveDraft(id)
	h.stores.SaveDrafts(c.Request.Context(), sessionKey, session)

	response.NoContent(c)
}

// SetActive points the active pointer at a draft, or clears it
// @Summary Set active draft
// @Tags drafts
// @Accept json
// @Produce json
// @Param request body request.SetActiveDraftRequest true "Draft ID or null"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /drafts/active [put]
func (h *DraftHandler) SetActive(c *gin.Context) {
	var req request.SetActiveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sessionKey := GetSessionKey(c)
	session := h.stores.Session(c.Request.Context(), sessionKey)

	if err := session.Drafts.SetActiveDraft(req.ID); err != nil {
		response.Error(c, err)
		return
	}
	h.stores.SaveDrafts(c.Request.Context(), sessionKey, session)

	payload := gin.H{}
	if active := session.Drafts.ActiveDraft(); active != nil {
		payload["active_id"] = active.ID
	}
	response.OK(c, "Active draft updated", payload)
}

// ClearAll removes every draft. Used on logout and session reset.
// @Summary Clear drafts
// @Tags drafts
// @Success 204
// @Router /drafts [delete]
func (h *DraftHandler) ClearAll(c *gin.Context) {
	sessionKey := GetSessionKey(c)
	session := h.stores.Session(c.Request.Context(), sessionKey)
	session.Drafts.ClearAll()
	h.stores.SaveDrafts(c.Request.Context(), sessionKey, session)

	response.NoContent(c)
}

func draftPayload(d *entity.Draft) gin.H {
	return gin.H{
		"draft": d,
		"label": d.Label(),
	}
}

func draftChanges(req *request.UpdateDraftRequest) (store.DraftChanges, error) {
	changes := store.DraftChanges{
		SchoolID:   req.SchoolID,
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
		Notes:      req.Notes,
	}

	if req.Items != nil {
		items := make([]entity.LineItem, 0, len(*req.Items))
		for _, line := range *req.Items {
			item := entity.LineItem{
				TempID:    line.TempID,
				ProductID: line.ProductID,
				Name:      line.Name,
				Size:      line.Size,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Global:    line.Global,
				SchoolID:  line.SchoolID,
			}
			if line.Custom != nil {
				item.Custom = &entity.CustomGarment{
					GarmentTypeID: line.Custom.GarmentTypeID,
					Measurements:  line.Custom.Measurements,
					Embroidery:    line.Custom.Embroidery,
					Color:         line.Custom.Color,
					Notes:         line.Custom.Notes,
					PriceDelta:    line.Custom.PriceDelta,
				}
			}
			items = append(items, item)
		}
		changes.Items = &items
	}

	if req.Venta != nil {
		venta := store.VentaChanges{
			Historical:     req.Venta.Historical,
			HistoricalDate: req.Venta.HistoricalDate,
		}
		if req.Venta.Payments != nil {
			payments := make([]entity.Payment, 0, len(*req.Venta.Payments))
			for _, p := range *req.Venta.Payments {
				method := enum.PaymentMethod(p.Method)
				if !method.Valid() {
					return store.DraftChanges{}, apperror.NewBadRequestError("Medio de pago desconocido")
				}
				payments = append(payments, entity.Payment{ID: p.ID, Amount: p.Amount, Method: method})
			}
			venta.Payments = &payments
		}
		changes.Venta = &venta
	}

	if req.Encargo != nil {
		encargo := store.EncargoChanges{
			ClientEmail:   req.Encargo.ClientEmail,
			DeliveryDate:  req.Encargo.DeliveryDate,
			AdvanceAmount: req.Encargo.AdvanceAmount,
		}
		if req.Encargo.AdvanceMethod != nil {
			method := enum.PaymentMethod(*req.Encargo.AdvanceMethod)
			if !method.Valid() {
				return store.DraftChanges{}, apperror.NewBadRequestError("Medio de pago desconocido")
			}
			encargo.AdvanceMethod = &method
		}
		if req.Encargo.ActiveTab != nil {
			tab := enum.IntakeTab(*req.Encargo.ActiveTab)
			if !tab.Valid() {
				return store.DraftChanges{}, apperror.NewBadRequestError("Pestaña desconocida")
			}
			encargo.ActiveTab = &tab
		}
		changes.Encargo = &encargo
	}

	return changes, nil
}
