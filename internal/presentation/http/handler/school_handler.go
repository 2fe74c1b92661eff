package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garzaro/uniformes-bff/internal/application/store"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/dto/request"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/dto/response"
	"github.com/garzaro/uniformes-bff/pkg/apperror"
)

// SchoolHandler exposes school selection for the admin portal
type SchoolHandler struct {
	stores *store.Manager
	log    *zap.Logger
}

// NewSchoolHandler creates a new school handler
func NewSchoolHandler(stores *store.Manager, log *zap.Logger) *SchoolHandler {
	return &SchoolHandler{stores: stores, log: log}
}

// Load refreshes the available school list, filtered to the operator's
// grants, and applies the reselection fallback rules
// @Summary Load schools
// @Tags schools
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /schools/load [post]
func (h *SchoolHandler) Load(c *gin.Context) {
	operator := GetOperator(c)
	if operator == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	sessionKey := GetSessionKey(c)
	session := h.stores.Session(c.Request.Context(), sessionKey)

	// On fetch failure the previous selection is kept and the error is
	// reported alongside it.
	loadErr := session.Schools.LoadSchools(c.Request.Context(), operator)
	h.stores.SaveSchool(c.Request.Context(), sessionKey, session)
	if loadErr != nil {
		response.OK(c, "Schools unavailable", schoolPayload(session))
		return
	}

	response.OK(c, "Schools loaded", schoolPayload(session))
}

// Current returns the selection and available list
// @Summary Current school selection
// @Tags schools
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /schools/current [get]
func (h *SchoolHandler) Current(c *gin.Context) {
	session := h.stores.Session(c.Request.Context(), GetSessionKey(c))
	response.OK(c, "School selection retrieved", schoolPayload(session))
}

// Select switches the session to another school, checking the loaded
// list first and falling back to a direct fetch
// @Summary Select school
// @Tags schools
// @Accept json
// @Produce json
// @Param request body request.SelectSchoolRequest true "School ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /schools/select [put]
func (h *SchoolHandler) Select(c *gin.Context) {
	var req request.SelectSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sessionKey := GetSessionKey(c)
	session := h.stores.Session(c.Request.Context(), sessionKey)

	school, err := session.Schools.SelectSchoolByID(c.Request.Context(), req.SchoolID)
	if err != nil {
		// The fetch fallback can fail on transport errors; those carry
		// internal detail and must surface only as the generic message.
		if !apperror.IsAppError(err) {
			h.log.Warn("school fetch failed", zap.String("school_id", req.SchoolID), zap.Error(err))
			err = apperror.ErrBackendUnavailable
		}
		response.Error(c, err)
		return
	}
	h.stores.SaveSchool(c.Request.Context(), sessionKey, session)

	response.OK(c, "School selected", gin.H{"selected": school})
}

// Clear resets to no selection
// @Summary Clear school selection
// @Tags schools
// @Success 204
// @Router /schools/select [delete]
func (h *SchoolHandler) Clear(c *gin.Context) {
	sessionKey := GetSessionKey(c)
	session := h.stores.Session(c.Request.Context(), sessionKey)

	session.Schools.ClearSchool()
	h.stores.SaveSchool(c.Request.Context(), sessionKey, session)

	response.NoContent(c)
}

func schoolPayload(session *store.Session) gin.H {
	payload := gin.H{
		"available": session.Schools.Available(),
	}
	if selected := session.Schools.Selected(); selected != nil {
		payload["selected"] = selected
	}
	if loadErr := session.Schools.LoadError(); loadErr != "" {
		payload["load_error"] = loadErr
	}
	return payload
}
