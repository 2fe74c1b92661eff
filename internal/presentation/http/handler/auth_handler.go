package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garzaro/uniformes-bff/internal/application/store"
	"github.com/garzaro/uniformes-bff/internal/domain/repository"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/dto/response"
	"github.com/garzaro/uniformes-bff/pkg/oauth"
	"github.com/garzaro/uniformes-bff/pkg/utils"
)

const oauthStateCookie = "_uniformes_oauth_state"

// AuthHandler signs admin operators in through Google and issues local
// tokens once the upstream has resolved their school grants.
type AuthHandler struct {
	google     *oauth.GoogleOAuthService
	directory  repository.SchoolDirectory
	jwtManager *utils.JWTManager
	stores     *store.Manager
	log        *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	google *oauth.GoogleOAuthService,
	directory repository.SchoolDirectory,
	jwtManager *utils.JWTManager,
	stores *store.Manager,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		google:     google,
		directory:  directory,
		jwtManager: jwtManager,
		stores:     stores,
		log:        log,
	}
}

// GoogleLogin redirects the operator to the Google consent screen
// @Summary Google login
// @Tags auth
// @Success 307
// @Router /auth/google [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if !h.google.IsConfigured() {
		response.InternalServerError(c, oauth.ErrOAuthNotConfigured.Error())
		return
	}

	state, err := oauth.GenerateState()
	if err != nil {
		response.InternalServerError(c, "Failed to start login")
		return
	}

	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.google.GetAuthURL(state))
}

// GoogleCallback exchanges the authorization code, resolves the operator
// against the upstream and issues local tokens
// @Summary Google callback
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		response.Unauthorized(c, oauth.ErrInvalidState.Error())
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	token, err := h.google.ExchangeCode(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.log.Warn("oauth code exchange failed", zap.Error(err))
		response.Unauthorized(c, "No se pudo iniciar sesión con Google")
		return
	}

	userInfo, err := h.google.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		h.log.Warn("oauth user info failed", zap.Error(err))
		response.Unauthorized(c, "No se pudo iniciar sesión con Google")
		return
	}

	operator, err := h.directory.ResolveOperator(c.Request.Context(), userInfo.Email)
	if err != nil {
		h.log.Warn("operator resolution failed", zap.String("email", userInfo.Email), zap.Error(err))
		response.Forbidden(c, "Tu cuenta no tiene acceso al portal")
		return
	}

	accessToken, err := h.jwtManager.GenerateAccessToken(
		operator.ID, operator.Email, operator.Name, operator.Superuser, operator.SchoolIDs)
	if err != nil {
		response.InternalServerError(c, "Failed to issue token")
		return
	}
	refreshToken, err := h.jwtManager.GenerateRefreshToken(operator.ID)
	if err != nil {
		response.InternalServerError(c, "Failed to issue token")
		return
	}

	response.OK(c, "Login successful", gin.H{
		"operator": gin.H{
			"id":         operator.ID,
			"email":      operator.Email,
			"name":       operator.Name,
			"superuser":  operator.Superuser,
			"school_ids": operator.SchoolIDs,
		},
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "Bearer",
	})
}

// RefreshToken exchanges a refresh token for a fresh access token. Grants
// are resolved again so revocations take effect at refresh time.
// @Summary Refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	operatorID, err := h.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		response.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	// The refresh token only proves identity; current grants come from
	// the profile held in the last issued access token. Without an email
	// lookup by id upstream, the operator signs in again when the access
	// token cannot be refreshed from context.
	operator := GetOperator(c)
	if operator == nil || operator.ID != operatorID {
		response.Unauthorized(c, "Session expired, please sign in again")
		return
	}

	accessToken, err := h.jwtManager.GenerateAccessToken(
		operator.ID, operator.Email, operator.Name, operator.Superuser, operator.SchoolIDs)
	if err != nil {
		response.InternalServerError(c, "Failed to issue token")
		return
	}

	response.OK(c, "Token refreshed", gin.H{
		"access_token": accessToken,
		"token_type":   "Bearer",
	})
}

// Profile returns the authenticated operator
// @Summary Profile
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	operator := GetOperator(c)
	if operator == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	response.OK(c, "Profile retrieved", gin.H{
		"id":         operator.ID,
		"email":      operator.Email,
		"name":       operator.Name,
		"superuser":  operator.Superuser,
		"school_ids": operator.SchoolIDs,
	})
}

// Logout drops the operator's session state, including open drafts
// @Summary Logout
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.stores.ClearSession(c.Request.Context(), GetSessionKey(c))
	response.NoContent(c)
}
