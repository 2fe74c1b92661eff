package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/garzaro/uniformes-bff/internal/config"
	domainRepo "github.com/garzaro/uniformes-bff/internal/domain/repository"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/handler"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/middleware"
	"github.com/garzaro/uniformes-bff/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth   *handler.AuthHandler
	Draft  *handler.DraftHandler
	Cart   *handler.CartHandler
	School *handler.SchoolHandler
	Proxy  *handler.ProxyHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	router.Use(middleware.SessionMiddleware(&deps.Cfg.Session))

	// Per-session rate limiter
	rateLimiter := middleware.NewSessionRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	router.Use(rateLimiter.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h, deps)
		registerStorefrontRoutes(v1, h, deps)

		// Admin routes (authentication required)
		admin := v1.Group("")
		admin.Use(middleware.AuthMiddleware(deps.JWTManager))
		registerAdminRoutes(admin, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	auth := v1.Group("/auth")
	{
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
		auth.POST("/refresh", middleware.OptionalAuthMiddleware(deps.JWTManager), h.Auth.RefreshToken)
	}
}

// Storefront routes: anonymous visitors keyed by the session cookie.
func registerStorefrontRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	cart := v1.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items", h.Cart.UpdateItem)
		cart.DELETE("/items/:productId/:schoolId", h.Cart.RemoveItem)
	}

	// Proxy surface to the upstream API. Contact creation replays when the
	// client retries with the same key, but the key stays optional.
	v1.GET("/products", h.Proxy.ListProducts)
	v1.POST("/contacts", middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}), h.Proxy.CreateContact)
	v1.POST("/accounts/activate", h.Proxy.ActivateAccount)
	v1.POST("/accounts/password-reset", h.Proxy.RequestPasswordReset)

	orders := v1.Group("/orders")
	{
		// Checkout uses idempotency middleware to prevent duplicates
		orders.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Proxy.CreateOrder)
		orders.GET("/:id", h.Proxy.GetOrder)
		orders.POST("/:id/payment-proof", h.Proxy.UploadPaymentProof)
	}
}

// Admin routes: POS drafts and school selection for operators.
func registerAdminRoutes(admin *gin.RouterGroup, h *Handlers) {
	admin.POST("/auth/logout", h.Auth.Logout)
	admin.GET("/auth/profile", h.Auth.Profile)

	drafts := admin.Group("/drafts")
	{
		drafts.GET("", h.Draft.List)
		drafts.POST("", h.Draft.Create)
		drafts.DELETE("", h.Draft.ClearAll)
		drafts.PUT("/active", h.Draft.SetActive)
		drafts.GET("/:id", h.Draft.Get)
		drafts.PATCH("/:id", h.Draft.Update)
		drafts.DELETE("/:id", h.Draft.Delete)
	}

	schools := admin.Group("/schools")
	{
		schools.POST("/load", h.School.Load)
		schools.GET("/current", h.School.Current)
		schools.PUT("/select", h.School.Select)
		schools.DELETE("/select", h.School.Clear)
	}
}
