package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garzaro/uniformes-bff/internal/application/store"
	"github.com/garzaro/uniformes-bff/internal/config"
	"github.com/garzaro/uniformes-bff/internal/infrastructure/database"
	"github.com/garzaro/uniformes-bff/internal/infrastructure/repository"
	"github.com/garzaro/uniformes-bff/internal/infrastructure/upstream"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/handler"
	"github.com/garzaro/uniformes-bff/internal/presentation/http/routes"
	"github.com/garzaro/uniformes-bff/pkg/backend"
	"github.com/garzaro/uniformes-bff/pkg/oauth"
	"github.com/garzaro/uniformes-bff/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	sessionStateRepo := repository.NewSessionStateRepository(db)

	// Upstream API client and directory
	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	directory := upstream.NewSchoolDirectory(backendClient)

	// Per-session state stores
	stores := store.NewManager(sessionStateRepo, directory, logger)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		AllowedDomain:      cfg.OAuth.AllowedDomain,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:   handler.NewAuthHandler(googleOAuthService, directory, jwtManager, stores, logger),
		Draft:  handler.NewDraftHandler(stores),
		Cart:   handler.NewCartHandler(stores),
		School: handler.NewSchoolHandler(stores, logger),
		Proxy:  handler.NewProxyHandler(backendClient, &cfg.Upload, logger),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("Starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env),
	)

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
