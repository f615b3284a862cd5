package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/ksred/barter-api/internal/auth"
	"github.com/ksred/barter-api/internal/catalog"
	"github.com/ksred/barter-api/internal/config"
	"github.com/ksred/barter-api/internal/database"
	"github.com/ksred/barter-api/internal/notification"
	"github.com/ksred/barter-api/internal/trade"
	"github.com/ksred/barter-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// Demo credentials registered at startup; real deployments would provision
// participants through an account service.
var demoCredentials = []struct {
	apiKey        string
	apiSecret     string
	participantID uint
}{
	{"trainer-red-key", "trainer-red-secret", 1},
	{"trainer-blue-key", "trainer-blue-secret", 2},
}

// main initializes and runs the barter marketplace API server with graceful
// shutdown support. It wires the trade engine to its store, catalog and
// notification collaborators and exposes them over HTTP.
func main() {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg)

	// Initialize database
	db, err := database.NewDatabase(cfg.DatabasePath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize database")
	}

	// Initialize router
	router := gin.Default()

	// Initialize services and handlers
	authService := auth.NewService(cfg.JWTSecret)
	authHandlers := auth.NewGinHandlers(authService)
	for _, creds := range demoCredentials {
		authService.RegisterCredentials(creds.apiKey, creds.apiSecret, creds.participantID)
	}

	catalogService := catalog.NewService(db)
	catalogHandlers := catalog.NewGinHandlers(catalogService)

	notificationService := notification.NewService(db)
	notificationHandlers := notification.NewGinHandlers(notificationService)

	tradeService := trade.NewService(
		trade.NewDatabase(db),
		trade.NewOfferDatabase(db),
		notificationService,
		catalogService,
	)
	tradeHandlers := trade.NewGinHandlers(tradeService)

	// Create and start the notification dispatcher
	dispatcher := notification.NewDispatcher(notification.NewDatabase(db), cfg.DispatchInterval)
	dispatcherCtx, dispatcherCancel := context.WithCancel(context.Background())
	defer dispatcherCancel()

	go dispatcher.Start(dispatcherCtx)

	// Setup middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimit())

	// Setup API routes
	setupRoutes(router, cfg.JWTSecret, authHandlers, catalogHandlers, tradeHandlers, notificationHandlers)

	// Create server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown setup
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("listen")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info().Msg("Shutting down server...")

	// Give outstanding operations 5 seconds to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	zlog.Info().Msg("Server exiting")
}

// setupLogging configures application logging from the runtime settings.
// In development mode, it enables pretty printing with timestamps.
func setupLogging(cfg *config.Config) {
	if !cfg.Production() {
		output := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		zlog.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// setupRoutes configures all API endpoints and their handlers
// It groups routes by functionality and applies appropriate middleware:
// - Auth routes: Public endpoints for authentication
// - Everything else: Protected by JWT authentication
func setupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authHandlers *auth.GinHandlers,
	catalogHandlers *catalog.GinHandlers,
	tradeHandlers *trade.GinHandlers,
	notificationHandlers *notification.GinHandlers,
) {
	v1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/token", authHandlers.GenerateTokenHandler())
		}

		// Catalog routes
		items := v1.Group("/items")
		items.Use(middleware.JWTAuth(jwtSecret))
		{
			items.POST("", catalogHandlers.RegisterItemHandler())
			items.GET("/mine", catalogHandlers.MyItemsHandler())
			items.GET("/:item_id", catalogHandlers.GetItemHandler())
		}

		// Listing routes
		listings := v1.Group("/listings")
		listings.Use(middleware.JWTAuth(jwtSecret))
		{
			listings.POST("", tradeHandlers.CreateListingHandler())
			listings.GET("", tradeHandlers.OpenListingsHandler())
			listings.GET("/mine", tradeHandlers.MyListingsHandler())
			listings.GET("/completed", tradeHandlers.CompletedListingsHandler())
			listings.GET("/:listing_id", tradeHandlers.GetListingHandler())
			listings.PUT("/:listing_id/status", tradeHandlers.SetListingStatusHandler())
			listings.POST("/:listing_id/offers", tradeHandlers.SubmitOfferHandler())
			listings.GET("/:listing_id/offers", tradeHandlers.ListingOffersHandler())
		}

		// Counter-offer routes
		offers := v1.Group("/offers")
		offers.Use(middleware.JWTAuth(jwtSecret))
		{
			offers.GET("/mine", tradeHandlers.MyOffersHandler())
			offers.PUT("/:offer_id/resolve", tradeHandlers.ResolveOfferHandler())
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		notifications.Use(middleware.JWTAuth(jwtSecret))
		{
			notifications.GET("", notificationHandlers.ListHandler())
			notifications.PUT("/:notification_id/read", notificationHandlers.MarkReadHandler())
		}
	}
}
