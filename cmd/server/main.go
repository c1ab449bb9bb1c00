package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"techforge_app_go/config"
	"techforge_app_go/db"
	"techforge_app_go/handlers"
	"techforge_app_go/middleware"
	"techforge_app_go/models"
	"techforge_app_go/services"
	"techforge_app_go/services/analytics"
	"techforge_app_go/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		Environment: cfg.Environment,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.ProjectListing{}, &models.Lead{}, &models.AnalyticsEvent{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the catalog on first start
	if err := services.SeedCatalog(db.DB); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// Listing cache (optional)
	if cfg.RedisURL != "" {
		cache, err := services.NewRedisListingCache(cfg.RedisURL, cfg.CatalogCacheTTL)
		if err != nil {
			log.Printf("[WARNING] Listing cache disabled: %v", err)
		} else {
			defer cache.Close()
			handlers.ListingCache = cache
		}
	}

	// Analytics: every event is stored; GA4 gets a copy when configured
	sinks := analytics.Multi{analytics.NewStore(db.DB)}
	if cfg.GAMeasurementID != "" && cfg.GAAPISecret != "" {
		sinks = append(sinks, analytics.NewMeasurementProtocol(cfg.GAAPISecret, "server"))
	}
	dispatcher := analytics.NewDispatcher(sinks, 1024)
	if err := dispatcher.Init(cfg.GAMeasurementID); err != nil {
		log.Printf("[WARNING] Analytics init failed: %v", err)
	}
	handlers.Analytics = dispatcher

	// Lead exports
	services.InitializeStorage(cfg)
	exporter := services.NewLeadExporter(services.NewLeadService(db.DB), services.Storage)
	scheduler, err := jobs.StartScheduler(db.DB, cfg, exporter, services.Storage)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	middleware.InitAssetVersions()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))
	e.Use(middleware.CSPNonce())
	e.Use(middleware.CSRF(cfg))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files
	e.Static("/static", "static")
	e.File("/favicon.ico", middleware.FaviconPath)

	// Public pages and htmx partials
	e.GET("/", handlers.LandingHandler)
	e.GET("/healthz", handlers.HealthHandler)
	e.GET("/projects/close", handlers.CloseModalHandler)
	e.GET("/projects/:category", handlers.ProjectModalHandler)
	e.GET("/partials/contact-form", handlers.ContactFormPartialHandler)

	// JSON API
	api := e.Group("/api")
	{
		api.GET("/categories", handlers.GetCategoriesHandler, middleware.APIRateLimiter.Middleware())
		api.GET("/projects/:category", handlers.GetProjectsHandler, middleware.APIRateLimiter.Middleware())
		api.POST("/contact", handlers.SubmitContactHandler, middleware.ContactRateLimiter.Middleware())
		api.POST("/events", handlers.RecordEventHandler, middleware.EventsRateLimiter.Middleware())
	}

	// Admin routes
	admin := e.Group("/admin")
	admin.Use(middleware.RequireAdmin(cfg))
	{
		admin.GET("/leads", handlers.AdminListLeadsHandler)
		admin.GET("/leads/export", handlers.AdminExportLeadsHandler)
		admin.GET("/exports", handlers.AdminListExportsHandler)
		admin.GET("/exports/*", handlers.AdminDownloadExportHandler)
	}

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("[WARNING] Server shutdown: %v", err)
	}
	scheduler.Stop()
	dispatcher.Close()
	if n := dispatcher.Dropped(); n > 0 {
		log.Printf("[ANALYTICS] %d events dropped under load", n)
	}
}
