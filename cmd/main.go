package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"keyword-extraction-service/internal/catalog"
	"keyword-extraction-service/internal/config"
	"keyword-extraction-service/internal/logger"
	"keyword-extraction-service/internal/matcher"
	"keyword-extraction-service/internal/telemetry"
	"keyword-extraction-service/middleware"
	"keyword-extraction-service/routes"
	"keyword-extraction-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	// Tracing is optional; the service runs fine without a collector
	if cfg.TracingEnabled {
		shutdownTracer, err := telemetry.InitTracer("keyword-extraction-service", cfg.OTLPEndpoint)
		if err != nil {
			logger.Warn("Tracing disabled", "error", err)
		} else {
			defer shutdownTracer()
		}
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		logger.Warn("Metrics disabled", "error", err)
	}

	// Service state: catalog + matcher registry behind one atomic snapshot
	schema := catalog.FieldSchema{
		IDField:     cfg.IDColumn,
		EnNameField: cfg.EnNameColumn,
		FrNameField: cfg.FrNamesColumn,
		IDFField:    cfg.IDFColumn,
	}
	state := services.NewState(schema)

	// Initial load runs off the serving path. A failure degrades the
	// service instead of killing it; /ready reports the difference.
	go func() {
		logger.Info("Loading keyword catalog", "path", cfg.KeywordsPath())
		if err := state.Load(cfg.KeywordsPath()); err != nil {
			logger.Error("Starting degraded: catalog unavailable", "error", err)
		}
	}()

	// Scheduled reload picks up retrained keyword tables without restarts
	var scheduler *gocron.Scheduler
	if cfg.ReloadInterval > 0 {
		scheduler = gocron.NewScheduler(time.UTC)
		_, err := scheduler.Every(cfg.ReloadInterval).Do(func() {
			if err := state.Load(cfg.KeywordsPath()); err != nil {
				metrics.RecordReload("failure")
				return
			}
			metrics.RecordReload("success")
		})
		if err != nil {
			logger.Warn("Scheduled reload disabled", "error", err)
		} else {
			scheduler.StartAsync()
			defer scheduler.Stop()
		}
	}

	extractor := services.NewExtractor(state, matcher.NewLanguageDetector(), metrics)

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	if cfg.TracingEnabled {
		router.Use(middleware.TracingMiddleware())
		router.Use(middleware.EnrichTrace())
	}
	router.Use(middleware.MetricsMiddleware(metrics))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	router.Use(cors.New(corsConfig))

	// Rate limiting rides Redis and fails open without it
	if rdb, err := config.NewRedisClient(cfg); err != nil {
		logger.Warn("Rate limiting disabled", "error", err)
	} else {
		router.Use(middleware.RateLimitMiddleware(rdb, cfg))
		defer rdb.Close()
	}

	// Setup routes
	authMiddleware := middleware.NewAuthMiddleware(cfg)
	routes.SetupHealthRoutes(router, state)
	routes.SetupKeywordRoutes(router, cfg, state, extractor, metrics, authMiddleware)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
