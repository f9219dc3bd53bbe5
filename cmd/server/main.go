package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tyredesk/tyre-service/config"
	_ "github.com/tyredesk/tyre-service/docs"
	"github.com/tyredesk/tyre-service/internal/database"
	"github.com/tyredesk/tyre-service/internal/extraction"
	"github.com/tyredesk/tyre-service/internal/handlers"
	"github.com/tyredesk/tyre-service/internal/middleware"
	"github.com/tyredesk/tyre-service/internal/storage"
	"github.com/tyredesk/tyre-service/internal/telemetry"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)
	log.Logger = *logger

	logger.Info().Msg("Starting tyre service")

	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL not set")
	}
	if cfg.Auth.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET not set")
	}

	ctx := context.Background()

	cleanupTelemetry := telemetry.MustInit(ctx, telemetry.GetConfigFromEnv())
	defer cleanupTelemetry(context.Background())

	if err := database.Connect(
		ctx,
		dbURL,
		cfg.Database.MaxConnections,
		cfg.Database.MinConnections,
		cfg.Database.MaxConnLifetime,
		cfg.Database.MaxConnIdleTime,
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	logger.Info().Msg("Database connected")

	if err := handleInterruptedRuns(ctx, logger); err != nil {
		logger.Warn().Err(err).Msg("Failed to handle interrupted runs")
	}

	archive, err := storage.NewLocalArchive(cfg.Storage.BasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize document archive")
	}

	handlers.Configure(extraction.NewClient(extraction.Options{
		APIKey:  cfg.Extraction.APIKey,
		BaseURL: cfg.Extraction.BaseURL,
		Model:   cfg.Extraction.Model,
		Timeout: cfg.Extraction.Timeout,
	}, *logger), archive)

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	setupMiddleware(router, logger)

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.Use(middleware.RateLimit(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
	}))
	api.Use(middleware.JWTAuth(cfg.Auth.JWTSecret))
	{
		api.POST("/ingest", handlers.IngestPriceList)
		api.GET("/ingest/runs", handlers.ListRuns)
		api.GET("/ingest/runs/:runId", handlers.GetRun)
		api.GET("/ingest/runs/:runId/errors", handlers.ListRunErrors)

		api.GET("/search", handlers.SearchBySize)

		api.GET("/suppliers", handlers.ListSuppliers)
		api.POST("/suppliers", handlers.CreateSupplier)
		api.GET("/suppliers/:id", handlers.GetSupplier)
		api.PUT("/suppliers/:id", handlers.UpdateSupplier)
		api.DELETE("/suppliers/:id", handlers.DeleteSupplier)

		api.GET("/margins", handlers.ListMargins)
		api.POST("/margins", handlers.CreateMargin)
		api.PUT("/margins/:id", handlers.UpdateMargin)
		api.DELETE("/margins/:id", handlers.DeleteMargin)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

// handleInterruptedRuns marks runs left 'running' by a previous process as
// failed so their pollers are not stuck forever.
func handleInterruptedRuns(ctx context.Context, logger *zerolog.Logger) error {
	pool := database.Pool()

	tag, err := pool.Exec(ctx, `
		UPDATE ingestion_runs
		SET status = 'failed',
		    message = 'Service restarted during processing',
		    completed_at = NOW()
		WHERE status = 'running'
	`)
	if err != nil {
		return fmt.Errorf("failed to mark interrupted runs: %w", err)
	}

	if n := tag.RowsAffected(); n > 0 {
		logger.Info().Int64("count", n).Msg("Marked interrupted runs as failed")
	}
	return nil
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "tyre-service").Logger()
	return &logger
}

func setupMiddleware(router *gin.Engine, logger *zerolog.Logger) {
	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	})
}
