// Package main provides the entrypoint for the AirScore API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/airscore/airscore/internal/api"
	"github.com/airscore/airscore/internal/api/middleware"
	"github.com/airscore/airscore/internal/auth"
	"github.com/airscore/airscore/internal/breakpoints"
	"github.com/airscore/airscore/internal/config"
	"github.com/airscore/airscore/internal/database"
	"github.com/airscore/airscore/internal/engine"
	"github.com/airscore/airscore/internal/observability"
	"github.com/airscore/airscore/internal/reading"
	"github.com/airscore/airscore/internal/score"
	"github.com/airscore/airscore/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "airscore-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	log.Info().
		Str("build_time", BuildTime).
		Str("env", cfg.Environment).
		Msg("starting AirScore API")

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OTELEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize HTTP metrics
	httpMetrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.ConnectWithRetry(ctx, dbConfig, 30*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Initialize admin JWT service
	if cfg.AdminSigningKey == "" {
		cfg.AdminSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default admin signing key - not secure for production")
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: cfg.AdminSigningKey,
	})

	// Initialize breakpoint table service
	bpsService := breakpoints.NewService(breakpoints.ServiceConfig{
		Repository: breakpoints.NewPostgresRepository(pool),
		Logger:     log,
		CacheTTL:   cfg.BreakpointCacheTTL,
	})
	log.Info().Msg("breakpoint table service initialized")

	// Initialize repositories
	scoreRepo := score.NewPostgresRepository(pool)
	readingRepo := reading.NewPostgresRepository(pool)

	// The API hosts an engine too, so admins can trigger ad-hoc runs.
	eng := engine.New(engine.Config{
		Readings:    readingRepo,
		Scores:      scoreRepo,
		Breakpoints: bpsService,
		Logger:      log,
		Metrics:     observability.NewMetrics(),
		Concurrency: cfg.ScoreConcurrency,
	})
	log.Info().Msg("scoring engine initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     httpMetrics,
		JWTService:  jwtService,
		Scores:      scoreRepo,
		Breakpoints: bpsService,
		Engine:      eng,
		DB:          pool,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
