// Package main provides the entrypoint for the AirScore scoring worker.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/airscore/airscore/internal/breakpoints"
	"github.com/airscore/airscore/internal/config"
	"github.com/airscore/airscore/internal/database"
	"github.com/airscore/airscore/internal/engine"
	"github.com/airscore/airscore/internal/notify"
	"github.com/airscore/airscore/internal/observability"
	"github.com/airscore/airscore/internal/reading"
	"github.com/airscore/airscore/internal/score"
	"github.com/airscore/airscore/internal/telemetry"
	"github.com/airscore/airscore/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "airscore-scorer"

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
		Dur("interval", cfg.ScoreInterval).
		Msg("starting AirScore scorer")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.ConnectWithRetry(ctx, dbConfig, 30*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Wire the engine
	bpsService := breakpoints.NewService(breakpoints.ServiceConfig{
		Repository: breakpoints.NewPostgresRepository(pool),
		Logger:     log,
		CacheTTL:   cfg.BreakpointCacheTTL,
	})

	eng := engine.New(engine.Config{
		Readings:    reading.NewPostgresRepository(pool),
		Scores:      score.NewPostgresRepository(pool),
		Breakpoints: bpsService,
		Logger:      log,
		Metrics:     observability.NewMetrics(),
		Concurrency: cfg.ScoreConcurrency,
	})

	var notifier worker.Notifier
	if cfg.WebhookEnabled() {
		notifier = notify.NewWebhook(notify.WebhookConfig{
			URL:     cfg.WebhookURL,
			Timeout: cfg.WebhookTimeout,
			Logger:  log,
		})
		log.Info().Str("url", cfg.WebhookURL).Msg("run webhook enabled")
	}

	scheduler := worker.NewScheduler(worker.SchedulerConfig{
		Engine:   eng,
		Logger:   log,
		Interval: cfg.ScoreInterval,
		Notifier: notifier,
	})

	// Health and metrics server
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy","version":"` + Version + `"}`))
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Scheduled runs
	go func() {
		if err := scheduler.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("scheduler stopped unexpectedly")
		}
	}()

	// Optional Pub/Sub run trigger
	if cfg.PubSubEnabled() {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        cfg.PubSubProjectID,
			SubscriptionName: cfg.PubSubSubscription,
			Scheduler:        scheduler,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer handler.Close()

		go func() {
			if err := handler.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("pubsub handler stopped unexpectedly")
			}
		}()
		log.Info().
			Str("subscription", cfg.PubSubSubscription).
			Msg("pubsub run trigger enabled")
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down scorer")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("scorer stopped")
}
