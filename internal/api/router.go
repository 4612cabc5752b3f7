// Package api provides the HTTP API for AirScore.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/airscore/airscore/internal/api/handler"
	"github.com/airscore/airscore/internal/api/middleware"
	"github.com/airscore/airscore/internal/auth"
	"github.com/airscore/airscore/internal/breakpoints"
	"github.com/airscore/airscore/internal/score"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	// JWTService validates admin bearer tokens. When nil the admin
	// surface is mounted but every request is rejected as unauthorized.
	JWTService *auth.JWTService

	Scores      score.Repository
	Breakpoints *breakpoints.Service

	// Engine triggers scoring runs for POST /v1/admin/runs. May be nil
	// on instances that only serve reads.
	Engine handler.RunTrigger

	// DB backs the readiness check. May be nil.
	DB handler.Pinger
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "airscore-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireTLS)
	r.Use(middleware.ContentTypeJSON)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB, cfg.Scores)
	scoresHandler := handler.NewScoresHandler(cfg.Scores)
	localitiesHandler := handler.NewLocalitiesHandler(cfg.Scores)
	metadataHandler := handler.NewMetadataHandler(cfg.Breakpoints)
	breakpointsHandler := handler.NewBreakpointsHandler(cfg.Breakpoints)
	runsHandler := handler.NewRunsHandler(cfg.Engine, cfg.Scores)

	adminAuth := middleware.AdminAuth(cfg.JWTService)

	adminRateLimit := middleware.RateLimitByIP(middleware.AdminRateLimit)
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.StatusCheck)
		})

		// Score endpoints (public) - standard rate limiting
		r.Route("/stations", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/scores", scoresHandler.ListScores)
			r.Get("/{stationId}/score", scoresHandler.GetScore)
		})

		r.With(standardRateLimit).Get("/localities", localitiesHandler.ListLocalities)

		// Metadata endpoints (public) - standard rate limiting
		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/breakpoints", metadataHandler.GetBreakpoints)
			r.Get("/enums", metadataHandler.GetEnums)
		})

		// Admin endpoints (authenticated) - for internal operations
		r.Route("/admin", func(r chi.Router) {
			r.Use(adminAuth)
			r.Use(adminRateLimit)
			r.Use(middleware.RequireJSON)

			r.Route("/breakpoints", func(r chi.Router) {
				r.Put("/", breakpointsHandler.ReplaceBreakpoints)
				r.Post("/invalidate", breakpointsHandler.InvalidateCache)
			})

			r.Route("/runs", func(r chi.Router) {
				r.Post("/", runsHandler.TriggerRun)
				r.Get("/latest", runsHandler.LatestRun)
			})
		})
	})

	return r
}
