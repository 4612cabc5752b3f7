// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
// The API server and the scorer share one config; each reads the fields
// it needs.
type Config struct {
	HTTPAddr        string
	Environment     string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Scoring engine.
	ScoreInterval    time.Duration
	ScoreConcurrency int

	// Breakpoint table cache.
	BreakpointCacheTTL time.Duration

	// Admin endpoint auth.
	AdminSigningKey string

	// OpenTelemetry.
	OTELEnabled  bool
	OTLPEndpoint string

	// Pub/Sub run trigger (scorer only). Enabled when ProjectID is set.
	PubSubProjectID    string
	PubSubSubscription string

	// Run completion webhook (scorer only). Enabled when URL is set.
	WebhookURL     string
	WebhookTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	scoreInterval, err := parseDuration("SCORE_INTERVAL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parseDuration("BREAKPOINT_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	webhookTimeout, err := parseDuration("WEBHOOK_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	concurrency, err := parseInt("SCORE_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        ":" + envOrDefault("APP_PORT", "8080"),
		Environment:     envOrDefault("APP_ENV", "development"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		ShutdownTimeout: shutdownTimeout,

		ScoreInterval:    scoreInterval,
		ScoreConcurrency: concurrency,

		BreakpointCacheTTL: cacheTTL,

		AdminSigningKey: os.Getenv("ADMIN_SIGNING_KEY"),

		OTELEnabled:  os.Getenv("OTEL_ENABLED") == "true",
		OTLPEndpoint: envOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),

		PubSubProjectID:    os.Getenv("PUBSUB_PROJECT_ID"),
		PubSubSubscription: envOrDefault("PUBSUB_SUBSCRIPTION", "scoring-runs"),

		WebhookURL:     os.Getenv("RUN_WEBHOOK_URL"),
		WebhookTimeout: webhookTimeout,
	}

	if cfg.ScoreInterval <= 0 {
		return nil, errors.New("SCORE_INTERVAL must be positive")
	}
	if cfg.ScoreConcurrency <= 0 {
		return nil, errors.New("SCORE_CONCURRENCY must be positive")
	}

	return cfg, nil
}

// PubSubEnabled reports whether the Pub/Sub run trigger is configured.
func (c *Config) PubSubEnabled() bool {
	return c.PubSubProjectID != ""
}

// WebhookEnabled reports whether the run completion webhook is configured.
func (c *Config) WebhookEnabled() bool {
	return c.WebhookURL != ""
}

func envOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func parseDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseInt(key string, defaultValue int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
