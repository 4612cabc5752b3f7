// Package engine orchestrates scoring runs: load the wide station table,
// score it, and persist the result snapshot.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/airscore/airscore/internal/aqi"
	"github.com/airscore/airscore/internal/breakpoints"
	"github.com/airscore/airscore/internal/observability"
	"github.com/airscore/airscore/internal/reading"
	"github.com/airscore/airscore/internal/score"
)

// Config holds configuration for the scoring engine.
type Config struct {
	Readings    reading.Repository
	Scores      score.Repository
	Breakpoints *breakpoints.Service
	Logger      zerolog.Logger
	Metrics     *observability.Metrics

	// Concurrency is the number of parallel scoring workers. Default: 4.
	Concurrency int

	// Clock abstracts time for tests. Defaults to the real clock.
	Clock clockwork.Clock
}

// Engine runs batch scoring. It holds no per-run state of its own; every
// run is a fresh load-score-store cycle over the latest snapshot.
type Engine struct {
	readings    reading.Repository
	scores      score.Repository
	bps         *breakpoints.Service
	logger      zerolog.Logger
	metrics     *observability.Metrics
	concurrency int
	clock       clockwork.Clock

	// runMu serializes runs; concurrent triggers collapse into waiting.
	runMu sync.Mutex
}

// New creates a new Engine.
func New(cfg Config) *Engine {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{
		readings:    cfg.Readings,
		scores:      cfg.Scores,
		bps:         cfg.Breakpoints,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		concurrency: concurrency,
		clock:       clock,
	}
}

// Run executes one scoring run and returns its summary. Per-row
// conditions degrade to null/Unknown rows; only load, table, and store
// failures surface as errors.
func (e *Engine) Run(ctx context.Context) (*score.RunSummary, error) {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	e.metrics.EngineRunning.Set(1)
	defer e.metrics.EngineRunning.Set(0)

	startedAt := e.clock.Now()
	runID := uuid.New().String()
	logger := e.logger.With().Str("run_id", runID).Logger()

	readings, err := e.readings.ListLatest(ctx)
	if err != nil {
		e.metrics.RunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load station readings: %w", err)
	}

	scorer := aqi.NewScorer(aqi.ScorerConfig{
		Table:       e.bps.Table(ctx),
		Concurrency: e.concurrency,
		Logger:      logger,
	})

	logger.Info().
		Int("stations", len(readings)).
		Int("concurrency", e.concurrency).
		Msg("starting scoring run")

	scores, stats := scorer.ScoreAll(ctx, readings)

	run := score.RunSummary{
		RunID:           runID,
		StartedAt:       startedAt,
		Duration:        e.clock.Since(startedAt),
		StationsScored:  stats.StationsScored,
		StationsUnknown: stats.StationsUnknown,
		Clamped:         stats.Clamped,
	}

	if err := e.scores.ReplaceAll(ctx, run, scores); err != nil {
		e.metrics.RunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("store station scores: %w", err)
	}

	e.metrics.RunsTotal.WithLabelValues("success").Inc()
	e.metrics.RunDuration.Observe(run.Duration.Seconds())
	e.metrics.StationsScored.Add(float64(stats.StationsScored))
	e.metrics.StationsUnknown.Add(float64(stats.StationsUnknown))
	e.metrics.Clamped.Add(float64(stats.Clamped))
	for p, n := range stats.UnknownColumns {
		e.metrics.UnknownColumns.WithLabelValues(string(p)).Add(float64(n))
	}

	logger.Info().
		Dur("duration", run.Duration).
		Int("scored", run.StationsScored).
		Int("unknown", run.StationsUnknown).
		Int("clamped", run.Clamped).
		Msg("scoring run completed")

	return &run, nil
}
