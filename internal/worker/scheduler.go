// Package worker schedules background scoring runs: a fixed interval
// ticker, plus an optional Pub/Sub trigger for on-demand runs.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/airscore/airscore/internal/reading"
	"github.com/airscore/airscore/internal/score"
)

// RunTrigger starts a scoring run. *engine.Engine satisfies it.
type RunTrigger interface {
	Run(ctx context.Context) (*score.RunSummary, error)
}

// Notifier delivers a completed run summary. *notify.Webhook satisfies it.
type Notifier interface {
	RunCompleted(ctx context.Context, run score.RunSummary) error
}

// SchedulerConfig holds configuration for the run scheduler.
type SchedulerConfig struct {
	Engine RunTrigger
	Logger zerolog.Logger

	// Interval between scheduled runs. Default: 15 minutes.
	Interval time.Duration

	// Notifier receives completed run summaries. Optional.
	Notifier Notifier

	// Clock abstracts time for tests. Defaults to the real clock.
	Clock clockwork.Clock
}

// Scheduler runs the scoring engine on a fixed interval. The first run
// starts immediately; subsequent runs follow the ticker. A run that
// fails is logged and the schedule continues.
type Scheduler struct {
	engine   RunTrigger
	logger   zerolog.Logger
	interval time.Duration
	notifier Notifier
	clock    clockwork.Clock
}

// NewScheduler creates a new run scheduler.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		engine:   cfg.Engine,
		logger:   cfg.Logger,
		interval: interval,
		notifier: cfg.Notifier,
		clock:    clock,
	}
}

// Run executes scheduled scoring runs until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.interval).
		Msg("starting run scheduler")

	s.runOnce(ctx)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("run scheduler stopped")
			return ctx.Err()
		case <-ticker.Chan():
			s.runOnce(ctx)
		}
	}
}

// RunNow executes one run outside the schedule, for Pub/Sub triggers.
func (s *Scheduler) RunNow(ctx context.Context) error {
	return s.runOnce(ctx)
}

func (s *Scheduler) runOnce(ctx context.Context) error {
	run, err := s.engine.Run(ctx)
	if err != nil {
		// An empty wide table is expected before the first ingest.
		if errors.Is(err, reading.ErrNoReadings) {
			s.logger.Warn().Msg("no station readings available, skipping run")
			return err
		}
		s.logger.Error().Err(err).Msg("scheduled scoring run failed")
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.RunCompleted(ctx, *run); err != nil {
			s.logger.Warn().
				Err(err).
				Str("run_id", run.RunID).
				Msg("run webhook delivery failed")
		}
	}
	return nil
}
