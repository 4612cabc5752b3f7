package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airscore/airscore/internal/reading"
	"github.com/airscore/airscore/internal/score"
	"github.com/airscore/airscore/internal/worker"
)

type countingEngine struct {
	runs atomic.Int32
	err  error
}

func (e *countingEngine) Run(context.Context) (*score.RunSummary, error) {
	n := e.runs.Add(1)
	if e.err != nil {
		return nil, e.err
	}
	return &score.RunSummary{RunID: "run_" + string(rune('0'+n))}, nil
}

type recordingNotifier struct {
	runs atomic.Int32
}

func (n *recordingNotifier) RunCompleted(context.Context, score.RunSummary) error {
	n.runs.Add(1)
	return nil
}

func TestScheduler_RunsOnInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	eng := &countingEngine{}
	notifier := &recordingNotifier{}

	s := worker.NewScheduler(worker.SchedulerConfig{
		Engine:   eng,
		Logger:   zerolog.Nop(),
		Interval: time.Minute,
		Notifier: notifier,
		Clock:    clock,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// First run fires immediately, before the ticker is armed.
	clock.BlockUntil(1)
	assert.Equal(t, int32(1), eng.runs.Load())

	clock.Advance(time.Minute)
	require.Eventually(t, func() bool {
		return eng.runs.Load() == 2
	}, time.Second, time.Millisecond)

	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(2), notifier.runs.Load())
}

func TestScheduler_RunNow(t *testing.T) {
	eng := &countingEngine{}
	s := worker.NewScheduler(worker.SchedulerConfig{
		Engine: eng,
		Logger: zerolog.Nop(),
	})

	require.NoError(t, s.RunNow(context.Background()))
	assert.Equal(t, int32(1), eng.runs.Load())
}

func TestScheduler_RunNow_PropagatesFailure(t *testing.T) {
	eng := &countingEngine{err: reading.ErrNoReadings}
	s := worker.NewScheduler(worker.SchedulerConfig{
		Engine: eng,
		Logger: zerolog.Nop(),
	})

	err := s.RunNow(context.Background())
	assert.ErrorIs(t, err, reading.ErrNoReadings)
}

func TestScheduler_ContinuesAfterFailedRun(t *testing.T) {
	clock := clockwork.NewFakeClock()
	eng := &countingEngine{err: errors.New("load failed")}

	s := worker.NewScheduler(worker.SchedulerConfig{
		Engine:   eng,
		Logger:   zerolog.Nop(),
		Interval: time.Minute,
		Clock:    clock,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	clock.BlockUntil(1)
	clock.Advance(time.Minute)
	require.Eventually(t, func() bool {
		return eng.runs.Load() == 2
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}
