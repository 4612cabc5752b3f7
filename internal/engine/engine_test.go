package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airscore/airscore/internal/aqi"
	"github.com/airscore/airscore/internal/breakpoints"
	"github.com/airscore/airscore/internal/engine"
	"github.com/airscore/airscore/internal/observability"
	"github.com/airscore/airscore/internal/reading"
	"github.com/airscore/airscore/internal/score"
)

func conc(v float64) *float64 {
	return &v
}

func newTestEngine(t *testing.T, readings reading.Repository, scores score.Repository) *engine.Engine {
	t.Helper()
	return engine.New(engine.Config{
		Readings: readings,
		Scores:   scores,
		Breakpoints: breakpoints.NewService(breakpoints.ServiceConfig{
			Repository: breakpoints.NewInMemoryRepository(),
			Logger:     zerolog.Nop(),
		}),
		Logger:  zerolog.Nop(),
		Metrics: observability.NewMetricsForTesting(),
		Clock:   clockwork.NewFakeClock(),
	})
}

func TestEngine_Run_ScoresAndStores(t *testing.T) {
	now := time.Now()
	readings := reading.NewInMemoryRepository(
		aqi.StationReading{
			StationID: "IN-DL-001", Locality: "Delhi", State: "Delhi", ObservedAt: now,
			Concentrations: map[aqi.Pollutant]*float64{
				aqi.PollutantPM25: conc(45),
				aqi.PollutantCO:   conc(18.7),
			},
		},
		aqi.StationReading{
			StationID: "IN-MH-002", Locality: "Mumbai", State: "Maharashtra", ObservedAt: now,
			Concentrations: map[aqi.Pollutant]*float64{
				aqi.PollutantPM25: nil,
			},
		},
	)
	scores := score.NewInMemoryRepository()
	eng := newTestEngine(t, readings, scores)

	run, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.NotEmpty(t, run.RunID)
	assert.Equal(t, 1, run.StationsScored)
	assert.Equal(t, 1, run.StationsUnknown)

	stored, err := scores.List(context.Background(), score.ListFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 2)

	delhi, err := scores.Get(context.Background(), "IN-DL-001")
	require.NoError(t, err)
	require.NotNil(t, delhi.OverallAQI)
	assert.InDelta(t, 310.0, *delhi.OverallAQI, 1e-9)
	assert.Equal(t, aqi.CategoryVeryPoor, delhi.Category)

	mumbai, err := scores.Get(context.Background(), "IN-MH-002")
	require.NoError(t, err)
	assert.Nil(t, mumbai.OverallAQI)
	assert.Equal(t, aqi.CategoryUnknown, mumbai.Category)

	latest, err := scores.LatestRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, run.RunID, latest.RunID)
}

func TestEngine_Run_NoReadings(t *testing.T) {
	eng := newTestEngine(t, reading.NewInMemoryRepository(), score.NewInMemoryRepository())

	_, err := eng.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, reading.ErrNoReadings)
}

type failingScoreRepo struct {
	score.Repository
}

func (f *failingScoreRepo) ReplaceAll(context.Context, score.RunSummary, []aqi.StationScore) error {
	return errors.New("disk full")
}

func TestEngine_Run_StoreFailureSurfaces(t *testing.T) {
	readings := reading.NewInMemoryRepository(aqi.StationReading{
		StationID:      "IN-DL-001",
		Concentrations: map[aqi.Pollutant]*float64{aqi.PollutantPM25: conc(10)},
	})
	eng := newTestEngine(t, readings, &failingScoreRepo{score.NewInMemoryRepository()})

	_, err := eng.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store station scores")
}

func TestEngine_Run_FreshSnapshotEachRun(t *testing.T) {
	readings := reading.NewInMemoryRepository(aqi.StationReading{
		StationID:      "IN-DL-001",
		Locality:       "Delhi",
		Concentrations: map[aqi.Pollutant]*float64{aqi.PollutantPM25: conc(45)},
	})
	scores := score.NewInMemoryRepository()
	eng := newTestEngine(t, readings, scores)

	first, err := eng.Run(context.Background())
	require.NoError(t, err)

	// A second run replaces the snapshot rather than appending to it.
	readings.SetReadings([]aqi.StationReading{{
		StationID:      "IN-DL-002",
		Locality:       "Delhi",
		Concentrations: map[aqi.Pollutant]*float64{aqi.PollutantPM25: conc(100)},
	}})

	second, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)

	stored, err := scores.List(context.Background(), score.ListFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "IN-DL-002", stored[0].StationID)
}
