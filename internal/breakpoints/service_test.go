package breakpoints_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airscore/airscore/internal/aqi"
	"github.com/airscore/airscore/internal/breakpoints"
)

func TestService_FallsBackToBuiltInTable(t *testing.T) {
	svc := breakpoints.NewService(breakpoints.ServiceConfig{
		Repository: breakpoints.NewInMemoryRepository(),
		Logger:     zerolog.Nop(),
	})

	table := svc.Table(context.Background())
	require.NotNil(t, table)
	assert.True(t, table.Contains(aqi.PollutantPM25))
	assert.Len(t, table.Pollutants(), 7)
}

func TestService_ReplaceAndReload(t *testing.T) {
	repo := breakpoints.NewInMemoryRepository()
	svc := breakpoints.NewService(breakpoints.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
	})

	custom := []aqi.BreakpointRange{
		{Pollutant: aqi.PollutantPM25, ConcLow: 0, ConcHigh: 12, IndexLow: 0, IndexHigh: 50},
		{Pollutant: aqi.PollutantPM25, ConcLow: 12, ConcHigh: 35.4, IndexLow: 50, IndexHigh: 100},
	}
	require.NoError(t, svc.Replace(context.Background(), custom))

	table := svc.Table(context.Background())
	rs, err := table.RangesFor(aqi.PollutantPM25)
	require.NoError(t, err)
	assert.Len(t, rs, 2)
	assert.Equal(t, 35.4, rs[1].ConcHigh)

	// The stored configuration survives a cache invalidation.
	svc.InvalidateCache()
	table = svc.Table(context.Background())
	assert.False(t, table.Contains(aqi.PollutantCO))
}

func TestService_ReplaceRejectsInvalidTable(t *testing.T) {
	repo := breakpoints.NewInMemoryRepository()
	svc := breakpoints.NewService(breakpoints.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
	})

	err := svc.Replace(context.Background(), []aqi.BreakpointRange{
		{Pollutant: aqi.PollutantPM25, ConcLow: 0, ConcHigh: 30, IndexLow: 0, IndexHigh: 50},
		{Pollutant: aqi.PollutantPM25, ConcLow: 40, ConcHigh: 60, IndexLow: 50, IndexHigh: 100},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, aqi.ErrInvalidTable)

	// Nothing was written.
	_, err = repo.GetRanges(context.Background())
	assert.ErrorIs(t, err, breakpoints.ErrNoRanges)
}

func TestService_InvalidStoredRangesFallBack(t *testing.T) {
	repo := breakpoints.NewInMemoryRepository()
	// Write a broken range list directly, bypassing service validation.
	require.NoError(t, repo.ReplaceRanges(context.Background(), []aqi.BreakpointRange{
		{Pollutant: aqi.PollutantSO2, ConcLow: 40, ConcHigh: 0, IndexLow: 0, IndexHigh: 50},
	}))

	svc := breakpoints.NewService(breakpoints.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
	})

	table := svc.Table(context.Background())
	// The broken config is rejected at load and the built-in table served.
	assert.Len(t, table.Pollutants(), 7)
}

func TestService_CachesTable(t *testing.T) {
	repo := breakpoints.NewInMemoryRepository()
	svc := breakpoints.NewService(breakpoints.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   time.Hour,
	})

	first := svc.Table(context.Background())

	// A direct repository write is invisible until the cache expires or
	// is invalidated.
	require.NoError(t, repo.ReplaceRanges(context.Background(), []aqi.BreakpointRange{
		{Pollutant: aqi.PollutantCO, ConcLow: 0, ConcHigh: 1, IndexLow: 0, IndexHigh: 50},
	}))
	assert.Equal(t, first.Pollutants(), svc.Table(context.Background()).Pollutants())

	svc.InvalidateCache()
	assert.Equal(t, []aqi.Pollutant{aqi.PollutantCO}, svc.Table(context.Background()).Pollutants())
}
