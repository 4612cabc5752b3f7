package aqi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airscore/airscore/internal/aqi"
)

func TestSubIndexValue_Interpolation(t *testing.T) {
	table := aqi.DefaultTable()

	// The worked PM2.5 example: 50 + (100-50)/(60-30)*(45-30) = 75.
	v, clamped, err := table.SubIndexValue(aqi.PollutantPM25, 45)
	require.NoError(t, err)
	assert.False(t, clamped)
	assert.InDelta(t, 75.0, v, 1e-9)
}

func TestSubIndexValue_ExactBoundaries(t *testing.T) {
	table := aqi.DefaultTable()

	// Every breakpoint's lower bound must map exactly to its index lower
	// bound with no interpolation drift, for every pollutant.
	for _, p := range table.Pollutants() {
		rs, err := table.RangesFor(p)
		require.NoError(t, err)

		for _, r := range rs {
			v, clamped, err := table.SubIndexValue(p, r.ConcLow)
			require.NoError(t, err)
			assert.False(t, clamped)
			assert.Equal(t, r.IndexLow, v, "%s at %g", p, r.ConcLow)
		}
	}
}

func TestSubIndexValue_MonotonicWithinRange(t *testing.T) {
	table := aqi.DefaultTable()

	for _, p := range table.Pollutants() {
		rs, err := table.RangesFor(p)
		require.NoError(t, err)

		for _, r := range rs {
			prev := -1.0
			steps := 10
			for i := 0; i <= steps; i++ {
				conc := r.ConcLow + (r.ConcHigh-r.ConcLow)*float64(i)/float64(steps)
				v, _, err := table.SubIndexValue(p, conc)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, v, prev, "%s at %g", p, conc)
				prev = v
			}
		}
	}
}

func TestSubIndexValue_ClampsBelowFirstRange(t *testing.T) {
	table := aqi.DefaultTable()

	v, clamped, err := table.SubIndexValue(aqi.PollutantPM25, -3)
	require.NoError(t, err)
	assert.True(t, clamped)
	assert.Equal(t, 0.0, v)
}

func TestSubIndexValue_ClampsAboveLastRange(t *testing.T) {
	table := aqi.DefaultTable()

	v, clamped, err := table.SubIndexValue(aqi.PollutantPM25, 10000)
	require.NoError(t, err)
	assert.True(t, clamped)
	assert.Equal(t, 500.0, v)
}

func TestSubIndexValue_LastRangeOwnsUpperBound(t *testing.T) {
	table := aqi.DefaultTable()

	// PM2.5 top band ends at 500 µg/m³. Exactly 500 interpolates, not clamps.
	v, clamped, err := table.SubIndexValue(aqi.PollutantPM25, 500)
	require.NoError(t, err)
	assert.False(t, clamped)
	assert.Equal(t, 500.0, v)
}

func TestSubIndexValue_DegenerateRange(t *testing.T) {
	table, err := aqi.NewTable([]aqi.BreakpointRange{
		{Pollutant: aqi.PollutantCO, ConcLow: 0, ConcHigh: 0, IndexLow: 0, IndexHigh: 0},
		{Pollutant: aqi.PollutantCO, ConcLow: 0, ConcHigh: 1, IndexLow: 0, IndexHigh: 50},
	})
	require.NoError(t, err)

	// Single-point range must not divide by zero.
	v, _, err := table.SubIndexValue(aqi.PollutantCO, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestSubIndexValue_UnknownPollutant(t *testing.T) {
	table := aqi.DefaultTable()

	_, _, err := table.SubIndexValue(aqi.Pollutant("PB"), 12.0)
	assert.ErrorIs(t, err, aqi.ErrUnknownPollutant)
}

func TestSubIndexValue_RangeInteriorValues(t *testing.T) {
	table := aqi.DefaultTable()

	tests := []struct {
		name      string
		pollutant aqi.Pollutant
		conc      float64
		want      float64
	}{
		{"PM10 mid second band", aqi.PollutantPM10, 75, 75},
		{"CO steep band", aqi.PollutantCO, 6, 150},
		{"NO2 third band", aqi.PollutantNO2, 130, 150},
		{"O3 first band", aqi.PollutantO3, 25, 25},
		{"NH3 fourth band", aqi.PollutantNH3, 1000, 250},
		{"SO2 wide band", aqi.PollutantSO2, 230, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, clamped, err := table.SubIndexValue(tt.pollutant, tt.conc)
			require.NoError(t, err)
			assert.False(t, clamped)
			assert.InDelta(t, tt.want, v, 1e-9)
		})
	}
}
