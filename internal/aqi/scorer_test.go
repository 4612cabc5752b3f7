package aqi_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airscore/airscore/internal/aqi"
)

func conc(v float64) *float64 {
	return &v
}

func newTestScorer(t *testing.T) *aqi.Scorer {
	t.Helper()
	return aqi.NewScorer(aqi.ScorerConfig{
		Table:  aqi.DefaultTable(),
		Logger: zerolog.Nop(),
	})
}

func TestScoreStation_WorstPollutantWins(t *testing.T) {
	scorer := newTestScorer(t)

	// PM2.5 sub-index 75, CO sub-index 310: CO drives the overall score.
	score, unknown := scorer.ScoreStation(aqi.StationReading{
		StationID: "IN-DL-001",
		Locality:  "Delhi",
		Concentrations: map[aqi.Pollutant]*float64{
			aqi.PollutantPM25: conc(45),
			aqi.PollutantCO:   conc(18.7),
		},
	})

	require.Empty(t, unknown)
	require.NotNil(t, score.OverallAQI)
	assert.InDelta(t, 310.0, *score.OverallAQI, 1e-9)
	require.NotNil(t, score.DominantPollutant)
	assert.Equal(t, aqi.PollutantCO, *score.DominantPollutant)
	assert.Equal(t, aqi.CategoryVeryPoor, score.Category)
	assert.Len(t, score.SubIndices, 2)
}

func TestScoreStation_NilConcentrationsNotEvaluated(t *testing.T) {
	scorer := newTestScorer(t)

	score, _ := scorer.ScoreStation(aqi.StationReading{
		StationID: "IN-MH-002",
		Concentrations: map[aqi.Pollutant]*float64{
			aqi.PollutantPM25: conc(45),
			aqi.PollutantPM10: nil, // measured column, missing value
		},
	})

	require.NotNil(t, score.OverallAQI)
	assert.InDelta(t, 75.0, *score.OverallAQI, 1e-9)
	assert.Len(t, score.SubIndices, 1, "nil concentration must not contribute")
}

func TestScoreStation_AllNullYieldsUnknown(t *testing.T) {
	scorer := newTestScorer(t)

	score, _ := scorer.ScoreStation(aqi.StationReading{
		StationID: "IN-KA-003",
		Concentrations: map[aqi.Pollutant]*float64{
			aqi.PollutantPM25: nil,
			aqi.PollutantNO2:  nil,
		},
	})

	assert.Nil(t, score.OverallAQI)
	assert.Nil(t, score.DominantPollutant)
	assert.Equal(t, aqi.CategoryUnknown, score.Category)
}

func TestScoreStation_TieBreaksByCanonicalOrder(t *testing.T) {
	table, err := aqi.NewTable([]aqi.BreakpointRange{
		{Pollutant: aqi.PollutantPM25, ConcLow: 0, ConcHigh: 100, IndexLow: 0, IndexHigh: 100},
		{Pollutant: aqi.PollutantNO2, ConcLow: 0, ConcHigh: 100, IndexLow: 0, IndexHigh: 100},
	})
	require.NoError(t, err)
	scorer := aqi.NewScorer(aqi.ScorerConfig{Table: table, Logger: zerolog.Nop()})

	// Both pollutants produce an identical sub-index of 40.
	score, _ := scorer.ScoreStation(aqi.StationReading{
		StationID: "IN-TN-004",
		Concentrations: map[aqi.Pollutant]*float64{
			aqi.PollutantNO2:  conc(40),
			aqi.PollutantPM25: conc(40),
		},
	})

	require.NotNil(t, score.DominantPollutant)
	assert.Equal(t, aqi.PollutantPM25, *score.DominantPollutant,
		"tie must resolve to the first pollutant in table declaration order")
}

func TestScoreStation_UnknownColumnSkipped(t *testing.T) {
	scorer := newTestScorer(t)

	score, unknown := scorer.ScoreStation(aqi.StationReading{
		StationID: "IN-WB-005",
		Concentrations: map[aqi.Pollutant]*float64{
			aqi.PollutantPM25:  conc(45),
			aqi.Pollutant("PB"): conc(0.8),
		},
	})

	assert.Equal(t, []aqi.Pollutant{"PB"}, unknown)
	require.NotNil(t, score.OverallAQI)
	assert.InDelta(t, 75.0, *score.OverallAQI, 1e-9)
}

func TestScoreAll_PreservesOrderAndCounts(t *testing.T) {
	scorer := aqi.NewScorer(aqi.ScorerConfig{
		Table:       aqi.DefaultTable(),
		Concurrency: 3,
		Logger:      zerolog.Nop(),
	})

	now := time.Now()
	readings := []aqi.StationReading{
		{StationID: "s1", Locality: "Delhi", ObservedAt: now,
			Concentrations: map[aqi.Pollutant]*float64{aqi.PollutantPM25: conc(45)}},
		{StationID: "s2", Locality: "Delhi", ObservedAt: now,
			Concentrations: map[aqi.Pollutant]*float64{aqi.PollutantPM25: nil}},
		{StationID: "s3", Locality: "Mumbai", ObservedAt: now,
			Concentrations: map[aqi.Pollutant]*float64{aqi.PollutantPM10: conc(20000)}},
		{StationID: "s4", Locality: "Mumbai", ObservedAt: now,
			Concentrations: map[aqi.Pollutant]*float64{aqi.Pollutant("PB"): conc(1)}},
	}

	scores, stats := scorer.ScoreAll(context.Background(), readings)

	require.Len(t, scores, 4)
	for i, want := range []string{"s1", "s2", "s3", "s4"} {
		assert.Equal(t, want, scores[i].StationID)
	}

	assert.Equal(t, 2, stats.StationsScored)
	assert.Equal(t, 2, stats.StationsUnknown)
	assert.Equal(t, 1, stats.Clamped)
	assert.Equal(t, map[aqi.Pollutant]int{"PB": 1}, stats.UnknownColumns)

	// s3 clamps to the top of the PM10 scale.
	require.NotNil(t, scores[2].OverallAQI)
	assert.Equal(t, 500.0, *scores[2].OverallAQI)
	assert.Equal(t, aqi.CategorySevere, scores[2].Category)
}

func TestScoreAll_Empty(t *testing.T) {
	scorer := newTestScorer(t)

	scores, stats := scorer.ScoreAll(context.Background(), nil)
	assert.Empty(t, scores)
	assert.Equal(t, 0, stats.StationsScored)
}

func TestScoreAll_ManyStationsParallel(t *testing.T) {
	scorer := aqi.NewScorer(aqi.ScorerConfig{
		Table:       aqi.DefaultTable(),
		Concurrency: 8,
		Logger:      zerolog.Nop(),
	})

	readings := make([]aqi.StationReading, 500)
	for i := range readings {
		readings[i] = aqi.StationReading{
			StationID: "station",
			Concentrations: map[aqi.Pollutant]*float64{
				aqi.PollutantPM25: conc(float64(i % 120)),
			},
		}
	}

	scores, stats := scorer.ScoreAll(context.Background(), readings)
	require.Len(t, scores, 500)
	assert.Equal(t, 500, stats.StationsScored)
}

func TestCategorize_Bands(t *testing.T) {
	tests := []struct {
		value float64
		want  aqi.Category
	}{
		{0, aqi.CategoryGood},
		{49.999, aqi.CategoryGood},
		{50, aqi.CategorySatisfactory},
		{99.999, aqi.CategorySatisfactory},
		{100, aqi.CategoryModerate},
		{200, aqi.CategoryPoor},
		{300, aqi.CategoryVeryPoor},
		{399.999, aqi.CategoryVeryPoor},
		{400, aqi.CategorySevere},
		{500, aqi.CategorySevere},
		{501, aqi.CategorySevere},
		{2000, aqi.CategorySevere},
	}

	for _, tt := range tests {
		v := tt.value
		assert.Equal(t, tt.want, aqi.Categorize(&v), "value %g", tt.value)
	}
}

func TestCategorize_Nil(t *testing.T) {
	assert.Equal(t, aqi.CategoryUnknown, aqi.Categorize(nil))
}
