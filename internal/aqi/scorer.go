package aqi

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// ScorerConfig holds configuration for the station scorer.
type ScorerConfig struct {
	// Table is the breakpoint table to score against. Required.
	Table *Table

	// Concurrency is the number of parallel scoring workers used by
	// ScoreAll. Default: 4.
	Concurrency int

	// Logger for per-batch warnings.
	Logger zerolog.Logger
}

// Scorer scores station readings against a breakpoint table. It is
// stateless between batches and safe for concurrent use; the table is the
// only shared resource and is read-only.
type Scorer struct {
	table       *Table
	concurrency int
	logger      zerolog.Logger
}

// NewScorer creates a new Scorer.
func NewScorer(cfg ScorerConfig) *Scorer {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Scorer{
		table:       cfg.Table,
		concurrency: concurrency,
		logger:      cfg.Logger,
	}
}

// Table returns the breakpoint table the scorer was built with.
func (s *Scorer) Table() *Table {
	return s.table
}

// Stats summarizes the per-row conditions absorbed during a batch.
type Stats struct {
	// StationsScored counts stations with a non-nil overall AQI.
	StationsScored int

	// StationsUnknown counts stations with no usable measurements.
	StationsUnknown int

	// Clamped counts sub-index computations whose concentration fell
	// outside the configured breakpoints.
	Clamped int

	// UnknownColumns counts skipped concentrations per pollutant that
	// has no configured breakpoint ranges.
	UnknownColumns map[Pollutant]int
}

// ScoreStation scores a single station row: sub-index per measured
// pollutant, overall AQI as the maximum, dominant pollutant as the
// canonical-order-first pollutant attaining it, severity category from the
// overall value. Unmeasured pollutants are skipped; pollutants absent from
// the table are reported through unknown. A row with no usable
// measurements yields nil AQI, nil dominant pollutant and CategoryUnknown.
func (s *Scorer) ScoreStation(r StationReading) (StationScore, []Pollutant) {
	score := StationScore{
		StationID:  r.StationID,
		Name:       r.Name,
		Locality:   r.Locality,
		State:      r.State,
		Lat:        r.Lat,
		Lon:        r.Lon,
		ObservedAt: r.ObservedAt,
		Category:   CategoryUnknown,
	}

	var unknown []Pollutant
	for p, conc := range r.Concentrations {
		if conc != nil && !s.table.Contains(p) {
			unknown = append(unknown, p)
		}
	}

	// Iterate in canonical table order so that ties on the maximum
	// sub-index resolve deterministically to the first declared pollutant.
	for _, p := range s.table.Pollutants() {
		conc, ok := r.Concentrations[p]
		if !ok || conc == nil {
			continue
		}

		value, clamped, err := s.table.SubIndexValue(p, *conc)
		if err != nil {
			continue
		}

		score.SubIndices = append(score.SubIndices, SubIndex{
			Pollutant: p,
			Value:     value,
			Clamped:   clamped,
		})

		if score.OverallAQI == nil || value > *score.OverallAQI {
			v, pollutant := value, p
			score.OverallAQI = &v
			score.DominantPollutant = &pollutant
		}
	}

	score.Category = Categorize(score.OverallAQI)
	return score, unknown
}

// ScoreAll scores every reading with a pool of workers. Row order is
// preserved in the output; rows never depend on each other, so no ordering
// or locking is needed beyond slot assignment by index. Per-row conditions
// degrade that row to null/Unknown and never abort the batch.
func (s *Scorer) ScoreAll(ctx context.Context, readings []StationReading) ([]StationScore, Stats) {
	scores := make([]StationScore, len(readings))
	stats := Stats{UnknownColumns: make(map[Pollutant]int)}

	type rowResult struct {
		index   int
		unknown []Pollutant
	}

	indexes := make(chan int, len(readings))
	results := make(chan rowResult, len(readings))

	var wg sync.WaitGroup
	for w := 0; w < s.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				select {
				case <-ctx.Done():
					return
				default:
				}
				score, unknown := s.ScoreStation(readings[i])
				scores[i] = score
				results <- rowResult{index: i, unknown: unknown}
			}
		}()
	}

	for i := range readings {
		indexes <- i
	}
	close(indexes)

	go func() {
		wg.Wait()
		close(results)
	}()

	for rr := range results {
		score := scores[rr.index]
		if score.OverallAQI != nil {
			stats.StationsScored++
		} else {
			stats.StationsUnknown++
		}
		for _, si := range score.SubIndices {
			if si.Clamped {
				stats.Clamped++
			}
		}
		for _, p := range rr.unknown {
			stats.UnknownColumns[p]++
		}
	}

	for p, n := range stats.UnknownColumns {
		s.logger.Warn().
			Str("pollutant", string(p)).
			Int("stations", n).
			Msg("pollutant column not in breakpoint table, skipped")
	}

	return scores, stats
}

// Category thresholds: inclusive lower bound, exclusive upper bound.
// Everything at or above the Severe floor is Severe. No band is
// extrapolated past 500.
var categoryBands = []struct {
	floor    float64
	category Category
}{
	{400, CategorySevere},
	{300, CategoryVeryPoor},
	{200, CategoryPoor},
	{100, CategoryModerate},
	{50, CategorySatisfactory},
	{0, CategoryGood},
}

// Categorize maps an overall AQI value to its severity band. A nil value
// (station not evaluated) maps to CategoryUnknown. Boundary values fall
// into the band whose lower bound equals the value: Categorize(50) is
// Satisfactory, not Good.
func Categorize(overall *float64) Category {
	if overall == nil {
		return CategoryUnknown
	}
	v := *overall
	for _, band := range categoryBands {
		if v >= band.floor {
			return band.category
		}
	}
	// Negative values cannot come out of a validated table; treat them
	// as the cleanest band rather than inventing one.
	return CategoryGood
}
