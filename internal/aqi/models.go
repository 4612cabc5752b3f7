// Package aqi implements the AQI scoring engine: breakpoint-table
// sub-index interpolation, per-station scoring, severity categorization,
// and locality aggregation.
package aqi

import (
	"errors"
	"time"
)

// Engine errors.
var (
	ErrInvalidTable     = errors.New("invalid breakpoint table")
	ErrUnknownPollutant = errors.New("unknown pollutant")
)

// Pollutant identifies a measured pollutant species.
type Pollutant string

const (
	PollutantPM25 Pollutant = "PM25"
	PollutantPM10 Pollutant = "PM10"
	PollutantSO2  Pollutant = "SO2"
	PollutantNO2  Pollutant = "NO2"
	PollutantCO   Pollutant = "CO"
	PollutantO3   Pollutant = "O3"
	PollutantNH3  Pollutant = "NH3"
)

// Category is the severity band assigned to an overall AQI value.
type Category string

const (
	CategoryGood         Category = "GOOD"
	CategorySatisfactory Category = "SATISFACTORY"
	CategoryModerate     Category = "MODERATE"
	CategoryPoor         Category = "POOR"
	CategoryVeryPoor     Category = "VERY_POOR"
	CategorySevere       Category = "SEVERE"
	CategoryUnknown      Category = "UNKNOWN"
)

// StationReading is one row of the upstream-cleansed wide table: a single
// station snapshot with one nullable concentration per pollutant. A nil
// concentration means the pollutant was not measured. It must propagate
// as "not evaluated", never as zero.
type StationReading struct {
	StationID  string
	Name       string
	Locality   string
	State      string
	Lat        float64
	Lon        float64
	ObservedAt time.Time

	// Concentrations maps pollutant to measured concentration.
	// Absent or nil entries are unmeasured.
	Concentrations map[Pollutant]*float64
}

// SubIndex is the AQI contribution of a single pollutant at a station.
type SubIndex struct {
	Pollutant Pollutant
	Value     float64

	// Clamped is set when the concentration fell outside the configured
	// breakpoints and the value was clamped to the nearest index bound.
	Clamped bool
}

// StationScore is the scored output row for one station. OverallAQI and
// DominantPollutant are nil when the station had no usable measurements;
// such rows carry CategoryUnknown and are excluded from ranking.
type StationScore struct {
	StationID  string
	Name       string
	Locality   string
	State      string
	Lat        float64
	Lon        float64
	ObservedAt time.Time

	OverallAQI        *float64
	DominantPollutant *Pollutant
	Category          Category

	// SubIndices holds the per-pollutant sub-indices that were evaluated.
	SubIndices []SubIndex
}

// LocalityAggregate is a derived group-by view over scored stations.
// Only stations with a non-nil OverallAQI contribute to the mean and the
// count, so StationCount can be lower than the raw station count for the
// locality.
type LocalityAggregate struct {
	Locality     string
	State        string
	MeanAQI      float64
	StationCount int
}
