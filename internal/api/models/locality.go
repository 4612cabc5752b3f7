package models

import (
	"math"

	"github.com/airscore/airscore/internal/aqi"
)

// LocalityAggregate is the API view of a locality roll-up. MeanAQI is
// rounded to one decimal for presentation.
type LocalityAggregate struct {
	Locality     string  `json:"locality"`
	State        string  `json:"state,omitempty"`
	MeanAQI      float64 `json:"meanAqi"`
	StationCount int     `json:"stationCount"`
}

// LocalitiesResponse is the envelope for locality listings.
type LocalitiesResponse struct {
	RunID       string              `json:"runId,omitempty"`
	GeneratedAt *Timestamp          `json:"generatedAt,omitempty"`
	Localities  []LocalityAggregate `json:"localities"`
}

// NewLocalityAggregates converts locality roll-ups to their API
// representation.
func NewLocalityAggregates(aggs []aqi.LocalityAggregate) []LocalityAggregate {
	out := make([]LocalityAggregate, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, LocalityAggregate{
			Locality:     a.Locality,
			State:        a.State,
			MeanAQI:      math.Round(a.MeanAQI*10) / 10,
			StationCount: a.StationCount,
		})
	}
	return out
}
