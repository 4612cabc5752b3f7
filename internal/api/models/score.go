package models

import (
	"math"

	"github.com/airscore/airscore/internal/aqi"
)

// SubIndex is the API view of a per-pollutant sub-index.
type SubIndex struct {
	Pollutant string  `json:"pollutant"`
	Value     float64 `json:"value"`
	Clamped   bool    `json:"clamped,omitempty"`
}

// StationScore is the API view of one scored station. AQI is rounded to
// the nearest integer for presentation; sub-index values are unrounded.
// A null aqi means the station had no usable measurements.
type StationScore struct {
	StationID         string     `json:"stationId"`
	Name              string     `json:"name,omitempty"`
	Locality          string     `json:"locality,omitempty"`
	State             string     `json:"state,omitempty"`
	Lat               float64    `json:"lat,omitempty"`
	Lon               float64    `json:"lon,omitempty"`
	ObservedAt        *Timestamp `json:"observedAt,omitempty"`
	AQI               *int       `json:"aqi"`
	DominantPollutant *string    `json:"dominantPollutant"`
	Category          string     `json:"category"`
	SubIndices        []SubIndex `json:"subIndices"`
}

// ScoresResponse is the envelope for score listings, stamped with the run
// that produced the snapshot.
type ScoresResponse struct {
	RunID       string         `json:"runId,omitempty"`
	GeneratedAt *Timestamp     `json:"generatedAt,omitempty"`
	Stations    []StationScore `json:"stations"`
}

// NewStationScore converts a scored station to its API representation.
func NewStationScore(s aqi.StationScore) StationScore {
	out := StationScore{
		StationID:  s.StationID,
		Name:       s.Name,
		Locality:   s.Locality,
		State:      s.State,
		Lat:        s.Lat,
		Lon:        s.Lon,
		Category:   string(s.Category),
		SubIndices: make([]SubIndex, 0, len(s.SubIndices)),
	}

	if !s.ObservedAt.IsZero() {
		ts := Timestamp(s.ObservedAt)
		out.ObservedAt = &ts
	}
	if s.OverallAQI != nil {
		rounded := int(math.Round(*s.OverallAQI))
		out.AQI = &rounded
	}
	if s.DominantPollutant != nil {
		p := string(*s.DominantPollutant)
		out.DominantPollutant = &p
	}

	for _, si := range s.SubIndices {
		out.SubIndices = append(out.SubIndices, SubIndex{
			Pollutant: string(si.Pollutant),
			Value:     si.Value,
			Clamped:   si.Clamped,
		})
	}

	return out
}

// NewStationScores converts a score listing to its API representation.
func NewStationScores(scores []aqi.StationScore) []StationScore {
	out := make([]StationScore, 0, len(scores))
	for _, s := range scores {
		out = append(out, NewStationScore(s))
	}
	return out
}
