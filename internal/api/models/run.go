package models

import "github.com/airscore/airscore/internal/score"

// Run is the API view of a scoring run summary.
type Run struct {
	RunID           string    `json:"runId"`
	StartedAt       Timestamp `json:"startedAt"`
	DurationMillis  int64     `json:"durationMillis"`
	StationsScored  int       `json:"stationsScored"`
	StationsUnknown int       `json:"stationsUnknown"`
	Clamped         int       `json:"clamped"`
}

// NewRun converts a run summary to its API representation.
func NewRun(r score.RunSummary) Run {
	return Run{
		RunID:           r.RunID,
		StartedAt:       Timestamp(r.StartedAt),
		DurationMillis:  r.Duration.Milliseconds(),
		StationsScored:  r.StationsScored,
		StationsUnknown: r.StationsUnknown,
		Clamped:         r.Clamped,
	}
}
