// Package score provides storage for scored station output and the
// latest run summary.
package score

import (
	"context"
	"errors"
	"time"

	"github.com/airscore/airscore/internal/aqi"
)

// Repository errors.
var (
	ErrScoreNotFound = errors.New("station score not found")
	ErrNoRun         = errors.New("no scoring run recorded")
)

// RunSummary describes a completed scoring run.
type RunSummary struct {
	RunID           string
	StartedAt       time.Time
	Duration        time.Duration
	StationsScored  int
	StationsUnknown int
	Clamped         int
}

// ListFilter narrows a score listing. Zero values match everything.
type ListFilter struct {
	Locality string
	Category aqi.Category
}

// Repository defines storage for scored stations. Each run replaces the
// previous snapshot wholesale; the engine has no incremental semantics.
type Repository interface {
	// ReplaceAll replaces the stored snapshot with the given run's output.
	ReplaceAll(ctx context.Context, run RunSummary, scores []aqi.StationScore) error

	// List returns scored stations matching the filter.
	List(ctx context.Context, filter ListFilter) ([]aqi.StationScore, error)

	// Get returns the score for a single station.
	Get(ctx context.Context, stationID string) (*aqi.StationScore, error)

	// LatestRun returns the most recent run summary.
	LatestRun(ctx context.Context) (*RunSummary, error)
}
