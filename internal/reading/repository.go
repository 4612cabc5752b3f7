// Package reading provides access to the upstream-cleansed wide station
// table that the scoring engine consumes.
package reading

import (
	"context"
	"errors"

	"github.com/airscore/airscore/internal/aqi"
)

// ErrNoReadings is returned when the wide table holds no station rows.
var ErrNoReadings = errors.New("no station readings available")

// Repository defines read-only access to station readings. The engine
// never writes through this interface; the upstream cleansing stage owns
// the table.
type Repository interface {
	// ListLatest returns the latest snapshot row for every station.
	ListLatest(ctx context.Context) ([]aqi.StationReading, error)
}
