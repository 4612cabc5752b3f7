package reading

import (
	"context"
	"sync"

	"github.com/airscore/airscore/internal/aqi"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing and local development.
type InMemoryRepository struct {
	mu       sync.RWMutex
	readings []aqi.StationReading
}

// NewInMemoryRepository creates a new in-memory reading repository seeded
// with the given rows.
func NewInMemoryRepository(readings ...aqi.StationReading) *InMemoryRepository {
	return &InMemoryRepository{readings: readings}
}

// SetReadings replaces the stored rows.
func (r *InMemoryRepository) SetReadings(readings []aqi.StationReading) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readings = make([]aqi.StationReading, len(readings))
	copy(r.readings, readings)
}

// ListLatest returns the stored rows.
func (r *InMemoryRepository) ListLatest(_ context.Context) ([]aqi.StationReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.readings) == 0 {
		return nil, ErrNoReadings
	}

	out := make([]aqi.StationReading, len(r.readings))
	copy(out, r.readings)
	return out, nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)
