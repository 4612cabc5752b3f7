package score

import (
	"context"
	"sync"

	"github.com/airscore/airscore/internal/aqi"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing and local development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	scores []aqi.StationScore
	run    *RunSummary
}

// NewInMemoryRepository creates a new in-memory score repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// ReplaceAll replaces the stored snapshot.
func (r *InMemoryRepository) ReplaceAll(_ context.Context, run RunSummary, scores []aqi.StationScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scores = make([]aqi.StationScore, len(scores))
	copy(r.scores, scores)
	runCopy := run
	r.run = &runCopy
	return nil
}

// List returns scored stations matching the filter.
func (r *InMemoryRepository) List(_ context.Context, filter ListFilter) ([]aqi.StationScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []aqi.StationScore
	for _, s := range r.scores {
		if filter.Locality != "" && s.Locality != filter.Locality {
			continue
		}
		if filter.Category != "" && s.Category != filter.Category {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Get returns the score for a single station.
func (r *InMemoryRepository) Get(_ context.Context, stationID string) (*aqi.StationScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.scores {
		if s.StationID == stationID {
			cpy := s
			return &cpy, nil
		}
	}
	return nil, ErrScoreNotFound
}

// LatestRun returns the most recent run summary.
func (r *InMemoryRepository) LatestRun(_ context.Context) (*RunSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.run == nil {
		return nil, ErrNoRun
	}
	cpy := *r.run
	return &cpy, nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)
