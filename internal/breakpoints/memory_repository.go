package breakpoints

import (
	"context"
	"sync"

	"github.com/airscore/airscore/internal/aqi"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing and local development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	ranges []aqi.BreakpointRange
}

// NewInMemoryRepository creates a new in-memory breakpoint repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// GetRanges retrieves the stored range list.
func (r *InMemoryRepository) GetRanges(_ context.Context) ([]aqi.BreakpointRange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.ranges) == 0 {
		return nil, ErrNoRanges
	}

	out := make([]aqi.BreakpointRange, len(r.ranges))
	copy(out, r.ranges)
	return out, nil
}

// ReplaceRanges replaces the stored range list.
func (r *InMemoryRepository) ReplaceRanges(_ context.Context, ranges []aqi.BreakpointRange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ranges = make([]aqi.BreakpointRange, len(ranges))
	copy(r.ranges, ranges)
	return nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)
