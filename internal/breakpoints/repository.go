// Package breakpoints provides storage and cached access to the breakpoint
// table configuration, so the scoring standard can be swapped without a
// code change.
package breakpoints

import (
	"context"
	"errors"

	"github.com/airscore/airscore/internal/aqi"
)

// ErrNoRanges is returned when no breakpoint configuration is stored.
var ErrNoRanges = errors.New("no breakpoint ranges configured")

// Repository defines the interface for breakpoint table storage.
type Repository interface {
	// GetRanges retrieves the stored declarative range list.
	GetRanges(ctx context.Context) ([]aqi.BreakpointRange, error)

	// ReplaceRanges atomically replaces the stored range list.
	ReplaceRanges(ctx context.Context, ranges []aqi.BreakpointRange) error
}
