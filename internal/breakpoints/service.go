package breakpoints

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/airscore/airscore/internal/aqi"
)

// ServiceConfig holds configuration for the breakpoint table service.
type ServiceConfig struct {
	Repository Repository
	Logger     zerolog.Logger

	// CacheTTL is how long a loaded table is cached (default: 5 minutes).
	CacheTTL time.Duration

	// Fallback is the table used when the repository holds no
	// configuration. Defaults to the built-in CPCB table.
	Fallback *aqi.Table
}

// Service provides validated, cached access to the breakpoint table with
// fallback to the built-in standard. Invalid stored configurations are
// rejected at load time, never handed to the scorer.
type Service struct {
	repo     Repository
	logger   zerolog.Logger
	cacheTTL time.Duration
	fallback *aqi.Table

	mu          sync.RWMutex
	cached      *aqi.Table
	cacheExpiry time.Time
}

// NewService creates a new breakpoint table service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	fallback := cfg.Fallback
	if fallback == nil {
		fallback = aqi.DefaultTable()
	}

	return &Service{
		repo:     cfg.Repository,
		logger:   cfg.Logger,
		cacheTTL: cacheTTL,
		fallback: fallback,
	}
}

// Table returns the active breakpoint table. It serves the cached table
// while fresh, loads from the repository otherwise, and falls back to the
// built-in standard when nothing is stored or the stored ranges fail
// validation.
func (s *Service) Table(ctx context.Context) *aqi.Table {
	s.mu.RLock()
	if s.cached != nil && time.Now().Before(s.cacheExpiry) {
		t := s.cached
		s.mu.RUnlock()
		return t
	}
	s.mu.RUnlock()

	return s.reload(ctx)
}

// Replace validates and stores a new range list, then refreshes the cache.
// An invalid table is rejected before anything is written.
func (s *Service) Replace(ctx context.Context, ranges []aqi.BreakpointRange) error {
	table, err := aqi.NewTable(ranges)
	if err != nil {
		return err
	}

	if err := s.repo.ReplaceRanges(ctx, ranges); err != nil {
		return fmt.Errorf("store breakpoint ranges: %w", err)
	}

	s.mu.Lock()
	s.cached = table
	s.cacheExpiry = time.Now().Add(s.cacheTTL)
	s.mu.Unlock()

	s.logger.Info().
		Int("ranges", len(ranges)).
		Int("pollutants", len(table.Pollutants())).
		Msg("breakpoint table replaced")

	return nil
}

// InvalidateCache clears the cached table, forcing a reload on next access.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.cacheExpiry = time.Time{}
}

func (s *Service) reload(ctx context.Context) *aqi.Table {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have reloaded while we waited on the lock.
	if s.cached != nil && time.Now().Before(s.cacheExpiry) {
		return s.cached
	}

	table := s.fallback
	ranges, err := s.repo.GetRanges(ctx)
	switch {
	case errors.Is(err, ErrNoRanges):
		s.logger.Debug().Msg("no stored breakpoint ranges, using built-in table")
	case err != nil:
		s.logger.Warn().Err(err).Msg("failed to load breakpoint ranges, using built-in table")
	default:
		loaded, buildErr := aqi.NewTable(ranges)
		if buildErr != nil {
			s.logger.Error().Err(buildErr).Msg("stored breakpoint ranges are invalid, using built-in table")
		} else {
			table = loaded
		}
	}

	s.cached = table
	s.cacheExpiry = time.Now().Add(s.cacheTTL)
	return table
}
