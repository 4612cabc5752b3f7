package breakpoints

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/airscore/airscore/internal/aqi"
)

// PostgresRepository is a PostgreSQL implementation of Repository. The
// table is a flat declarative list of range records, one row per range.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL breakpoint repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetRanges retrieves the stored range list.
func (r *PostgresRepository) GetRanges(ctx context.Context) ([]aqi.BreakpointRange, error) {
	query := `
		SELECT pollutant, conc_low, conc_high, index_low, index_high
		FROM breakpoint_ranges
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranges []aqi.BreakpointRange
	for rows.Next() {
		var br aqi.BreakpointRange
		if err := rows.Scan(&br.Pollutant, &br.ConcLow, &br.ConcHigh, &br.IndexLow, &br.IndexHigh); err != nil {
			return nil, err
		}
		ranges = append(ranges, br)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ranges) == 0 {
		return nil, ErrNoRanges
	}
	return ranges, nil
}

// ReplaceRanges atomically replaces the stored range list.
func (r *PostgresRepository) ReplaceRanges(ctx context.Context, ranges []aqi.BreakpointRange) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback error is not critical

	if _, err := tx.Exec(ctx, `DELETE FROM breakpoint_ranges`); err != nil {
		return err
	}

	query := `
		INSERT INTO breakpoint_ranges (pollutant, conc_low, conc_high, index_low, index_high)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, br := range ranges {
		if _, err := tx.Exec(ctx, query, br.Pollutant, br.ConcLow, br.ConcHigh, br.IndexLow, br.IndexHigh); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
