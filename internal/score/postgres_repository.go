package score

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/airscore/airscore/internal/aqi"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL score repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ReplaceAll replaces the stored snapshot with the given run's output in a
// single transaction, so readers never observe a half-written run.
func (r *PostgresRepository) ReplaceAll(ctx context.Context, run RunSummary, scores []aqi.StationScore) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback error is not critical

	if _, err := tx.Exec(ctx, `DELETE FROM station_scores`); err != nil {
		return err
	}

	insert := `
		INSERT INTO station_scores
			(station_id, name, locality, state, latitude, longitude, observed_at,
			 overall_aqi, dominant_pollutant, category, sub_indices, run_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for _, s := range scores {
		subIndices, err := json.Marshal(s.SubIndices)
		if err != nil {
			return err
		}

		var dominant *string
		if s.DominantPollutant != nil {
			d := string(*s.DominantPollutant)
			dominant = &d
		}

		_, err = tx.Exec(ctx, insert,
			s.StationID, s.Name, s.Locality, s.State, s.Lat, s.Lon, s.ObservedAt,
			s.OverallAQI, dominant, string(s.Category), subIndices, run.RunID,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO scoring_runs (run_id, started_at, duration_ms, stations_scored, stations_unknown, clamped)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, run.RunID, run.StartedAt, run.Duration.Milliseconds(), run.StationsScored, run.StationsUnknown, run.Clamped)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// List returns scored stations matching the filter.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]aqi.StationScore, error) {
	query := `
		SELECT station_id, name, locality, state, latitude, longitude, observed_at,
		       overall_aqi, dominant_pollutant, category, sub_indices
		FROM station_scores
		WHERE ($1 = '' OR locality = $1)
		  AND ($2 = '' OR category = $2)
		ORDER BY overall_aqi DESC NULLS LAST, station_id
	`

	rows, err := r.pool.Query(ctx, query, filter.Locality, string(filter.Category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []aqi.StationScore
	for rows.Next() {
		s, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

// Get returns the score for a single station.
func (r *PostgresRepository) Get(ctx context.Context, stationID string) (*aqi.StationScore, error) {
	query := `
		SELECT station_id, name, locality, state, latitude, longitude, observed_at,
		       overall_aqi, dominant_pollutant, category, sub_indices
		FROM station_scores
		WHERE station_id = $1
	`

	row := r.pool.QueryRow(ctx, query, stationID)
	s, err := scanScore(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScoreNotFound
		}
		return nil, err
	}
	return &s, nil
}

// LatestRun returns the most recent run summary.
func (r *PostgresRepository) LatestRun(ctx context.Context) (*RunSummary, error) {
	query := `
		SELECT run_id, started_at, duration_ms, stations_scored, stations_unknown, clamped
		FROM scoring_runs
		ORDER BY started_at DESC
		LIMIT 1
	`

	var (
		run        RunSummary
		durationMS int64
	)
	err := r.pool.QueryRow(ctx, query).Scan(
		&run.RunID, &run.StartedAt, &durationMS,
		&run.StationsScored, &run.StationsUnknown, &run.Clamped,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRun
		}
		return nil, err
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}

// scanScore reads one station_scores row.
func scanScore(row pgx.Row) (aqi.StationScore, error) {
	var (
		s          aqi.StationScore
		dominant   *string
		category   string
		subIndices []byte
	)
	err := row.Scan(
		&s.StationID, &s.Name, &s.Locality, &s.State, &s.Lat, &s.Lon, &s.ObservedAt,
		&s.OverallAQI, &dominant, &category, &subIndices,
	)
	if err != nil {
		return aqi.StationScore{}, err
	}

	if dominant != nil {
		p := aqi.Pollutant(*dominant)
		s.DominantPollutant = &p
	}
	s.Category = aqi.Category(category)

	if len(subIndices) > 0 {
		if err := json.Unmarshal(subIndices, &s.SubIndices); err != nil {
			return aqi.StationScore{}, err
		}
	}
	return s, nil
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
