package reading

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/airscore/airscore/internal/aqi"
)

// PostgresRepository reads the wide station table produced by the upstream
// cleansing stage: one row per station per snapshot, one nullable numeric
// column per pollutant.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL reading repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListLatest returns the latest snapshot row per station. NULL
// concentrations scan to nil pointers so absence survives as "not
// evaluated" all the way into the engine.
func (r *PostgresRepository) ListLatest(ctx context.Context) ([]aqi.StationReading, error) {
	query := `
		SELECT DISTINCT ON (station_id)
			station_id, name, locality, state, latitude, longitude, observed_at,
			pm25, pm10, so2, no2, co, o3, nh3
		FROM station_readings
		ORDER BY station_id, observed_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []aqi.StationReading
	for rows.Next() {
		var (
			rd                                 aqi.StationReading
			pm25, pm10, so2, no2, co, o3, nh3 *float64
		)
		err := rows.Scan(
			&rd.StationID, &rd.Name, &rd.Locality, &rd.State,
			&rd.Lat, &rd.Lon, &rd.ObservedAt,
			&pm25, &pm10, &so2, &no2, &co, &o3, &nh3,
		)
		if err != nil {
			return nil, err
		}

		rd.Concentrations = map[aqi.Pollutant]*float64{
			aqi.PollutantPM25: pm25,
			aqi.PollutantPM10: pm10,
			aqi.PollutantSO2:  so2,
			aqi.PollutantNO2:  no2,
			aqi.PollutantCO:   co,
			aqi.PollutantO3:   o3,
			aqi.PollutantNH3:  nh3,
		}
		readings = append(readings, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(readings) == 0 {
		return nil, ErrNoReadings
	}
	return readings, nil
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
