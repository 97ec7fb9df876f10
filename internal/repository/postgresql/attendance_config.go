package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hadirly/attendance-backend-go/internal/domain/attendanceconfig"
	"github.com/hadirly/attendance-backend-go/internal/pkg/database"
)

type attendanceConfigRepository struct {
	db *database.DB
}

func NewAttendanceConfigRepository(db *database.DB) attendanceconfig.Repository {
	return &attendanceConfigRepository{db: db}
}

const configColumns = `
	id, work_start_hour, work_end_hour, office_lat, office_lng, radius_meters,
	use_geofence, enforce_geofence, require_proof_of_work, allow_wfh,
	created_at, updated_at
`

// Get implements attendanceconfig.Repository. Returns (nil, nil) when no
// config row exists yet.
func (r *attendanceConfigRepository) Get(ctx context.Context) (*attendanceconfig.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + configColumns + ` FROM attendance_configs WHERE id = $1`

	var cfg attendanceconfig.Config
	err := q.QueryRow(ctx, query, attendanceconfig.SingletonID).Scan(
		&cfg.ID, &cfg.WorkStartHour, &cfg.WorkEndHour,
		&cfg.OfficeLat, &cfg.OfficeLng, &cfg.RadiusMeters,
		&cfg.UseGeofence, &cfg.EnforceGeofence, &cfg.RequireProofOfWork, &cfg.AllowWFH,
		&cfg.CreatedAt, &cfg.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance config: %w", err)
	}

	return &cfg, nil
}

// Upsert implements attendanceconfig.Repository.
func (r *attendanceConfigRepository) Upsert(ctx context.Context, cfg attendanceconfig.Config) (attendanceconfig.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_configs (
			id, work_start_hour, work_end_hour, office_lat, office_lng,
			radius_meters, use_geofence, enforce_geofence, require_proof_of_work,
			allow_wfh
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		ON CONFLICT (id) DO UPDATE SET
			work_start_hour = EXCLUDED.work_start_hour,
			work_end_hour = EXCLUDED.work_end_hour,
			office_lat = EXCLUDED.office_lat,
			office_lng = EXCLUDED.office_lng,
			radius_meters = EXCLUDED.radius_meters,
			use_geofence = EXCLUDED.use_geofence,
			enforce_geofence = EXCLUDED.enforce_geofence,
			require_proof_of_work = EXCLUDED.require_proof_of_work,
			allow_wfh = EXCLUDED.allow_wfh,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	cfg.ID = attendanceconfig.SingletonID
	err := q.QueryRow(ctx, query,
		cfg.ID,
		cfg.WorkStartHour,
		cfg.WorkEndHour,
		cfg.OfficeLat,
		cfg.OfficeLng,
		cfg.RadiusMeters,
		cfg.UseGeofence,
		cfg.EnforceGeofence,
		cfg.RequireProofOfWork,
		cfg.AllowWFH,
	).Scan(&cfg.CreatedAt, &cfg.UpdatedAt)

	if err != nil {
		return attendanceconfig.Config{}, fmt.Errorf("failed to upsert attendance config: %w", err)
	}

	return cfg, nil
}
