package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hadirly/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirly/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.check_in_at, a.check_out_at, a.work_mode, a.status,
	a.method, a.ip_address, a.latitude_in, a.longitude_in,
	a.latitude_out, a.longitude_out, a.proof_of_work_url, a.proof_of_work_name,
	a.notes, a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.CheckInAt, &att.CheckOutAt, &att.WorkMode,
		&att.Status, &att.Method, &att.IPAddress, &att.LatitudeIn, &att.LongitudeIn,
		&att.LatitudeOut, &att.LongitudeOut, &att.ProofOfWorkURL, &att.ProofOfWorkName,
		&att.Notes, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.Repository. A second open record for the same
// user violates the partial unique index and is reported as
// ErrAlreadyCheckedIn.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			id, user_id, check_in_at, work_mode, status, method, ip_address,
			latitude_in, longitude_in, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.ID,
		a.UserID,
		a.CheckInAt,
		a.WorkMode,
		a.Status,
		a.Method,
		a.IPAddress,
		a.LatitudeIn,
		a.LongitudeIn,
		a.Notes,
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return a, nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// GetOpenSince implements attendance.Repository.
func (r *attendanceRepository) GetOpenSince(ctx context.Context, userID string, since time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1
		  AND a.check_out_at IS NULL
		  AND a.check_in_at >= $2
		ORDER BY a.check_in_at DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, since))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrNotCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open attendance: %w", err)
	}

	return att, nil
}

// HasOpen implements attendance.Repository.
func (r *attendanceRepository) HasOpen(ctx context.Context, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM attendances WHERE user_id = $1 AND check_out_at IS NULL)`

	var exists bool
	if err := q.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check open attendance: %w", err)
	}

	return exists, nil
}

// Update implements attendance.Repository. It writes the check-out columns
// and the recomputed status.
func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances SET
			check_out_at = $2,
			status = $3,
			latitude_out = $4,
			longitude_out = $5,
			proof_of_work_url = COALESCE($6, proof_of_work_url),
			proof_of_work_name = COALESCE($7, proof_of_work_name),
			notes = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		a.ID,
		a.CheckOutAt,
		a.Status,
		a.LatitudeOut,
		a.LongitudeOut,
		a.ProofOfWorkURL,
		a.ProofOfWorkName,
		a.Notes,
	).Scan(&a.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return a, nil
}

// SetProof implements attendance.Repository.
func (r *attendanceRepository) SetProof(ctx context.Context, id, fileURL, fileName string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances SET
			proof_of_work_url = $2,
			proof_of_work_name = $3,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + strings.ReplaceAll(attendanceColumns, "a.", "")

	att, err := scanAttendance(q.QueryRow(ctx, query, id, fileURL, fileName))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to set proof of work: %w", err)
	}

	return att, nil
}

// filterConditions builds the WHERE clause shared by List, Summarize and
// ListAll. Date filters compare against the check-in day.
func filterConditions(f attendance.Filter) (string, []interface{}) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	if f.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", idx))
		args = append(args, f.UserID)
		idx++
	}

	if f.StartDate != nil && *f.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.check_in_at::date >= $%d", idx))
		args = append(args, *f.StartDate)
		idx++
	}

	if f.EndDate != nil && *f.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.check_in_at::date <= $%d", idx))
		args = append(args, *f.EndDate)
		idx++
	}

	if f.WorkMode != nil && *f.WorkMode != "" {
		conditions = append(conditions, fmt.Sprintf("a.work_mode = $%d", idx))
		args = append(args, strings.ToUpper(*f.WorkMode))
		idx++
	}

	if f.Status != nil && *f.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", idx))
		args = append(args, strings.ToUpper(*f.Status))
		idx++
	}

	return strings.Join(conditions, " AND "), args
}

// List implements attendance.Repository.
func (r *attendanceRepository) List(ctx context.Context, f attendance.Filter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args := filterConditions(f)

	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	offset := (f.Page - 1) * f.Limit
	listQuery := fmt.Sprintf(`
		SELECT `+attendanceColumns+`,
			u.full_name, u.email, u.nik_ktp, u.profile_picture
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE `+where+`
		ORDER BY a.check_in_at DESC
		LIMIT $%d OFFSET $%d
	`, len(args)+1, len(args)+2)
	args = append(args, f.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	records, err := collectAttendanceRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// Summarize implements attendance.Repository.
func (r *attendanceRepository) Summarize(ctx context.Context, f attendance.Filter) ([]attendance.SummaryItem, error) {
	q := GetQuerier(ctx, r.db)

	where, args := filterConditions(f)

	query := `
		SELECT a.status, a.work_mode, COUNT(*)
		FROM attendances a
		WHERE ` + where + `
		GROUP BY a.status, a.work_mode
		ORDER BY a.status, a.work_mode
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize attendances: %w", err)
	}
	defer rows.Close()

	var items []attendance.SummaryItem
	for rows.Next() {
		var item attendance.SummaryItem
		if err := rows.Scan(&item.Status, &item.WorkMode, &item.Count); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read summary rows: %w", err)
	}

	return items, nil
}

// ListAll implements attendance.Repository.
func (r *attendanceRepository) ListAll(ctx context.Context, f attendance.Filter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	where, args := filterConditions(f)

	query := `
		SELECT ` + attendanceColumns + `,
			u.full_name, u.email, u.nik_ktp, u.profile_picture
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE ` + where + `
		ORDER BY a.check_in_at DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances for export: %w", err)
	}
	defer rows.Close()

	return collectAttendanceRows(rows)
}

func collectAttendanceRows(rows pgx.Rows) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.UserID, &att.CheckInAt, &att.CheckOutAt, &att.WorkMode,
			&att.Status, &att.Method, &att.IPAddress, &att.LatitudeIn, &att.LongitudeIn,
			&att.LatitudeOut, &att.LongitudeOut, &att.ProofOfWorkURL, &att.ProofOfWorkName,
			&att.Notes, &att.CreatedAt, &att.UpdatedAt,
			&att.UserName, &att.UserEmail, &att.UserNIK, &att.ProfilePicture,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance rows: %w", err)
	}

	return records, nil
}
