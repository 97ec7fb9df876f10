package attendance

import (
	"context"
	"time"
)

type Repository interface {
	// Create inserts a new record. Returns ErrAlreadyCheckedIn when the
	// user already has an open record (partial unique index violation).
	Create(ctx context.Context, a Attendance) (Attendance, error)

	// GetByID returns a single record, or ErrAttendanceNotFound.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetOpenSince returns the user's open record whose check-in is at or
	// after since, or ErrNotCheckedIn when there is none.
	GetOpenSince(ctx context.Context, userID string, since time.Time) (Attendance, error)

	// HasOpen reports whether the user currently has an open record.
	HasOpen(ctx context.Context, userID string) (bool, error)

	// Update writes the check-out columns of an existing record.
	Update(ctx context.Context, a Attendance) (Attendance, error)

	// SetProof stores the proof-of-work file reference on a record.
	SetProof(ctx context.Context, id, fileURL, fileName string) (Attendance, error)

	// List returns a page of records matching the filter, newest first,
	// with user columns joined, plus the total match count.
	List(ctx context.Context, f Filter) ([]Attendance, int64, error)

	// Summarize returns grouped status/work-mode counts over the whole
	// filtered set, ignoring pagination.
	Summarize(ctx context.Context, f Filter) ([]SummaryItem, error)

	// ListAll returns every record matching the filter without pagination,
	// for export.
	ListAll(ctx context.Context, f Filter) ([]Attendance, error)
}
