package attendance

import "time"

// WorkMode is where the employee works for the day.
type WorkMode string

const (
	WorkModeWFO WorkMode = "WFO"
	WorkModeWFH WorkMode = "WFH"
)

// IsValidWorkMode reports whether s is a recognized work mode.
func IsValidWorkMode(s string) bool {
	return s == string(WorkModeWFO) || s == string(WorkModeWFH)
}

// Status is the working-hours classification of a record. It is computed at
// check-in and recomputed (and overwritten) at check-out.
type Status string

const (
	StatusOnTime     Status = "ONTIME"
	StatusLate       Status = "LATE"
	StatusAbsent     Status = "ABSENT"
	StatusEarlyLeave Status = "EARLY_LEAVE"
)

// IsValidStatus reports whether s is a recognized status.
func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusOnTime, StatusLate, StatusAbsent, StatusEarlyLeave:
		return true
	}
	return false
}

// Method is how the check-in location was captured.
type Method string

const (
	MethodGPS Method = "GPS"
	MethodIP  Method = "IP"
)

// Attendance is one check-in, optionally closed by a check-out. A record
// with CheckOutAt == nil is "open"; at most one open record exists per user
// (enforced by a partial unique index in the store).
type Attendance struct {
	ID              string
	UserID          string
	CheckInAt       time.Time
	CheckOutAt      *time.Time
	WorkMode        WorkMode
	Status          Status
	Method          Method
	IPAddress       *string
	LatitudeIn      *float64
	LongitudeIn     *float64
	LatitudeOut     *float64
	LongitudeOut    *float64
	ProofOfWorkURL  *string
	ProofOfWorkName *string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined user columns, populated by list/export queries.
	UserName       *string
	UserEmail      *string
	UserNIK        *string
	ProfilePicture *string
}

// IsOpen reports whether the record has not been checked out yet.
func (a *Attendance) IsOpen() bool {
	return a.CheckOutAt == nil
}
