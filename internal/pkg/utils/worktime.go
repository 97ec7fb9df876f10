package utils

import "time"

// Attendance time statuses. LATE and ABSENT exist in the data model but are
// never produced by ClassifyTime; see the classifier note below.
const (
	StatusOnTime     = "ONTIME"
	StatusLate       = "LATE"
	StatusAbsent     = "ABSENT"
	StatusEarlyLeave = "EARLY_LEAVE"
)

// TimeClassification is the outcome of checking a moment against the
// configured working-hours window.
type TimeClassification struct {
	WithinWindow bool
	Status       string
}

// ClassifyTime classifies now against the [startHour, endHour] window using
// minute-of-day comparison. Early arrival is reported as ONTIME with
// WithinWindow=false; past the end of the window the status is EARLY_LEAVE.
//
// LATE is intentionally never returned here: the product has no late-arrival
// threshold wired in, and the classifier mirrors that behavior rather than
// inventing one.
func ClassifyTime(now time.Time, startHour, endHour int) TimeClassification {
	currentMinutes := now.Hour()*60 + now.Minute()
	startMinutes := startHour * 60
	endMinutes := endHour * 60

	switch {
	case currentMinutes < startMinutes:
		return TimeClassification{WithinWindow: false, Status: StatusOnTime}
	case currentMinutes > endMinutes:
		return TimeClassification{WithinWindow: false, Status: StatusEarlyLeave}
	default:
		return TimeClassification{WithinWindow: true, Status: StatusOnTime}
	}
}
