package utils

import (
	"fmt"
	"time"
)

// FormatDateID renders a date in the Indonesian d/m/yyyy convention used by
// the CSV export.
func FormatDateID(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// FormatDateTimeID renders a timestamp in the Indonesian convention
// (d/m/yyyy with a dotted 24-hour clock).
func FormatDateTimeID(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d %02d.%02d.%02d", t.Day(), int(t.Month()), t.Year(), t.Hour(), t.Minute(), t.Second())
}
