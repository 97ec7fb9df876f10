package attendance

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyCheckedIn    = errors.New("Anda sudah melakukan check-in hari ini")
	ErrNotCheckedIn        = errors.New("Tidak ada check-in hari ini atau sudah check-out")
	ErrGPSRequired         = errors.New("GPS diperlukan untuk validasi lokasi")
	ErrInvalidWorkMode     = errors.New("Mode kerja harus WFO atau WFH")
	ErrProofRequired       = errors.New("Bukti kerja (screenshot) diperlukan untuk mode WFH")
	ErrProofTargetNotFound = errors.New("Record kehadiran WFH tidak ditemukan")
	ErrAttendanceNotFound  = errors.New("attendance record not found")
)

// GeofenceError is returned when WFO check-in is rejected because the
// employee is outside the office radius. It carries the measured distance so
// handlers can surface it to the client.
type GeofenceError struct {
	DistanceMeters int
	Message        string
}

func (e *GeofenceError) Error() string {
	return fmt.Sprintf("%s (distance: %dm)", e.Message, e.DistanceMeters)
}
