package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hadirly/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirly/attendance-backend-go/internal/domain/auth"
	"github.com/hadirly/attendance-backend-go/internal/domain/user"
	"github.com/hadirly/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence rejections carry the measured distance for the client UI.
	var geofenceErr *attendance.GeofenceError
	if errors.As(err, &geofenceErr) {
		BadRequest(w, geofenceErr.Message, map[string]string{
			"distanceMeters": strconv.Itoa(geofenceErr.DistanceMeters),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())

	// Authorization
	case errors.Is(err, user.ErrForbidden):
		Forbidden(w, "Anda tidak memiliki akses")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User tidak ditemukan")

	// Attendance business-rule violations
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrGPSRequired),
		errors.Is(err, attendance.ErrInvalidWorkMode),
		errors.Is(err, attendance.ErrProofRequired):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, attendance.ErrProofTargetNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
