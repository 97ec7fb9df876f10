package attendanceconfig

import (
	"github.com/hadirly/attendance-backend-go/internal/pkg/validator"
)

type SaveConfigRequest struct {
	WorkStartHour      int      `json:"workStartHour"`
	WorkEndHour        int      `json:"workEndHour"`
	OfficeLat          *float64 `json:"officeLat"`
	OfficeLng          *float64 `json:"officeLng"`
	RadiusMeters       *int     `json:"radiusMeters"`
	UseGeofence        bool     `json:"useGeofence"`
	EnforceGeofence    bool     `json:"enforceGeofence"`
	RequireProofOfWork bool     `json:"requireProofOfWork"`
	AllowWFH           bool     `json:"allowWFH"`
}

func (r *SaveConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkStartHour < 0 || r.WorkStartHour > 23 || r.WorkEndHour < 0 || r.WorkEndHour > 23 {
		errs = append(errs, validator.ValidationError{
			Field:   "workStartHour",
			Message: "Jam kerja harus antara 0-23",
		})
	} else if r.WorkStartHour >= r.WorkEndHour {
		errs = append(errs, validator.ValidationError{
			Field:   "workStartHour",
			Message: "Jam mulai harus lebih awal dari jam selesai",
		})
	}

	if r.UseGeofence && (r.OfficeLat == nil || r.OfficeLng == nil || r.RadiusMeters == nil || *r.RadiusMeters <= 0) {
		errs = append(errs, validator.ValidationError{
			Field:   "useGeofence",
			Message: "Koordinat kantor dan radius diperlukan jika geofencing diaktifkan",
		})
	}

	if r.OfficeLat != nil && (*r.OfficeLat < -90 || *r.OfficeLat > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "officeLat",
			Message: "Latitude harus antara -90 dan 90",
		})
	}

	if r.OfficeLng != nil && (*r.OfficeLng < -180 || *r.OfficeLng > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "officeLng",
			Message: "Longitude harus antara -180 dan 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ConfigResponse struct {
	ID                 string   `json:"id"`
	WorkStartHour      int      `json:"workStartHour"`
	WorkEndHour        int      `json:"workEndHour"`
	OfficeLat          *float64 `json:"officeLat,omitempty"`
	OfficeLng          *float64 `json:"officeLng,omitempty"`
	RadiusMeters       *int     `json:"radiusMeters,omitempty"`
	UseGeofence        bool     `json:"useGeofence"`
	EnforceGeofence    bool     `json:"enforceGeofence"`
	RequireProofOfWork bool     `json:"requireProofOfWork"`
	AllowWFH           bool     `json:"allowWFH"`
}

// ToResponse maps a persisted config to its API shape.
func ToResponse(c Config) ConfigResponse {
	return ConfigResponse{
		ID:                 c.ID,
		WorkStartHour:      c.WorkStartHour,
		WorkEndHour:        c.WorkEndHour,
		OfficeLat:          c.OfficeLat,
		OfficeLng:          c.OfficeLng,
		RadiusMeters:       c.RadiusMeters,
		UseGeofence:        c.UseGeofence,
		EnforceGeofence:    c.EnforceGeofence,
		RequireProofOfWork: c.RequireProofOfWork,
		AllowWFH:           c.AllowWFH,
	}
}
