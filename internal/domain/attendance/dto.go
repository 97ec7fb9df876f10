package attendance

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/hadirly/attendance-backend-go/internal/domain/attendanceconfig"
	"github.com/hadirly/attendance-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IPAddress *string  `json:"ipAddress"`
	Method    string   `json:"method"`
	WorkMode  string   `json:"workMode"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidWorkMode(r.WorkMode) {
		errs = append(errs, validator.ValidationError{
			Field:   "workMode",
			Message: "Mode kerja harus WFO atau WFH",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	ProofOfWorkURL  *string  `json:"proofOfWorkUrl"`
	ProofOfWorkName *string  `json:"proofOfWorkName"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UploadProofRequest struct {
	AttendanceID string                `json:"-"`
	File         multipart.File        `json:"-"`
	FileHeader   *multipart.FileHeader `json:"-"`
}

func (r *UploadProofRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendanceId",
			Message: "ID kehadiran diperlukan",
		})
	}

	if r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "File tidak ditemukan",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Filter narrows history and export queries. UserID is resolved at the
// service layer: non-admins may only query themselves.
type Filter struct {
	UserID    string  `json:"userId"`
	StartDate *string `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"endDate,omitempty"`   // YYYY-MM-DD
	WorkMode  *string `json:"workMode,omitempty"`
	Status    *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.WorkMode != nil && *f.WorkMode != "" && !IsValidWorkMode(strings.ToUpper(*f.WorkMode)) {
		errs = append(errs, validator.ValidationError{
			Field:   "workMode",
			Message: "workMode must be one of: WFO, WFH",
		})
	}

	if f.Status != nil && *f.Status != "" && !IsValidStatus(strings.ToUpper(*f.Status)) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: ONTIME, LATE, ABSENT, EARLY_LEAVE",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "startDate",
				Message: "startDate must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID              string   `json:"id"`
	UserID          string   `json:"userId"`
	CheckInAt       string   `json:"checkInAt"`
	CheckOutAt      *string  `json:"checkOutAt,omitempty"`
	WorkMode        string   `json:"workMode"`
	Status          string   `json:"status"`
	Method          string   `json:"method"`
	IPAddress       *string  `json:"ipAddress,omitempty"`
	LatitudeIn      *float64 `json:"latitudeIn,omitempty"`
	LongitudeIn     *float64 `json:"longitudeIn,omitempty"`
	LatitudeOut     *float64 `json:"latitudeOut,omitempty"`
	LongitudeOut    *float64 `json:"longitudeOut,omitempty"`
	ProofOfWorkURL  *string  `json:"proofOfWorkUrl,omitempty"`
	ProofOfWorkName *string  `json:"proofOfWorkName,omitempty"`
	Notes           string   `json:"notes"`
	User            *UserInfo `json:"user,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

type UserInfo struct {
	ID             string  `json:"id"`
	FullName       string  `json:"fullName"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// SummaryItem is a grouped count over the filtered set, independent of
// pagination.
type SummaryItem struct {
	Status   string `json:"status"`
	WorkMode string `json:"workMode"`
	Count    int64  `json:"count"`
}

type CheckInResult struct {
	Attendance        AttendanceResponse                `json:"attendance"`
	Config            *attendanceconfig.ConfigResponse  `json:"config"`
	DistanceMeters    *int                              `json:"distanceMeters"`
	ValidationMessage string                            `json:"validationMessage"`
	WorkMode          string                            `json:"workMode"`
}

type CheckOutResult struct {
	Attendance        AttendanceResponse `json:"attendance"`
	User              *UserInfo          `json:"user"`
	Status            string             `json:"status"`
	DistanceMeters    *int               `json:"distanceMeters"`
	ValidationMessage string             `json:"validationMessage"`
}

type UploadProofResult struct {
	FileURL    string             `json:"fileUrl"`
	FileName   string             `json:"fileName"`
	Attendance AttendanceResponse `json:"attendance"`
}

type HistoryResult struct {
	AttendanceRecords []AttendanceResponse `json:"attendanceRecords"`
	Pagination        Pagination           `json:"pagination"`
	Summary           []SummaryItem        `json:"summary"`
}

// ExportResult carries rendered CSV bytes plus the attachment filename.
type ExportResult struct {
	Filename string
	Content  []byte
}

// timeString formats timestamps for API responses.
func timeString(t time.Time) string {
	return t.Format(time.RFC3339)
}

func timePtrString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := timeString(*t)
	return &s
}

// ToResponse maps an Attendance entity to its API shape.
func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		CheckInAt:       timeString(a.CheckInAt),
		CheckOutAt:      timePtrString(a.CheckOutAt),
		WorkMode:        string(a.WorkMode),
		Status:          string(a.Status),
		Method:          string(a.Method),
		IPAddress:       a.IPAddress,
		LatitudeIn:      a.LatitudeIn,
		LongitudeIn:     a.LongitudeIn,
		LatitudeOut:     a.LatitudeOut,
		LongitudeOut:    a.LongitudeOut,
		ProofOfWorkURL:  a.ProofOfWorkURL,
		ProofOfWorkName: a.ProofOfWorkName,
		Notes:           a.Notes,
		CreatedAt:       timeString(a.CreatedAt),
		UpdatedAt:       timeString(a.UpdatedAt),
	}
	if a.UserName != nil {
		resp.User = &UserInfo{
			ID:             a.UserID,
			FullName:       *a.UserName,
			ProfilePicture: a.ProfilePicture,
		}
		if a.UserEmail != nil {
			resp.User.Email = *a.UserEmail
		}
	}
	return resp
}
