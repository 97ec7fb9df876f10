package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hadirly/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirly/attendance-backend-go/internal/domain/attendanceconfig"
	"github.com/hadirly/attendance-backend-go/internal/domain/user"
	"github.com/hadirly/attendance-backend-go/internal/pkg/database"
	"github.com/hadirly/attendance-backend-go/internal/pkg/geoip"
	"github.com/hadirly/attendance-backend-go/internal/pkg/metrics"
	"github.com/hadirly/attendance-backend-go/internal/pkg/notifier"
	"github.com/hadirly/attendance-backend-go/internal/pkg/utils"
	"github.com/hadirly/attendance-backend-go/internal/repository/postgresql"
	"github.com/hadirly/attendance-backend-go/internal/service/file"
)

type attendanceService struct {
	db          *database.DB
	repo        attendance.Repository
	configRepo  attendanceconfig.Repository
	userRepo    user.Repository
	fileService file.FileService
	notifier    notifier.Notifier
	geoip       *geoip.Client

	defaultStartHour int
	defaultEndHour   int

	logger *slog.Logger
	clock  func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	repo attendance.Repository,
	configRepo attendanceconfig.Repository,
	userRepo user.Repository,
	fileService file.FileService,
	n notifier.Notifier,
	geoipClient *geoip.Client,
	defaultStartHour, defaultEndHour int,
	logger *slog.Logger,
) attendance.Service {
	return &attendanceService{
		db:               db,
		repo:             repo,
		configRepo:       configRepo,
		userRepo:         userRepo,
		fileService:      fileService,
		notifier:         n,
		geoip:            geoipClient,
		defaultStartHour: defaultStartHour,
		defaultEndHour:   defaultEndHour,
		logger:           logger,
		clock:            time.Now,
	}
}

func (s *attendanceService) now() time.Time {
	return s.clock()
}

// inTx runs fn inside a database transaction when a pool is wired, and
// directly otherwise.
func (s *attendanceService) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, fn)
}

// loadConfig returns the saved config, or a default built from the
// environment-sourced working hours when no admin has saved one yet.
func (s *attendanceService) loadConfig(ctx context.Context) (*attendanceconfig.Config, bool, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, false, err
	}
	if cfg != nil {
		return cfg, true, nil
	}
	return &attendanceconfig.Config{
		ID:            attendanceconfig.SingletonID,
		WorkStartHour: s.defaultStartHour,
		WorkEndHour:   s.defaultEndHour,
	}, false, nil
}

// resolveCoordinates fills missing coordinates from a best-effort IP lookup.
// Lookup failures are swallowed; the caller proceeds without coordinates.
func (s *attendanceService) resolveCoordinates(ctx context.Context, lat, lon *float64, ip *string) (*float64, *float64) {
	if lat != nil && lon != nil {
		return lat, lon
	}
	if s.geoip == nil || ip == nil || *ip == "" {
		return lat, lon
	}

	loc, err := s.geoip.Lookup(ctx, *ip)
	if err != nil {
		s.logger.Warn("geoip lookup failed", "ip", *ip, "error", err)
		return lat, lon
	}
	return &loc.Latitude, &loc.Longitude
}

// CheckIn implements attendance.Service.
func (s *attendanceService) CheckIn(ctx context.Context, identity user.Identity, req attendance.CheckInRequest) (attendance.CheckInResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResult{}, err
	}

	cfg, persisted, err := s.loadConfig(ctx)
	if err != nil {
		return attendance.CheckInResult{}, err
	}

	now := s.now()
	classification := utils.ClassifyTime(now, cfg.WorkStartHour, cfg.WorkEndHour)

	lat, lon := s.resolveCoordinates(ctx, req.Latitude, req.Longitude, req.IPAddress)

	method := attendance.MethodIP
	if req.Method == string(attendance.MethodGPS) {
		method = attendance.MethodGPS
	}

	var distanceMeters *int
	validationMessage := "Validasi lokasi berhasil"
	if req.WorkMode == string(attendance.WorkModeWFH) {
		validationMessage = "Mode WFH aktif. Lokasi akan dicatat untuk transparansi."
	}
	notes := validationMessage

	if cfg.GeofenceActive() {
		if lat == nil || lon == nil {
			// Enforcement needs a location regardless of work mode; WFH
			// coordinates are still recorded for transparency.
			if cfg.EnforceGeofence {
				return attendance.CheckInResult{}, attendance.ErrGPSRequired
			}
		} else {
			dm := utils.RoundDistanceMeters(utils.CalculateHaversineDistance(
				*lat, *lon, *cfg.OfficeLat, *cfg.OfficeLng,
			))
			distanceMeters = &dm

			validation := utils.ValidateWorkMode(
				req.WorkMode, *lat, *lon, *cfg.OfficeLat, *cfg.OfficeLng,
				*cfg.RadiusMeters, cfg.EnforceGeofence,
			)
			if !validation.Valid {
				return attendance.CheckInResult{}, &attendance.GeofenceError{
					DistanceMeters: dm,
					Message:        validation.Message,
				}
			}

			validationMessage = validation.Message
			notes = utils.FormatDistanceNote(dm, validation.Message)
		}
	}

	// The partial unique index is the real guard; this pre-check just
	// gives the common case a cheaper, cleaner error.
	open, err := s.repo.HasOpen(ctx, identity.UserID)
	if err != nil {
		return attendance.CheckInResult{}, err
	}
	if open {
		return attendance.CheckInResult{}, attendance.ErrAlreadyCheckedIn
	}

	record := attendance.Attendance{
		ID:          uuid.NewString(),
		UserID:      identity.UserID,
		CheckInAt:   now,
		WorkMode:    attendance.WorkMode(req.WorkMode),
		Status:      attendance.Status(classification.Status),
		Method:      method,
		IPAddress:   req.IPAddress,
		LatitudeIn:  lat,
		LongitudeIn: lon,
		Notes:       notes,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return attendance.CheckInResult{}, err
	}

	metrics.CheckIns.WithLabelValues(string(created.Status), string(created.WorkMode)).Inc()
	s.notify(ctx, "attendance_check_in", created, distanceMeters)

	result := attendance.CheckInResult{
		Attendance:        attendance.ToResponse(created),
		DistanceMeters:    distanceMeters,
		ValidationMessage: validationMessage,
		WorkMode:          string(created.WorkMode),
	}
	if persisted {
		resp := attendanceconfig.ToResponse(*cfg)
		result.Config = &resp
	}

	return result, nil
}

// CheckOut implements attendance.Service.
func (s *attendanceService) CheckOut(ctx context.Context, identity user.Identity, req attendance.CheckOutRequest) (attendance.CheckOutResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResult{}, err
	}

	cfg, _, err := s.loadConfig(ctx)
	if err != nil {
		return attendance.CheckOutResult{}, err
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var updated attendance.Attendance
	var distanceMeters *int
	validationMessage := "Check-out berhasil"

	err = s.inTx(ctx, func(ctx context.Context) error {
		record, err := s.repo.GetOpenSince(ctx, identity.UserID, startOfDay)
		if err != nil {
			return err
		}

		// Checkout has no lower bound: anything before the end of the
		// working window counts as ONTIME.
		classification := utils.ClassifyTime(now, 0, cfg.WorkEndHour)

		hasProof := record.ProofOfWorkURL != nil ||
			(req.ProofOfWorkURL != nil && req.ProofOfWorkName != nil)
		if record.WorkMode == attendance.WorkModeWFH && cfg.RequireProofOfWork && !hasProof {
			return attendance.ErrProofRequired
		}

		if cfg.GeofenceActive() && req.Latitude != nil && req.Longitude != nil {
			dm := utils.RoundDistanceMeters(utils.CalculateHaversineDistance(
				*req.Latitude, *req.Longitude, *cfg.OfficeLat, *cfg.OfficeLng,
			))
			distanceMeters = &dm
			validationMessage = fmt.Sprintf("Check-out: %dm dari kantor", dm)

			if record.WorkMode == attendance.WorkModeWFO && cfg.EnforceGeofence {
				validation := utils.ValidateWorkMode(
					string(record.WorkMode), *req.Latitude, *req.Longitude,
					*cfg.OfficeLat, *cfg.OfficeLng, *cfg.RadiusMeters, true,
				)
				if !validation.Valid {
					return &attendance.GeofenceError{
						DistanceMeters: dm,
						Message:        validation.Message,
					}
				}
			}
		}

		record.CheckOutAt = &now
		record.Status = attendance.Status(classification.Status)
		record.LatitudeOut = req.Latitude
		record.LongitudeOut = req.Longitude
		if req.ProofOfWorkURL != nil {
			record.ProofOfWorkURL = req.ProofOfWorkURL
		}
		if req.ProofOfWorkName != nil {
			record.ProofOfWorkName = req.ProofOfWorkName
		}
		if distanceMeters != nil {
			record.Notes = record.Notes + fmt.Sprintf("; Check-out: %dm dari kantor", *distanceMeters)
		}

		updated, err = s.repo.Update(ctx, record)
		return err
	})
	if err != nil {
		return attendance.CheckOutResult{}, err
	}

	metrics.CheckOuts.WithLabelValues(string(updated.Status)).Inc()
	s.notify(ctx, "attendance_check_out", updated, distanceMeters)

	result := attendance.CheckOutResult{
		Attendance:        attendance.ToResponse(updated),
		Status:            string(updated.Status),
		DistanceMeters:    distanceMeters,
		ValidationMessage: validationMessage,
	}
	if u, err := s.userRepo.GetByID(ctx, identity.UserID); err == nil {
		result.User = &attendance.UserInfo{
			ID:             u.ID,
			FullName:       u.FullName,
			Email:          u.Email,
			ProfilePicture: u.ProfilePicture,
		}
	}

	return result, nil
}

// UploadProof implements attendance.Service.
func (s *attendanceService) UploadProof(ctx context.Context, identity user.Identity, req attendance.UploadProofRequest) (attendance.UploadProofResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.UploadProofResult{}, err
	}

	record, err := s.repo.GetByID(ctx, req.AttendanceID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.UploadProofResult{}, attendance.ErrProofTargetNotFound
		}
		return attendance.UploadProofResult{}, err
	}

	if record.UserID != identity.UserID {
		return attendance.UploadProofResult{}, user.ErrForbidden
	}
	if record.WorkMode != attendance.WorkModeWFH || !record.IsOpen() {
		return attendance.UploadProofResult{}, attendance.ErrProofTargetNotFound
	}

	contentType := req.FileHeader.Header.Get("Content-Type")
	url, filename, err := s.fileService.UploadProofOfWork(ctx, record.ID, req.File, contentType, req.FileHeader.Size)
	if err != nil {
		return attendance.UploadProofResult{}, err
	}

	// The old file is removed only after the replacement is stored, so a
	// rejected upload never orphans the record's reference. Deletion
	// failures are logged and ignored.
	if record.ProofOfWorkURL != nil {
		if err := s.fileService.DeleteByURL(ctx, *record.ProofOfWorkURL); err != nil {
			s.logger.Warn("failed to delete previous proof file",
				"attendance_id", record.ID, "error", err)
		}
	}

	updated, err := s.repo.SetProof(ctx, record.ID, url, filename)
	if err != nil {
		return attendance.UploadProofResult{}, err
	}

	return attendance.UploadProofResult{
		FileURL:    url,
		FileName:   filename,
		Attendance: attendance.ToResponse(updated),
	}, nil
}

// History implements attendance.Service.
func (s *attendanceService) History(ctx context.Context, identity user.Identity, f attendance.Filter) (attendance.HistoryResult, error) {
	if err := f.Validate(); err != nil {
		return attendance.HistoryResult{}, err
	}

	if !identity.IsAdmin() {
		if f.UserID != "" && f.UserID != identity.UserID {
			return attendance.HistoryResult{}, user.ErrForbidden
		}
		f.UserID = identity.UserID
	}
	if f.UserID == "" {
		f.UserID = identity.UserID
	}

	records, total, err := s.repo.List(ctx, f)
	if err != nil {
		return attendance.HistoryResult{}, err
	}

	summary, err := s.repo.Summarize(ctx, f)
	if err != nil {
		return attendance.HistoryResult{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.ToResponse(record))
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(f.Limit) - 1) / int64(f.Limit))
	}

	return attendance.HistoryResult{
		AttendanceRecords: responses,
		Pagination: attendance.Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
		Summary: summary,
	}, nil
}

// notify emits a best-effort event. Failures never reach the caller.
func (s *attendanceService) notify(ctx context.Context, name string, record attendance.Attendance, distanceMeters *int) {
	userName := "Karyawan"
	if u, err := s.userRepo.GetByID(ctx, record.UserID); err == nil && u.FullName != "" {
		userName = u.FullName
	}

	data := map[string]any{
		"userId":       record.UserID,
		"attendanceId": record.ID,
		"status":       string(record.Status),
		"workMode":     string(record.WorkMode),
		"userName":     userName,
		"timestamp":    s.now().Format(time.RFC3339),
	}
	if distanceMeters != nil {
		data["distanceMeters"] = *distanceMeters
	}

	s.notifier.Publish(notifier.Event{Name: name, Data: data})
}
