package attendanceconfig

import (
	"context"
	"log/slog"

	"github.com/hadirly/attendance-backend-go/internal/domain/attendanceconfig"
)

type configService struct {
	repo   attendanceconfig.Repository
	logger *slog.Logger
}

func NewConfigService(repo attendanceconfig.Repository, logger *slog.Logger) attendanceconfig.Service {
	return &configService{
		repo:   repo,
		logger: logger,
	}
}

// Get implements attendanceconfig.Service.
func (s *configService) Get(ctx context.Context) (*attendanceconfig.Config, error) {
	return s.repo.Get(ctx)
}

// Save implements attendanceconfig.Service.
func (s *configService) Save(ctx context.Context, req attendanceconfig.SaveConfigRequest) (attendanceconfig.Config, error) {
	if err := req.Validate(); err != nil {
		return attendanceconfig.Config{}, err
	}

	cfg := attendanceconfig.Config{
		ID:                 attendanceconfig.SingletonID,
		WorkStartHour:      req.WorkStartHour,
		WorkEndHour:        req.WorkEndHour,
		OfficeLat:          req.OfficeLat,
		OfficeLng:          req.OfficeLng,
		RadiusMeters:       req.RadiusMeters,
		UseGeofence:        req.UseGeofence,
		EnforceGeofence:    req.EnforceGeofence,
		RequireProofOfWork: req.RequireProofOfWork,
		AllowWFH:           req.AllowWFH,
	}

	saved, err := s.repo.Upsert(ctx, cfg)
	if err != nil {
		return attendanceconfig.Config{}, err
	}

	s.logger.Info("attendance config saved",
		"work_start_hour", saved.WorkStartHour,
		"work_end_hour", saved.WorkEndHour,
		"use_geofence", saved.UseGeofence,
	)

	return saved, nil
}
