package attendanceconfig

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirly/attendance-backend-go/internal/domain/attendanceconfig"
	"github.com/hadirly/attendance-backend-go/internal/pkg/validator"
)

type fakeConfigRepo struct {
	cfg *attendanceconfig.Config
}

func (r *fakeConfigRepo) Get(ctx context.Context) (*attendanceconfig.Config, error) {
	return r.cfg, nil
}

func (r *fakeConfigRepo) Upsert(ctx context.Context, cfg attendanceconfig.Config) (attendanceconfig.Config, error) {
	r.cfg = &cfg
	return cfg, nil
}

func newTestService() (attendanceconfig.Service, *fakeConfigRepo) {
	repo := &fakeConfigRepo{}
	svc := NewConfigService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, repo
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestConfigService_Get_EmptyBeforeFirstSave(t *testing.T) {
	svc, _ := newTestService()

	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestConfigService_Save_Success(t *testing.T) {
	svc, repo := newTestService()

	saved, err := svc.Save(context.Background(), attendanceconfig.SaveConfigRequest{
		WorkStartHour:   9,
		WorkEndHour:     17,
		OfficeLat:       floatPtr(-6.2088),
		OfficeLng:       floatPtr(106.8456),
		RadiusMeters:    intPtr(200),
		UseGeofence:     true,
		EnforceGeofence: true,
		AllowWFH:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, attendanceconfig.SingletonID, saved.ID)
	assert.Equal(t, 9, saved.WorkStartHour)
	require.NotNil(t, repo.cfg)

	// Second save overwrites the same row.
	saved2, err := svc.Save(context.Background(), attendanceconfig.SaveConfigRequest{
		WorkStartHour: 8,
		WorkEndHour:   16,
	})
	require.NoError(t, err)
	assert.Equal(t, attendanceconfig.SingletonID, saved2.ID)
	assert.Equal(t, 8, repo.cfg.WorkStartHour)
}

func TestConfigService_Save_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name  string
		req   attendanceconfig.SaveConfigRequest
		field string
	}{
		{
			name:  "hour out of range",
			req:   attendanceconfig.SaveConfigRequest{WorkStartHour: 25, WorkEndHour: 17},
			field: "workStartHour",
		},
		{
			name:  "start not before end",
			req:   attendanceconfig.SaveConfigRequest{WorkStartHour: 17, WorkEndHour: 9},
			field: "workStartHour",
		},
		{
			name:  "geofence without coordinates",
			req:   attendanceconfig.SaveConfigRequest{WorkStartHour: 9, WorkEndHour: 17, UseGeofence: true},
			field: "useGeofence",
		},
		{
			name: "latitude out of range",
			req: attendanceconfig.SaveConfigRequest{
				WorkStartHour: 9, WorkEndHour: 17,
				OfficeLat: floatPtr(95), OfficeLng: floatPtr(106.8),
			},
			field: "officeLat",
		},
		{
			name: "longitude out of range",
			req: attendanceconfig.SaveConfigRequest{
				WorkStartHour: 9, WorkEndHour: 17,
				OfficeLat: floatPtr(-6.2), OfficeLng: floatPtr(185),
			},
			field: "officeLng",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), tt.req)
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			_, ok := verrs.ToMap()[tt.field]
			assert.True(t, ok, "expected error on field %s, got %v", tt.field, verrs)
		})
	}
}
