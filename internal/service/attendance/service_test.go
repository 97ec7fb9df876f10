package attendance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirly/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirly/attendance-backend-go/internal/domain/attendanceconfig"
	"github.com/hadirly/attendance-backend-go/internal/domain/user"
	"github.com/hadirly/attendance-backend-go/internal/pkg/notifier"
)

// ==================== FAKES ====================

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	for _, existing := range r.records {
		if existing.UserID == a.UserID && existing.CheckOutAt == nil {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}
	a.CreatedAt = a.CheckInAt
	a.UpdatedAt = a.CheckInAt
	r.records[a.ID] = a
	return a, nil
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	a, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *fakeAttendanceRepo) GetOpenSince(ctx context.Context, userID string, since time.Time) (attendance.Attendance, error) {
	var best *attendance.Attendance
	for _, a := range r.records {
		a := a
		if a.UserID == userID && a.CheckOutAt == nil && !a.CheckInAt.Before(since) {
			if best == nil || a.CheckInAt.After(best.CheckInAt) {
				best = &a
			}
		}
	}
	if best == nil {
		return attendance.Attendance{}, attendance.ErrNotCheckedIn
	}
	return *best, nil
}

func (r *fakeAttendanceRepo) HasOpen(ctx context.Context, userID string) (bool, error) {
	for _, a := range r.records {
		if a.UserID == userID && a.CheckOutAt == nil {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if _, ok := r.records[a.ID]; !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	r.records[a.ID] = a
	return a, nil
}

func (r *fakeAttendanceRepo) SetProof(ctx context.Context, id, fileURL, fileName string) (attendance.Attendance, error) {
	a, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	a.ProofOfWorkURL = &fileURL
	a.ProofOfWorkName = &fileName
	r.records[id] = a
	return a, nil
}

func (r *fakeAttendanceRepo) matches(a attendance.Attendance, f attendance.Filter) bool {
	if f.UserID != "" && a.UserID != f.UserID {
		return false
	}
	if f.WorkMode != nil && *f.WorkMode != "" && string(a.WorkMode) != strings.ToUpper(*f.WorkMode) {
		return false
	}
	if f.Status != nil && *f.Status != "" && string(a.Status) != strings.ToUpper(*f.Status) {
		return false
	}
	return true
}

func (r *fakeAttendanceRepo) all(f attendance.Filter) []attendance.Attendance {
	var out []attendance.Attendance
	for _, a := range r.records {
		if r.matches(a, f) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CheckInAt.After(out[j].CheckInAt)
	})
	return out
}

func (r *fakeAttendanceRepo) List(ctx context.Context, f attendance.Filter) ([]attendance.Attendance, int64, error) {
	all := r.all(f)
	total := int64(len(all))

	start := (f.Page - 1) * f.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeAttendanceRepo) Summarize(ctx context.Context, f attendance.Filter) ([]attendance.SummaryItem, error) {
	counts := make(map[string]int64)
	for _, a := range r.all(f) {
		counts[string(a.Status)+"|"+string(a.WorkMode)]++
	}
	var items []attendance.SummaryItem
	for key, count := range counts {
		parts := strings.SplitN(key, "|", 2)
		items = append(items, attendance.SummaryItem{Status: parts[0], WorkMode: parts[1], Count: count})
	}
	return items, nil
}

func (r *fakeAttendanceRepo) ListAll(ctx context.Context, f attendance.Filter) ([]attendance.Attendance, error) {
	return r.all(f), nil
}

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

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

type fakeNotifier struct {
	events []notifier.Event
}

func (n *fakeNotifier) Publish(event notifier.Event) {
	n.events = append(n.events, event)
}

type fakeFileService struct {
	uploaded  []string
	deleted   []string
	uploadErr error
}

func (f *fakeFileService) UploadProofOfWork(ctx context.Context, attendanceID string, file io.Reader, contentType string, size int64) (string, string, error) {
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}
	name := fmt.Sprintf("proof_%s_1.jpg", attendanceID)
	f.uploaded = append(f.uploaded, name)
	return "http://localhost:8080/uploads/attendance/" + name, name, nil
}

func (f *fakeFileService) DeleteByURL(ctx context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func (f *fakeFileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "http://localhost:8080/uploads/" + path, nil
}

// ==================== HELPERS ====================

type testEnv struct {
	svc      *attendanceService
	repo     *fakeAttendanceRepo
	cfgRepo  *fakeConfigRepo
	notifier *fakeNotifier
	files    *fakeFileService
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func strPtr(s string) *string     { return &s }

func officeConfig() *attendanceconfig.Config {
	return &attendanceconfig.Config{
		ID:              attendanceconfig.SingletonID,
		WorkStartHour:   9,
		WorkEndHour:     17,
		OfficeLat:       floatPtr(-6.2088),
		OfficeLng:       floatPtr(106.8456),
		RadiusMeters:    intPtr(200),
		UseGeofence:     true,
		EnforceGeofence: true,
		AllowWFH:        true,
	}
}

func newTestEnv(t *testing.T, cfg *attendanceconfig.Config, at time.Time) *testEnv {
	t.Helper()

	repo := newFakeAttendanceRepo()
	cfgRepo := &fakeConfigRepo{cfg: cfg}
	userRepo := &fakeUserRepo{users: map[string]user.User{
		"user-1": {ID: "user-1", FullName: "Budi Santoso", Email: "budi@example.com", Role: user.RoleEmployee},
		"admin-1": {ID: "admin-1", FullName: "Admin", Email: "admin@example.com", Role: user.RoleAdmin},
	}}
	n := &fakeNotifier{}
	files := &fakeFileService{}

	svc := NewAttendanceService(
		nil, repo, cfgRepo, userRepo, files, n, nil, 9, 17,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	).(*attendanceService)
	svc.clock = func() time.Time { return at }

	return &testEnv{svc: svc, repo: repo, cfgRepo: cfgRepo, notifier: n, files: files}
}

func employee() user.Identity { return user.Identity{UserID: "user-1", Role: user.RoleEmployee} }
func admin() user.Identity    { return user.Identity{UserID: "admin-1", Role: user.RoleAdmin} }

// ==================== CHECK-IN ====================

func TestAttendanceService_CheckIn_WFOInsideGeofence(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)

	result, err := env.svc.CheckIn(context.Background(), employee(), attendance.CheckInRequest{
		Latitude:  floatPtr(-6.2088),
		Longitude: floatPtr(106.8456),
		Method:    "GPS",
		WorkMode:  "WFO",
	})
	require.NoError(t, err)

	assert.Equal(t, "ONTIME", result.Attendance.Status)
	assert.Equal(t, "WFO", result.WorkMode)
	require.NotNil(t, result.DistanceMeters)
	assert.Equal(t, 0, *result.DistanceMeters)
	assert.Equal(t, "Validasi lokasi berhasil", result.ValidationMessage)
	require.NotNil(t, result.Config)

	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, "attendance_check_in", env.notifier.events[0].Name)
	assert.Equal(t, "Budi Santoso", env.notifier.events[0].Data["userName"])
}

func TestAttendanceService_CheckIn_WFOOutsideGeofenceRejected(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)

	// ~10km south of the office.
	_, err := env.svc.CheckIn(context.Background(), employee(), attendance.CheckInRequest{
		Latitude:  floatPtr(-6.3000),
		Longitude: floatPtr(106.8456),
		Method:    "GPS",
		WorkMode:  "WFO",
	})
	require.Error(t, err)

	var geofenceErr *attendance.GeofenceError
	require.ErrorAs(t, err, &geofenceErr)
	assert.InDelta(t, 10120, geofenceErr.DistanceMeters, 50)
	assert.Empty(t, env.notifier.events)
	assert.Empty(t, env.repo.records)
}

func TestAttendanceService_CheckIn_WFHAlwaysValidOutsideGeofence(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)

	result, err := env.svc.CheckIn(context.Background(), employee(), attendance.CheckInRequest{
		Latitude:  floatPtr(-6.3000),
		Longitude: floatPtr(106.8456),
		Method:    "GPS",
		WorkMode:  "WFH",
	})
	require.NoError(t, err)

	assert.Equal(t, "WFH", result.WorkMode)
	assert.Equal(t, "Mode WFH aktif. Lokasi akan dicatat untuk transparansi.", result.ValidationMessage)
	require.NotNil(t, result.DistanceMeters)
	assert.Contains(t, result.Attendance.Notes, fmt.Sprintf("distance=%dm", *result.DistanceMeters))
}

func TestAttendanceService_CheckIn_DuplicateOpenRejected(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)

	req := attendance.CheckInRequest{
		Latitude:  floatPtr(-6.2088),
		Longitude: floatPtr(106.8456),
		Method:    "GPS",
		WorkMode:  "WFO",
	}

	_, err := env.svc.CheckIn(context.Background(), employee(), req)
	require.NoError(t, err)

	_, err = env.svc.CheckIn(context.Background(), employee(), req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_CheckIn_InvalidWorkMode(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)

	_, err := env.svc.CheckIn(context.Background(), employee(), attendance.CheckInRequest{
		WorkMode: "HYBRID",
		Method:   "GPS",
	})
	require.Error(t, err)
}

func TestAttendanceService_CheckIn_EnforcedWithoutCoordinatesRejected(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	// Enforcement rejects coordinate-less check-ins for every work mode.
	for _, workMode := range []string{"WFO", "WFH"} {
		t.Run(workMode, func(t *testing.T) {
			env := newTestEnv(t, officeConfig(), at)

			_, err := env.svc.CheckIn(context.Background(), employee(), attendance.CheckInRequest{
				Method:   "GPS",
				WorkMode: workMode,
			})
			assert.ErrorIs(t, err, attendance.ErrGPSRequired)
			assert.Empty(t, env.repo.records)
		})
	}
}

func TestAttendanceService_CheckIn_MethodDefaultsToIP(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		method string
		want   string
	}{
		{method: "GPS", want: "GPS"},
		{method: "IP", want: "IP"},
		{method: "", want: "IP"},
		{method: "BROWSER", want: "IP"},
	}

	for _, tt := range tests {
		env := newTestEnv(t, officeConfig(), at)

		result, err := env.svc.CheckIn(context.Background(), employee(), attendance.CheckInRequest{
			Latitude:  floatPtr(-6.2088),
			Longitude: floatPtr(106.8456),
			Method:    tt.method,
			WorkMode:  "WFO",
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, result.Attendance.Method, "method %q", tt.method)
	}
}

func TestAttendanceService_CheckIn_NoConfigFallsBackToDefaults(t *testing.T) {
	at := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	env := newTestEnv(t, nil, at)

	result, err := env.svc.CheckIn(context.Background(), employee(), attendance.CheckInRequest{
		Method:   "GPS",
		WorkMode: "WFO",
	})
	require.NoError(t, err)

	// 08:30 is before the default 9 o'clock start: early arrival is ONTIME.
	assert.Equal(t, "ONTIME", result.Attendance.Status)
	assert.Nil(t, result.Config)
	assert.Nil(t, result.DistanceMeters)
}

func TestAttendanceService_CheckIn_EarlyLeaveAfterWindow(t *testing.T) {
	at := time.Date(2025, 3, 10, 18, 0, 1, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)

	result, err := env.svc.CheckIn(context.Background(), employee(), attendance.CheckInRequest{
		Latitude:  floatPtr(-6.2088),
		Longitude: floatPtr(106.8456),
		Method:    "GPS",
		WorkMode:  "WFO",
	})
	require.NoError(t, err)
	assert.Equal(t, "EARLY_LEAVE", result.Attendance.Status)
}

// ==================== CHECK-OUT ====================

func checkInWFH(t *testing.T, env *testEnv) attendance.CheckInResult {
	t.Helper()
	result, err := env.svc.CheckIn(context.Background(), employee(), attendance.CheckInRequest{
		Latitude:  floatPtr(-6.3000),
		Longitude: floatPtr(106.8456),
		Method:    "GPS",
		WorkMode:  "WFH",
	})
	require.NoError(t, err)
	return result
}

func TestAttendanceService_CheckOut_Success(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	cfg := officeConfig()
	env := newTestEnv(t, cfg, at)

	_, err := env.svc.CheckIn(context.Background(), employee(), attendance.CheckInRequest{
		Latitude:  floatPtr(-6.2088),
		Longitude: floatPtr(106.8456),
		Method:    "GPS",
		WorkMode:  "WFO",
	})
	require.NoError(t, err)

	env.svc.clock = func() time.Time { return time.Date(2025, 3, 10, 16, 45, 0, 0, time.UTC) }

	result, err := env.svc.CheckOut(context.Background(), employee(), attendance.CheckOutRequest{
		Latitude:  floatPtr(-6.2088),
		Longitude: floatPtr(106.8456),
	})
	require.NoError(t, err)

	assert.Equal(t, "ONTIME", result.Status)
	require.NotNil(t, result.Attendance.CheckOutAt)
	assert.Equal(t, "Check-out: 0m dari kantor", result.ValidationMessage)
	assert.Contains(t, result.Attendance.Notes, "; Check-out: 0m dari kantor")
	require.NotNil(t, result.User)
	assert.Equal(t, "Budi Santoso", result.User.FullName)

	require.Len(t, env.notifier.events, 2)
	assert.Equal(t, "attendance_check_out", env.notifier.events[1].Name)
}

func TestAttendanceService_CheckOut_OverwritesStatusAfterWindow(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)

	_, err := env.svc.CheckIn(context.Background(), employee(), attendance.CheckInRequest{
		Latitude:  floatPtr(-6.2088),
		Longitude: floatPtr(106.8456),
		Method:    "GPS",
		WorkMode:  "WFO",
	})
	require.NoError(t, err)

	env.svc.clock = func() time.Time { return time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC) }

	result, err := env.svc.CheckOut(context.Background(), employee(), attendance.CheckOutRequest{
		Latitude:  floatPtr(-6.2088),
		Longitude: floatPtr(106.8456),
	})
	require.NoError(t, err)
	assert.Equal(t, "EARLY_LEAVE", result.Status)
}

func TestAttendanceService_CheckOut_NoOpenRecord(t *testing.T) {
	at := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)

	_, err := env.svc.CheckOut(context.Background(), employee(), attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendanceService_CheckOut_TwiceRejected(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)
	checkInWFH(t, env)

	env.svc.clock = func() time.Time { return time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC) }

	_, err := env.svc.CheckOut(context.Background(), employee(), attendance.CheckOutRequest{})
	require.NoError(t, err)

	_, err = env.svc.CheckOut(context.Background(), employee(), attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendanceService_CheckOut_WFHProofRequired(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	cfg := officeConfig()
	cfg.RequireProofOfWork = true
	env := newTestEnv(t, cfg, at)
	checkInWFH(t, env)

	env.svc.clock = func() time.Time { return time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC) }

	_, err := env.svc.CheckOut(context.Background(), employee(), attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrProofRequired)

	// Supplying both proof fields satisfies the requirement.
	_, err = env.svc.CheckOut(context.Background(), employee(), attendance.CheckOutRequest{
		ProofOfWorkURL:  strPtr("http://localhost:8080/uploads/attendance/proof_x_1.jpg"),
		ProofOfWorkName: strPtr("proof_x_1.jpg"),
	})
	assert.NoError(t, err)
}

func TestAttendanceService_CheckOut_ProofSatisfiedByUploadedFile(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	cfg := officeConfig()
	cfg.RequireProofOfWork = true
	env := newTestEnv(t, cfg, at)
	wfh := checkInWFH(t, env)

	_, err := env.svc.UploadProof(context.Background(), employee(), proofRequest(wfh.Attendance.ID))
	require.NoError(t, err)

	env.svc.clock = func() time.Time { return time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC) }

	// A proof attached earlier via upload-proof counts; the check-out body
	// does not have to repeat it.
	result, err := env.svc.CheckOut(context.Background(), employee(), attendance.CheckOutRequest{})
	require.NoError(t, err)
	require.NotNil(t, result.Attendance.ProofOfWorkURL)
}

// ==================== UPLOAD PROOF ====================

func proofRequest(attendanceID string) attendance.UploadProofRequest {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", "image/jpeg")
	return attendance.UploadProofRequest{
		AttendanceID: attendanceID,
		FileHeader: &multipart.FileHeader{
			Filename: "screenshot.jpg",
			Header:   header,
			Size:     1024,
		},
	}
}

func TestAttendanceService_UploadProof_Success(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)
	wfh := checkInWFH(t, env)

	result, err := env.svc.UploadProof(context.Background(), employee(), proofRequest(wfh.Attendance.ID))
	require.NoError(t, err)

	assert.NotEmpty(t, result.FileURL)
	require.NotNil(t, result.Attendance.ProofOfWorkURL)
	assert.Len(t, env.files.uploaded, 1)
	assert.Empty(t, env.files.deleted)

	// Re-upload replaces the reference and drops the old file.
	_, err = env.svc.UploadProof(context.Background(), employee(), proofRequest(wfh.Attendance.ID))
	require.NoError(t, err)
	assert.Len(t, env.files.deleted, 1)
}

func TestAttendanceService_UploadProof_RejectedUploadKeepsExistingFile(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)
	wfh := checkInWFH(t, env)

	result, err := env.svc.UploadProof(context.Background(), employee(), proofRequest(wfh.Attendance.ID))
	require.NoError(t, err)

	env.files.uploadErr = fmt.Errorf("Format file tidak didukung. Gunakan JPG, PNG, atau WebP")
	_, err = env.svc.UploadProof(context.Background(), employee(), proofRequest(wfh.Attendance.ID))
	require.Error(t, err)

	// The record still points at the first file, and that file was not
	// touched by the failed replacement.
	assert.Empty(t, env.files.deleted)
	record, err := env.repo.GetByID(context.Background(), wfh.Attendance.ID)
	require.NoError(t, err)
	require.NotNil(t, record.ProofOfWorkURL)
	assert.Equal(t, result.FileURL, *record.ProofOfWorkURL)
}

func TestAttendanceService_UploadProof_OwnershipAndModeChecks(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)

	wfh := checkInWFH(t, env)

	// Another user cannot attach proof to this record.
	other := user.Identity{UserID: "user-2", Role: user.RoleEmployee}
	_, err := env.svc.UploadProof(context.Background(), other, proofRequest(wfh.Attendance.ID))
	assert.ErrorIs(t, err, user.ErrForbidden)

	// Unknown record.
	_, err = env.svc.UploadProof(context.Background(), employee(), proofRequest("missing"))
	assert.ErrorIs(t, err, attendance.ErrProofTargetNotFound)
}

func TestAttendanceService_UploadProof_WFORecordRejected(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)

	result, err := env.svc.CheckIn(context.Background(), employee(), attendance.CheckInRequest{
		Latitude:  floatPtr(-6.2088),
		Longitude: floatPtr(106.8456),
		Method:    "GPS",
		WorkMode:  "WFO",
	})
	require.NoError(t, err)

	_, err = env.svc.UploadProof(context.Background(), employee(), proofRequest(result.Attendance.ID))
	assert.ErrorIs(t, err, attendance.ErrProofTargetNotFound)
}

// ==================== HISTORY ====================

func TestAttendanceService_History_NonAdminLimitedToSelf(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)
	checkInWFH(t, env)

	_, err := env.svc.History(context.Background(), employee(), attendance.Filter{UserID: "someone-else"})
	assert.ErrorIs(t, err, user.ErrForbidden)

	result, err := env.svc.History(context.Background(), employee(), attendance.Filter{})
	require.NoError(t, err)
	require.Len(t, result.AttendanceRecords, 1)
	assert.Equal(t, "user-1", result.AttendanceRecords[0].UserID)
	assert.Equal(t, int64(1), result.Pagination.Total)
	assert.Equal(t, 1, result.Pagination.TotalPages)
}

func TestAttendanceService_History_AdminCanQueryOthers(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)
	checkInWFH(t, env)

	result, err := env.svc.History(context.Background(), admin(), attendance.Filter{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, result.AttendanceRecords, 1)

	require.Len(t, result.Summary, 1)
	assert.Equal(t, "ONTIME", result.Summary[0].Status)
	assert.Equal(t, "WFH", result.Summary[0].WorkMode)
	assert.Equal(t, int64(1), result.Summary[0].Count)
}

func TestAttendanceService_History_Pagination(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	env := newTestEnv(t, officeConfig(), at)

	for i := 0; i < 5; i++ {
		env.svc.clock = func() time.Time { return at.Add(time.Duration(i) * time.Minute) }
		checkInWFH(t, env)

		env.svc.clock = func() time.Time { return at.Add(time.Duration(i)*time.Minute + 30*time.Second) }
		_, err := env.svc.CheckOut(context.Background(), employee(), attendance.CheckOutRequest{})
		require.NoError(t, err)
	}

	result, err := env.svc.History(context.Background(), employee(), attendance.Filter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, result.AttendanceRecords, 2)
	assert.Equal(t, int64(5), result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
}
