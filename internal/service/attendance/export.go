package attendance

import (
	"context"
	"fmt"
	"strings"

	"github.com/hadirly/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirly/attendance-backend-go/internal/domain/user"
	"github.com/hadirly/attendance-backend-go/internal/pkg/utils"
)

var exportHeaders = []string{
	"Tanggal",
	"Nama Karyawan",
	"Email",
	"NIK",
	"Mode Kerja",
	"Check In",
	"Check Out",
	"Status",
	"Lokasi Check In",
	"Lokasi Check Out",
	"Bukti Kerja",
	"Catatan",
}

// ExportCSV implements attendance.Service. The report quotes every cell,
// which encoding/csv cannot be asked to do, so rows are rendered by hand.
func (s *attendanceService) ExportCSV(ctx context.Context, identity user.Identity, f attendance.Filter) (attendance.ExportResult, error) {
	if !identity.IsAdmin() {
		return attendance.ExportResult{}, user.ErrForbidden
	}

	if err := f.Validate(); err != nil {
		return attendance.ExportResult{}, err
	}

	records, err := s.repo.ListAll(ctx, f)
	if err != nil {
		return attendance.ExportResult{}, err
	}

	var b strings.Builder
	writeCSVRow(&b, exportHeaders)

	for _, record := range records {
		writeCSVRow(&b, exportRow(record))
	}

	filename := fmt.Sprintf("attendance_report_%s.csv", s.now().Format("2006-01-02"))

	return attendance.ExportResult{
		Filename: filename,
		Content:  []byte(b.String()),
	}, nil
}

func exportRow(record attendance.Attendance) []string {
	name := ""
	if record.UserName != nil {
		name = *record.UserName
	}
	email := ""
	if record.UserEmail != nil {
		email = *record.UserEmail
	}
	nik := ""
	if record.UserNIK != nil {
		nik = *record.UserNIK
	}

	checkOut := ""
	if record.CheckOutAt != nil {
		checkOut = utils.FormatDateTimeID(*record.CheckOutAt)
	}

	hasProof := "Tidak"
	if record.ProofOfWorkURL != nil {
		hasProof = "Ya"
	}

	return []string{
		utils.FormatDateID(record.CheckInAt),
		name,
		email,
		nik,
		string(record.WorkMode),
		utils.FormatDateTimeID(record.CheckInAt),
		checkOut,
		string(record.Status),
		formatLocation(record.LatitudeIn, record.LongitudeIn),
		formatLocation(record.LatitudeOut, record.LongitudeOut),
		hasProof,
		record.Notes,
	}
}

func formatLocation(lat, lon *float64) string {
	if lat == nil || lon == nil {
		return ""
	}
	return fmt.Sprintf("%v, %v", *lat, *lon)
}

// writeCSVRow renders one CSV line with every field double-quoted and inner
// quotes doubled.
func writeCSVRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
