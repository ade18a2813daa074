package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/worksync/session-agent/internal/core/domain"
)

var attendanceCSVHeader = []string{"Employee Name", "Email", "Date", "Time", "Status"}

// AttendanceExport is a rendered CSV download.
type AttendanceExport struct {
	Filename string
	Content  []byte
	Rows     int
}

// ExportAttendanceCSV renders records as the attendance sheet. Every data
// cell is quoted; the header row is not. selectedDate only names the file.
// Timestamps are shown in loc, or UTC when loc is nil.
func ExportAttendanceCSV(records []domain.AttendanceRecord, selectedDate string, loc *time.Location) (*AttendanceExport, error) {
	if len(records) == 0 {
		return nil, domain.ErrNoAttendanceData
	}
	if loc == nil {
		loc = time.UTC
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(attendanceCSVHeader, ","))
	for _, r := range records {
		name, email := "Unknown", "N/A"
		if r.User != nil {
			if r.User.Name != "" {
				name = r.User.Name
			}
			if r.User.Email != "" {
				email = r.User.Email
			}
		}
		var day, clock string
		if !r.Date.IsZero() {
			t := r.Date.In(loc)
			day = t.Format("02/01/2006")
			clock = t.Format("3:04:05 PM")
		}
		lines = append(lines, quoteRow(name, email, day, clock, string(r.Status)))
	}

	return &AttendanceExport{
		Filename: AttendanceExportFilename(selectedDate),
		Content:  []byte(strings.Join(lines, "\n")),
		Rows:     len(records),
	}, nil
}

// AttendanceExportFilename is attendance_<date>.csv, or attendance_all.csv
// without a date filter.
func AttendanceExportFilename(selectedDate string) string {
	if selectedDate == "" {
		selectedDate = "all"
	}
	return fmt.Sprintf("attendance_%s.csv", selectedDate)
}

func quoteRow(cells ...string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
