package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/validator"
)

// ========================================
// PROCESS REQUEST
// ========================================

// AllowedExtensions are the spreadsheet file types accepted for upload.
var AllowedExtensions = []string{".xlsx", ".xlsm", ".xls"}

// Upload is one spreadsheet received from the client.
type Upload struct {
	Filename string
	Size     int64
	Data     []byte
}

type ProcessRequest struct {
	Attendance *Upload
	Schedule   *Upload

	// MaxSize caps each upload in bytes; zero disables the check.
	MaxSize int64
}

func (r *ProcessRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateUpload("attendance", "attendance file", r.Attendance, r.MaxSize)...)
	errs = append(errs, validateUpload("schedule", "schedule file", r.Schedule, r.MaxSize)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateUpload(field, label string, upload *Upload, maxSize int64) validator.ValidationErrors {
	if upload == nil || len(upload.Data) == 0 {
		return validator.ValidationErrors{{
			Field:   field,
			Message: label + " is required",
		}}
	}

	var errs validator.ValidationErrors
	if upload.Filename != "" && !validator.HasExtension(upload.Filename, AllowedExtensions) {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: "invalid file type: only xlsx, xlsm, xls allowed",
		})
	}

	if maxSize > 0 && upload.Size > maxSize {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s size must not exceed %dMB", label, maxSize>>20),
		})
	}
	return errs
}

// ========================================
// PROCESS RESULT
// ========================================

// ProcessResult is everything one reconciliation run produces.
type ProcessResult struct {
	RunID       string
	GeneratedAt time.Time

	Records   []TardinessRecord
	Tardiness TardinessReport
	Hours     []DailyHours

	AttendanceRows        int
	DroppedAttendanceRows int
	ScheduleEntries       int
}

type ProcessResponse struct {
	RunID       string                    `json:"run_id"`
	GeneratedAt string                    `json:"generated_at"`
	Summary     RunSummary                `json:"summary"`
	Tardiness   Table                     `json:"tardiness"`
	Hours       Table                     `json:"hours"`
	Records     []TardinessRecordResponse `json:"records"`
}

type RunSummary struct {
	AttendanceRows        int `json:"attendance_rows"`
	DroppedAttendanceRows int `json:"dropped_attendance_rows"`
	ScheduleEntries       int `json:"schedule_entries"`
	Employees             int `json:"employees"`
	Dates                 int `json:"dates"`
}

type TardinessRecordResponse struct {
	EmployeeID   string    `json:"dni"`
	EmployeeName string    `json:"nombre"`
	Date         string    `json:"fecha"`
	Shift        string    `json:"horario"`
	Tardiness    Tardiness `json:"tardanza_min"`
}

func NewProcessResponse(result ProcessResult) ProcessResponse {
	records := make([]TardinessRecordResponse, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, TardinessRecordResponse{
			EmployeeID:   rec.EmployeeID,
			EmployeeName: rec.EmployeeName,
			Date:         FormatDate(rec.Date),
			Shift:        rec.ShiftDescriptor,
			Tardiness:    rec.Tardiness,
		})
	}

	return ProcessResponse{
		RunID:       result.RunID,
		GeneratedAt: result.GeneratedAt.Format(time.RFC3339),
		Summary: RunSummary{
			AttendanceRows:        result.AttendanceRows,
			DroppedAttendanceRows: result.DroppedAttendanceRows,
			ScheduleEntries:       result.ScheduleEntries,
			Employees:             len(result.Tardiness.Rows),
			Dates:                 len(result.Tardiness.Dates),
		},
		Tardiness: result.Tardiness.Table(),
		Hours:     HoursTable(result.Hours),
		Records:   records,
	}
}
