package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/report"
	"github.com/cmlabs-hris/attendance-reconciler/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/spreadsheet"
)

// Multipart field names of the two uploads.
const (
	fieldAttendance = "attendance"
	fieldSchedule   = "schedule"
)

type ReportHandler interface {
	// Tardiness runs a reconciliation and returns the result tables as JSON.
	Tardiness(w http.ResponseWriter, r *http.Request)

	// ExportTardiness runs a reconciliation and returns the result workbook.
	ExportTardiness(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	maxUploadSize int64
	filename      string
}

func NewReportHandler(reportService report.ReportService, maxUploadSize int64, filename string) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		maxUploadSize: maxUploadSize,
		filename:      filename,
	}
}

// Tardiness handles POST /reports/tardiness
func (h *reportHandlerImpl) Tardiness(w http.ResponseWriter, r *http.Request) {
	result, ok := h.process(w, r)
	if !ok {
		return
	}

	response.Success(w, report.NewProcessResponse(result))
}

// ExportTardiness handles POST /reports/tardiness/export
func (h *reportHandlerImpl) ExportTardiness(w http.ResponseWriter, r *http.Request) {
	result, ok := h.process(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.ExportWorkbook(&buf, result); err != nil {
		slog.Error("Failed to export workbook", "run_id", result.RunID, "error", err)
		response.InternalServerError(w, "Failed to generate report workbook")
		return
	}

	w.Header().Set("Content-Type", spreadsheet.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.filename))
	w.Header().Set("X-Run-ID", result.RunID)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("Failed to write workbook response", "run_id", result.RunID, "error", err)
	}
}

// process parses both uploads and runs the service, writing the error
// response itself when it fails.
func (h *reportHandlerImpl) process(w http.ResponseWriter, r *http.Request) (report.ProcessResult, bool) {
	// Two uploads plus multipart overhead
	r.Body = http.MaxBytesReader(w, r.Body, 2*h.maxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RequestEntityTooLarge(w, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
			return report.ProcessResult{}, false
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return report.ProcessResult{}, false
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	attendanceUpload, err := readUpload(r, fieldAttendance)
	if err != nil {
		slog.Error("Failed to read upload", "field", fieldAttendance, "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return report.ProcessResult{}, false
	}
	scheduleUpload, err := readUpload(r, fieldSchedule)
	if err != nil {
		slog.Error("Failed to read upload", "field", fieldSchedule, "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return report.ProcessResult{}, false
	}

	req := report.ProcessRequest{
		Attendance: attendanceUpload,
		Schedule:   scheduleUpload,
		MaxSize:    h.maxUploadSize,
	}

	result, err := h.reportService.Process(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return report.ProcessResult{}, false
	}
	return result, true
}

// readUpload returns nil without error when the field is absent, leaving the
// required-file check to request validation.
func readUpload(r *http.Request, field string) (*report.Upload, error) {
	file, fileHeader, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &report.Upload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Data:     data,
	}, nil
}
