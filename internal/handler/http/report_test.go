package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-reconciler/internal/config"
	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/report"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/metrics"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/spreadsheet"
	attendanceService "github.com/cmlabs-hris/attendance-reconciler/internal/service/attendance"
	reportService "github.com/cmlabs-hris/attendance-reconciler/internal/service/report"
	scheduleService "github.com/cmlabs-hris/attendance-reconciler/internal/service/schedule"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

type upload struct {
	field    string
	filename string
	data     []byte
}

func multipartBody(t *testing.T, uploads ...upload) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, u := range uploads {
		part, err := writer.CreateFormFile(u.field, u.filename)
		require.NoError(t, err)
		_, err = part.Write(u.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	cfg := &config.Config{
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Upload:    config.UploadConfig{MaxSizeMB: 1},
		RateLimit: config.RateLimitConfig{Enabled: false},
		Report:    config.ReportConfig{Filename: "reporte_rrhh_completo.xlsx"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	svc := reportService.NewReportService(attendanceService.NewAttendanceLoader(), scheduleService.NewScheduleLoader(), m, logger)
	handler := NewReportHandler(svc, cfg.Upload.MaxSizeBytes(), cfg.Report.Filename)
	return NewRouter(cfg, logger, m.Handler(), handler)
}

func fixtures(t *testing.T) (upload, upload) {
	att := buildWorkbook(t, [][]any{
		{"NO.", "DEPARTAMENTO", "NOMBRE", "FECHA/HORA", "ESTADO"},
		{"E1", "VENTAS", "Ana", "10/01/2024 08:15:00", "C/In"},
		{"E1", "VENTAS", "Ana", "10/01/2024 17:00:00", "C/Out"},
	})
	sch := buildWorkbook(t, [][]any{
		{"DNI", "NOMBRE Y APELLIDO", "ID", "10/01/2024", "11/01/2024"},
		{"E1", "Ana", "1", "08:00-17:00", "DESCANSO"},
		{"E2", "Luis", "2", "09:00-18:00", "09:00-18:00"},
	})
	return upload{field: "attendance", filename: "marcaciones.xlsx", data: att},
		upload{field: "schedule", filename: "horario.xlsx", data: sch}
}

type envelope struct {
	Success bool `json:"success"`
	Data    struct {
		RunID     string            `json:"run_id"`
		Summary   report.RunSummary `json:"summary"`
		Tardiness report.Table      `json:"tardiness"`
		Hours     report.Table      `json:"hours"`
		Records   []map[string]any  `json:"records"`
	} `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func TestReportHandler_Tardiness_Success(t *testing.T) {
	// Setup
	router := newTestRouter(t)
	att, sch := fixtures(t)
	body, contentType := multipartBody(t, att, sch)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/tardiness", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.RunID)

	assert.Equal(t, []string{"DNI", "NOMBRE", "2024-01-10", "2024-01-11", "TOTAL"}, resp.Data.Tardiness.Columns)
	require.Len(t, resp.Data.Tardiness.Rows, 2)
	// JSON numbers decode as float64
	assert.Equal(t, []any{"E1", "Ana", 15.0, 0.0, 15.0}, resp.Data.Tardiness.Rows[0])
	assert.Equal(t, []any{"E2", "Luis", "-", "-", 0.0}, resp.Data.Tardiness.Rows[1])

	require.Len(t, resp.Data.Hours.Rows, 1)
	assert.Equal(t, "08:45:00", resp.Data.Hours.Rows[0][5])
	require.Len(t, resp.Data.Records, 4)
	assert.Equal(t, 15.0, resp.Data.Records[0]["tardanza_min"])
	assert.Equal(t, "-", resp.Data.Records[2]["tardanza_min"])
	assert.Equal(t, 2, resp.Data.Summary.Employees)
}

func TestReportHandler_Tardiness_MissingUpload(t *testing.T) {
	router := newTestRouter(t)
	att, _ := fixtures(t)
	body, contentType := multipartBody(t, att)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/tardiness", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "schedule file is required", resp.Error.Details["schedule"])
}

func TestReportHandler_Tardiness_SchemaError(t *testing.T) {
	router := newTestRouter(t)
	att, _ := fixtures(t)
	badSchedule := buildWorkbook(t, [][]any{
		{"DNI", "NOMBRE", "10/01/2024"},
		{"E1", "Ana", "08:00-17:00"},
	})
	body, contentType := multipartBody(t, att, upload{field: "schedule", filename: "horario.xlsx", data: badSchedule})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/tardiness", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SCHEMA_ERROR", resp.Error.Code)
	assert.Equal(t, "NOMBRE Y APELLIDO, ID", resp.Error.Details["missing"])
}

func TestReportHandler_Tardiness_NotMultipart(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/tardiness", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandler_ExportTardiness(t *testing.T) {
	// Setup
	router := newTestRouter(t)
	att, sch := fixtures(t)
	body, contentType := multipartBody(t, att, sch)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/tardiness/export", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, spreadsheet.ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="reporte_rrhh_completo.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, rec.Header().Get("X-Run-ID"))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{report.SheetTardiness, report.SheetHours}, f.GetSheetList())
}

func TestRouter_MetricsAndHeartbeat(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
