package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/report"
	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/metrics"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/tabular"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	attendanceLoader attendance.AttendanceLoader
	scheduleLoader   schedule.ScheduleLoader
	tardiness        *TardinessCalculator
	hours            *HoursCalculator
	metrics          *metrics.Metrics
	logger           *slog.Logger
	now              func() time.Time
}

func NewReportService(
	attendanceLoader attendance.AttendanceLoader,
	scheduleLoader schedule.ScheduleLoader,
	m *metrics.Metrics,
	logger *slog.Logger,
) report.ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportServiceImpl{
		attendanceLoader: attendanceLoader,
		scheduleLoader:   scheduleLoader,
		tardiness:        NewTardinessCalculator(),
		hours:            NewHoursCalculator(),
		metrics:          m,
		logger:           logger,
		now:              time.Now,
	}
}

// Process implements report.ReportService.
func (s *ReportServiceImpl) Process(ctx context.Context, req report.ProcessRequest) (report.ProcessResult, error) {
	if err := req.Validate(); err != nil {
		return report.ProcessResult{}, err
	}

	started := s.now()
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)

	var (
		loaded  attendance.LoadResult
		planned schedule.LoadResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		loaded, err = s.attendanceLoader.Load(gctx, req.Attendance.Data)
		return err
	})
	g.Go(func() error {
		var err error
		planned, err = s.scheduleLoader.Load(gctx, req.Schedule.Data)
		return err
	})
	if err := g.Wait(); err != nil {
		outcome := classifyOutcome(err)
		s.observe(outcome, started)
		logger.Warn("Report run failed", "outcome", outcome, "error", err)
		return report.ProcessResult{}, err
	}

	records, pivot := s.tardiness.Calculate(planned, loaded.Events)
	hours := s.hours.Calculate(loaded.Events)

	result := report.ProcessResult{
		RunID:                 runID,
		GeneratedAt:           started.UTC(),
		Records:               records,
		Tardiness:             pivot,
		Hours:                 hours,
		AttendanceRows:        loaded.TotalRows,
		DroppedAttendanceRows: loaded.DroppedRows,
		ScheduleEntries:       len(planned.Entries),
	}

	s.observe(metrics.OutcomeSuccess, started)
	if s.metrics != nil {
		s.metrics.AddDroppedRows(loaded.DroppedRows)
		for kind, n := range countKinds(records) {
			s.metrics.AddTardinessCells(kind.String(), n)
		}
	}

	logger.Info("Report run completed",
		"attendance_rows", loaded.TotalRows,
		"dropped_rows", loaded.DroppedRows,
		"schedule_entries", len(planned.Entries),
		"employees", len(pivot.Rows),
		"dates", len(pivot.Dates),
		"hours_rows", len(hours),
		"elapsed", s.now().Sub(started).String(),
	)
	return result, nil
}

// ExportWorkbook implements report.ReportService.
func (s *ReportServiceImpl) ExportWorkbook(w io.Writer, result report.ProcessResult) error {
	return WriteWorkbook(w, result)
}

func (s *ReportServiceImpl) observe(outcome string, started time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveRun(outcome, s.now().Sub(started))
}

func classifyOutcome(err error) string {
	var schemaErr *tabular.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return metrics.OutcomeSchemaError
	case errors.Is(err, schedule.ErrNoDateColumns),
		errors.Is(err, spreadsheet.ErrUnsupportedFormat),
		errors.Is(err, spreadsheet.ErrNoWorksheet),
		errors.Is(err, spreadsheet.ErrEmptyWorksheet):
		return metrics.OutcomeFormatError
	default:
		return metrics.OutcomeError
	}
}

func countKinds(records []report.TardinessRecord) map[report.TardinessKind]int {
	counts := make(map[report.TardinessKind]int)
	for _, rec := range records {
		counts[rec.Tardiness.Kind]++
	}
	return counts
}
