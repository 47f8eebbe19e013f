// Command reconcile runs one tardiness and worked-hours reconciliation over an
// attendance export and a schedule sheet and writes the result workbook.
//
//	reconcile -attendance marcaciones.xlsx -schedule horario.xlsx -out reporte.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/report"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/logger"
	attendanceService "github.com/cmlabs-hris/attendance-reconciler/internal/service/attendance"
	reportService "github.com/cmlabs-hris/attendance-reconciler/internal/service/report"
	scheduleService "github.com/cmlabs-hris/attendance-reconciler/internal/service/schedule"
)

func main() {
	attendancePath := flag.String("attendance", "", "attendance export (.xlsx, .xlsm or .xls)")
	schedulePath := flag.String("schedule", "", "schedule sheet (.xlsx, .xlsm or .xls)")
	outPath := flag.String("out", "reporte_rrhh_completo.xlsx", "output workbook")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	if err := run(context.Background(), *attendancePath, *schedulePath, *outPath, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "reconcile:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, attendancePath, schedulePath, outPath, logLevel string) error {
	log := logger.Setup(os.Stderr, logger.Options{
		App:     "reconcile",
		Version: "v1.0.0",
		Env:     "cli",
		Level:   logLevel,
	})

	attendanceUpload, err := readUpload(attendancePath)
	if err != nil {
		return err
	}
	scheduleUpload, err := readUpload(schedulePath)
	if err != nil {
		return err
	}

	svc := reportService.NewReportService(
		attendanceService.NewAttendanceLoader(),
		scheduleService.NewScheduleLoader(),
		nil,
		log,
	)

	result, err := svc.Process(ctx, report.ProcessRequest{
		Attendance: attendanceUpload,
		Schedule:   scheduleUpload,
	})
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	if err := svc.ExportWorkbook(out, result); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	fmt.Printf("%s: %d employees, %d dates, %d worked-hour rows, %d attendance rows dropped\n",
		outPath, len(result.Tardiness.Rows), len(result.Tardiness.Dates), len(result.Hours), result.DroppedAttendanceRows)
	return nil
}

// readUpload returns nil for an empty path so validation reports the missing file.
func readUpload(path string) (*report.Upload, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &report.Upload{
		Filename: filepath.Base(path),
		Size:     int64(len(data)),
		Data:     data,
	}, nil
}
