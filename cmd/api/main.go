package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/attendance-reconciler/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-reconciler/internal/handler/http"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/logger"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/metrics"
	attendanceService "github.com/cmlabs-hris/attendance-reconciler/internal/service/attendance"
	reportService "github.com/cmlabs-hris/attendance-reconciler/internal/service/report"
	scheduleService "github.com/cmlabs-hris/attendance-reconciler/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.Setup(os.Stdout, logger.Options{
		App:     cfg.App.Name,
		Version: cfg.App.Version,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})

	appMetrics := metrics.New()

	attendanceLoader := attendanceService.NewAttendanceLoader()
	scheduleLoader := scheduleService.NewScheduleLoader()
	reportSvc := reportService.NewReportService(attendanceLoader, scheduleLoader, appMetrics, log)

	reportHandler := appHTTP.NewReportHandler(reportSvc, cfg.Upload.MaxSizeBytes(), cfg.Report.Filename)

	router := appHTTP.NewRouter(cfg, log, appMetrics.Handler(), reportHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:              port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Server running", "addr", "http://localhost"+port)
	if err := server.ListenAndServe(); err != nil {
		log.Error("Server error", "error", err)
		os.Exit(1)
	}
}
