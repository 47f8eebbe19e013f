package report

import (
	"context"
	"io"
)

// ReportService runs tardiness and worked-hours reconciliation.
type ReportService interface {
	// Process loads both uploads and computes every result table. Structural
	// problems (missing columns, no date columns, unreadable workbook) abort
	// the whole run.
	Process(ctx context.Context, req ProcessRequest) (ProcessResult, error)

	// ExportWorkbook writes the two-sheet result workbook to w.
	ExportWorkbook(w io.Writer, result ProcessResult) error
}
