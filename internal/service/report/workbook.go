package report

import (
	"io"

	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/report"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/spreadsheet"
)

// WriteWorkbook writes the tardiness pivot and the hours table as the two
// sheets of one xlsx workbook.
func WriteWorkbook(w io.Writer, result report.ProcessResult) error {
	return spreadsheet.WriteWorkbook(w,
		tableSheet(result.Tardiness.Table()),
		tableSheet(report.HoursTable(result.Hours)),
	)
}

func tableSheet(table report.Table) spreadsheet.Sheet {
	return spreadsheet.Sheet{
		Name:    table.Name,
		Columns: table.Columns,
		Rows:    table.Rows,
	}
}
