package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/tabular"
)

const source = "schedule"

type ScheduleLoaderImpl struct{}

func NewScheduleLoader() schedule.ScheduleLoader {
	return &ScheduleLoaderImpl{}
}

// Load implements schedule.ScheduleLoader. The wide table (one column per
// date) is melted into one Entry per employee and date, row-major.
func (l *ScheduleLoaderImpl) Load(ctx context.Context, data []byte) (schedule.LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return schedule.LoadResult{}, err
	}

	table, err := spreadsheet.Read(data)
	if err != nil {
		return schedule.LoadResult{}, fmt.Errorf("failed to read schedule file: %w", err)
	}

	columns := tabular.Normalize(table.Header)
	if err := tabular.Require(source, columns, schedule.RequiredColumns); err != nil {
		return schedule.LoadResult{}, err
	}

	dateColumns := tabular.ClassifyDateColumns(columns, schedule.RequiredColumns...)
	if len(dateColumns) == 0 {
		return schedule.LoadResult{}, schedule.ErrNoDateColumns
	}
	idx := tabular.Index(columns)

	dates := make([]time.Time, 0, len(dateColumns))
	for _, col := range dateColumns {
		dates = append(dates, col.Date)
	}

	entries := make([]schedule.Entry, 0, len(table.Rows)*len(dateColumns))
	for _, row := range table.Rows {
		employeeID := tabular.Identifier(tabular.Cell(row, idx[schedule.ColumnEmployeeID]))
		name := tabular.Cell(row, idx[schedule.ColumnFullName])
		scheduleID := tabular.Cell(row, idx[schedule.ColumnScheduleID])

		for _, col := range dateColumns {
			descriptor := tabular.Cell(row, col.Index)
			entries = append(entries, schedule.Entry{
				EmployeeID:      employeeID,
				EmployeeName:    name,
				ScheduleID:      scheduleID,
				Date:            col.Date,
				ShiftDescriptor: descriptor,
				Shift:           schedule.ParseShift(descriptor),
			})
		}
	}

	slog.Debug("Loaded schedule", "employees", len(table.Rows), "dates", len(dateColumns), "entries", len(entries))
	return schedule.LoadResult{Dates: dates, Entries: entries}, nil
}
