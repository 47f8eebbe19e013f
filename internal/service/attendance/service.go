package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/tabular"
)

const source = "attendance"

type AttendanceLoaderImpl struct{}

func NewAttendanceLoader() attendance.AttendanceLoader {
	return &AttendanceLoaderImpl{}
}

// Load implements attendance.AttendanceLoader.
func (l *AttendanceLoaderImpl) Load(ctx context.Context, data []byte) (attendance.LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return attendance.LoadResult{}, err
	}

	table, err := spreadsheet.Read(data)
	if err != nil {
		return attendance.LoadResult{}, fmt.Errorf("failed to read attendance file: %w", err)
	}

	columns := tabular.Rename(tabular.Normalize(table.Header), attendance.ColumnAliases)
	if err := tabular.Require(source, columns, attendance.RequiredColumns); err != nil {
		return attendance.LoadResult{}, err
	}
	idx := tabular.Index(columns)

	result := attendance.LoadResult{
		Events:    make([]attendance.Event, 0, len(table.Rows)),
		TotalRows: len(table.Rows),
	}
	for i, row := range table.Rows {
		raw := tabular.Cell(row, idx[attendance.ColumnTimestamp])
		ts, ok := tabular.ParseDateTime(raw)
		if !ok {
			result.DroppedRows++
			slog.Debug("Dropped attendance row with unparsable timestamp", "row", i, "value", raw)
			continue
		}

		result.Events = append(result.Events, attendance.Event{
			EmployeeID:   tabular.Identifier(tabular.Cell(row, idx[attendance.ColumnEmployeeID])),
			EmployeeName: tabular.Cell(row, idx[attendance.ColumnName]),
			Department:   tabular.Cell(row, idx[attendance.ColumnDepartment]),
			Timestamp:    ts,
			Status:       tabular.Cell(row, idx[attendance.ColumnStatus]),
			Date:         tabular.DateOf(ts),
			Row:          i,
		})
	}

	if result.DroppedRows > 0 {
		slog.Warn("Dropped attendance rows with unparsable timestamps", "dropped", result.DroppedRows, "total", result.TotalRows)
	}
	return result, nil
}
