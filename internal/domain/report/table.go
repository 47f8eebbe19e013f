package report

import (
	"fmt"
	"time"
)

// Sheet names of the exported workbook.
const (
	SheetTardiness = "Tardanzas"
	SheetHours     = "Horas_Trabajadas"
)

// Result table columns.
const (
	ColumnEmployeeID     = "DNI"
	ColumnEmployeeName   = "NOMBRE"
	ColumnDate           = "FECHA"
	ColumnShift          = "HORARIO"
	ColumnTardiness      = "TARDANZA (min)"
	ColumnTotal          = "TOTAL"
	ColumnEntry          = "ENTRADA"
	ColumnExit           = "SALIDA"
	ColumnWorked         = "HORAS_TRABAJADAS"
	ColumnBreakStart     = "INICIO_REFRIGERIO"
	ColumnBreakEnd       = "FIN_REFRIGERIO"
	ColumnBreakDuration  = "DURACION_REFRIGERIO"
	dateLayout           = "2006-01-02"
	clockLayout          = "15:04:05"
	missingClockSentinel = "-"
)

// Table lays the report out as [DNI, NOMBRE, dates..., TOTAL]. Blank cells are nil.
func (r TardinessReport) Table() Table {
	columns := make([]string, 0, len(r.Dates)+3)
	columns = append(columns, ColumnEmployeeID, ColumnEmployeeName)
	for _, date := range r.Dates {
		columns = append(columns, FormatDate(date))
	}
	columns = append(columns, ColumnTotal)

	rows := make([][]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		values := make([]any, 0, len(columns))
		values = append(values, row.EmployeeID, row.EmployeeName)
		for _, cell := range row.Cells {
			if cell == nil {
				values = append(values, nil)
				continue
			}
			values = append(values, cell.Cell())
		}
		values = append(values, row.Total)
		rows = append(rows, values)
	}

	return Table{Name: SheetTardiness, Columns: columns, Rows: rows}
}

// HoursTable lays daily hours out as the worked-hours sheet.
func HoursTable(records []DailyHours) Table {
	columns := []string{
		ColumnEmployeeID,
		ColumnEmployeeName,
		ColumnDate,
		ColumnEntry,
		ColumnExit,
		ColumnWorked,
		ColumnBreakStart,
		ColumnBreakEnd,
		ColumnBreakDuration,
	}

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []any{
			rec.EmployeeID,
			rec.EmployeeName,
			FormatDate(rec.Date),
			FormatClock(rec.Entry),
			FormatClock(rec.Exit),
			FormatDuration(rec.Worked),
			formatOptionalClock(rec.BreakStart),
			formatOptionalClock(rec.BreakEnd),
			FormatDuration(rec.Break),
		})
	}

	return Table{Name: SheetHours, Columns: columns, Rows: rows}
}

// FormatDuration renders d as zero-padded HH:MM:SS. Negative durations render as 00:00:00.
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// FormatClock renders the time of day of t as HH:MM:SS.
func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatOptionalClock(t *time.Time) string {
	if t == nil {
		return missingClockSentinel
	}
	return FormatClock(*t)
}
