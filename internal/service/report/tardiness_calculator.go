package report

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/report"
	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/schedule"
)

// dayKey identifies one employee on one calendar date.
type dayKey struct {
	employeeID string
	date       time.Time
}

type TardinessCalculator struct {
}

func NewTardinessCalculator() *TardinessCalculator {
	return &TardinessCalculator{}
}

// Calculate returns one record per schedule entry, in schedule order, and
// the pivoted report built from them over the schedule's date columns.
func (c *TardinessCalculator) Calculate(planned schedule.LoadResult, events []attendance.Event) ([]report.TardinessRecord, report.TardinessReport) {
	firstPunches := c.firstPunches(events)

	records := make([]report.TardinessRecord, 0, len(planned.Entries))
	for _, entry := range planned.Entries {
		var punch *time.Time
		if ev, ok := firstPunches[dayKey{employeeID: entry.EmployeeID, date: entry.Date}]; ok {
			punch = &ev.Timestamp
		}
		records = append(records, report.TardinessRecord{
			EmployeeID:      entry.EmployeeID,
			EmployeeName:    entry.EmployeeName,
			Date:            entry.Date,
			ShiftDescriptor: entry.ShiftDescriptor,
			Tardiness:       c.tardiness(entry.Shift, punch),
		})
	}

	return records, c.Pivot(planned.Dates, records)
}

// firstPunches indexes the earliest punch per employee and date. On equal
// timestamps the event from the lower source row is kept.
func (c *TardinessCalculator) firstPunches(events []attendance.Event) map[dayKey]attendance.Event {
	first := make(map[dayKey]attendance.Event)
	for _, ev := range events {
		key := dayKey{employeeID: ev.EmployeeID, date: ev.Date}
		if current, ok := first[key]; ok && !earlier(ev, current) {
			continue
		}
		first[key] = ev
	}
	return first
}

func earlier(a, b attendance.Event) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	return a.Row < b.Row
}

// tardiness applies the decision table: rest day, then unknown start, then
// missing punch, then the clamped minute delta.
func (c *TardinessCalculator) tardiness(shift schedule.Shift, punch *time.Time) report.Tardiness {
	switch {
	case shift.IsRestDay:
		return report.RestDay
	case shift.Start == nil:
		return report.NoData
	case punch == nil:
		return report.NoData
	}

	punchMinutes := punch.Hour()*60 + punch.Minute()
	return report.LateBy(punchMinutes - shift.Start.Minutes())
}

// Pivot lays records out one row per (employee id, name) in first-seen order
// and one column per distinct date, ascending. Columns cover the given dates
// plus any date a record carries, so a schedule without employee rows still
// yields its date columns. If a pair appears twice for the same date the
// first record wins.
func (c *TardinessCalculator) Pivot(dates []time.Time, records []report.TardinessRecord) report.TardinessReport {
	type rowKey struct {
		employeeID string
		name       string
	}

	dateSet := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		dateSet[d] = struct{}{}
	}
	for _, rec := range records {
		dateSet[rec.Date] = struct{}{}
	}
	columns := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		columns = append(columns, d)
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i].Before(columns[j]) })

	dateIndex := make(map[time.Time]int, len(columns))
	for i, d := range columns {
		dateIndex[d] = i
	}

	rowIndex := make(map[rowKey]int)
	var rows []report.TardinessRow
	for _, rec := range records {
		key := rowKey{employeeID: rec.EmployeeID, name: rec.EmployeeName}
		i, ok := rowIndex[key]
		if !ok {
			i = len(rows)
			rowIndex[key] = i
			rows = append(rows, report.TardinessRow{
				EmployeeID:   rec.EmployeeID,
				EmployeeName: rec.EmployeeName,
				Cells:        make([]*report.Tardiness, len(columns)),
			})
		}

		col := dateIndex[rec.Date]
		if rows[i].Cells[col] != nil {
			continue
		}
		value := rec.Tardiness
		rows[i].Cells[col] = &value
		if minutes, numeric := value.Value(); numeric {
			rows[i].Total += minutes
		}
	}

	return report.TardinessReport{Dates: columns, Rows: rows}
}
