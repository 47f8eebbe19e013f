package report

import (
	"sort"

	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reconciler/internal/domain/report"
)

// minBreakPunches is the punch count from which the second and third
// punches of a day are read as the break window.
const minBreakPunches = 4

type HoursCalculator struct {
}

func NewHoursCalculator() *HoursCalculator {
	return &HoursCalculator{}
}

// Calculate derives one DailyHours per employee and date, ordered by
// employee id and then date.
func (c *HoursCalculator) Calculate(events []attendance.Event) []report.DailyHours {
	groups := make(map[dayKey][]attendance.Event)
	var keys []dayKey
	for _, ev := range events {
		key := dayKey{employeeID: ev.EmployeeID, date: ev.Date}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], ev)
	}

	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].employeeID != keys[j].employeeID {
			return keys[i].employeeID < keys[j].employeeID
		}
		return keys[i].date.Before(keys[j].date)
	})

	records := make([]report.DailyHours, 0, len(keys))
	for _, key := range keys {
		records = append(records, c.daily(groups[key]))
	}
	return records
}

func (c *HoursCalculator) daily(punches []attendance.Event) report.DailyHours {
	sort.SliceStable(punches, func(i, j int) bool {
		return punches[i].Timestamp.Before(punches[j].Timestamp)
	})

	first := punches[0]
	last := punches[len(punches)-1]
	rec := report.DailyHours{
		EmployeeID:   first.EmployeeID,
		EmployeeName: first.EmployeeName,
		Date:         first.Date,
		Entry:        first.Timestamp,
		Exit:         last.Timestamp,
	}

	if len(punches) >= minBreakPunches {
		start := punches[1].Timestamp
		end := punches[2].Timestamp
		rec.BreakStart = &start
		rec.BreakEnd = &end
		rec.Break = end.Sub(start)
	}

	rec.Worked = rec.Exit.Sub(rec.Entry) - rec.Break
	if rec.Worked < 0 {
		rec.Worked = 0
	}
	return rec
}
