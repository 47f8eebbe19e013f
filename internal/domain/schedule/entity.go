package schedule

import (
	"fmt"
	"time"
)

// Canonical schedule columns after normalization.
const (
	ColumnEmployeeID = "DNI"
	ColumnFullName   = "NOMBRE Y APELLIDO"
	ColumnScheduleID = "ID"
)

// RequiredColumns must all be present in a schedule file.
var RequiredColumns = []string{
	ColumnEmployeeID,
	ColumnFullName,
	ColumnScheduleID,
}

// Entry is one (employee, date) cell of the wide schedule table.
type Entry struct {
	EmployeeID      string
	EmployeeName    string
	ScheduleID      string
	Date            time.Time
	ShiftDescriptor string

	Shift
}

// Shift is what a shift descriptor says about the expected start.
// Start is nil for rest days and for descriptors without a recognizable time.
type Shift struct {
	Start     *ClockTime
	IsRestDay bool
}

// ClockTime is a time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// Minutes returns the minutes elapsed since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
