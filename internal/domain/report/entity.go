package report

import (
	"encoding/json"
	"strconv"
	"time"
)

// TardinessKind tags which variant a Tardiness holds.
type TardinessKind int

const (
	TardinessMinutes TardinessKind = iota
	TardinessNoData
	TardinessRestDay
)

func (k TardinessKind) String() string {
	switch k {
	case TardinessNoData:
		return "no_data"
	case TardinessRestDay:
		return "rest_day"
	default:
		return "minutes"
	}
}

// NoDataMarker is how a no-data tardiness renders in result tables.
const NoDataMarker = "-"

// Tardiness is the outcome for one (employee, date): whole minutes late,
// a rest day (counts as zero) or no data. No data is not a number and never
// takes part in arithmetic.
type Tardiness struct {
	Kind    TardinessKind
	Minutes int
}

var (
	NoData  = Tardiness{Kind: TardinessNoData}
	RestDay = Tardiness{Kind: TardinessRestDay}
)

// LateBy returns a numeric tardiness, clamping negative deltas to zero.
func LateBy(minutes int) Tardiness {
	if minutes < 0 {
		minutes = 0
	}
	return Tardiness{Kind: TardinessMinutes, Minutes: minutes}
}

// Value returns the numeric minutes and whether the tardiness is numeric.
func (t Tardiness) Value() (int, bool) {
	switch t.Kind {
	case TardinessNoData:
		return 0, false
	case TardinessRestDay:
		return 0, true
	default:
		return t.Minutes, true
	}
}

// Cell renders the tardiness as a table value: an int or NoDataMarker.
func (t Tardiness) Cell() any {
	if v, ok := t.Value(); ok {
		return v
	}
	return NoDataMarker
}

func (t Tardiness) String() string {
	if v, ok := t.Value(); ok {
		return strconv.Itoa(v)
	}
	return NoDataMarker
}

func (t Tardiness) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Cell())
}

// TardinessRecord is the long-format tardiness of one schedule entry.
type TardinessRecord struct {
	EmployeeID      string
	EmployeeName    string
	Date            time.Time
	ShiftDescriptor string
	Tardiness       Tardiness
}

// TardinessRow is one employee of the pivoted report.
type TardinessRow struct {
	EmployeeID   string
	EmployeeName string

	// Cells align with TardinessReport.Dates. A nil cell means the employee
	// had no schedule entry for that date.
	Cells []*Tardiness

	// Total sums numeric cells; no-data and blank cells add nothing.
	Total int
}

// TardinessReport is the wide tardiness table: one row per employee, one
// column per schedule date.
type TardinessReport struct {
	Dates []time.Time
	Rows  []TardinessRow
}

// DailyHours is the worked time of one employee on one date, derived from
// that day's ordered punches.
type DailyHours struct {
	EmployeeID   string
	EmployeeName string
	Date         time.Time

	Entry  time.Time
	Exit   time.Time
	Worked time.Duration

	// BreakStart and BreakEnd are set only for days with four or more punches.
	BreakStart *time.Time
	BreakEnd   *time.Time
	Break      time.Duration
}

// Table is plain column/row data handed to exporters and API clients.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}
