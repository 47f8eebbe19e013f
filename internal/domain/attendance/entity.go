package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/tabular"
)

// Canonical attendance columns after normalization and renaming.
const (
	ColumnDepartment = "DEPARTAMENTO"
	ColumnName       = "NOMBRE"
	ColumnEmployeeID = "DNI"
	ColumnTimestamp  = "FECHA/HORA"
	ColumnStatus     = "ESTADO"
)

// RequiredColumns must all be present in an attendance file.
var RequiredColumns = []string{
	ColumnDepartment,
	ColumnName,
	ColumnEmployeeID,
	ColumnTimestamp,
	ColumnStatus,
}

// ColumnAliases rename vendor headers to canonical columns.
var ColumnAliases = []tabular.Alias{
	{Exact: "NO.", Canonical: ColumnEmployeeID},
	{Contains: "DEPART", Canonical: ColumnDepartment},
}

// Event is one clock-in/clock-out punch read from the attendance file.
type Event struct {
	EmployeeID   string
	EmployeeName string
	Department   string
	Timestamp    time.Time
	Status       string

	// Date is the calendar date of Timestamp.
	Date time.Time

	// Row is the zero-based position of the source row among data rows.
	Row int
}
