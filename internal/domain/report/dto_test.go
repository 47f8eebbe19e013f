package report

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessRequest_Validate_Success(t *testing.T) {
	req := ProcessRequest{
		Attendance: &Upload{Filename: "marcaciones.xlsx", Size: 10, Data: []byte("x")},
		Schedule:   &Upload{Filename: "horario.xls", Size: 10, Data: []byte("x")},
		MaxSize:    1 << 20,
	}

	assert.NoError(t, req.Validate())
}

func TestProcessRequest_Validate_Missing(t *testing.T) {
	req := ProcessRequest{Attendance: &Upload{Filename: "a.xlsx"}}

	err := req.Validate()

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	m := verrs.ToMap()
	assert.Equal(t, "attendance file is required", m["attendance"])
	assert.Equal(t, "schedule file is required", m["schedule"])
}

func TestProcessRequest_Validate_TypeAndSize(t *testing.T) {
	req := ProcessRequest{
		Attendance: &Upload{Filename: "a.csv", Size: 10, Data: []byte("x")},
		Schedule:   &Upload{Filename: "h.xlsx", Size: 3 << 20, Data: []byte("x")},
		MaxSize:    2 << 20,
	}

	err := req.Validate()

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "attendance", verrs[0].Field)
	assert.Contains(t, verrs[0].Message, "invalid file type")
	assert.Equal(t, "schedule", verrs[1].Field)
	assert.Equal(t, "schedule file size must not exceed 2MB", verrs[1].Message)
}

func TestNewProcessResponse(t *testing.T) {
	day := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)
	late := LateBy(15)
	result := ProcessResult{
		RunID:       "run-1",
		GeneratedAt: time.Date(2024, time.January, 9, 10, 0, 0, 0, time.UTC),
		Records: []TardinessRecord{
			{EmployeeID: "100", EmployeeName: "ANA", Date: day, ShiftDescriptor: "08:00-17:00", Tardiness: late},
		},
		Tardiness: TardinessReport{
			Dates: []time.Time{day},
			Rows:  []TardinessRow{{EmployeeID: "100", EmployeeName: "ANA", Cells: []*Tardiness{&late}, Total: 15}},
		},
		AttendanceRows:        4,
		DroppedAttendanceRows: 1,
		ScheduleEntries:       1,
	}

	resp := NewProcessResponse(result)

	assert.Equal(t, "run-1", resp.RunID)
	assert.Equal(t, "2024-01-09T10:00:00Z", resp.GeneratedAt)
	assert.Equal(t, RunSummary{AttendanceRows: 4, DroppedAttendanceRows: 1, ScheduleEntries: 1, Employees: 1, Dates: 1}, resp.Summary)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "2024-01-08", resp.Records[0].Date)
	assert.Equal(t, []string{"DNI", "NOMBRE", "2024-01-08", "TOTAL"}, resp.Tardiness.Columns)
	assert.Empty(t, resp.Hours.Rows)
}
