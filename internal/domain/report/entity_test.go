package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTardiness_Value(t *testing.T) {
	v, ok := LateBy(15).Value()
	assert.True(t, ok)
	assert.Equal(t, 15, v)

	v, ok = LateBy(-3).Value()
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	v, ok = RestDay.Value()
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok = NoData.Value()
	assert.False(t, ok)
}

func TestTardiness_Render(t *testing.T) {
	assert.Equal(t, 15, LateBy(15).Cell())
	assert.Equal(t, 0, RestDay.Cell())
	assert.Equal(t, NoDataMarker, NoData.Cell())
	assert.Equal(t, "-", NoData.String())
	assert.Equal(t, "no_data", NoData.Kind.String())

	raw, err := json.Marshal([]Tardiness{LateBy(7), NoData, RestDay})
	require.NoError(t, err)
	assert.JSONEq(t, `[7, "-", 0]`, string(raw))
}

func TestTardinessReport_Table(t *testing.T) {
	// Setup
	d1 := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC)
	late := LateBy(15)
	noData := NoData
	rep := TardinessReport{
		Dates: []time.Time{d1, d2},
		Rows: []TardinessRow{
			{EmployeeID: "100", EmployeeName: "ANA", Cells: []*Tardiness{&late, nil}, Total: 15},
			{EmployeeID: "200", EmployeeName: "LUIS", Cells: []*Tardiness{&noData, &noData}, Total: 0},
		},
	}

	// Act
	table := rep.Table()

	// Assert
	assert.Equal(t, SheetTardiness, table.Name)
	assert.Equal(t, []string{"DNI", "NOMBRE", "2024-01-08", "2024-01-09", "TOTAL"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []any{"100", "ANA", 15, nil, 15}, table.Rows[0])
	assert.Equal(t, []any{"200", "LUIS", "-", "-", 0}, table.Rows[1])
}

func TestHoursTable(t *testing.T) {
	day := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)
	bs := day.Add(12 * time.Hour)
	be := day.Add(12*time.Hour + 30*time.Minute)
	records := []DailyHours{
		{
			EmployeeID: "100", EmployeeName: "ANA", Date: day,
			Entry: day.Add(8 * time.Hour), Exit: day.Add(17 * time.Hour),
			Worked: 8*time.Hour + 30*time.Minute,
			BreakStart: &bs, BreakEnd: &be, Break: 30 * time.Minute,
		},
		{
			EmployeeID: "200", EmployeeName: "LUIS", Date: day,
			Entry: day.Add(9 * time.Hour), Exit: day.Add(9 * time.Hour),
		},
	}

	table := HoursTable(records)

	assert.Equal(t, SheetHours, table.Name)
	assert.Len(t, table.Columns, 9)
	assert.Equal(t, []any{"100", "ANA", "2024-01-08", "08:00:00", "17:00:00", "08:30:00", "12:00:00", "12:30:00", "00:30:00"}, table.Rows[0])
	assert.Equal(t, []any{"200", "LUIS", "2024-01-08", "09:00:00", "09:00:00", "00:00:00", "-", "-", "00:00:00"}, table.Rows[1])
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatDuration(0))
	assert.Equal(t, "08:30:00", FormatDuration(8*time.Hour+30*time.Minute))
	assert.Equal(t, "25:01:05", FormatDuration(25*time.Hour+time.Minute+5*time.Second))
	assert.Equal(t, "00:00:00", FormatDuration(-time.Hour))
}
