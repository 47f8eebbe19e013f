package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShift_StartTime(t *testing.T) {
	cases := []struct {
		descriptor string
		hour       int
		minute     int
	}{
		{"08:00-17:00", 8, 0},
		{"8:30 a 17:30", 8, 30},
		{"TURNO 07:15", 7, 15},
		{"  22:00-06:00 ", 22, 0},
	}

	for _, c := range cases {
		t.Run(c.descriptor, func(t *testing.T) {
			shift := ParseShift(c.descriptor)

			require.NotNil(t, shift.Start)
			assert.False(t, shift.IsRestDay)
			assert.Equal(t, c.hour, shift.Start.Hour)
			assert.Equal(t, c.minute, shift.Start.Minute)
		})
	}
}

func TestParseShift_RestDay(t *testing.T) {
	for _, descriptor := range []string{"DESCANSO", "descanso", "Libre", "DIA LIBRE", "", "   "} {
		t.Run(descriptor, func(t *testing.T) {
			shift := ParseShift(descriptor)

			assert.True(t, shift.IsRestDay)
			assert.Nil(t, shift.Start)
		})
	}
}

func TestParseShift_NoRecognizableTime(t *testing.T) {
	for _, descriptor := range []string{"VACACIONES", "25:00-18:00", "08:75", "8h"} {
		t.Run(descriptor, func(t *testing.T) {
			shift := ParseShift(descriptor)

			assert.False(t, shift.IsRestDay)
			assert.Nil(t, shift.Start)
		})
	}
}

func TestClockTime(t *testing.T) {
	c := ClockTime{Hour: 8, Minute: 5}

	assert.Equal(t, 485, c.Minutes())
	assert.Equal(t, "08:05", c.String())
}
