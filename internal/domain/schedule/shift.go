package schedule

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/validator"
)

// RestDayMarkers flag a descriptor as a day off, matched case-insensitively.
var RestDayMarkers = []string{"DESCANSO", "LIBRE"}

var clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

// ParseShift extracts the expected start from a free-text shift descriptor
// such as "08:00-17:00". Blank descriptors and rest-day markers yield a rest
// day. A descriptor with no H:MM or HH:MM time (or an out of range one)
// yields neither a start nor a rest day.
func ParseShift(descriptor string) Shift {
	if validator.IsEmpty(descriptor) {
		return Shift{IsRestDay: true}
	}

	trimmed := strings.TrimSpace(descriptor)
	upper := strings.ToUpper(trimmed)
	for _, marker := range RestDayMarkers {
		if strings.Contains(upper, marker) {
			return Shift{IsRestDay: true}
		}
	}

	match := clockPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return Shift{}
	}

	hour, err := strconv.Atoi(match[1])
	if err != nil || hour > 23 {
		return Shift{}
	}
	minute, err := strconv.Atoi(match[2])
	if err != nil || minute > 59 {
		return Shift{}
	}

	return Shift{Start: &ClockTime{Hour: hour, Minute: minute}}
}
