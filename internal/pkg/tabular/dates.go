package tabular

import (
	"strings"
	"time"
)

// DateLayout is the canonical rendering of calendar dates.
const DateLayout = "2006-01-02"

// Day-before-month layouts. Year-first layouts are unambiguous and tried first.
var dateTimeLayouts = []string{
	"2006-1-2 15:04:05",
	"2006-1-2T15:04:05",
	"2006-1-2 15:04",
	"2006-1-2T15:04",
	time.RFC3339,
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006.01.02 15:04:05",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006 3:04:05 PM",
	"2/1/2006 3:04 PM",
	"2/1/06 15:04:05",
	"2/1/06 15:04",
	"2/1/06 3:04:05 PM",
	"2/1/06 3:04 PM",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2-1-2006 3:04:05 PM",
	"2-1-2006 3:04 PM",
	"2.1.2006 15:04:05",
	"2.1.2006 15:04",
	"2-Jan-2006 15:04:05",
	"2-Jan-2006 15:04",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
}

var dateLayouts = []string{
	"2006-1-2",
	"2006/01/02",
	"2006.01.02",
	"2/1/2006",
	"2/1/06",
	"2-1-2006",
	"2-1-06",
	"2.1.2006",
	"2-Jan-2006",
	"2 Jan 2006",
}

var meridiemReplacer = strings.NewReplacer(
	"P. M.", "PM",
	"A. M.", "AM",
	"P.M.", "PM",
	"A.M.", "AM",
)

func cleanDateValue(value string) string {
	value = strings.ToUpper(strings.TrimSpace(value))
	value = meridiemReplacer.Replace(value)
	return strings.Join(strings.Fields(value), " ")
}

// ParseDateTime parses a timestamp cell day-before-month. A bare date parses
// to midnight. The result is naive wall-clock time carried in UTC.
func ParseDateTime(value string) (time.Time, bool) {
	value = cleanDateValue(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dateTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return naive(parsed), true
		}
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ParseDate parses a calendar date day-before-month, discarding any time of day.
func ParseDate(value string) (time.Time, bool) {
	parsed, ok := ParseDateTime(value)
	if !ok {
		return time.Time{}, false
	}
	return DateOf(parsed), true
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// naive drops the zone offset while keeping the wall clock.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
