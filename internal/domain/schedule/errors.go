package schedule

import "errors"

var (
	// ErrNoDateColumns is returned when no schedule header parses as a calendar date.
	ErrNoDateColumns = errors.New("no date columns detected in schedule file")
)
