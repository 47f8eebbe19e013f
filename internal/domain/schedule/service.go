package schedule

import (
	"context"
	"time"
)

// LoadResult holds one schedule file melted to long format.
type LoadResult struct {
	// Dates are the classified date columns in header order. They are
	// set even when the file has no employee rows.
	Dates   []time.Time
	Entries []Entry
}

// ScheduleLoader decodes wide schedule workbooks into long-format entries.
type ScheduleLoader interface {
	// Load returns one entry per (employee row, date column), row-major in
	// input order.
	Load(ctx context.Context, data []byte) (LoadResult, error)
}
