package attendance

import (
	"context"
)

// LoadResult holds the punches parsed from one attendance file.
type LoadResult struct {
	Events []Event

	// TotalRows counts non-blank data rows; DroppedRows counts those
	// discarded because their timestamp did not parse.
	TotalRows   int
	DroppedRows int
}

// AttendanceLoader decodes raw attendance workbooks.
type AttendanceLoader interface {
	// Load parses the workbook bytes into punches, in input order.
	Load(ctx context.Context, data []byte) (LoadResult, error)
}
