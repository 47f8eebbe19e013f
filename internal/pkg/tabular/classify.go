package tabular

import "time"

// DateColumn is a header that names a calendar date.
type DateColumn struct {
	Index int
	Label string
	Date  time.Time
}

// ClassifyDateColumns returns, in header order, every column whose label
// parses as a calendar date. Labels listed in exclude are never classified.
func ClassifyDateColumns(columns []string, exclude ...string) []DateColumn {
	skip := make(map[string]struct{}, len(exclude))
	for _, label := range exclude {
		skip[label] = struct{}{}
	}

	var dateColumns []DateColumn
	for i, label := range columns {
		if _, excluded := skip[label]; excluded {
			continue
		}
		date, ok := ParseDate(label)
		if !ok {
			continue
		}
		dateColumns = append(dateColumns, DateColumn{
			Index: i,
			Label: label,
			Date:  date,
		})
	}
	return dateColumns
}
