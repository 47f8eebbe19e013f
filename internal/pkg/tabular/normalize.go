package tabular

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-reconciler/internal/pkg/validator"
)

// Alias renames a normalized header to a canonical column name. A header
// matches when it equals Exact or, if Contains is set, includes that substring.
type Alias struct {
	Exact     string
	Contains  string
	Canonical string
}

func (a Alias) matches(column string) bool {
	if a.Exact != "" && column == a.Exact {
		return true
	}
	return a.Contains != "" && strings.Contains(column, a.Contains)
}

// Normalize renders raw header labels as trimmed upper-case keys.
// Date-typed labels become ISO dates.
func Normalize(labels []any) []string {
	out := make([]string, len(labels))
	for i, label := range labels {
		out[i] = normalizeLabel(label)
	}
	return out
}

func normalizeLabel(label any) string {
	switch v := label.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(DateLayout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(DateLayout)
	case string:
		return strings.ToUpper(strings.TrimSpace(v))
	default:
		return strings.ToUpper(strings.TrimSpace(fmt.Sprint(v)))
	}
}

// Rename applies the first matching alias to every column. Columns that match
// no alias pass through unchanged.
func Rename(columns []string, aliases []Alias) []string {
	out := make([]string, len(columns))
	for i, column := range columns {
		out[i] = column
		for _, alias := range aliases {
			if alias.matches(column) {
				out[i] = alias.Canonical
				break
			}
		}
	}
	return out
}

// Index maps each column name to its position. When a name repeats, the
// leftmost column wins.
func Index(columns []string) map[string]int {
	idx := make(map[string]int, len(columns))
	for i, column := range columns {
		if _, exists := idx[column]; !exists {
			idx[column] = i
		}
	}
	return idx
}

// Require reports a *SchemaError naming every required column absent from columns.
func Require(source string, columns []string, required []string) error {
	idx := Index(columns)

	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	found := make([]string, len(columns))
	copy(found, columns)
	return &SchemaError{
		Source:  source,
		Missing: missing,
		Found:   found,
	}
}

// Cell returns the trimmed value at idx, or "" when the row is too short.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Identifier normalizes an employee identifier cell. Spreadsheet readers
// sometimes render whole numbers as "12345678.0"; the fraction is dropped.
func Identifier(value string) string {
	value = strings.TrimSpace(value)
	whole, frac, found := strings.Cut(value, ".")
	if found && validator.IsNumeric(whole) && validator.IsNumeric(frac) && strings.Trim(frac, "0") == "" {
		return whole
	}
	return value
}
