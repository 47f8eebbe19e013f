package tabular

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from an input file.
type SchemaError struct {
	Source  string
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing columns in %s file: [%s]; found: [%s]",
		e.Source,
		strings.Join(e.Missing, ", "),
		strings.Join(e.Found, ", "),
	)
}
