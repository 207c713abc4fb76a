package dataset

import "fmt"

// SchemaError is returned when a source is missing a required field.
type SchemaError struct {
	// Row is the zero-based data row, or -1 when a whole column is missing.
	Row   int
	Field string
}

func (e SchemaError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("schema: missing required column %q", e.Field)
	}
	return fmt.Sprintf("schema: row %d has no value for required field %q", e.Row, e.Field)
}
