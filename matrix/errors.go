package matrix

import "fmt"

// UnexpectedNullError is returned when a value that must be present at the
// matrix boundary is missing. Imputation belongs in the encoder, so the
// bridge never fills a value in.
type UnexpectedNullError struct {
	Column string
	Row    int
}

func (e UnexpectedNullError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("matrix: column %q is missing", e.Column)
	}
	return fmt.Sprintf("matrix: unexpected null in column %q at row %d", e.Column, e.Row)
}

// LengthMismatchError is returned when identifiers and predictions cannot be
// zipped together.
type LengthMismatchError struct {
	IDs         int
	Predictions int
}

func (e LengthMismatchError) Error() string {
	return fmt.Sprintf("matrix: %d identifiers but %d predictions", e.IDs, e.Predictions)
}
