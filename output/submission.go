// Package output writes submissions and run reports.
package output

import (
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
)

// WriteSubmission writes a two column submission table as CSV with a header
// row. Rows are written in table order.
func WriteSubmission(w io.Writer, df dataframe.DataFrame) error {
	if df.Err != nil {
		return df.Err
	}
	if df.Ncol() != 2 {
		return errors.Errorf("submission must have 2 columns, got %d", df.Ncol())
	}
	return df.WriteCSV(w)
}

// WriteSubmissionFile creates (or truncates) path and writes the submission
// to it.
func WriteSubmissionFile(path string, df dataframe.DataFrame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSubmission(f, df); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return f.Close()
}
