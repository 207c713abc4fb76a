// Package matrix converts between tables and dense numeric matrices.
package matrix

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/hscells/lifeboat/dataset"
	"github.com/hscells/lifeboat/preprocess"
	"gonum.org/v1/gonum/mat"
)

// ToMatrix reshapes a feature table into a row-major matrix. Rows keep the
// table's order and column j is the table's j-th column. A table with no rows
// gives a nil matrix, since gonum cannot represent one.
func ToMatrix(ft *preprocess.FeatureTable) (*mat.Dense, error) {
	rows, names := ft.Len(), ft.Names()
	if rows == 0 || len(names) == 0 {
		return nil, nil
	}
	data := make([]float64, rows*len(names))
	for j, name := range names {
		for i, v := range ft.Frame().Col(name).Float() {
			if math.IsNaN(v) {
				return nil, UnexpectedNullError{Column: name, Row: i}
			}
			data[i*len(names)+j] = v
		}
	}
	return mat.NewDense(rows, len(names), data), nil
}

// LabelsToVector extracts the label column of a table as integers.
func LabelsToVector(t *dataset.Table, column string) ([]int, error) {
	if !t.Has(column) {
		return nil, UnexpectedNullError{Column: column, Row: -1}
	}
	s := t.Frame().Col(column)
	y := make([]int, s.Len())
	for i := range y {
		e := s.Elem(i)
		if e.IsNA() {
			return nil, UnexpectedNullError{Column: column, Row: i}
		}
		v, err := e.Int()
		if err != nil {
			return nil, UnexpectedNullError{Column: column, Row: i}
		}
		y[i] = v
	}
	return y, nil
}

// SubmissionNames are the header of a submission table.
type SubmissionNames struct {
	ID    string
	Label string
}

// DefaultSubmissionNames is the Kaggle header.
func DefaultSubmissionNames() SubmissionNames {
	return SubmissionNames{ID: "PassengerId", Label: "Survived"}
}

// NamesFor uses the identifier and label columns of a table.
func NamesFor(cols dataset.Columns) SubmissionNames {
	return SubmissionNames{ID: cols.ID, Label: cols.Label}
}

// SubmissionRow is one line of a submission.
type SubmissionRow struct {
	ID         int
	Prediction int
}

// Rows zips identifiers with predictions positionally.
func Rows(predictions, ids []int) ([]SubmissionRow, error) {
	if len(predictions) != len(ids) {
		return nil, LengthMismatchError{IDs: len(ids), Predictions: len(predictions)}
	}
	rows := make([]SubmissionRow, len(ids))
	for i := range ids {
		rows[i] = SubmissionRow{ID: ids[i], Prediction: predictions[i]}
	}
	return rows, nil
}

// VectorToTable builds the two column submission table, one row per
// identifier in the order given.
func VectorToTable(predictions, ids []int, names SubmissionNames) (dataframe.DataFrame, error) {
	if len(predictions) != len(ids) {
		return dataframe.DataFrame{}, LengthMismatchError{IDs: len(ids), Predictions: len(predictions)}
	}
	df := dataframe.New(
		series.New(ids, series.Int, names.ID),
		series.New(predictions, series.Int, names.Label),
	)
	return df, df.Err
}
