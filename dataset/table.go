// Package dataset loads passenger tables from delimited sources.
package dataset

import (
	"io"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// nanValues are the cells read as missing. The Kaggle files leave missing
// ages and ports empty.
var nanValues = []string{"", "NA", "NaN", "<nil>"}

// Table is a typed, column-oriented passenger table. A table is never
// modified after it is loaded.
type Table struct {
	frame   dataframe.DataFrame
	columns Columns
	ids     []int
}

// PassengerRecord is the row view of a table.
type PassengerRecord struct {
	ID int
	// Survived is nil for unlabelled rows.
	Survived *int
	// Numeric values are NaN when missing.
	Numeric map[string]float64
	// Categorical values are empty when missing.
	Categorical map[string]string
}

// LoadFile reads a passenger table from a CSV file with a header row.
func LoadFile(path string, cols Columns) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Load(f, cols)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return t, nil
}

// Load reads a passenger table from CSV with a header row. Column types come
// from cols, never from inspecting the data.
func Load(r io.Reader, cols Columns) (*Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(cols.types()),
		dataframe.NaNValues(nanValues),
	)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "read csv")
	}
	return NewTable(df, cols)
}

// NewTable wraps an already loaded data frame. The identifier column must be
// present and populated on every row.
func NewTable(df dataframe.DataFrame, cols Columns) (*Table, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	if !hasColumn(df, cols.ID) {
		return nil, SchemaError{Row: -1, Field: cols.ID}
	}
	s := df.Col(cols.ID)
	ids := make([]int, s.Len())
	for i := range ids {
		e := s.Elem(i)
		if e.IsNA() {
			return nil, SchemaError{Row: i, Field: cols.ID}
		}
		v, err := e.Int()
		if err != nil {
			return nil, SchemaError{Row: i, Field: cols.ID}
		}
		ids[i] = v
	}
	return &Table{frame: df, columns: cols, ids: ids}, nil
}

// Frame returns the underlying data frame.
func (t *Table) Frame() dataframe.DataFrame {
	return t.frame
}

// Columns returns the naming scheme of the table.
func (t *Table) Columns() Columns {
	return t.columns
}

// Len is the number of rows.
func (t *Table) Len() int {
	return len(t.ids)
}

// IDs returns the passenger identifiers in row order.
func (t *Table) IDs() []int {
	ids := make([]int, len(t.ids))
	copy(ids, t.ids)
	return ids
}

// HasLabels reports whether the label column is present.
func (t *Table) HasLabels() bool {
	return hasColumn(t.frame, t.columns.Label)
}

// Has reports whether the source provided the named column.
func (t *Table) Has(column string) bool {
	return hasColumn(t.frame, column)
}

// Float returns a numeric column, NaN where missing. A column absent from
// the source is returned as all NaN.
func (t *Table) Float(column string) []float64 {
	if !t.Has(column) {
		v := make([]float64, t.Len())
		for i := range v {
			v[i] = math.NaN()
		}
		return v
	}
	return t.frame.Col(column).Float()
}

// Strings returns a categorical column with missing cells as "". A column
// absent from the source is returned as all "".
func (t *Table) Strings(column string) []string {
	v := make([]string, t.Len())
	if !t.Has(column) {
		return v
	}
	s := t.frame.Col(column)
	for i := range v {
		if e := s.Elem(i); !e.IsNA() {
			v[i] = e.String()
		}
	}
	return v
}

// Records returns a row view of the table.
func (t *Table) Records() []PassengerRecord {
	records := make([]PassengerRecord, t.Len())
	for i, id := range t.ids {
		records[i] = PassengerRecord{
			ID:          id,
			Numeric:     make(map[string]float64, len(t.columns.Numeric)),
			Categorical: make(map[string]string, len(t.columns.Categorical)),
		}
	}
	for _, name := range t.columns.Numeric {
		for i, v := range t.Float(name) {
			records[i].Numeric[name] = v
		}
	}
	for _, name := range t.columns.Categorical {
		for i, v := range t.Strings(name) {
			records[i].Categorical[name] = v
		}
	}
	if t.HasLabels() {
		s := t.frame.Col(t.columns.Label)
		for i := range records {
			if v, err := s.Elem(i).Int(); err == nil {
				v := v
				records[i].Survived = &v
			}
		}
	}
	return records
}

// Split divides the table sequentially: the first ratio of rows go to head,
// the rest to tail. Rows are not shuffled. Both halves must be non-empty.
func (t *Table) Split(ratio float64) (head, tail *Table, err error) {
	if ratio <= 0 || ratio >= 1 {
		return nil, nil, errors.Errorf("split ratio %v must be in (0, 1)", ratio)
	}
	n := int(float64(t.Len()) * ratio)
	if n == 0 || n == t.Len() {
		return nil, nil, errors.Errorf("split ratio %v of %d rows leaves an empty half", ratio, t.Len())
	}
	headIdx := make([]int, n)
	for i := range headIdx {
		headIdx[i] = i
	}
	tailIdx := make([]int, t.Len()-n)
	for i := range tailIdx {
		tailIdx[i] = n + i
	}
	return t.subset(headIdx), t.subset(tailIdx), nil
}

func (t *Table) subset(idx []int) *Table {
	ids := make([]int, len(idx))
	for i, j := range idx {
		ids[i] = t.ids[j]
	}
	return &Table{frame: t.frame.Subset(idx), columns: t.columns, ids: ids}
}

// SurvivalRate is the share of labelled rows where column equals value that
// survived.
func (t *Table) SurvivalRate(column, value string) (float64, error) {
	if !t.HasLabels() {
		return 0, errors.Errorf("table has no %q column", t.columns.Label)
	}
	labels := t.frame.Col(t.columns.Label)
	var survived []float64
	for i, v := range t.Strings(column) {
		if v != value {
			continue
		}
		l, err := labels.Elem(i).Int()
		if err != nil {
			continue
		}
		survived = append(survived, float64(l))
	}
	if len(survived) == 0 {
		return 0, errors.Errorf("no labelled rows with %s=%s", column, value)
	}
	return stat.Mean(survived, nil), nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	if name == "" {
		return false
	}
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
