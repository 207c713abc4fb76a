package preprocess

import (
	"github.com/go-gota/gota/dataframe"
)

// FeatureTable is an all-numeric, fully imputed table with one row per
// passenger.
type FeatureTable struct {
	frame dataframe.DataFrame
	ids   []int
}

// NewFeatureTable wraps a numeric data frame. The frame must have one row
// per identifier.
func NewFeatureTable(df dataframe.DataFrame, ids []int) *FeatureTable {
	return &FeatureTable{frame: df, ids: ids}
}

// Frame returns the underlying data frame.
func (f *FeatureTable) Frame() dataframe.DataFrame {
	return f.frame
}

// Names are the feature columns in order.
func (f *FeatureTable) Names() []string {
	return f.frame.Names()
}

// IDs are the passenger identifiers in row order.
func (f *FeatureTable) IDs() []int {
	return f.ids
}

func (f *FeatureTable) Len() int {
	return len(f.ids)
}

// Column returns the values of a feature column, or nil if there is no such
// column.
func (f *FeatureTable) Column(name string) []float64 {
	for _, n := range f.frame.Names() {
		if n == name {
			return f.frame.Col(name).Float()
		}
	}
	return nil
}
