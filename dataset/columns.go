package dataset

import "github.com/go-gota/gota/series"

// Columns names the fields of a passenger table. Only the identifier is
// required to be present in a source; every other column may be missing and
// is then treated as entirely missing data.
type Columns struct {
	// ID is the passenger identifier column.
	ID string
	// Label is the survival column, present only in training data.
	Label string
	// Numeric columns are used as-is after imputation.
	Numeric []string
	// Categorical columns are one-hot encoded.
	Categorical []string
}

// TitanicColumns are the columns of the Kaggle Titanic competition files.
func TitanicColumns() Columns {
	return Columns{
		ID:          "PassengerId",
		Label:       "Survived",
		Numeric:     []string{"Pclass", "Age", "Fare", "SibSp", "Parch"},
		Categorical: []string{"Sex", "Embarked"},
	}
}

// Features returns the numeric columns followed by the categorical columns.
func (c Columns) Features() []string {
	f := make([]string, 0, len(c.Numeric)+len(c.Categorical))
	f = append(f, c.Numeric...)
	return append(f, c.Categorical...)
}

func (c Columns) types() map[string]series.Type {
	t := map[string]series.Type{
		c.ID:    series.Int,
		c.Label: series.Int,
	}
	for _, name := range c.Numeric {
		t[name] = series.Float
	}
	for _, name := range c.Categorical {
		t[name] = series.String
	}
	return t
}
