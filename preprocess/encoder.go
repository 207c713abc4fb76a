package preprocess

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/hscells/lifeboat/dataset"
	"github.com/pkg/errors"
	"github.com/xtgo/set"
)

// Imputation is the policy for missing values. It is the only place in the
// pipeline where missing data is replaced.
type Imputation struct {
	NumericFill     float64
	CategoricalFill string
}

// DefaultImputation fills missing numbers with zero and missing categories
// with "unknown".
func DefaultImputation() Imputation {
	return Imputation{NumericFill: 0, CategoricalFill: "unknown"}
}

// Encoder selects a fixed subset of columns, one-hot encodes the categorical
// ones and imputes missing values.
type Encoder struct {
	Numeric     []string
	Categorical []string
	Imputation  Imputation
	Processors  []CategoryProcessor
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// Impute sets the imputation policy.
func Impute(i Imputation) EncoderOption {
	return func(e *Encoder) {
		e.Imputation = i
	}
}

// Process sets the processors applied to categorical values.
func Process(processors ...CategoryProcessor) EncoderOption {
	return func(e *Encoder) {
		e.Processors = processors
	}
}

// NewEncoder creates an encoder for the feature columns of cols.
func NewEncoder(cols dataset.Columns, options ...EncoderOption) Encoder {
	e := Encoder{
		Numeric:     cols.Numeric,
		Categorical: cols.Categorical,
		Imputation:  DefaultImputation(),
		Processors:  []CategoryProcessor{TrimSpace},
	}
	for _, option := range options {
		option(&e)
	}
	return e
}

// Schema is the column layout shared by every table an encoder produces.
type Schema struct {
	// Names are the feature columns in matrix order.
	Names []string
	// Vocabularies maps each categorical attribute to its sorted values.
	Vocabularies map[string][]string

	sources []source
}

// source says where a feature column comes from. Numeric columns have an
// empty category.
type source struct {
	name      string
	attribute string
	category  string
	onehot    bool
}

// OneHotName is the name of the indicator column for a category value.
func OneHotName(attribute, value string) string {
	return attribute + "_" + value
}

// Schema computes the column layout for a train/test pair. The vocabulary of
// every categorical attribute is the union of the values seen in both
// tables, so both tables always encode to the same columns.
func (e Encoder) Schema(train, test *dataset.Table) (Schema, error) {
	if train == nil || test == nil {
		return Schema{}, errors.New("encoder requires both a train and a test table")
	}
	s := Schema{Vocabularies: make(map[string][]string, len(e.Categorical))}
	for _, name := range e.Numeric {
		s.sources = append(s.sources, source{name: name, attribute: name})
	}
	for _, attr := range e.Categorical {
		a := set.Strings(e.categories(train, attr))
		b := set.Strings(e.categories(test, attr))
		vocab := set.StringsDo(set.Union, a, b...)
		s.Vocabularies[attr] = vocab
		for _, value := range vocab {
			s.sources = append(s.sources, source{
				name:      OneHotName(attr, value),
				attribute: attr,
				category:  value,
				onehot:    true,
			})
		}
	}
	if len(s.sources) == 0 {
		return Schema{}, errors.New("encoder has no feature columns")
	}

	sort.SliceStable(s.sources, func(i, j int) bool {
		return s.sources[i].name < s.sources[j].name
	})
	s.Names = make([]string, len(s.sources))
	for i, src := range s.sources {
		if i > 0 && s.sources[i-1].name == src.name {
			return Schema{}, errors.Errorf("feature column %q is generated twice", src.name)
		}
		s.Names[i] = src.name
	}
	return s, nil
}

// Encode produces feature tables for a train/test pair. The two tables have
// identical column names in identical order.
func (e Encoder) Encode(train, test *dataset.Table) (*FeatureTable, *FeatureTable, error) {
	s, err := e.Schema(train, test)
	if err != nil {
		return nil, nil, err
	}
	trainFT, err := e.Apply(s, train)
	if err != nil {
		return nil, nil, errors.Wrap(err, "train")
	}
	testFT, err := e.Apply(s, test)
	if err != nil {
		return nil, nil, errors.Wrap(err, "test")
	}
	return trainFT, testFT, nil
}

// Apply encodes a single table with a previously computed schema. Category
// values outside the schema's vocabulary produce an all-zero indicator row.
func (e Encoder) Apply(s Schema, t *dataset.Table) (*FeatureTable, error) {
	if len(s.sources) == 0 {
		return nil, errors.New("empty schema")
	}
	ids := t.IDs()

	numeric := make(map[string][]float64, len(e.Numeric))
	for _, name := range e.Numeric {
		v := t.Float(name)
		for i := range v {
			if math.IsNaN(v[i]) {
				v[i] = e.Imputation.NumericFill
			}
		}
		numeric[name] = v
	}
	categorical := make(map[string][]string, len(e.Categorical))
	for _, attr := range e.Categorical {
		categorical[attr] = e.categories(t, attr)
	}

	columns := make([]series.Series, len(s.sources))
	for j, src := range s.sources {
		var v []float64
		if src.onehot {
			values := categorical[src.attribute]
			v = make([]float64, len(values))
			for i, value := range values {
				if value == src.category {
					v[i] = 1
				}
			}
		} else {
			v = numeric[src.attribute]
		}
		columns[j] = series.New(v, series.Float, src.name)
	}
	df := dataframe.New(columns...)
	if df.Err != nil {
		return nil, df.Err
	}
	return &FeatureTable{frame: df, ids: ids}, nil
}

// categories returns the processed, imputed values of a categorical column.
func (e Encoder) categories(t *dataset.Table, attr string) []string {
	values := t.Strings(attr)
	for i, v := range values {
		v = ProcessCategory(v, e.Processors...)
		if v == "" {
			v = e.Imputation.CategoricalFill
		}
		values[i] = v
	}
	return values
}
