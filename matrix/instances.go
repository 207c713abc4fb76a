package matrix

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/sjwhitworth/golearn/base"
	"gonum.org/v1/gonum/mat"
)

// ToInstances copies a feature matrix and its labels into golearn instances.
// Features become float attributes named after names; the labels become a
// categorical class attribute so that golearn reports them as "0" and "1".
func ToInstances(X mat.Matrix, y []int, names []string, class string) (*base.DenseInstances, error) {
	rows, cols := X.Dims()
	if rows == 0 {
		return nil, errors.New("no rows")
	}
	if len(y) != rows {
		return nil, LengthMismatchError{IDs: rows, Predictions: len(y)}
	}
	if len(names) != cols {
		return nil, errors.Errorf("%d attribute names for %d columns", len(names), cols)
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, cols)
	for j, name := range names {
		specs[j] = inst.AddAttribute(base.NewFloatAttribute(name))
	}
	ca := new(base.CategoricalAttribute)
	ca.SetName(class)
	classSpec := inst.AddAttribute(ca)
	if err := inst.AddClassAttribute(ca); err != nil {
		return nil, err
	}

	if err := inst.Extend(rows); err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			inst.Set(specs[j], i, base.PackFloatToBytes(X.At(i, j)))
		}
		inst.Set(classSpec, i, ca.GetSysValFromString(strconv.Itoa(y[i])))
	}
	return inst, nil
}
