package eval

import (
	"github.com/hscells/lifeboat/matrix"
	"github.com/sjwhitworth/golearn/evaluation"
	"gonum.org/v1/gonum/mat"
)

// ConfusionMatrix counts actual against predicted labels. It is keyed by the
// actual label then the predicted label, both as decimal strings.
func ConfusionMatrix(X mat.Matrix, names []string, actual, predicted []int) (evaluation.ConfusionMatrix, error) {
	if len(predicted) != len(actual) {
		return nil, matrix.LengthMismatchError{IDs: len(actual), Predictions: len(predicted)}
	}
	ref, err := matrix.ToInstances(X, actual, names, "label")
	if err != nil {
		return nil, err
	}
	gen, err := matrix.ToInstances(X, predicted, names, "label")
	if err != nil {
		return nil, err
	}
	return evaluation.GetConfusionMatrix(ref, gen)
}

// Summary renders a confusion matrix as a table of per-class statistics.
func Summary(cm evaluation.ConfusionMatrix) string {
	return evaluation.GetSummary(cm)
}
