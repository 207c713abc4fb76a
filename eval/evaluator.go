// Package eval scores predicted labels against known labels.
package eval

import (
	"github.com/hscells/lifeboat/matrix"
	"github.com/pkg/errors"
)

// Evaluator is an interface for scoring predicted labels.
type Evaluator interface {
	Score(predicted, actual []int) float64
	Name() string
}

// Evaluate scores predictions using supplied evaluation measurements.
func Evaluate(evaluators []Evaluator, predicted, actual []int) (map[string]float64, error) {
	if len(predicted) != len(actual) {
		return nil, matrix.LengthMismatchError{IDs: len(actual), Predictions: len(predicted)}
	}
	scores := make(map[string]float64, len(evaluators))
	for _, evaluator := range evaluators {
		scores[evaluator.Name()] = evaluator.Score(predicted, actual)
	}
	return scores, nil
}

// Accuracy is the share of predictions equal to the actual label.
func Accuracy(predicted, actual []int) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, matrix.LengthMismatchError{IDs: len(actual), Predictions: len(predicted)}
	}
	return AccuracyEvaluator.Score(predicted, actual), nil
}

// Measures are the evaluators that can be selected by name.
var Measures = map[string]Evaluator{
	"accuracy":  AccuracyEvaluator,
	"precision": PrecisionEvaluator,
	"recall":    RecallEvaluator,
	"f1":        F1Measure,
	"f0.5":      F05Measure,
	"f3":        F3Measure,
	"num_pos":   NumPos,
	"num_pred":  NumPred,
	"num_tp":    NumTruePos,
}

// ByName looks up evaluators in Measures, keeping the order of names.
func ByName(names ...string) ([]Evaluator, error) {
	evaluators := make([]Evaluator, len(names))
	for i, name := range names {
		e, ok := Measures[name]
		if !ok {
			return nil, errors.Errorf("unknown measure %q", name)
		}
		evaluators[i] = e
	}
	return evaluators, nil
}
