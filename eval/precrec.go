package eval

import (
	"fmt"
	"math"
)

// Positive is the label treated as the positive class.
const Positive = 1

type accuracyEvaluator struct{}
type recallEvaluator struct{}
type precisionEvaluator struct{}
type numPos struct{}
type numPred struct{}
type numTruePos struct{}

// FMeasure computes f-measure, with the beta parameter controlling the precision and recall trade-off.
type FMeasure struct {
	beta float64
}

var (
	// AccuracyEvaluator calculates accuracy.
	AccuracyEvaluator = accuracyEvaluator{}
	// RecallEvaluator calculates recall of the positive class.
	RecallEvaluator = recallEvaluator{}
	// PrecisionEvaluator calculates precision of the positive class.
	PrecisionEvaluator = precisionEvaluator{}
	// NumPos is the number of actual positives.
	NumPos = numPos{}
	// NumPred is the number of predicted positives.
	NumPred = numPred{}
	// NumTruePos is the number of positives predicted correctly.
	NumTruePos = numTruePos{}

	// F1Measure is f-measure with beta=1.
	F1Measure = FMeasure{beta: 1}
	// F05Measure is f-measure with beta=0.5.
	F05Measure = FMeasure{beta: 0.5}
	// F3Measure is f-measure with beta=3.
	F3Measure = FMeasure{beta: 3}
)

func (accuracyEvaluator) Name() string {
	return "Accuracy"
}

func (accuracyEvaluator) Score(predicted, actual []int) float64 {
	if len(actual) == 0 {
		return 0
	}
	correct := 0.0
	for i := range actual {
		if i < len(predicted) && predicted[i] == actual[i] {
			correct++
		}
	}
	return correct / float64(len(actual))
}

func (recallEvaluator) Name() string {
	return "Recall"
}

func (recallEvaluator) Score(predicted, actual []int) float64 {
	numPos := NumPos.Score(predicted, actual)
	if numPos == 0 {
		return 0.0
	}
	return NumTruePos.Score(predicted, actual) / numPos
}

func (precisionEvaluator) Name() string {
	return "Precision"
}

func (precisionEvaluator) Score(predicted, actual []int) float64 {
	numPred := NumPred.Score(predicted, actual)
	if numPred == 0 {
		return 0.0
	}
	return NumTruePos.Score(predicted, actual) / numPred
}

func (numPos) Score(predicted, actual []int) float64 {
	n := 0.0
	for _, a := range actual {
		if a == Positive {
			n++
		}
	}
	return n
}

func (numPos) Name() string {
	return "NumPos"
}

func (numPred) Score(predicted, actual []int) float64 {
	n := 0.0
	for _, p := range predicted {
		if p == Positive {
			n++
		}
	}
	return n
}

func (numPred) Name() string {
	return "NumPred"
}

func (numTruePos) Score(predicted, actual []int) float64 {
	n := 0.0
	for i, p := range predicted {
		if i < len(actual) && p == Positive && actual[i] == Positive {
			n++
		}
	}
	return n
}

func (numTruePos) Name() string {
	return "NumTruePos"
}

// Score uses the beta parameter to compute f-measure.
func (f FMeasure) Score(predicted, actual []int) float64 {
	precision := PrecisionEvaluator.Score(predicted, actual)
	recall := RecallEvaluator.Score(predicted, actual)
	if precision == 0 || recall == 0 {
		return 0
	}
	betaSquared := math.Pow(f.beta, 2)
	return ((1 + betaSquared) * (precision * recall)) / ((betaSquared * precision) + recall)
}

// Name calculates the name of the f-measure with beta parameter.
func (f FMeasure) Name() string {
	return fmt.Sprintf("F%vMeasure", f.beta)
}
