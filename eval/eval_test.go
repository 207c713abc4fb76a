package eval_test

import (
	"math"
	"strings"
	"testing"

	"github.com/hscells/lifeboat/eval"
	"github.com/hscells/lifeboat/matrix"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	actual    = []int{1, 1, 0, 0, 1, 0}
	predicted = []int{1, 0, 0, 1, 1, 0}
)

func TestAccuracy(t *testing.T) {
	a, err := eval.Accuracy(predicted, actual)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a-4.0/6.0) > 1e-9 {
		t.Fatalf("expected 4/6, got %v", a)
	}

	_, err = eval.Accuracy(predicted[:2], actual)
	if !errors.As(err, &matrix.LengthMismatchError{}) {
		t.Fatalf("expected a length mismatch, got %v", err)
	}
}

func TestEvaluate(t *testing.T) {
	scores, err := eval.Evaluate([]eval.Evaluator{
		eval.AccuracyEvaluator,
		eval.PrecisionEvaluator,
		eval.RecallEvaluator,
		eval.F1Measure,
		eval.NumPos,
	}, predicted, actual)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{
		"Accuracy":  4.0 / 6.0,
		"Precision": 2.0 / 3.0,
		"Recall":    2.0 / 3.0,
		"F1Measure": 2.0 / 3.0,
		"NumPos":    3,
	}
	for name, v := range want {
		if math.Abs(scores[name]-v) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", name, v, scores[name])
		}
	}
}

func TestNoPositives(t *testing.T) {
	zeros := []int{0, 0, 0}
	if p := eval.PrecisionEvaluator.Score(zeros, zeros); p != 0 {
		t.Errorf("expected zero precision, got %v", p)
	}
	if f := eval.F1Measure.Score(zeros, zeros); f != 0 {
		t.Errorf("expected zero f-measure, got %v", f)
	}
}

func TestConfusionMatrix(t *testing.T) {
	X := mat.NewDense(len(actual), 1, []float64{1, 2, 3, 4, 5, 6})
	cm, err := eval.ConfusionMatrix(X, []string{"x"}, actual, predicted)
	if err != nil {
		t.Fatal(err)
	}
	if cm["1"]["1"] != 2 || cm["1"]["0"] != 1 || cm["0"]["0"] != 2 || cm["0"]["1"] != 1 {
		t.Fatalf("unexpected confusion matrix %v", cm)
	}
	if s := eval.Summary(cm); strings.TrimSpace(s) == "" {
		t.Error("expected a summary")
	}
}

func TestByName(t *testing.T) {
	evaluators, err := eval.ByName("f0.5", "f3", "num_pred")
	if err != nil {
		t.Fatal(err)
	}
	scores, err := eval.Evaluate(evaluators, predicted, actual)
	if err != nil {
		t.Fatal(err)
	}
	// Precision and recall are both 2/3, so every f-measure is 2/3.
	want := map[string]float64{
		"F0.5Measure": 2.0 / 3.0,
		"F3Measure":   2.0 / 3.0,
		"NumPred":     3,
	}
	for name, v := range want {
		if math.Abs(scores[name]-v) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", name, v, scores[name])
		}
	}

	if _, err := eval.ByName("accuracy", "auc"); err == nil {
		t.Fatal("expected an error for an unknown measure")
	}
}
