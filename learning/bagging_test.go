package learning_test

import (
	"context"
	"math/rand"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/hscells/lifeboat/learning"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// separable has label 1 exactly when the first feature is at least 0.5. The
// second feature is noise.
func separable(n int, seed int64) (*mat.Dense, []int) {
	rng := rand.New(rand.NewSource(seed))
	X := mat.NewDense(n, 2, nil)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		v := float64(i) / float64(n)
		X.Set(i, 0, v)
		X.Set(i, 1, rng.Float64())
		if v >= 0.5 {
			y[i] = 1
		}
	}
	return X, y
}

func TestNewConfigDefaults(t *testing.T) {
	c, err := learning.NewConfig()
	if err != nil {
		t.Fatal(err)
	}
	if c.NEstimators != 100 || c.MaxDepth != 10 || c.MinSamplesSplit != 2 || c.BootstrapFraction != 1.0 {
		t.Fatalf("unexpected defaults %+v", c)
	}
	if c.RandomSeed != nil {
		t.Fatalf("expected no seed, got %d", *c.RandomSeed)
	}

	c, err = learning.NewConfig(learning.WithSeed(42), learning.WithEstimators(5))
	if err != nil {
		t.Fatal(err)
	}
	if c.RandomSeed == nil || *c.RandomSeed != 42 || c.NEstimators != 5 {
		t.Fatalf("options were not applied: %+v", c)
	}
}

func TestNewConfigInvalid(t *testing.T) {
	tests := []struct {
		option learning.Option
		field  string
	}{
		{learning.WithEstimators(0), "n_estimators"},
		{learning.WithMaxDepth(0), "max_depth"},
		{learning.WithMinSamplesSplit(1), "min_samples_split"},
		{learning.WithBootstrapFraction(0), "bootstrap_fraction"},
		{learning.WithBootstrapFraction(1.5), "bootstrap_fraction"},
		{learning.WithWorkers(-1), "workers"},
	}
	for _, test := range tests {
		_, err := learning.NewConfig(test.option)
		var configErr learning.ConfigError
		if !errors.As(err, &configErr) {
			t.Errorf("%s: expected a config error, got %v", test.field, err)
			continue
		}
		if configErr.Field != test.field {
			t.Errorf("expected field %s, got %s", test.field, configErr.Field)
		}
	}
}

func TestFitValidatesConfig(t *testing.T) {
	X, y := separable(10, 1)
	_, err := learning.Config{}.Fit(X, y)
	var configErr learning.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected a config error, got %v", err)
	}
}

func TestFitEmpty(t *testing.T) {
	_, err := learning.DefaultConfig().Fit(nil, nil)
	if !errors.As(err, &learning.EmptyDatasetError{}) {
		t.Fatalf("expected an empty dataset error, got %v", err)
	}
}

func TestFitLabelMismatch(t *testing.T) {
	X, y := separable(10, 1)
	if _, err := learning.DefaultConfig().Fit(X, y[:5]); err == nil {
		t.Fatal("expected an error for mismatched labels")
	}
}

func TestFitDeterministic(t *testing.T) {
	X, y := separable(40, 3)
	c, err := learning.NewConfig(learning.WithSeed(42), learning.WithEstimators(25))
	if err != nil {
		t.Fatal(err)
	}

	a, err := c.Fit(X, y)
	if err != nil {
		t.Fatal(err)
	}
	serial := c
	serial.Workers = 1
	b, err := serial.Fit(X, y)
	if err != nil {
		t.Fatal(err)
	}

	pa, err := a.Predict(X)
	if err != nil {
		t.Fatal(err)
	}
	pb, err := b.Predict(X)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(pa, pb) {
		t.Fatalf("expected identical predictions\n%v\n%v", pa, pb)
	}
	if a.Seed() != 42 || a.Size() != 25 || a.Features() != 2 {
		t.Fatalf("unexpected ensemble: seed %d size %d features %d", a.Seed(), a.Size(), a.Features())
	}
}

func TestFitLearns(t *testing.T) {
	X, y := separable(40, 5)
	c, err := learning.NewConfig(learning.WithSeed(7), learning.WithEstimators(31))
	if err != nil {
		t.Fatal(err)
	}
	e, err := c.Fit(X, y)
	if err != nil {
		t.Fatal(err)
	}
	p, err := e.Predict(mat.NewDense(2, 2, []float64{
		0.05, 0.5,
		0.95, 0.5,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p, []int{0, 1}) {
		t.Fatalf("expected [0 1], got %v", p)
	}
}

func TestFitUnseeded(t *testing.T) {
	X, y := separable(10, 1)
	e, err := learning.DefaultConfig().Fit(X, y)
	if err != nil {
		t.Fatal(err)
	}
	if e.Size() != 100 {
		t.Fatalf("expected 100 trees, got %d", e.Size())
	}
}

func TestFitProgress(t *testing.T) {
	X, y := separable(20, 1)
	c, err := learning.NewConfig(learning.WithSeed(1), learning.WithEstimators(12), learning.WithWorkers(3))
	if err != nil {
		t.Fatal(err)
	}
	var n int64
	if _, err := c.Fit(X, y, learning.WithProgress(func() { atomic.AddInt64(&n, 1) })); err != nil {
		t.Fatal(err)
	}
	if n != 12 {
		t.Fatalf("expected 12 progress calls, got %d", n)
	}
}

func TestFitCancelled(t *testing.T) {
	X, y := separable(20, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := learning.DefaultConfig().Fit(X, y, learning.WithContext(ctx)); err == nil {
		t.Fatal("expected a cancelled fit to fail")
	}
}

func TestPredictNotFitted(t *testing.T) {
	X := mat.NewDense(1, 2, nil)
	var nilEnsemble *learning.Ensemble
	for _, e := range []*learning.Ensemble{nilEnsemble, {}, learning.NewEnsemble(2)} {
		_, err := e.Predict(X)
		if !errors.As(err, &learning.NotFittedError{}) {
			t.Errorf("expected a not fitted error, got %v", err)
		}
	}
}

func TestPredictFeatureShape(t *testing.T) {
	X, y := separable(20, 1)
	c, err := learning.NewConfig(learning.WithSeed(1), learning.WithEstimators(3))
	if err != nil {
		t.Fatal(err)
	}
	e, err := c.Fit(X, y)
	if err != nil {
		t.Fatal(err)
	}
	_, err = e.Predict(mat.NewDense(1, 3, nil))
	var shapeErr learning.FeatureShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected a feature shape error, got %v", err)
	}
	if shapeErr.Want != 2 || shapeErr.Got != 3 {
		t.Fatalf("unexpected error %+v", shapeErr)
	}
}

type constant int

func (c constant) Predict([]float64) int {
	return int(c)
}

func TestEnsembleVote(t *testing.T) {
	X := mat.NewDense(2, 1, nil)

	// 60/40
	e := learning.NewEnsemble(1, constant(1), constant(0), constant(1), constant(0), constant(1))
	p, err := e.Predict(X)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p, []int{1, 1}) {
		t.Fatalf("expected the majority to win, got %v", p)
	}

	// 50/50
	e = learning.NewEnsemble(1, constant(1), constant(0), constant(1), constant(0))
	p, err = e.Predict(X)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p, []int{0, 0}) {
		t.Fatalf("expected a tie to go to the lowest label, got %v", p)
	}
}
