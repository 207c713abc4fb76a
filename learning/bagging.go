package learning

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Estimator is a fitted member of an ensemble.
type Estimator interface {
	Predict(x []float64) int
}

// Ensemble is a fixed set of estimators combined by majority vote. It is
// never modified after it is created and may be used concurrently.
type Ensemble struct {
	estimators []Estimator
	features   int
	seed       int64
}

// NewEnsemble combines already fitted estimators that each expect rows of
// the given width.
func NewEnsemble(features int, estimators ...Estimator) *Ensemble {
	return &Ensemble{estimators: estimators, features: features}
}

// Size is the number of estimators.
func (e *Ensemble) Size() int {
	if e == nil {
		return 0
	}
	return len(e.estimators)
}

// Features is the number of columns the ensemble was fitted on.
func (e *Ensemble) Features() int {
	if e == nil {
		return 0
	}
	return e.features
}

// Seed is the seed the ensemble was fitted with.
func (e *Ensemble) Seed() int64 {
	if e == nil {
		return 0
	}
	return e.seed
}

// Predict classifies every row of X. Each row is labelled with the majority
// vote of the estimators. A nil matrix has no rows and gives no predictions.
func (e *Ensemble) Predict(X *mat.Dense) ([]int, error) {
	if e.Size() == 0 {
		return nil, NotFittedError{}
	}
	if X == nil || X.IsEmpty() {
		return []int{}, nil
	}
	rows, cols := X.Dims()
	if cols != e.features {
		return nil, FeatureShapeError{Want: e.features, Got: cols}
	}
	predictions := make([]int, rows)
	votes := make([]int, len(e.estimators))
	for i := 0; i < rows; i++ {
		x := X.RawRowView(i)
		for j, est := range e.estimators {
			votes[j] = est.Predict(x)
		}
		predictions[i] = Vote(votes)
	}
	return predictions, nil
}

type fitOptions struct {
	ctx      context.Context
	progress func()
}

// FitOption configures a single call to Fit.
type FitOption func(*fitOptions)

// WithProgress is called each time a tree has been fitted. It may be called
// from several goroutines at once.
func WithProgress(fn func()) FitOption {
	return func(o *fitOptions) {
		o.progress = fn
	}
}

// WithContext stops scheduling new trees once ctx is done.
func WithContext(ctx context.Context) FitOption {
	return func(o *fitOptions) {
		o.ctx = ctx
	}
}

// Fit trains NEstimators trees, each on its own bootstrap sample of the rows
// of X. Tree i draws its sample from a source seeded with seed+i, so the
// result does not depend on how many trees are fitted at once.
func (c Config) Fit(X *mat.Dense, y []int, options ...FitOption) (*Ensemble, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if X == nil || X.IsEmpty() {
		return nil, EmptyDatasetError{}
	}
	rows, features := X.Dims()
	if len(y) != rows {
		return nil, errors.Errorf("%d labels for %d rows", len(y), rows)
	}

	o := fitOptions{
		ctx:      context.Background(),
		progress: func() {},
	}
	for _, option := range options {
		option(&o)
	}

	var seed int64
	if c.RandomSeed != nil {
		seed = *c.RandomSeed
	} else {
		var err error
		seed, err = newSeed()
		if err != nil {
			return nil, err
		}
	}

	var sampler Sampler = NewBootstrapSampler(c.BootstrapFraction)

	workers := c.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	estimators := make([]Estimator, c.NEstimators)
	g, ctx := errgroup.WithContext(o.ctx)
	g.SetLimit(workers)
	for i := range estimators {
		if ctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(i)))
			idx := sampler.Sample(rows, rng)
			estimators[i] = FitTree(X, y, idx, c.MaxDepth, c.MinSamplesSplit)
			o.progress()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := o.ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "fit interrupted")
	}

	return &Ensemble{estimators: estimators, features: features, seed: seed}, nil
}

// newSeed draws a seed from the operating system.
func newSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "read random seed")
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
