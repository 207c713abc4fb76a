package learning

import (
	"math"
	"math/rand"
)

// Sampler draws the training rows of a single estimator.
type Sampler interface {
	Sample(rows int, rng *rand.Rand) []int
}

// BootstrapSampler samples row indices uniformly with replacement. The sample
// has floor(fraction*rows) indices, and always at least one.
type BootstrapSampler struct {
	fraction float64
}

func (s BootstrapSampler) Sample(rows int, rng *rand.Rand) []int {
	idx := make([]int, s.Size(rows))
	for i := range idx {
		idx[i] = rng.Intn(rows)
	}
	return idx
}

// Size is the number of indices drawn from rows rows.
func (s BootstrapSampler) Size(rows int) int {
	n := int(math.Floor(s.fraction * float64(rows)))
	if n < 1 {
		n = 1
	}
	return n
}

func NewBootstrapSampler(fraction float64) BootstrapSampler {
	return BootstrapSampler{
		fraction: fraction,
	}
}
