package learning

import (
	"math"
)

// Config holds the hyper-parameters of a bagged tree ensemble.
type Config struct {
	// NEstimators is the number of trees.
	NEstimators int
	// MaxDepth bounds the depth of every tree. The root is at depth zero.
	MaxDepth int
	// MinSamplesSplit is the smallest node that may be split.
	MinSamplesSplit int
	// BootstrapFraction is the size of each bootstrap sample relative to the
	// training set.
	BootstrapFraction float64
	// RandomSeed makes fitting reproducible. When nil a seed is drawn from the
	// operating system for every fit.
	RandomSeed *int64
	// Workers is the number of trees fitted at once. Zero means GOMAXPROCS.
	Workers int
}

// Option configures a Config.
type Option func(*Config)

// WithEstimators sets the number of trees.
func WithEstimators(n int) Option {
	return func(c *Config) {
		c.NEstimators = n
	}
}

// WithMaxDepth sets the maximum tree depth.
func WithMaxDepth(depth int) Option {
	return func(c *Config) {
		c.MaxDepth = depth
	}
}

// WithMinSamplesSplit sets the minimum node size for a split.
func WithMinSamplesSplit(n int) Option {
	return func(c *Config) {
		c.MinSamplesSplit = n
	}
}

// WithBootstrapFraction sets the relative bootstrap sample size.
func WithBootstrapFraction(fraction float64) Option {
	return func(c *Config) {
		c.BootstrapFraction = fraction
	}
}

// WithSeed fixes the random seed.
func WithSeed(seed int64) Option {
	return func(c *Config) {
		c.RandomSeed = &seed
	}
}

// WithWorkers sets the number of trees fitted concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

// DefaultConfig is 100 trees of depth at most 10, bootstrapped over the whole
// training set, without a fixed seed.
func DefaultConfig() Config {
	return Config{
		NEstimators:       100,
		MaxDepth:          10,
		MinSamplesSplit:   2,
		BootstrapFraction: 1.0,
	}
}

// NewConfig applies options to the default configuration and validates the
// result.
func NewConfig(options ...Option) (Config, error) {
	c := DefaultConfig()
	for _, option := range options {
		option(&c)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate returns a ConfigError for the first out of range value.
func (c Config) Validate() error {
	switch {
	case c.NEstimators < 1:
		return ConfigError{Field: "n_estimators", Reason: "must be at least 1"}
	case c.MaxDepth < 1:
		return ConfigError{Field: "max_depth", Reason: "must be at least 1"}
	case c.MinSamplesSplit < 2:
		return ConfigError{Field: "min_samples_split", Reason: "must be at least 2"}
	case math.IsNaN(c.BootstrapFraction) || c.BootstrapFraction <= 0 || c.BootstrapFraction > 1:
		return ConfigError{Field: "bootstrap_fraction", Reason: "must be in (0, 1]"}
	case c.Workers < 0:
		return ConfigError{Field: "workers", Reason: "must not be negative"}
	}
	return nil
}
