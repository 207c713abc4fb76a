// Package config reads the settings of a lifeboat run from a properties file
// and the environment.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/hscells/lifeboat/learning"
	"github.com/hscells/lifeboat/preprocess"
	"github.com/magiconair/properties"
	"github.com/pkg/errors"
)

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "LIFEBOAT_"

// Config is the complete configuration of a run.
type Config struct {
	Data     Data     `properties:"data" envPrefix:"DATA_"`
	Model    Model    `properties:"model" envPrefix:"MODEL_"`
	Encoding Encoding `properties:"encoding" envPrefix:"ENCODING_"`
	// Validation is the share of the training data used to fit the
	// validation model. Zero skips validation.
	Validation float64 `properties:"validation,default=0.8" env:"VALIDATION"`
	Quiet      bool    `properties:"quiet,default=false" env:"QUIET"`
}

// Data locates the input and output files.
type Data struct {
	Train  string `properties:"train,default=data/train.csv" env:"TRAIN"`
	Test   string `properties:"test,default=data/test.csv" env:"TEST"`
	Output string `properties:"output,default=data/submission.csv" env:"OUTPUT"`
}

// Model holds the ensemble hyper-parameters.
type Model struct {
	Trees             int     `properties:"trees,default=100" env:"TREES"`
	MaxDepth          int     `properties:"max_depth,default=10" env:"MAX_DEPTH"`
	MinSamplesSplit   int     `properties:"min_samples_split,default=2" env:"MIN_SAMPLES_SPLIT"`
	BootstrapFraction float64 `properties:"bootstrap_fraction,default=1.0" env:"BOOTSTRAP_FRACTION"`
	Seed              int64   `properties:"seed,default=1" env:"SEED"`
	// Unseeded ignores Seed and draws a new seed for every fit.
	Unseeded bool `properties:"unseeded,default=false" env:"UNSEEDED"`
	Workers  int  `properties:"workers,default=0" env:"WORKERS"`
}

// Encoding holds the imputation policy.
type Encoding struct {
	NumericFill     float64 `properties:"numeric_fill,default=0" env:"NUMERIC_FILL"`
	CategoricalFill string  `properties:"categorical_fill,default=unknown" env:"CATEGORICAL_FILL"`
	Lowercase       bool    `properties:"lowercase,default=false" env:"LOWERCASE"`
}

// Default returns the configuration with every default applied.
func Default() Config {
	c, err := Parse(properties.NewProperties())
	if err != nil {
		// Every field has a default.
		panic(err)
	}
	return c
}

// Parse decodes properties over the defaults.
func Parse(p *properties.Properties) (Config, error) {
	var c Config
	if err := p.Decode(&c); err != nil {
		return Config{}, errors.Wrap(err, "decode properties")
	}
	return c, nil
}

// Load reads a properties file. An empty path gives the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Config{}, err
	}
	c, err := Parse(p)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load %s", path)
	}
	return c, nil
}

// ApplyEnv overrides values from LIFEBOAT_ prefixed environment variables.
// Variables that are not set leave the current value in place. A nil
// environment reads the process environment.
func (c *Config) ApplyEnv(environment map[string]string) error {
	err := env.ParseWithOptions(c, env.Options{
		Prefix:      EnvPrefix,
		Environment: environment,
	})
	if err != nil {
		return errors.Wrap(err, "parse env")
	}
	return nil
}

// Learning converts the model settings into a validated ensemble
// configuration.
func (c Config) Learning() (learning.Config, error) {
	options := []learning.Option{
		learning.WithEstimators(c.Model.Trees),
		learning.WithMaxDepth(c.Model.MaxDepth),
		learning.WithMinSamplesSplit(c.Model.MinSamplesSplit),
		learning.WithBootstrapFraction(c.Model.BootstrapFraction),
		learning.WithWorkers(c.Model.Workers),
	}
	if !c.Model.Unseeded {
		options = append(options, learning.WithSeed(c.Model.Seed))
	}
	return learning.NewConfig(options...)
}

// Encoder builds the feature encoder options.
func (c Config) Encoder() []preprocess.EncoderOption {
	processors := []preprocess.CategoryProcessor{preprocess.TrimSpace}
	if c.Encoding.Lowercase {
		processors = append(processors, preprocess.Lowercase)
	}
	return []preprocess.EncoderOption{
		preprocess.Impute(preprocess.Imputation{
			NumericFill:     c.Encoding.NumericFill,
			CategoricalFill: c.Encoding.CategoricalFill,
		}),
		preprocess.Process(processors...),
	}
}
