package learning

import "fmt"

// ConfigError is returned when a configuration value is out of range.
type ConfigError struct {
	Field  string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

// EmptyDatasetError is returned when fitting on a matrix with no rows.
type EmptyDatasetError struct{}

func (EmptyDatasetError) Error() string {
	return "cannot fit on an empty dataset"
}

// NotFittedError is returned when predicting with an ensemble that was never
// fitted.
type NotFittedError struct{}

func (NotFittedError) Error() string {
	return "ensemble has not been fitted"
}

// FeatureShapeError is returned when a matrix does not have the number of
// columns the ensemble was fitted on.
type FeatureShapeError struct {
	Want int
	Got  int
}

func (e FeatureShapeError) Error() string {
	return fmt.Sprintf("expected %d features, got %d", e.Want, e.Got)
}
