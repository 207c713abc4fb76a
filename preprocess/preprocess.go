// Package preprocess turns passenger tables into aligned numeric feature
// tables.
package preprocess

import (
	"strings"
)

// CategoryProcessor is applied to every categorical value before the
// vocabulary is computed.
type CategoryProcessor func(value string) string

// TrimSpace removes surrounding whitespace from a value.
func TrimSpace(value string) string {
	return strings.TrimSpace(value)
}

// Lowercase transforms all capital letters to lowercase.
func Lowercase(value string) string {
	return strings.ToLower(value)
}

// ProcessCategory applies processors to a value in order.
func ProcessCategory(value string, processors ...CategoryProcessor) string {
	for _, p := range processors {
		value = p(value)
	}
	return value
}
