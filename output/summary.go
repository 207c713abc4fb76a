package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Summary reports on a single run.
type Summary struct {
	RunID    string `json:"run_id"`
	Seed     int64  `json:"seed"`
	Trees    int    `json:"trees"`
	Features int    `json:"features"`
	// Accuracy is keyed by the data it was measured on, e.g. "validation".
	Accuracy map[string]float64 `json:"accuracy"`
	// SurvivalRates are the observed rates in the training data, keyed by
	// "column=value".
	SurvivalRates map[string]float64 `json:"survival_rates"`
	Survived      int                `json:"survived"`
	Perished      int                `json:"perished"`
}

// Count tallies predicted labels into the summary.
func (s *Summary) Count(predictions []int) {
	for _, p := range predictions {
		if p == 1 {
			s.Survived++
		} else {
			s.Perished++
		}
	}
}

// SummaryFormatter renders a run summary.
type SummaryFormatter func(Summary) (string, error)

// TextSummaryFormatter outputs a summary for a terminal.
func TextSummaryFormatter(s Summary) (string, error) {
	b := new(bytes.Buffer)
	fmt.Fprintf(b, "run %s (seed %d, %d trees, %d features)\n", s.RunID, s.Seed, s.Trees, s.Features)
	for _, k := range sortedKeys(s.SurvivalRates) {
		fmt.Fprintf(b, "survival rate %s: %.2f%%\n", k, s.SurvivalRates[k]*100)
	}
	for _, k := range sortedKeys(s.Accuracy) {
		fmt.Fprintf(b, "%s accuracy: %.4f\n", k, s.Accuracy[k])
	}
	fmt.Fprintf(b, "predicted survived: %d\n", s.Survived)
	fmt.Fprintf(b, "predicted perished: %d\n", s.Perished)
	return b.String(), nil
}

// JsonSummaryFormatter outputs a summary in a JSON format.
func JsonSummaryFormatter(s Summary) (string, error) {
	v, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
