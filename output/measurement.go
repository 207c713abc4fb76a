package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
)

// CsvEvaluationFormatter outputs results as two column CSV sorted by measure name.
func CsvEvaluationFormatter(results map[string]float64) (string, error) {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	if err := w.Write([]string{"Measure", "Score"}); err != nil {
		return "", err
	}
	for _, name := range names {
		if err := w.Write([]string{name, strconv.FormatFloat(results[name], 'f', -1, 64)}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}
