package output

import (
	"encoding/json"
)

// EvaluationFormatter is used in a lifeboat pipeline to output evaluation results.
type EvaluationFormatter func(map[string]float64) (string, error)

// JsonEvaluationFormatter outputs results in a JSON format.
func JsonEvaluationFormatter(results map[string]float64) (string, error) {
	v, err := json.MarshalIndent(results, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}
