package lifeboat

import (
	"github.com/hscells/lifeboat/matrix"
)

type ResultType uint8

const (
	Evaluation ResultType = iota
	Submission
	Summary
	Error
	Done
)

// PipelineResult is the output of a lifeboat pipeline.
type PipelineResult struct {
	Evaluations []string
	Scores      map[string]float64
	Submission  []matrix.SubmissionRow
	Summaries   []string
	Error       error
	Type        ResultType
}
