package lifeboat_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hscells/lifeboat"
	"github.com/hscells/lifeboat/dataset"
	"github.com/hscells/lifeboat/eval"
	"github.com/hscells/lifeboat/learning"
	"github.com/hscells/lifeboat/output"
	"github.com/pkg/errors"
	"go.uber.org/zap/zaptest"
)

const (
	trainPath = "dataset/testdata/train.csv"
	testPath  = "dataset/testdata/test.csv"
)

func run(t *testing.T, components ...func() interface{}) []lifeboat.PipelineResult {
	t.Helper()
	c := make(chan lifeboat.PipelineResult)
	p := lifeboat.NewPipeline(trainPath, testPath, append([]func() interface{}{
		lifeboat.Logger(zaptest.NewLogger(t).Sugar()),
	}, components...)...)
	go p.Execute(context.Background(), c)

	var results []lifeboat.PipelineResult
	for result := range c {
		results = append(results, result)
	}
	return results
}

func seeded(t *testing.T) learning.Config {
	t.Helper()
	c, err := learning.NewConfig(learning.WithSeed(1), learning.WithEstimators(15), learning.WithMaxDepth(5))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestPipeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submission.csv")
	results := run(t,
		lifeboat.Model(seeded(t)),
		lifeboat.Validation(0.8),
		lifeboat.Measures(eval.AccuracyEvaluator, eval.F1Measure),
		lifeboat.EvaluationOutput(output.JsonEvaluationFormatter),
		lifeboat.SummaryOutput(output.TextSummaryFormatter),
		lifeboat.SubmissionOutput(path),
	)

	var seen []lifeboat.ResultType
	for _, result := range results {
		if result.Type == lifeboat.Error {
			t.Fatal(result.Error)
		}
		seen = append(seen, result.Type)
		switch result.Type {
		case lifeboat.Evaluation:
			if len(result.Evaluations) != 1 {
				t.Errorf("expected one formatted evaluation, got %d", len(result.Evaluations))
			}
			if _, ok := result.Scores["Accuracy"]; !ok {
				t.Errorf("expected an accuracy score, got %v", result.Scores)
			}
		case lifeboat.Submission:
			if len(result.Submission) != 6 {
				t.Errorf("expected 6 rows, got %d", len(result.Submission))
			}
		case lifeboat.Summary:
			if !strings.Contains(result.Summaries[0], "survival rate Sex=female") {
				t.Errorf("expected survival rates in the summary, got\n%s", result.Summaries[0])
			}
		}
	}
	want := []lifeboat.ResultType{lifeboat.Evaluation, lifeboat.Submission, lifeboat.Summary, lifeboat.Done}
	if len(seen) != len(want) {
		t.Fatalf("expected results %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected results %v, got %v", want, seen)
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if lines[0] != "PassengerId,Survived" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	ids := []string{"892", "893", "894", "895", "896", "1044"}
	if len(lines) != len(ids)+1 {
		t.Fatalf("expected %d rows, got %d", len(ids), len(lines)-1)
	}
	for i, id := range ids {
		if !strings.HasPrefix(lines[i+1], id+",") {
			t.Errorf("row %d: expected passenger %s, got %q", i, id, lines[i+1])
		}
	}
}

func TestPipelineDeterministic(t *testing.T) {
	submission := func() []int {
		var predictions []int
		for _, result := range run(t, lifeboat.Model(seeded(t))) {
			if result.Type == lifeboat.Error {
				t.Fatal(result.Error)
			}
			for _, row := range result.Submission {
				predictions = append(predictions, row.Prediction)
			}
		}
		return predictions
	}
	a, b := submission(), submission()
	if len(a) != 6 || len(a) != len(b) {
		t.Fatalf("expected two submissions of 6 rows, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical submissions, got %v and %v", a, b)
		}
	}
}

func TestPipelineMissingInput(t *testing.T) {
	c := make(chan lifeboat.PipelineResult)
	p := lifeboat.NewPipeline("testdata/missing.csv", testPath)
	go p.Execute(context.Background(), c)

	var results []lifeboat.PipelineResult
	for result := range c {
		results = append(results, result)
	}
	if len(results) != 1 || results[0].Type != lifeboat.Error {
		t.Fatalf("expected a single error, got %v", results)
	}
	if !strings.Contains(results[0].Error.Error(), "load train") {
		t.Fatalf("expected the stage in the error, got %v", results[0].Error)
	}
}

func TestPipelineInvalidModel(t *testing.T) {
	results := run(t, lifeboat.Model(learning.Config{}))
	last := results[len(results)-1]
	var configErr learning.ConfigError
	if last.Type != lifeboat.Error || !errors.As(last.Error, &configErr) {
		t.Fatalf("expected a config error, got %v", last)
	}
}

func TestPipelineUnlabelledTrain(t *testing.T) {
	train := filepath.Join(t.TempDir(), "train.csv")
	if err := os.WriteFile(train, []byte("PassengerId,Sex,Age\n1,male,22\n2,female,38\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c := make(chan lifeboat.PipelineResult)
	p := lifeboat.NewPipeline(train, testPath)
	go p.Execute(context.Background(), c)

	var results []lifeboat.PipelineResult
	for result := range c {
		results = append(results, result)
	}
	if len(results) != 1 || results[0].Type != lifeboat.Error {
		t.Fatalf("expected a single error, got %v", results)
	}
	var schemaErr dataset.SchemaError
	if !errors.As(results[0].Error, &schemaErr) {
		t.Fatalf("expected a schema error, got %v", results[0].Error)
	}
	if schemaErr.Field != "Survived" || schemaErr.Row != -1 {
		t.Fatalf("expected the missing label column, got %+v", schemaErr)
	}
}
