// Package lifeboat provides a pipeline that predicts passenger survival from
// the Titanic passenger lists.
package lifeboat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hscells/lifeboat/dataset"
	"github.com/hscells/lifeboat/eval"
	"github.com/hscells/lifeboat/learning"
	"github.com/hscells/lifeboat/matrix"
	"github.com/hscells/lifeboat/output"
	"github.com/hscells/lifeboat/preprocess"
	"github.com/pkg/errors"
	"github.com/xtgo/set"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Pipeline contains all the information for training an ensemble and writing
// a submission.
type Pipeline struct {
	TrainPath  string
	TestPath   string
	OutputPath string

	Columns              dataset.Columns
	Encoding             []preprocess.EncoderOption
	Model                learning.Config
	Validation           ValidationRatio
	Evaluations          []eval.Evaluator
	EvaluationFormatters []output.EvaluationFormatter
	SummaryFormatters    []output.SummaryFormatter
	Progress             ProgressFunc

	RunID  uuid.UUID
	Logger *zap.SugaredLogger
}

// ValidationRatio is the share of the training rows a validation model is
// fitted on. The remaining rows are held out and scored. Zero disables
// validation.
type ValidationRatio float64

// ProgressFunc is called each time a tree has been fitted.
type ProgressFunc func()

// Columns sets the naming scheme of the input tables.
func Columns(cols dataset.Columns) func() interface{} {
	return func() interface{} {
		return cols
	}
}

// Encoding configures the feature encoder.
func Encoding(options ...preprocess.EncoderOption) func() interface{} {
	return func() interface{} {
		return options
	}
}

// Model sets the ensemble configuration.
func Model(c learning.Config) func() interface{} {
	return func() interface{} {
		return c
	}
}

// Validation holds out the tail of the training data for scoring.
func Validation(ratio float64) func() interface{} {
	return func() interface{} {
		return ValidationRatio(ratio)
	}
}

// Measures adds evaluation measures to the pipeline.
func Measures(measures ...eval.Evaluator) func() interface{} {
	return func() interface{} {
		return measures
	}
}

// EvaluationOutput adds formatters for the validation scores.
func EvaluationOutput(formatters ...output.EvaluationFormatter) func() interface{} {
	return func() interface{} {
		return formatters
	}
}

// SummaryOutput adds formatters for the run summary.
func SummaryOutput(formatters ...output.SummaryFormatter) func() interface{} {
	return func() interface{} {
		return formatters
	}
}

// SubmissionOutput sets the path the submission is written to. Without it
// the submission is only sent on the result channel.
func SubmissionOutput(path string) func() interface{} {
	return func() interface{} {
		return submissionPath(path)
	}
}

// Progress reports fitted trees.
func Progress(fn func()) func() interface{} {
	return func() interface{} {
		return ProgressFunc(fn)
	}
}

// Logger sets the pipeline logger.
func Logger(l *zap.SugaredLogger) func() interface{} {
	return func() interface{} {
		return l
	}
}

type submissionPath string

// NewPipeline creates a new lifeboat pipeline. The training and test files are
// required. Additional components are provided via the optional functional
// arguments.
func NewPipeline(train, test string, components ...func() interface{}) Pipeline {
	p := Pipeline{
		TrainPath:   train,
		TestPath:    test,
		Columns:     dataset.TitanicColumns(),
		Model:       learning.DefaultConfig(),
		Evaluations: []eval.Evaluator{eval.AccuracyEvaluator},
		Progress:    func() {},
		RunID:       uuid.New(),
		Logger:      zap.NewNop().Sugar(),
	}

	for _, component := range components {
		val := component()
		switch v := val.(type) {
		case dataset.Columns:
			p.Columns = v
		case []preprocess.EncoderOption:
			p.Encoding = v
		case learning.Config:
			p.Model = v
		case ValidationRatio:
			p.Validation = v
		case []eval.Evaluator:
			p.Evaluations = v
		case []output.EvaluationFormatter:
			p.EvaluationFormatters = v
		case []output.SummaryFormatter:
			p.SummaryFormatters = v
		case submissionPath:
			p.OutputPath = string(v)
		case ProgressFunc:
			p.Progress = v
		case *zap.SugaredLogger:
			p.Logger = v
		}
	}

	return p
}

// fitted is a model trained on one table together with the encoded rows of
// another table it will be applied to.
type fitted struct {
	ensemble *learning.Ensemble
	names    []string
	X        *mat.Dense
	y        []int
	T        *mat.Dense
}

// Execute runs the pipeline. Results are sent on c as they become available
// and c is closed once the pipeline is done or has failed.
func (p Pipeline) Execute(ctx context.Context, c chan PipelineResult) {
	defer close(c)
	log := p.Logger.With("run", p.RunID.String())
	log.Infow("starting lifeboat pipeline", "train", p.TrainPath, "test", p.TestPath)

	fail := func(err error, stage string) {
		log.Errorw("pipeline failed", "stage", stage, "error", err)
		c <- PipelineResult{
			Error: errors.Wrap(err, stage),
			Type:  Error,
		}
	}

	train, err := dataset.LoadFile(p.TrainPath, p.Columns)
	if err != nil {
		fail(err, "load train")
		return
	}
	test, err := dataset.LoadFile(p.TestPath, p.Columns)
	if err != nil {
		fail(err, "load test")
		return
	}
	if !train.HasLabels() {
		fail(dataset.SchemaError{Row: -1, Field: p.Columns.Label}, "load train")
		return
	}
	log.Infow("loaded passengers", "train", train.Len(), "test", test.Len())

	summary := output.Summary{
		RunID:         p.RunID.String(),
		Accuracy:      make(map[string]float64),
		SurvivalRates: p.survivalRates(train),
	}

	if p.Validation > 0 {
		head, tail, err := train.Split(float64(p.Validation))
		if err != nil {
			fail(err, "split")
			return
		}
		f, err := p.fit(ctx, head, tail)
		if err != nil {
			fail(err, "validation")
			return
		}
		predicted, err := f.ensemble.Predict(f.T)
		if err != nil {
			fail(err, "validation predict")
			return
		}
		actual, err := matrix.LabelsToVector(tail, p.Columns.Label)
		if err != nil {
			fail(err, "validation labels")
			return
		}
		scores, err := eval.Evaluate(p.Evaluations, predicted, actual)
		if err != nil {
			fail(err, "validation evaluate")
			return
		}
		accuracy, err := eval.Accuracy(predicted, actual)
		if err != nil {
			fail(err, "validation evaluate")
			return
		}
		summary.Accuracy["validation"] = accuracy
		log.Infow("validated model", "train", head.Len(), "held out", tail.Len(), "accuracy", accuracy)

		if cm, err := eval.ConfusionMatrix(f.T, f.names, actual, predicted); err == nil {
			log.Debugf("validation confusion matrix\n%s", eval.Summary(cm))
		} else {
			log.Warnw("could not compute confusion matrix", "error", err)
		}

		outputs := make([]string, len(p.EvaluationFormatters))
		for i, formatter := range p.EvaluationFormatters {
			outputs[i], err = formatter(scores)
			if err != nil {
				fail(err, "format evaluation")
				return
			}
		}
		c <- PipelineResult{
			Evaluations: outputs,
			Scores:      scores,
			Type:        Evaluation,
		}
	}

	// The final model is fitted on every training row.
	f, err := p.fit(ctx, train, test)
	if err != nil {
		fail(err, "train")
		return
	}
	trained, err := f.ensemble.Predict(f.X)
	if err != nil {
		fail(err, "train predict")
		return
	}
	if summary.Accuracy["training"], err = eval.Accuracy(trained, f.y); err != nil {
		fail(err, "train evaluate")
		return
	}

	predictions, err := f.ensemble.Predict(f.T)
	if err != nil {
		fail(err, "predict")
		return
	}
	names := matrix.NamesFor(p.Columns)
	df, err := matrix.VectorToTable(predictions, test.IDs(), names)
	if err != nil {
		fail(err, "submission")
		return
	}
	rows, err := matrix.Rows(predictions, test.IDs())
	if err != nil {
		fail(err, "submission")
		return
	}
	if len(p.OutputPath) > 0 {
		if err := output.WriteSubmissionFile(p.OutputPath, df); err != nil {
			fail(err, "write submission")
			return
		}
		log.Infow("wrote submission", "path", p.OutputPath, "rows", len(rows))
	}
	c <- PipelineResult{
		Submission: rows,
		Type:       Submission,
	}

	summary.Seed = f.ensemble.Seed()
	summary.Trees = f.ensemble.Size()
	summary.Features = f.ensemble.Features()
	summary.Count(predictions)
	if len(p.SummaryFormatters) > 0 {
		outputs := make([]string, len(p.SummaryFormatters))
		for i, formatter := range p.SummaryFormatters {
			outputs[i], err = formatter(summary)
			if err != nil {
				fail(err, "format summary")
				return
			}
		}
		c <- PipelineResult{
			Summaries: outputs,
			Type:      Summary,
		}
	}

	log.Infow("finished lifeboat pipeline", "survived", summary.Survived, "perished", summary.Perished)
	c <- PipelineResult{Type: Done}
}

// fit encodes train and other together, fits an ensemble on train and keeps
// the encoded rows of other for prediction.
func (p Pipeline) fit(ctx context.Context, train, other *dataset.Table) (fitted, error) {
	trainFT, otherFT, err := preprocess.NewEncoder(p.Columns, p.Encoding...).Encode(train, other)
	if err != nil {
		return fitted{}, errors.Wrap(err, "encode")
	}
	X, err := matrix.ToMatrix(trainFT)
	if err != nil {
		return fitted{}, err
	}
	T, err := matrix.ToMatrix(otherFT)
	if err != nil {
		return fitted{}, err
	}
	y, err := matrix.LabelsToVector(train, p.Columns.Label)
	if err != nil {
		return fitted{}, err
	}
	p.Logger.Debugw("encoded features", "columns", trainFT.Names())

	e, err := p.Model.Fit(X, y, learning.WithContext(ctx), learning.WithProgress(p.Progress))
	if err != nil {
		return fitted{}, errors.Wrap(err, "fit")
	}
	return fitted{ensemble: e, names: trainFT.Names(), X: X, y: y, T: T}, nil
}

// survivalRates computes the observed survival rate of every categorical
// value in the training data.
func (p Pipeline) survivalRates(train *dataset.Table) map[string]float64 {
	rates := make(map[string]float64)
	for _, column := range p.Columns.Categorical {
		for _, value := range set.Strings(train.Strings(column)) {
			if value == "" {
				continue
			}
			rate, err := train.SurvivalRate(column, value)
			if err != nil {
				continue
			}
			rates[fmt.Sprintf("%s=%s", column, value)] = rate
		}
	}
	return rates
}
