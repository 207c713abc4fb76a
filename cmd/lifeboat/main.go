package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexflint/go-arg"
	"github.com/hscells/lifeboat"
	"github.com/hscells/lifeboat/config"
	"github.com/hscells/lifeboat/eval"
	"github.com/hscells/lifeboat/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/cheggaaa/pb.v1"
)

var (
	name    = "lifeboat"
	version = "19.Oct.2026"
	author  = "lifeboat contributors"
)

type args struct {
	Train      string   `help:"path to the labelled training passengers" arg:"--train"`
	Test       string   `help:"path to the unlabelled test passengers" arg:"--test"`
	Output     string   `help:"path to write the submission to" arg:"-o,--output"`
	Config     string   `help:"properties file with run settings" arg:"-c,--config"`
	Seed       *int64   `help:"random seed for the ensemble" arg:"--seed"`
	Trees      *int     `help:"number of trees in the ensemble" arg:"--trees"`
	Validation *float64 `help:"share of training rows used to fit the validation model (0 disables validation)" arg:"--validation"`
	Measures   []string `help:"validation measures (accuracy, precision, recall, f1, f0.5, f3, num_pos, num_pred, num_tp)" arg:"-e,--measures,separate"`
	Unseeded   bool     `help:"draw a fresh seed for every fit" arg:"--unseeded"`
	JSON       bool     `help:"print the summary as JSON" arg:"--json"`
	Quiet      bool     `help:"only log warnings and errors" arg:"-q,--quiet"`
	Verbose    bool     `help:"log debugging output" arg:"-v,--verbose"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s`, name, author, version)
}

func newLogger(level zapcore.Level) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func main() {
	var args args
	arg.MustParse(&args)

	conf, err := config.Load(args.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := conf.ApplyEnv(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags take precedence over the file and the environment.
	if len(args.Train) > 0 {
		conf.Data.Train = args.Train
	}
	if len(args.Test) > 0 {
		conf.Data.Test = args.Test
	}
	if len(args.Output) > 0 {
		conf.Data.Output = args.Output
	}
	if args.Seed != nil {
		conf.Model.Seed = *args.Seed
	}
	if args.Trees != nil {
		conf.Model.Trees = *args.Trees
	}
	if args.Validation != nil {
		conf.Validation = *args.Validation
	}
	if args.Unseeded {
		conf.Model.Unseeded = true
	}
	if args.Quiet {
		conf.Quiet = true
	}

	level := zapcore.InfoLevel
	switch {
	case args.Verbose:
		level = zapcore.DebugLevel
	case conf.Quiet:
		level = zapcore.WarnLevel
	}
	log, err := newLogger(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	model, err := conf.Learning()
	if err != nil {
		log.Fatal(err)
	}

	if len(args.Measures) == 0 {
		args.Measures = []string{"accuracy", "precision", "recall", "f1"}
	}
	measures, err := eval.ByName(args.Measures...)
	if err != nil {
		log.Fatal(err)
	}

	// Each fit grows the full ensemble; validation adds a second fit.
	total := model.NEstimators
	if conf.Validation > 0 {
		total *= 2
	}
	bar := pb.New(total)
	bar.NotPrint = conf.Quiet
	if !conf.Quiet {
		bar.Output = os.Stderr
	}
	bar.Start()

	summary := output.TextSummaryFormatter
	if args.JSON {
		summary = output.JsonSummaryFormatter
	}

	p := lifeboat.NewPipeline(conf.Data.Train, conf.Data.Test,
		lifeboat.Encoding(conf.Encoder()...),
		lifeboat.Model(model),
		lifeboat.Validation(conf.Validation),
		lifeboat.Measures(measures...),
		lifeboat.EvaluationOutput(output.CsvEvaluationFormatter),
		lifeboat.SummaryOutput(summary),
		lifeboat.SubmissionOutput(conf.Data.Output),
		lifeboat.Progress(func() { bar.Increment() }),
		lifeboat.Logger(log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := make(chan lifeboat.PipelineResult)
	go p.Execute(ctx, c)

	failed := false
	for result := range c {
		switch result.Type {
		case lifeboat.Error:
			bar.Finish()
			log.Errorf("%+v", result.Error)
			failed = true
		case lifeboat.Evaluation:
			for _, e := range result.Evaluations {
				log.Infof("validation scores\n%s", e)
			}
		case lifeboat.Summary:
			bar.Finish()
			for _, s := range result.Summaries {
				fmt.Println(s)
			}
		}
	}
	bar.Finish()
	if failed {
		log.Sync()
		os.Exit(1)
	}
}
