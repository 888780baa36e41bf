package main

import (
	"github.com/spf13/cobra"

	qed "github.com/jamesainslie/go-qed"
	"github.com/jamesainslie/go-qed/internal/config"
	"github.com/jamesainslie/go-qed/internal/dataset"
	"github.com/jamesainslie/go-qed/internal/logging"
	"github.com/jamesainslie/go-qed/internal/report"
)

type scoreFlags struct {
	annotation   string
	prediction   string
	strict       bool
	minOverlapF1 float64
	format       string
	perExample   bool
}

func addCorpusFlags(cmd *cobra.Command, annotation, prediction *string) {
	f := cmd.Flags()
	f.StringVar(annotation, "annotation", config.DefaultPath, "Path to annotation JSON lines")
	f.StringVar(prediction, "prediction", config.DefaultPath, "Path to prediction JSON lines")
}

func newScoreCmd(rf *rootFlags) *cobra.Command {
	sf := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score predictions against annotations",
		Long: `Score loads the annotation and prediction files, matches mentions, aligned
pairs and answers, and writes a report to stdout.`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := rf.resolve(cmd, sf.apply(cmd))
		if err != nil {
			return err
		}
		format, err := report.ParseFormat(cfg.Format)
		if err != nil {
			return err
		}

		annotation, prediction, err := dataset.LoadPair(cmd.Context(), cfg.Annotation, cfg.Prediction)
		if err != nil {
			return err
		}

		opts := append(cfg.Options(), qed.WithLogger(logging.Component("scorer")))
		r, err := qed.New(opts...).Score(annotation.Corpus, prediction.Corpus)
		if err != nil {
			return err
		}
		return report.Write(cmd.OutOrStdout(), r, format, sf.perExample)
	}

	addCorpusFlags(cmd, &sf.annotation, &sf.prediction)
	f := cmd.Flags()
	f.BoolVar(&sf.strict, "strict", false, "Match mentions by exact offsets instead of text and overlap")
	f.Float64Var(&sf.minOverlapF1, "min-overlap-f1", qed.DefaultMinOverlapF1, "Minimum span overlap F1 for a non-strict match")
	f.StringVar(&sf.format, "format", "text", "Report format (text, markdown, json, yaml, proto)")
	f.BoolVar(&sf.perExample, "per-example", false, "Include one row per scored example")
	return cmd
}

func (sf *scoreFlags) apply(cmd *cobra.Command) func(*config.Config) {
	return func(cfg *config.Config) {
		f := cmd.Flags()
		if f.Changed("annotation") {
			cfg.Annotation = sf.annotation
		}
		if f.Changed("prediction") {
			cfg.Prediction = sf.prediction
		}
		if f.Changed("strict") {
			cfg.Strict = sf.strict
		}
		if f.Changed("min-overlap-f1") {
			cfg.MinOverlapF1 = sf.minOverlapF1
		}
		if f.Changed("format") {
			cfg.Format = sf.format
		}
	}
}
