package main

import (
	"fmt"

	"github.com/spf13/cobra"

	qed "github.com/jamesainslie/go-qed"
	"github.com/jamesainslie/go-qed/internal/bench"
	"github.com/jamesainslie/go-qed/internal/config"
	"github.com/jamesainslie/go-qed/internal/dataset"
	"github.com/jamesainslie/go-qed/internal/logging"
	"github.com/jamesainslie/go-qed/internal/report"
)

type sweepFlags struct {
	annotation string
	prediction string
	min        float64
	max        float64
	step       float64
	format     string
}

func newSweepCmd(rf *rootFlags) *cobra.Command {
	wf := &sweepFlags{}

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Score non-strictly across a range of overlap thresholds",
		Long: `Sweep scores the predictions non-strictly at each overlap threshold from
--sweep-min to --sweep-max and ranks the thresholds by pair F1.`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := rf.resolve(cmd, func(cfg *config.Config) {
			f := cmd.Flags()
			if f.Changed("annotation") {
				cfg.Annotation = wf.annotation
			}
			if f.Changed("prediction") {
				cfg.Prediction = wf.prediction
			}
		})
		if err != nil {
			return err
		}

		format, err := report.ParseFormat(wf.format)
		if err != nil {
			return err
		}
		if format != report.Text && format != report.Markdown {
			return fmt.Errorf("%w: %q for sweep", report.ErrUnknownFormat, format)
		}
		thresholds, err := bench.SweepThresholds(wf.min, wf.max, wf.step)
		if err != nil {
			return err
		}

		annotation, prediction, err := dataset.LoadPair(cmd.Context(), cfg.Annotation, cfg.Prediction)
		if err != nil {
			return err
		}

		results, err := bench.Sweep(annotation.Corpus, prediction.Corpus, thresholds, qed.WithLogger(logging.Component("sweep")))
		if err != nil {
			return err
		}
		return report.WriteSweep(cmd.OutOrStdout(), results, format)
	}

	addCorpusFlags(cmd, &wf.annotation, &wf.prediction)
	f := cmd.Flags()
	f.Float64Var(&wf.min, "sweep-min", 0.5, "Sweep minimum threshold")
	f.Float64Var(&wf.max, "sweep-max", 1.0, "Sweep maximum threshold")
	f.Float64Var(&wf.step, "sweep-step", 0.05, "Sweep step size")
	f.StringVar(&wf.format, "format", "text", "Table format (text, markdown)")
	return cmd
}
