package bench

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	qed "github.com/jamesainslie/go-qed"
)

// ErrInvalidRange is returned for a threshold range that yields no values.
var ErrInvalidRange = errors.New("bench: invalid threshold range")

// SweepResult holds the report for one overlap threshold.
type SweepResult struct {
	MinOverlapF1 float64
	Report       *qed.Report
}

// SweepThresholds generates threshold values from min to max inclusive with given step.
// Values are computed from the step index so rounding does not accumulate.
func SweepThresholds(min, max, step float64) ([]float64, error) {
	if step <= 0 || min <= 0 || max > 1 || min > max {
		return nil, fmt.Errorf("%w: min=%v max=%v step=%v", ErrInvalidRange, min, max, step)
	}

	n := int(math.Floor((max-min)/step+1e-9)) + 1
	thresholds := make([]float64, 0, n)
	for i := range n {
		t := math.Round((min+float64(i)*step)*1e9) / 1e9
		thresholds = append(thresholds, t)
	}
	return thresholds, nil
}

// Sweep scores predictions non-strictly at each threshold and returns results
// sorted by pair F1 descending. Ties keep threshold order.
func Sweep(annotations, predictions qed.Corpus, thresholds []float64, opts ...qed.Option) ([]SweepResult, error) {
	if len(thresholds) == 0 {
		return nil, fmt.Errorf("%w: no thresholds", ErrInvalidRange)
	}

	results := make([]SweepResult, len(thresholds))
	var g errgroup.Group
	for i, threshold := range thresholds {
		g.Go(func() error {
			o := append(slices.Clone(opts), qed.WithStrict(false), qed.WithMinOverlapF1(threshold))
			r, err := qed.New(o...).Score(annotations, predictions)
			if err != nil {
				return fmt.Errorf("scoring at threshold %v: %w", threshold, err)
			}
			results[i] = SweepResult{MinOverlapF1: threshold, Report: r}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(results, func(a, b SweepResult) int {
		switch {
		case a.Report.Pair.F1 > b.Report.Pair.F1:
			return -1
		case a.Report.Pair.F1 < b.Report.Pair.F1:
			return 1
		}
		return 0
	})

	return results, nil
}
