// Package dataset loads QED JSON lines files into corpora.
package dataset

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	qed "github.com/jamesainslie/go-qed"
)

// maxLineSize bounds a single JSON line; paragraphs can be long.
const maxLineSize = 16 << 20

// Stats counts what happened to the lines of one file.
type Stats struct {
	Lines    int // non-blank lines read
	Loaded   int // records kept in the corpus
	Filtered int // records with an explanation type other than single_sentence
	Rejected int // records that failed to decode or validate
}

// Result is a loaded corpus.
type Result struct {
	Path   string
	Corpus qed.Corpus
	Stats  Stats

	// Rejections holds one error per rejected line, nil when none were rejected.
	Rejections *multierror.Error
}

// Read loads a corpus from JSON lines. Rejected and filtered records are
// counted and skipped; only read errors are returned. When two records share
// an ID the later one wins.
func Read(r io.Reader) (*Result, error) {
	res := &Result{Corpus: make(qed.Corpus)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		res.Stats.Lines++

		ex, err := DecodeLine(line)
		if err != nil {
			res.Stats.Rejected++
			res.Rejections = multierror.Append(res.Rejections, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		if ex.ExplanationType != qed.ExplanationSingleSentence {
			res.Stats.Filtered++
			continue
		}
		res.Corpus[ex.ID] = ex
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan line %d: %w", lineNo+1, err)
	}

	res.Stats.Loaded = len(res.Corpus)
	return res, nil
}

// Load reads a corpus file and logs its rejected records.
func Load(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }() // Read-only; close error carries no data loss

	res, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	res.Path = path

	logger := slog.Default().With("path", path)
	if res.Rejections != nil {
		for _, e := range res.Rejections.Errors {
			logger.Warn("skipping record", "error", e)
		}
	}
	logger.Info("loaded corpus",
		"examples", res.Stats.Loaded,
		"filtered", res.Stats.Filtered,
		"not_correctly_formatted", res.Stats.Rejected)

	return res, nil
}

// LoadPair loads the annotation and prediction files concurrently.
func LoadPair(ctx context.Context, annotationPath, predictionPath string) (annotation, prediction *Result, err error) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res, err := Load(annotationPath)
		if err != nil {
			return fmt.Errorf("annotation: %w", err)
		}
		annotation = res
		return ctx.Err()
	})
	g.Go(func() error {
		res, err := Load(predictionPath)
		if err != nil {
			return fmt.Errorf("prediction: %w", err)
		}
		prediction = res
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return annotation, prediction, nil
}
