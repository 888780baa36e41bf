// Package report renders scoring results as tables or structured documents.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	qed "github.com/jamesainslie/go-qed"
	"github.com/jamesainslie/go-qed/internal/bench"
)

// ErrUnknownFormat is returned for a format name Write does not support.
var ErrUnknownFormat = errors.New("report: unknown format")

// Format selects the report encoding.
type Format string

const (
	Text     Format = "text"     // Box-drawn terminal tables
	Markdown Format = "markdown" // GitHub-flavoured Markdown tables
	JSON     Format = "json"
	YAML     Format = "yaml"
	Proto    Format = "proto" // google.protobuf.Struct in protojson form
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case Text, Markdown, JSON, YAML, Proto:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// exampleRow is the structured form of one qed.ExampleScore.
type exampleRow struct {
	ID            int64   `json:"example_id" yaml:"example_id"`
	QuestionF1    float64 `json:"question_f1" yaml:"question_f1"`
	ContextF1     float64 `json:"context_f1" yaml:"context_f1"`
	PairF1        float64 `json:"pair_f1" yaml:"pair_f1"`
	Exact         bool    `json:"exact" yaml:"exact"`
	AnswerCorrect bool    `json:"answer_correct" yaml:"answer_correct"`
}

type document struct {
	qed.Summary `yaml:",inline"`

	Missing  []int64      `json:"missing,omitempty" yaml:"missing,omitempty"`
	Examples []exampleRow `json:"examples,omitempty" yaml:"examples,omitempty"`
}

func newDocument(r *qed.Report, perExample bool) document {
	doc := document{Summary: r.Summary(), Missing: r.Missing}
	if !perExample {
		return doc
	}
	for _, es := range r.PerExample {
		doc.Examples = append(doc.Examples, exampleRow{
			ID:            es.ID,
			QuestionF1:    es.Question.PRF1().F1,
			ContextF1:     es.Context.PRF1().F1,
			PairF1:        es.Pair.PRF1().F1,
			Exact:         es.Exact,
			AnswerCorrect: es.AnswerCorrect,
		})
	}
	return doc
}

// Write renders r to w. perExample adds one row per scored example.
func Write(w io.Writer, r *qed.Report, f Format, perExample bool) error {
	switch f {
	case Text, Markdown:
		return writeTables(w, r, f, perExample)
	case JSON:
		data, err := json.MarshalIndent(newDocument(r, perExample), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json report: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(r, perExample)); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	case Proto:
		return writeProto(w, r, perExample)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

func writeProto(w io.Writer, r *qed.Report, perExample bool) error {
	fields := r.Summary().Map()
	if len(r.Missing) > 0 {
		missing := make([]any, len(r.Missing))
		for i, id := range r.Missing {
			// Struct numbers are doubles; large ids would lose precision.
			missing[i] = strconv.FormatInt(id, 10)
		}
		fields["missing"] = missing
	}
	if perExample {
		examples := make([]any, 0, len(r.PerExample))
		for _, row := range newDocument(r, true).Examples {
			examples = append(examples, map[string]any{
				"example_id":     strconv.FormatInt(row.ID, 10),
				"question_f1":    row.QuestionF1,
				"context_f1":     row.ContextF1,
				"pair_f1":        row.PairF1,
				"exact":          row.Exact,
				"answer_correct": row.AnswerCorrect,
			})
		}
		fields["examples"] = examples
	}

	st, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("building proto report: %w", err)
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding proto report: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func newTable(f Format) table.Writer {
	t := table.NewWriter()
	if f == Text {
		t.SetStyle(table.StyleLight)
	}
	// Labels are rendered as written; go-pretty upper-cases them by default.
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func render(t table.Writer, f Format) string {
	if f == Markdown {
		return t.RenderMarkdown()
	}
	return t.Render()
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func mark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}

func writeTables(w io.Writer, r *qed.Report, f Format, perExample bool) error {
	mode := "non-strict"
	if r.Strict {
		mode = "strict"
	}
	if _, err := fmt.Fprintf(w, "QED evaluation (%s, min overlap F1 %s)\n", mode, score(r.MinOverlapF1)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Annotated: %d  Scored: %d  Missing: %d  Completely correct: %d\n\n",
		r.Annotated, r.Scored, len(r.Missing), r.ExactMatches); err != nil {
		return err
	}

	prf := newTable(f)
	prf.AppendHeader(table.Row{"Metric", "Precision", "Recall", "F1", "TP", "FN", "FP"})
	for _, row := range []struct {
		name   string
		scores qed.PRF1
		counts qed.Counts
	}{
		{"question mention", r.QuestionMention, r.QuestionCounts},
		{"context mention", r.ContextMention, r.ContextCounts},
		{"all mention", r.AllMention, r.AllCounts()},
		{"pair", r.Pair, r.PairCounts},
	} {
		prf.AppendRow(table.Row{
			row.name,
			score(row.scores.Precision), score(row.scores.Recall), score(row.scores.F1),
			row.counts.TruePositives, row.counts.FalseNegatives, row.counts.FalsePositives,
		})
	}
	prf.AppendFooter(table.Row{"exact match accuracy", score(r.ExactMatchAccuracy)})
	prf.AppendFooter(table.Row{"answer accuracy", score(r.AnswerAccuracy)})
	prf.SetColumnConfigs(rightAligned(2, 3, 4, 5, 6, 7))
	if _, err := fmt.Fprintln(w, render(prf, f)); err != nil {
		return err
	}

	if !perExample {
		return nil
	}

	ex := newTable(f)
	ex.AppendHeader(table.Row{"Example", "Question F1", "Context F1", "Pair F1", "Exact", "Answer"})
	for _, row := range newDocument(r, true).Examples {
		ex.AppendRow(table.Row{
			row.ID, score(row.QuestionF1), score(row.ContextF1), score(row.PairF1),
			mark(row.Exact), mark(row.AnswerCorrect),
		})
	}
	ex.SetColumnConfigs(rightAligned(2, 3, 4))
	_, err := fmt.Fprintf(w, "\n%s\n", render(ex, f))
	return err
}

// WriteSweep renders sweep results in ranked order. Only Text and Markdown are supported.
func WriteSweep(w io.Writer, results []bench.SweepResult, f Format) error {
	if f != Text && f != Markdown {
		return fmt.Errorf("%w: %q for sweep", ErrUnknownFormat, f)
	}

	t := newTable(f)
	t.AppendHeader(table.Row{"Rank", "Min overlap F1", "All mention F1", "Pair F1", "Exact match", "Answer accuracy"})
	for i, res := range results {
		r := res.Report
		t.AppendRow(table.Row{
			i + 1, score(res.MinOverlapF1), score(r.AllMention.F1), score(r.Pair.F1),
			score(r.ExactMatchAccuracy), score(r.AnswerAccuracy),
		})
	}
	t.SetColumnConfigs(rightAligned(1, 2, 3, 4, 5, 6))
	_, err := fmt.Fprintln(w, render(t, f))
	return err
}

func rightAligned(columns ...int) []table.ColumnConfig {
	cfgs := make([]table.ColumnConfig, len(columns))
	for i, n := range columns {
		cfgs[i] = table.ColumnConfig{Number: n, Align: text.AlignRight}
	}
	return cfgs
}
