package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	qed "github.com/jamesainslie/go-qed"
	"github.com/jamesainslie/go-qed/internal/bench"
)

// testReport builds a report by hand: two scored examples and one missing.
func testReport() *qed.Report {
	r := &qed.Report{
		Strict:         true,
		MinOverlapF1:   0.9,
		Annotated:      3,
		Scored:         2,
		Missing:        []int64{-6560319052930436991},
		ExactMatches:   1,
		CorrectAnswers: 2,
		QuestionCounts: qed.Counts{TruePositives: 2, FalseNegatives: 1},
		ContextCounts:  qed.Counts{TruePositives: 1, FalseNegatives: 1},
		PairCounts:     qed.Counts{TruePositives: 2, FalseNegatives: 1},
		PerExample: []qed.ExampleScore{
			{ID: 7, Question: qed.Counts{TruePositives: 1}, Context: qed.Counts{TruePositives: 1}, Pair: qed.Counts{TruePositives: 1}, Exact: true, AnswerCorrect: true},
			{ID: 8, Question: qed.Counts{TruePositives: 1, FalseNegatives: 1}, Context: qed.Counts{FalseNegatives: 1}, Pair: qed.Counts{TruePositives: 1, FalseNegatives: 1}, AnswerCorrect: true},
		},
	}
	r.ExactMatchAccuracy = 1.0 / 3.0
	r.AnswerAccuracy = 1
	r.QuestionMention = r.QuestionCounts.PRF1()
	r.ContextMention = r.ContextCounts.PRF1()
	r.AllMention = r.AllCounts().PRF1()
	r.Pair = r.PairCounts.PRF1()
	return r
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"text", "markdown", "json", "yaml", "proto"} {
		f, err := ParseFormat(name)
		if err != nil {
			t.Errorf("ParseFormat(%q) error = %v", name, err)
		}
		if string(f) != name {
			t.Errorf("ParseFormat(%q) = %q", name, f)
		}
	}

	if _, err := ParseFormat("html"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(html) error = %v, want %v", err, ErrUnknownFormat)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testReport(), Text, true); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"QED evaluation (strict, min overlap F1 0.9000)",
		"Annotated: 3  Scored: 2  Missing: 1  Completely correct: 1",
		"question mention",
		"all mention",
		"0.6000",
		"exact match accuracy",
		"0.3333",
		"───",
		"✓",
		"✗",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteTextLabelCase(t *testing.T) {
	for _, f := range []Format{Text, Markdown} {
		var buf bytes.Buffer
		if err := Write(&buf, testReport(), f, true); err != nil {
			t.Fatalf("Write(%s) error = %v", f, err)
		}
		out := buf.String()

		for _, want := range []string{"Metric", "Precision", "exact match accuracy", "answer accuracy", "Question F1"} {
			if !strings.Contains(out, want) {
				t.Errorf("%s: expected %q in output:\n%s", f, want, out)
			}
		}
		if strings.Contains(out, "ANSWER ACCURACY") {
			t.Errorf("%s: footer label was upper-cased:\n%s", f, out)
		}
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testReport(), Markdown, false); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "| Metric") {
		t.Errorf("expected markdown header with '| Metric':\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator '---':\n%s", out)
	}
	if strings.Contains(out, "Question F1") {
		t.Errorf("per-example table written without perExample:\n%s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testReport(), JSON, true); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got struct {
		ExactMatchAccuracy float64   `json:"exact_match_accuracy"`
		AllMention         []float64 `json:"all_mention"`
		Missing            []int64   `json:"missing"`
		Examples           []struct {
			ID    int64 `json:"example_id"`
			Exact bool  `json:"exact"`
		} `json:"examples"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decoding report: %v\n%s", err, buf.String())
	}

	if diff := cmp.Diff([]float64{1, 0.6, 0.75}, got.AllMention, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("all_mention mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{-6560319052930436991}, got.Missing); diff != "" {
		t.Errorf("missing mismatch (-want +got):\n%s", diff)
	}
	if len(got.Examples) != 2 || got.Examples[0].ID != 7 || !got.Examples[0].Exact {
		t.Errorf("examples = %+v, want ids 7 and 8 with 7 exact", got.Examples)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testReport(), YAML, false); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decoding report: %v\n%s", err, buf.String())
	}
	for _, key := range []string{"exact_match_accuracy", "question_mention", "context_mention", "all_mention", "pair", "answer_accuracy", "missing"} {
		if _, ok := got[key]; !ok {
			t.Errorf("key %q missing from yaml report:\n%s", key, buf.String())
		}
	}
	if _, ok := got["examples"]; ok {
		t.Errorf("examples written without perExample:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "pair: [") {
		t.Errorf("expected flow-style triple in output:\n%s", buf.String())
	}
}

func TestWriteProto(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testReport(), Proto, true); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var st structpb.Struct
	if err := protojson.Unmarshal(buf.Bytes(), &st); err != nil {
		t.Fatalf("decoding report: %v\n%s", err, buf.String())
	}
	fields := st.GetFields()

	if got := fields["answer_accuracy"].GetNumberValue(); got != 1 {
		t.Errorf("answer_accuracy = %v, want 1", got)
	}
	pair := fields["pair"].GetListValue().GetValues()
	if len(pair) != 3 {
		t.Fatalf("pair has %d values, want 3", len(pair))
	}
	if got := pair[2].GetNumberValue(); got < 0.79 || got > 0.81 {
		t.Errorf("pair f1 = %v, want 0.8", got)
	}
	missing := fields["missing"].GetListValue().GetValues()
	if len(missing) != 1 || missing[0].GetStringValue() != "-6560319052930436991" {
		t.Errorf("missing = %v, want exact id string", missing)
	}
	if got := len(fields["examples"].GetListValue().GetValues()); got != 2 {
		t.Errorf("examples has %d entries, want 2", got)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, testReport(), Format("html"), false)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Write() error = %v, want %v", err, ErrUnknownFormat)
	}
}

func TestWriteSweep(t *testing.T) {
	results := []bench.SweepResult{
		{MinOverlapF1: 0.9, Report: testReport()},
		{MinOverlapF1: 0.95, Report: &qed.Report{}},
	}

	var buf bytes.Buffer
	if err := WriteSweep(&buf, results, Markdown); err != nil {
		t.Fatalf("WriteSweep() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"| Rank", "0.9500", "0.8000"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	if err := WriteSweep(&bytes.Buffer{}, results, JSON); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("WriteSweep(json) error = %v, want %v", err, ErrUnknownFormat)
	}
}
