package qed

import (
	"fmt"
	"log/slog"
	"slices"
)

// Scorer aggregates per-example comparisons into corpus-level metrics.
// A Scorer holds no mutable state and may be shared.
type Scorer struct {
	matcher Matcher
	logger  *slog.Logger
}

// New creates a Scorer.
func New(opts ...Option) *Scorer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Scorer{
		matcher: Matcher{Strict: cfg.strict, MinOverlapF1: cfg.minOverlapF1},
		logger:  cfg.logger,
	}
}

// Matcher returns the matching policy used by s.
func (s *Scorer) Matcher() Matcher {
	return s.matcher
}

// ExampleScore holds the comparison of one annotated example with its prediction.
type ExampleScore struct {
	ID            int64
	Question      Counts
	Context       Counts
	Pair          Counts
	Exact         bool
	AnswerCorrect bool
}

// ScoreExample compares a single annotation with its prediction.
func (s *Scorer) ScoreExample(annotation, prediction *Example) ExampleScore {
	pair := s.matcher.MatchPairs(annotation.AlignedPairs, prediction.AlignedPairs)
	return ExampleScore{
		ID:            annotation.ID,
		Question:      s.matcher.MatchMentions(annotation.QuestionMentions(), prediction.QuestionMentions()),
		Context:       s.matcher.MatchMentions(annotation.ContextMentions(), prediction.ContextMentions()),
		Pair:          pair,
		Exact:         pair.Exact(),
		AnswerCorrect: s.matcher.AnswerCorrect(annotation.AcceptedAnswers(), prediction.Answer),
	}
}

// Report holds corpus-level results.
type Report struct {
	Strict       bool
	MinOverlapF1 float64

	// Annotated is the number of annotated examples, Scored the number that
	// also have a prediction. Missing lists the IDs without one.
	Annotated int
	Scored    int
	Missing   []int64

	ExactMatches   int
	CorrectAnswers int

	QuestionCounts Counts
	ContextCounts  Counts
	PairCounts     Counts

	ExactMatchAccuracy float64
	QuestionMention    PRF1
	ContextMention     PRF1
	AllMention         PRF1
	Pair               PRF1
	AnswerAccuracy     float64

	// PerExample is ordered by example ID.
	PerExample []ExampleScore
}

// AllCounts returns the sum of question and context mention counts.
func (r *Report) AllCounts() Counts {
	return r.QuestionCounts.Add(r.ContextCounts)
}

// Score compares every annotated example with its prediction.
//
// Annotated examples without a prediction earn no credit: they are listed in
// Report.Missing and still count in the exact-match denominator. Answer
// accuracy is averaged over scored examples only.
func (s *Scorer) Score(annotations, predictions Corpus) (*Report, error) {
	if len(annotations) == 0 {
		return nil, ErrEmptyAnnotations
	}

	r := &Report{
		Strict:       s.matcher.Strict,
		MinOverlapF1: s.matcher.minOverlapF1(),
		Annotated:    len(annotations),
	}

	ids := make([]int64, 0, len(annotations))
	for id := range annotations {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		prediction, ok := predictions[id]
		if !ok {
			s.logger.Debug("missing prediction", "example_id", id)
			r.Missing = append(r.Missing, id)
			continue
		}

		es := s.ScoreExample(annotations[id], prediction)
		r.PerExample = append(r.PerExample, es)
		r.Scored++
		r.QuestionCounts = r.QuestionCounts.Add(es.Question)
		r.ContextCounts = r.ContextCounts.Add(es.Context)
		r.PairCounts = r.PairCounts.Add(es.Pair)
		if es.Exact {
			r.ExactMatches++
		}
		if es.AnswerCorrect {
			r.CorrectAnswers++
		}
	}

	if r.Scored == 0 {
		return nil, fmt.Errorf("%w: %d annotated, %d predicted", ErrNoOverlap, len(annotations), len(predictions))
	}

	r.ExactMatchAccuracy = float64(r.ExactMatches) / float64(r.Annotated)
	r.AnswerAccuracy = float64(r.CorrectAnswers) / float64(r.Scored)
	r.QuestionMention = r.QuestionCounts.PRF1()
	r.ContextMention = r.ContextCounts.PRF1()
	r.AllMention = r.AllCounts().PRF1()
	r.Pair = r.PairCounts.PRF1()

	s.logger.Info("scored corpus",
		"strict", r.Strict,
		"annotated", r.Annotated,
		"scored", r.Scored,
		"missing", len(r.Missing),
		"completely_correct", r.ExactMatches)
	s.logPRF1("question mention", r.QuestionMention)
	s.logPRF1("context mention", r.ContextMention)
	s.logPRF1("both mentions", r.AllMention)
	s.logPRF1("pair", r.Pair)

	return r, nil
}

func (s *Scorer) logPRF1(bucket string, m PRF1) {
	s.logger.Info(bucket,
		"precision", fmt.Sprintf("%.4f", m.Precision),
		"recall", fmt.Sprintf("%.4f", m.Recall),
		"f1", fmt.Sprintf("%.4f", m.F1))
}

// Summary is the score mapping produced for a corpus. Triples are
// (precision, recall, f1).
type Summary struct {
	ExactMatchAccuracy float64    `json:"exact_match_accuracy" yaml:"exact_match_accuracy"`
	QuestionMention    [3]float64 `json:"question_mention" yaml:"question_mention,flow"`
	ContextMention     [3]float64 `json:"context_mention" yaml:"context_mention,flow"`
	AllMention         [3]float64 `json:"all_mention" yaml:"all_mention,flow"`
	Pair               [3]float64 `json:"pair" yaml:"pair,flow"`
	AnswerAccuracy     float64    `json:"answer_accuracy" yaml:"answer_accuracy"`
}

// Summary returns the score mapping for r.
func (r *Report) Summary() Summary {
	return Summary{
		ExactMatchAccuracy: r.ExactMatchAccuracy,
		QuestionMention:    r.QuestionMention.Triple(),
		ContextMention:     r.ContextMention.Triple(),
		AllMention:         r.AllMention.Triple(),
		Pair:               r.Pair.Triple(),
		AnswerAccuracy:     r.AnswerAccuracy,
	}
}

// Map returns the summary keyed by metric name, each value either a float64
// or a three-element []any of float64.
func (s Summary) Map() map[string]any {
	triple := func(t [3]float64) []any { return []any{t[0], t[1], t[2]} }
	return map[string]any{
		"exact_match_accuracy": s.ExactMatchAccuracy,
		"question_mention":     triple(s.QuestionMention),
		"context_mention":      triple(s.ContextMention),
		"all_mention":          triple(s.AllMention),
		"pair":                 triple(s.Pair),
		"answer_accuracy":      s.AnswerAccuracy,
	}
}
