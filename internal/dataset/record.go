package dataset

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"

	qed "github.com/jamesainslie/go-qed"
)

// record is one JSON line. Annotation holds either the nested object layout
// or the legacy list layout.
type record struct {
	ExampleID         *int64          `json:"example_id"`
	Title             string          `json:"title_text"`
	Question          string          `json:"question_text"`
	Paragraph         string          `json:"paragraph_text"`
	Annotation        json.RawMessage `json:"annotation"`
	OriginalNQAnswers [][]reference   `json:"original_nq_answers"`

	// Legacy layout.
	AnswerSpans [][2]int `json:"answer_spans"`
	AnswerText  []string `json:"answer_text"`
	AnswerType  string   `json:"answer_type"`
}

type reference struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	String string `json:"string"`
	Bridge bool   `json:"bridge"`
}

type annotation struct {
	ReferentialEqualities []referentialEquality `json:"referential_equalities"`
	Answer                []answerReference     `json:"answer"`
	ExplanationType       string                `json:"explanation_type"`
}

type referentialEquality struct {
	QuestionReference reference `json:"question_reference"`
	SentenceReference reference `json:"sentence_reference"`
}

type answerReference struct {
	SentenceReference  reference `json:"sentence_reference"`
	ParagraphReference reference `json:"paragraph_reference"`
}

type legacyAlignment struct {
	QuestionText string `json:"question_entity_text"`
	QuestionSpan [2]int `json:"question_entity_span"`
	ContextText  string `json:"context_entity_text"`
	ContextSpan  [2]int `json:"context_entity_span"`
}

// DecodeLine parses one JSON line into an example. It returns an error
// wrapping ErrMalformedRecord or ErrOffsetMismatch when the record is rejected.
func DecodeLine(line []byte) (*qed.Example, error) {
	var rec record
	if err := json.Unmarshal(line, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	if rec.ExampleID == nil {
		return nil, fmt.Errorf("%w: missing example_id", ErrMalformedRecord)
	}

	ex := &qed.Example{
		ID:       *rec.ExampleID,
		Title:    rec.Title,
		Question: rec.Question,
	}

	texts := sourceTexts{
		question:  []rune(rec.Question),
		paragraph: []rune(rec.Paragraph),
	}

	var err error
	trimmed := bytes.TrimSpace(rec.Annotation)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = decodeLegacy(ex, &rec, trimmed, texts)
	} else {
		err = decodeNested(ex, &rec, trimmed, texts)
	}
	if err != nil {
		return nil, fmt.Errorf("example %d: %w", ex.ID, err)
	}
	return ex, nil
}

func decodeNested(ex *qed.Example, rec *record, raw []byte, texts sourceTexts) error {
	var ann annotation
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &ann); err != nil {
			return fmt.Errorf("%w: annotation: %w", ErrMalformedRecord, err)
		}
	}
	ex.ExplanationType = ann.ExplanationType

	for _, a := range ann.Answer {
		ref := a.ParagraphReference
		ex.Answer = append(ex.Answer, qed.NewMention(qed.KindContext, ref.Start, ref.End, ref.String))
	}

	for _, refs := range rec.OriginalNQAnswers {
		alt := make([]qed.Mention, 0, len(refs))
		for _, ref := range refs {
			alt = append(alt, qed.NewMention(qed.KindContext, ref.Start, ref.End, ref.String))
		}
		ex.AlternativeAnswers = append(ex.AlternativeAnswers, alt)
	}

	for _, eq := range ann.ReferentialEqualities {
		pair, err := texts.pair(
			eq.QuestionReference.Start, eq.QuestionReference.End, eq.QuestionReference.String,
			eq.SentenceReference.Start, eq.SentenceReference.End, eq.SentenceReference.String,
		)
		if err != nil {
			return err
		}
		ex.AlignedPairs = append(ex.AlignedPairs, pair)
	}
	return nil
}

func decodeLegacy(ex *qed.Example, rec *record, raw []byte, texts sourceTexts) error {
	var alignments []legacyAlignment
	if err := json.Unmarshal(raw, &alignments); err != nil {
		return fmt.Errorf("%w: annotation: %w", ErrMalformedRecord, err)
	}
	if len(rec.AnswerSpans) != len(rec.AnswerText) {
		return fmt.Errorf("%w: %d answer spans but %d answer texts",
			ErrMalformedRecord, len(rec.AnswerSpans), len(rec.AnswerText))
	}
	ex.ExplanationType = rec.AnswerType

	for i, s := range rec.AnswerSpans {
		ex.Answer = append(ex.Answer, qed.NewMention(qed.KindContext, s[0], s[1], rec.AnswerText[i]))
	}

	for _, a := range alignments {
		pair, err := texts.pair(
			a.QuestionSpan[0], a.QuestionSpan[1], a.QuestionText,
			a.ContextSpan[0], a.ContextSpan[1], a.ContextText,
		)
		if err != nil {
			return err
		}
		ex.AlignedPairs = append(ex.AlignedPairs, pair)
	}
	return nil
}

// sourceTexts holds the question and paragraph as code points, the unit
// annotation offsets are expressed in.
type sourceTexts struct {
	question  []rune
	paragraph []rune
}

// pair builds an aligned pair after checking both mentions against their
// source text. A context start of -1 marks a bridge.
func (s sourceTexts) pair(qStart, qEnd int, qText string, cStart, cEnd int, cText string) (qed.Pair, error) {
	if err := checkOffsets(s.question, qStart, qEnd, qText); err != nil {
		return qed.Pair{}, fmt.Errorf("question reference: %w", err)
	}
	pair := qed.Pair{
		Question: qed.NewMention(qed.KindQuestion, qStart, qEnd, qText),
		Context:  qed.BridgeMention(),
	}

	if cStart == qed.BridgeOffset {
		return pair, nil
	}
	if err := checkOffsets(s.paragraph, cStart, cEnd, cText); err != nil {
		return qed.Pair{}, fmt.Errorf("sentence reference: %w", err)
	}
	pair.Context = qed.NewMention(qed.KindContext, cStart, cEnd, cText)
	return pair, nil
}

func checkOffsets(source []rune, start, end int, text string) error {
	if start < 0 || end < start || end > len(source) {
		return fmt.Errorf("%w: [%d, %d) outside text of length %d", ErrOffsetMismatch, start, end, len(source))
	}
	if got := string(source[start:end]); got != text {
		return fmt.Errorf("%w: annotated %q, offsets give %q", ErrOffsetMismatch, text, got)
	}
	return nil
}
