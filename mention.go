package qed

import "github.com/jamesainslie/go-qed/textnorm"

// Kind identifies which text a mention's offsets index into.
type Kind string

const (
	// KindQuestion mentions index into the question text.
	KindQuestion Kind = "question"
	// KindContext mentions index into the paragraph text.
	KindContext Kind = "context"
)

// BridgeOffset is the start and end offset of a bridge mention.
const BridgeOffset = -1

// ExplanationSingleSentence is the only explanation type that is scored.
const ExplanationSingleSentence = "single_sentence"

// Mention is a labeled span of question or paragraph text.
// Offsets are Unicode code points; Start is inclusive and End exclusive.
type Mention struct {
	Start          int
	End            int
	Kind           Kind
	Text           string
	NormalizedText string
}

// NewMention returns a mention with its normalized text filled in.
func NewMention(kind Kind, start, end int, text string) Mention {
	return Mention{
		Start:          start,
		End:            end,
		Kind:           kind,
		Text:           text,
		NormalizedText: textnorm.Normalize(text),
	}
}

// BridgeMention returns the context mention used when a question phrase has
// no literal anchor in the paragraph.
func BridgeMention() Mention {
	return Mention{Start: BridgeOffset, End: BridgeOffset, Kind: KindContext}
}

// IsBridge reports whether m starts at BridgeOffset. Only a full (-1, -1)
// span overlaps another bridge; see Matcher.Overlaps.
func (m Mention) IsBridge() bool {
	return m.Start == BridgeOffset
}

// MentionKey is the identity of a mention. Text plays no part in it.
type MentionKey struct {
	Start int
	End   int
	Kind  Kind
}

// Key returns the identity used for set comparisons.
func (m Mention) Key() MentionKey {
	return MentionKey{Start: m.Start, End: m.End, Kind: m.Kind}
}

// Pair links a question phrase to the paragraph phrase it co-refers with.
// Context may be a bridge mention.
type Pair struct {
	Question Mention
	Context  Mention
}

// PairKey is the identity of a pair.
type PairKey struct {
	Question MentionKey
	Context  MentionKey
}

// Key returns the identity used for set comparisons.
func (p Pair) Key() PairKey {
	return PairKey{Question: p.Question.Key(), Context: p.Context.Key()}
}

// Example is one annotated or predicted question-answering instance.
type Example struct {
	ID       int64
	Title    string
	Question string

	// Answer is the designated answer, possibly split over several spans.
	Answer []Mention
	// AlternativeAnswers are further accepted span sets.
	AlternativeAnswers [][]Mention

	AlignedPairs    []Pair
	ExplanationType string
}

// AcceptedAnswers returns the designated answer followed by every alternative.
func (e *Example) AcceptedAnswers() [][]Mention {
	accepted := make([][]Mention, 0, 1+len(e.AlternativeAnswers))
	accepted = append(accepted, e.Answer)
	return append(accepted, e.AlternativeAnswers...)
}

// QuestionMentions returns the question side of every aligned pair.
func (e *Example) QuestionMentions() []Mention {
	mentions := make([]Mention, len(e.AlignedPairs))
	for i, p := range e.AlignedPairs {
		mentions[i] = p.Question
	}
	return mentions
}

// ContextMentions returns the paragraph side of every aligned pair.
func (e *Example) ContextMentions() []Mention {
	mentions := make([]Mention, len(e.AlignedPairs))
	for i, p := range e.AlignedPairs {
		mentions[i] = p.Context
	}
	return mentions
}

// Corpus maps example IDs to examples. Scoring never modifies a corpus.
type Corpus map[int64]*Example
