package qed

// Matcher compares mentions, aligned pairs and answers under one policy.
//
// Strict matching compares identities (offsets and kind). Non-strict matching
// needs equal normalized text and spans that overlap by at least
// MinOverlapF1; a zero MinOverlapF1 means DefaultMinOverlapF1.
type Matcher struct {
	Strict       bool
	MinOverlapF1 float64
}

// MatchMentions compares ground-truth mentions with predicted ones.
//
// Strict mode ignores bridge mentions and compares the two sides as sets.
// Non-strict mode gives each ground-truth mention the first predicted mention
// with the same normalized text that overlaps it; a predicted mention may be
// claimed more than once, and FalsePositives is len(predicted) minus the
// number of matched ground-truth mentions.
func (m Matcher) MatchMentions(truth, predicted []Mention) Counts {
	if m.Strict {
		notBridge := func(x Mention) bool { return !x.IsBridge() }
		return compareSets(
			keySet(truth, Mention.Key, notBridge),
			keySet(predicted, Mention.Key, notBridge),
		)
	}

	var c Counts
	for _, t := range truth {
		if m.findMention(t, predicted) {
			c.TruePositives++
		} else {
			c.FalseNegatives++
		}
	}
	c.FalsePositives = len(predicted) - c.TruePositives
	return c
}

func (m Matcher) findMention(t Mention, predicted []Mention) bool {
	for _, p := range predicted {
		if p.NormalizedText == t.NormalizedText && m.Overlaps(p, t) {
			return true
		}
	}
	return false
}

// MatchPairs compares ground-truth aligned pairs with predicted ones. Both
// sides of a pair must match; bridge contexts take part in both modes.
func (m Matcher) MatchPairs(truth, predicted []Pair) Counts {
	if m.Strict {
		return compareSets(
			keySet(truth, Pair.Key, nil),
			keySet(predicted, Pair.Key, nil),
		)
	}

	var c Counts
	for _, t := range truth {
		if m.findPair(t, predicted) {
			c.TruePositives++
		} else {
			c.FalseNegatives++
		}
	}
	c.FalsePositives = len(predicted) - c.TruePositives
	return c
}

func (m Matcher) findPair(t Pair, predicted []Pair) bool {
	for _, p := range predicted {
		if p.Question.NormalizedText != t.Question.NormalizedText ||
			p.Context.NormalizedText != t.Context.NormalizedText {
			continue
		}
		if m.Overlaps(p.Question, t.Question) && m.Overlaps(p.Context, t.Context) {
			return true
		}
	}
	return false
}

// keySet collects the keys of the items accepted by keep (all items when keep is nil).
func keySet[T any, K comparable](items []T, key func(T) K, keep func(T) bool) map[K]struct{} {
	set := make(map[K]struct{}, len(items))
	for _, item := range items {
		if keep != nil && !keep(item) {
			continue
		}
		set[key(item)] = struct{}{}
	}
	return set
}

func compareSets[K comparable](truth, predicted map[K]struct{}) Counts {
	var c Counts
	for k := range truth {
		if _, ok := predicted[k]; ok {
			c.TruePositives++
		} else {
			c.FalseNegatives++
		}
	}
	c.FalsePositives = len(predicted) - c.TruePositives
	return c
}
