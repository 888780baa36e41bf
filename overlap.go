package qed

// DefaultMinOverlapF1 is the overlap score two spans need to count as the
// same mention in non-strict mode.
const DefaultMinOverlapF1 = 0.9

// OverlapF1 scores how closely span b follows span a:
//
//	[------ a --------]
//	          [------- b -----]
//	[-- fn --][--- tp ---][ fp ]
//
// tp = |a.End - b.Start|, fn = |b.Start - a.Start|, fp = |b.End - a.End| and
// the score is tp / (tp + (fp+fn)/2), or 0 when tp is 0. The decomposition is
// not clipped to the intersection, so disjoint spans can score above zero and
// OverlapF1(a, b) may differ from OverlapF1(b, a).
func OverlapF1(a, b Mention) float64 {
	tp := abs(a.End - b.Start)
	if tp == 0 {
		return 0
	}
	fn := abs(b.Start - a.Start)
	fp := abs(b.End - a.End)
	return float64(2*tp) / float64(2*tp+fp+fn)
}

// Overlaps reports whether two mentions cover close enough spans. A mention
// with any offset at BridgeOffset only overlaps another full (-1, -1) span.
func (m Matcher) Overlaps(a, b Mention) bool {
	if hasSentinel(a) || hasSentinel(b) {
		return isFullSentinel(a) && isFullSentinel(b)
	}
	return OverlapF1(a, b) >= m.minOverlapF1()
}

func (m Matcher) minOverlapF1() float64 {
	if m.MinOverlapF1 <= 0 {
		return DefaultMinOverlapF1
	}
	return m.MinOverlapF1
}

func hasSentinel(m Mention) bool {
	return m.Start == BridgeOffset || m.End == BridgeOffset
}

func isFullSentinel(m Mention) bool {
	return m.Start == BridgeOffset && m.End == BridgeOffset
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
