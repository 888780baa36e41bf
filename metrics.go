package qed

// Counts tallies one comparison between ground truth and prediction.
// FalseNegatives are ground-truth items nothing predicted matched;
// FalsePositives are predicted items that matched nothing.
type Counts struct {
	TruePositives  int
	FalseNegatives int
	FalsePositives int
}

// Add returns the element-wise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		TruePositives:  c.TruePositives + o.TruePositives,
		FalseNegatives: c.FalseNegatives + o.FalseNegatives,
		FalsePositives: c.FalsePositives + o.FalsePositives,
	}
}

// Exact reports whether nothing was missed and nothing was spurious.
func (c Counts) Exact() bool {
	return c.FalseNegatives+c.FalsePositives == 0
}

// PRF1 holds precision, recall and F1.
type PRF1 struct {
	Precision float64
	Recall    float64
	F1        float64
}

// Triple returns the scores as (precision, recall, f1).
func (p PRF1) Triple() [3]float64 {
	return [3]float64{p.Precision, p.Recall, p.F1}
}

// PRF1 converts counts to scores. All three are zero when there is no true
// positive.
func (c Counts) PRF1() PRF1 {
	if c.TruePositives <= 0 {
		return PRF1{}
	}
	tp := float64(c.TruePositives)
	p := tp / (tp + float64(c.FalsePositives))
	r := tp / (tp + float64(c.FalseNegatives))
	return PRF1{
		Precision: p,
		Recall:    r,
		F1:        2 * p * r / (p + r),
	}
}
