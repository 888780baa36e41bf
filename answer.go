package qed

// AnswerCorrect reports whether the predicted answer spans correspond one to
// one with any accepted answer set. Spans match by identity in strict mode
// and by Overlaps otherwise.
func (m Matcher) AnswerCorrect(accepted [][]Mention, predicted []Mention) bool {
	for _, answer := range accepted {
		if len(answer) != len(predicted) {
			continue
		}

		matches := make([][]bool, len(answer))
		for i, a := range answer {
			matches[i] = make([]bool, len(predicted))
			for j, p := range predicted {
				matches[i][j] = m.answerSpanMatches(a, p)
			}
		}

		if IsPermutation(matches) {
			return true
		}
	}
	return false
}

func (m Matcher) answerSpanMatches(accepted, predicted Mention) bool {
	if m.Strict {
		return accepted.Key() == predicted.Key()
	}
	return m.Overlaps(accepted, predicted)
}

// IsPermutation reports whether matrix is a permutation matrix: square, with
// exactly one true entry in every row and in every column.
func IsPermutation(matrix [][]bool) bool {
	colCounts := make([]int, len(matrix))
	for _, row := range matrix {
		if len(row) != len(matrix) {
			return false
		}
		n := 0
		for j, v := range row {
			if v {
				n++
				colCounts[j]++
			}
		}
		if n != 1 {
			return false
		}
	}
	for _, n := range colCounts {
		if n != 1 {
			return false
		}
	}
	return true
}
