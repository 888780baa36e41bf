package qed

import (
	"testing"
)

func TestIsPermutation(t *testing.T) {
	tests := []struct {
		name   string
		matrix [][]bool
		want   bool
	}{
		{"empty", nil, true},
		{"identity", [][]bool{{true, false}, {false, true}}, true},
		{"swapped", [][]bool{{false, true}, {true, false}}, true},
		{"row without match", [][]bool{{true, false}, {false, false}}, false},
		{"row with two matches", [][]bool{{true, true}, {false, true}}, false},
		{"shared column", [][]bool{{true, false}, {true, false}}, false},
		{"not square", [][]bool{{true, false}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPermutation(tt.matrix); got != tt.want {
				t.Errorf("IsPermutation(%v) = %v, want %v", tt.matrix, got, tt.want)
			}
		})
	}
}

func TestAnswerCorrect(t *testing.T) {
	full := contextAt(56, 78, "Wilhelm Conrad Röntgen")
	first := contextAt(56, 63, "Wilhelm")
	last := contextAt(71, 78, "Röntgen")
	other := contextAt(100, 110, "somebody else")

	accepted := [][]Mention{
		{full},
		{contextAt(56, 70, "Wilhelm Conrad")},
		{first, last},
	}

	tests := []struct {
		name      string
		strict    bool
		predicted []Mention
		want      bool
	}{
		{"strict primary answer", true, []Mention{full}, true},
		{"strict alternative answer", true, []Mention{contextAt(56, 70, "Wilhelm Conrad")}, true},
		{"strict multi-span in order", true, []Mention{first, last}, true},
		{"strict multi-span swapped", true, []Mention{last, first}, true},
		{"strict wrong span", true, []Mention{other}, false},
		{"strict extra span", true, []Mention{full, other}, false},
		{"strict missing span", true, []Mention{last}, false},
		{"strict shifted span", true, []Mention{contextAt(57, 78, "ilhelm Conrad Röntgen")}, false},
		{"strict duplicated span", true, []Mention{first, first}, false},
		{"no prediction", true, nil, false},
		{"non-strict shifted span", false, []Mention{contextAt(57, 78, "ilhelm Conrad Röntgen")}, true},
		{"non-strict ignores text", false, []Mention{contextAt(56, 78, "anything")}, true},
		{"non-strict multi-span shifted", false, []Mention{contextAt(71, 79, "Röntgen "), contextAt(56, 63, "Wilhelm")}, true},
		{"non-strict too far", false, []Mention{contextAt(63, 78, " Conrad Röntgen")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Matcher{Strict: tt.strict}
			if got := m.AnswerCorrect(accepted, tt.predicted); got != tt.want {
				t.Errorf("AnswerCorrect(%v) = %v, want %v", tt.predicted, got, tt.want)
			}
		})
	}
}
