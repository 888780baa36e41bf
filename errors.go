package qed

import "errors"

// Sentinel errors for corpora that cannot produce corpus-level rates.
var (
	// ErrEmptyAnnotations indicates the annotation corpus has no examples.
	ErrEmptyAnnotations = errors.New("qed: annotation corpus is empty")

	// ErrNoOverlap indicates no annotated example has a prediction.
	ErrNoOverlap = errors.New("qed: no annotated example has a prediction")
)
