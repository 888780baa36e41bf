package dataset

import "errors"

// Sentinel errors for rejected records.
var (
	// ErrMalformedRecord indicates a line that is not a usable JSON record.
	ErrMalformedRecord = errors.New("dataset: malformed record")

	// ErrOffsetMismatch indicates an annotated mention whose text differs
	// from the text at its offsets.
	ErrOffsetMismatch = errors.New("dataset: mention text does not match offsets")
)
