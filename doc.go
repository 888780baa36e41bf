// Package qed scores QED explanation predictions against annotations.
//
// A QED explanation aligns phrases of a question with phrases of a paragraph
// ("referential equalities") and marks the answer spans. The scorer compares
// predicted alignments and answers with annotated ones and reports
// precision, recall and F1 for question mentions, paragraph mentions, both
// together and aligned pairs, plus exact-match and answer accuracy.
//
// # Quick Start
//
//	scorer := qed.New(qed.WithStrict(false))
//	report, err := scorer.Score(annotations, predictions)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Pair F1: %.4f\n", report.Pair.F1)
//
// # Matching
//
// Strict matching treats two mentions as equal when their offsets and kind
// are equal. Non-strict matching needs equal normalized text (see
// package textnorm) and spans whose OverlapF1 reaches the configured
// threshold. Answers must correspond one to one with one accepted answer set.
//
// # Corpora
//
// Corpora are read, never modified. Loading JSON lines files is handled by
// the internal dataset package and the qed-eval command.
package qed
