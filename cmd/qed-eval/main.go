// qed-eval scores QED explanation predictions against annotations.
//
// Usage:
//
//	qed-eval score --annotation=<path> --prediction=<path> [--strict] [--format=text|markdown|json|yaml|proto]
//	qed-eval sweep --annotation=<path> --prediction=<path> [--sweep-min=0.5] [--sweep-max=1.0] [--sweep-step=0.05]
//	qed-eval validate <path>...
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
