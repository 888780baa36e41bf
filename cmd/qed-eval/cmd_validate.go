package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-qed/internal/dataset"
)

var errRejectedRecords = errors.New("rejected records found")

func newValidateCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check QED JSON lines files for malformed records",
		Long: `Validate loads each file and prints how many records were loaded, filtered
(explanation type other than single_sentence) and rejected, with the reason for
every rejection. It exits non-zero when any record is rejected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := rf.resolve(cmd, nil); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rejected := 0
			for _, path := range args {
				res, err := dataset.Load(path)
				if err != nil {
					return err
				}
				s := res.Stats
				fmt.Fprintf(out, "%s: lines=%d loaded=%d filtered=%d rejected=%d\n",
					path, s.Lines, s.Loaded, s.Filtered, s.Rejected)
				if res.Rejections != nil {
					for _, e := range res.Rejections.Errors {
						fmt.Fprintf(out, "  %v\n", e)
					}
				}
				rejected += s.Rejected
			}

			if rejected > 0 {
				return fmt.Errorf("%w: %d", errRejectedRecords, rejected)
			}
			return nil
		},
	}
}
