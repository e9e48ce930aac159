package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pdfsim/internal/pagerange"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var range1, range2 string
	var report, asJSON bool

	cmd := &cobra.Command{
		Use:   "compare DOC1 DOC2",
		Short: "Score DOC2 against DOC1",
		Long: `Score DOC2 against DOC1. Documents may be local files (.pdf, .docx, .txt)
or http(s) URLs, which are downloaded into the workspace cache first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec1, err := pagerange.Parse(range1)
			if err != nil {
				return fmt.Errorf("--range1: %w", err)
			}
			spec2, err := pagerange.Parse(range2)
			if err != nil {
				return fmt.Errorf("--range2: %w", err)
			}

			res, err := ctx.comparator().Compare(cmd.Context(), args[0], spec1, args[1], spec2)
			if err != nil {
				return err
			}
			ctx.record(res)

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				return writeJSON(out, res)
			case report:
				fmt.Fprintln(out, renderComparison(res))
				fmt.Fprintf(out, "\nScore: %s\n", highlightScore(out, res.Score))
			default:
				fmt.Fprintln(out, formatScore(res.Score))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&range1, "range1", "", "Page range of DOC1 as start:stop:step")
	cmd.Flags().StringVar(&range2, "range2", "", "Page range of DOC2 as start:stop:step")
	cmd.Flags().BoolVarP(&report, "report", "r", false, "Show per-document details")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the result as JSON")
	return cmd
}
