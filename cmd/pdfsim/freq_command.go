package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pdfsim/internal/pagerange"
)

func newFreqCommand(ctx *commandContext) *cobra.Command {
	var rangeFlag string
	var top int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "freq DOC",
		Short: "Show the most frequent words of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := pagerange.Parse(rangeFlag)
			if err != nil {
				return fmt.Errorf("--range: %w", err)
			}
			profile, err := ctx.comparator().Profile(cmd.Context(), args[0], spec)
			if err != nil {
				return err
			}

			entries := profile.Distribution.Top(top)
			out := cmd.OutOrStdout()
			if asJSON {
				type jsonEntry struct {
					Token  string  `json:"token"`
					Weight float64 `json:"weight"`
				}
				items := make([]jsonEntry, 0, len(entries))
				for _, e := range entries {
					items = append(items, jsonEntry{Token: e.Token, Weight: e.Weight})
				}
				return writeJSON(out, map[string]any{
					"path":       args[0],
					"range":      spec.String(),
					"pages_used": len(profile.Pages),
					"tokens":     len(profile.Tokens),
					"vocabulary": len(profile.Distribution),
					"top":        items,
				})
			}

			rows := make([][]any, 0, len(entries))
			for i, e := range entries {
				rows = append(rows, []any{rank(i), e.Token, e.Weight})
			}
			fmt.Fprintln(out, renderTable([]column{
				{"#", countColumn},
				{"Token", tokenColumn},
				{"Frequency", scoreColumn},
			}, rows))
			fmt.Fprintf(out, "%d tokens, %d distinct, %d of %d pages\n", len(profile.Tokens), len(profile.Distribution), len(profile.Pages), profile.PageCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeFlag, "range", "", "Page range as start:stop:step")
	cmd.Flags().IntVarP(&top, "top", "n", 20, "Number of words to show (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the result as JSON")
	return cmd
}

// displayToken makes the empty token visible in tables.
func displayToken(tok string) string {
	if tok == "" {
		return "(empty)"
	}
	return tok
}
