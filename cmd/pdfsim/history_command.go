package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pdfsim/internal/db"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent comparisons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := db.RecentComparisons(ctx.historyPath(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No comparisons recorded.")
				return nil
			}

			rows := make([][]any, 0, len(items))
			for _, item := range items {
				rows = append(rows, []any{
					item.ID,
					item.CreatedAt.Local().Format("2006-01-02 15:04"),
					fmt.Sprintf("%s [%s]", item.FirstPath, item.FirstRange),
					fmt.Sprintf("%s [%s]", item.SecondPath, item.SecondRange),
					item.Score,
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{"ID", countColumn},
				{"When", textColumn},
				{"Document 1", textColumn},
				{"Document 2", textColumn},
				{"Score", scoreColumn},
			}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of comparisons to list")
	return cmd
}
