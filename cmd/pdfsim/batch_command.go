package main

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"

	"pdfsim/internal/compare"
	"pdfsim/internal/pagerange"
	"pdfsim/internal/pipeline"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var refRange, candRange string
	var workers int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "batch REFERENCE CANDIDATE...",
		Short: "Score every candidate against one reference document",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			refSpec, err := pagerange.Parse(refRange)
			if err != nil {
				return fmt.Errorf("--range: %w", err)
			}
			candSpec, err := pagerange.Parse(candRange)
			if err != nil {
				return fmt.Errorf("--candidate-range: %w", err)
			}
			if !cmd.Flags().Changed("workers") {
				workers = ctx.config.Compare.Workers
			}

			comparator := ctx.comparator()
			ref, err := comparator.Profile(cmd.Context(), args[0], refSpec)
			if err != nil {
				return err
			}

			candidates := args[1:]
			var mu sync.Mutex
			results := make(map[int]compare.Result, len(candidates))
			outcomes := pipeline.ScoreAll(cmd.Context(), candidates, workers, func(runCtx context.Context, i int, location string) (float64, error) {
				res, err := comparator.CompareWith(runCtx, ref, location, candSpec)
				if err != nil {
					return 0, err
				}
				mu.Lock()
				results[i] = res
				mu.Unlock()
				return res.Score, nil
			})
			if err := cmd.Context().Err(); err != nil {
				return err
			}

			failed := 0
			for i := range outcomes {
				if outcomes[i].Err != nil {
					failed++
					continue
				}
				ctx.record(results[outcomes[i].Index])
			}
			sort.SliceStable(outcomes, func(i, j int) bool {
				if (outcomes[i].Err == nil) != (outcomes[j].Err == nil) {
					return outcomes[i].Err == nil
				}
				return outcomes[i].Score > outcomes[j].Score
			})

			out := cmd.OutOrStdout()
			if asJSON {
				type jsonOutcome struct {
					Path  string   `json:"path"`
					Score *float64 `json:"score,omitempty"`
					Error string   `json:"error,omitempty"`
				}
				items := make([]jsonOutcome, 0, len(outcomes))
				for _, o := range outcomes {
					item := jsonOutcome{Path: o.Path}
					if o.Err != nil {
						item.Error = o.Err.Error()
					} else {
						score := o.Score
						item.Score = &score
					}
					items = append(items, item)
				}
				if err := writeJSON(out, map[string]any{"reference": args[0], "results": items}); err != nil {
					return err
				}
			} else {
				rows := make([][]any, 0, len(outcomes))
				for i, o := range outcomes {
					var score any = o.Score
					if o.Err != nil {
						score = o.Err
					}
					rows = append(rows, []any{rank(i), o.Path, score})
				}
				fmt.Fprintf(out, "Reference: %s (%d tokens)\n", args[0], len(ref.Tokens))
				fmt.Fprintln(out, renderTable([]column{
					{"#", countColumn},
					{"Candidate", textColumn},
					{"Score", scoreColumn},
				}, rows))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d candidates could not be scored", failed, len(candidates))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&refRange, "range", "", "Page range of the reference as start:stop:step")
	cmd.Flags().StringVar(&candRange, "candidate-range", "", "Page range applied to every candidate")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent comparisons (0 = number of CPUs)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the results as JSON")
	return cmd
}
