package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pdfsim/internal/version"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var noHistory bool

	ctx := newCommandContext(&configFlag, &logLevelFlag, &noHistory)

	rootCmd := &cobra.Command{
		Use:   "pdfsim",
		Short: "Word-frequency similarity for PDF documents",
		Long: `pdfsim compares documents by the word-frequency distributions of selected
page ranges. The score of DOC2 against DOC1 is the share of DOC1's words that
belong to DOC2's vocabulary, so the order of the documents matters.

Page ranges use start:stop:step notation with zero-based pages and an
exclusive stop, e.g. "2:10", "::2" or "5:".`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipSetup(cmd) {
				return nil
			}
			return ctx.ensure()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("pdfsim %s\n", version.String()))

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not record results in the history database")

	rootCmd.AddCommand(newCompareCommand(ctx))
	rootCmd.AddCommand(newFreqCommand(ctx))
	rootCmd.AddCommand(newBatchCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

func shouldSkipSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}
