package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cord-cli/internal/ingest"
	"github.com/sells-group/cord-cli/internal/summary"
)

var exploreInput string

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Inspect a raw metadata file before cleaning",
	Long:  "Loads the raw table and prints its dimensions, columns, and per-column missing-value profile without modifying anything.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		raw, err := ingest.Load(exploreInput, cfg.Ingest)
		if err != nil {
			return eris.Wrap(err, "explore: load input")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Rows: %d\n", raw.Rows())
		fmt.Fprintf(out, "Passthrough columns: %d\n", len(raw.ExtraColumns))
		for _, col := range raw.ExtraColumns {
			fmt.Fprintf(out, "  - %s\n", col)
		}

		profiles := summary.MissingProfile(raw)
		if len(profiles) == 0 {
			fmt.Fprintln(out, "No missing values.")
			return nil
		}
		fmt.Fprintln(out, "\nColumns with missing values:")
		for _, p := range profiles {
			fmt.Fprintf(out, "  %-24s %8d  %5.1f%%\n", p.Column, p.MissingCount, p.MissingPercent)
		}
		return nil
	},
}

func init() {
	exploreCmd.Flags().StringVar(&exploreInput, "input", "", "path to raw metadata file (required)")
	_ = exploreCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(exploreCmd)
}
