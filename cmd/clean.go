package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/cord-cli/internal/export"
	"github.com/sells-group/cord-cli/internal/ingest"
	"github.com/sells-group/cord-cli/internal/pipeline"
)

var (
	cleanInput        string
	cleanOutput       string
	cleanReportPath   string
	cleanReportFormat string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run the cleaning pipeline on a metadata file",
	Long: `Reads raw metadata (CSV, TSV, or XLSX), runs the cleaning pipeline, and
writes the analysis-ready table plus a cleaning report.

Examples:
  # Clean metadata.csv into cleaned_metadata.csv, report on stdout
  cord-cli clean --input metadata.csv

  # Custom output path, report written as YAML
  cord-cli clean --input metadata.csv --output clean.csv --report report.yaml --format yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		raw, err := ingest.Load(cleanInput, cfg.Ingest)
		if err != nil {
			return eris.Wrap(err, "clean: load input")
		}

		result, err := pipeline.New(cfg).Run(ctx, cleanInput, raw)
		if err != nil {
			return eris.Wrap(err, "clean: run pipeline")
		}

		if err := export.WriteCSV(cleanOutput, result.Table); err != nil {
			return eris.Wrap(err, "clean: write output")
		}

		rendered, err := renderReport(result.Report, cleanReportFormat)
		if err != nil {
			return err
		}
		if cleanReportPath != "" {
			if err := os.WriteFile(cleanReportPath, []byte(rendered), 0o644); err != nil {
				return eris.Wrap(err, "clean: write report")
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
		}

		zap.L().Info("clean complete",
			zap.String("run_id", result.Report.RunID),
			zap.String("output", cleanOutput),
			zap.Int("rows", result.Table.Rows()),
		)
		return nil
	},
}

// renderReport formats a report as text or YAML.
func renderReport(r *pipeline.Report, format string) (string, error) {
	switch format {
	case "yaml":
		out, err := yaml.Marshal(r.Summary())
		if err != nil {
			return "", eris.Wrap(err, "clean: marshal report")
		}
		return string(out), nil
	case "", "text":
		return r.Format(), nil
	default:
		return "", eris.Errorf("clean: unknown report format %q", format)
	}
}

func init() {
	cleanCmd.Flags().StringVar(&cleanInput, "input", "", "path to raw metadata file (required)")
	cleanCmd.Flags().StringVar(&cleanOutput, "output", "cleaned_metadata.csv", "path for the cleaned CSV")
	cleanCmd.Flags().StringVar(&cleanReportPath, "report", "", "write the cleaning report to this path instead of stdout")
	cleanCmd.Flags().StringVar(&cleanReportFormat, "format", "text", "report format: text or yaml")
	_ = cleanCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(cleanCmd)
}
