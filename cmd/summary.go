package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/cord-cli/internal/ingest"
	"github.com/sells-group/cord-cli/internal/pipeline"
	"github.com/sells-group/cord-cli/internal/summary"
)

var (
	summaryInput   string
	summaryTop     int
	summaryMinYear int
	summaryFormat  string
)

// summaryViews bundles every derived view for structured output.
type summaryViews struct {
	Overview summary.Overview    `json:"overview" yaml:"overview"`
	Years    []summary.YearCount `json:"publications_by_year" yaml:"publications_by_year"`
	Journals []summary.Count     `json:"top_journals" yaml:"top_journals"`
	Sources  []summary.Count     `json:"source_distribution" yaml:"source_distribution"`
	Words    []summary.Count     `json:"title_words" yaml:"title_words"`
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print summary views of a metadata file",
	Long: `Runs the cleaning pipeline (a no-op on already-cleaned input) and prints
the derived summary views: publications per year, top journals, source
distribution, and title word frequencies.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		raw, err := ingest.Load(summaryInput, cfg.Ingest)
		if err != nil {
			return eris.Wrap(err, "summary: load input")
		}

		result, err := pipeline.New(cfg).Run(ctx, summaryInput, raw)
		if err != nil {
			return eris.Wrap(err, "summary: run pipeline")
		}

		topJournals := cfg.Summary.TopJournals
		topSources := cfg.Summary.TopSources
		topWords := cfg.Summary.TopWords
		if summaryTop > 0 {
			topJournals, topSources, topWords = summaryTop, summaryTop, summaryTop
		}
		minYear := cfg.Summary.MinYear
		if cmd.Flags().Changed("min-year") {
			minYear = summaryMinYear
		}

		views := summaryViews{
			Overview: summary.ComputeOverview(result.Table),
			Years:    summary.PublicationsByYear(result.Table, minYear),
			Journals: summary.TopJournals(result.Table, topJournals),
			Sources:  summary.SourceDistribution(result.Table, topSources),
			Words:    summary.TitleWordFrequencies(result.Table, topWords),
		}

		out := cmd.OutOrStdout()
		switch summaryFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(views)
		case "yaml":
			data, err := yaml.Marshal(views)
			if err != nil {
				return eris.Wrap(err, "summary: marshal yaml")
			}
			fmt.Fprint(out, string(data))
			return nil
		case "", "text":
			printSummaryText(out, views)
			return nil
		default:
			return eris.Errorf("summary: unknown format %q", summaryFormat)
		}
	},
}

func printSummaryText(out io.Writer, v summaryViews) {
	fmt.Fprintf(out, "Total papers: %d\n", v.Overview.TotalPapers)
	fmt.Fprintf(out, "With abstracts: %d (%.1f%%)\n", v.Overview.WithAbstract, v.Overview.WithAbstractShare*100)
	fmt.Fprintf(out, "Year range: %d-%d\n", v.Overview.MinYear, v.Overview.MaxYear)
	fmt.Fprintf(out, "Avg abstract length: %.1f words\n", v.Overview.MeanAbstractLength)

	fmt.Fprintln(out, "\nPublications by year:")
	for _, y := range v.Years {
		fmt.Fprintf(out, "  %d  %d\n", y.Year, y.Count)
	}
	fmt.Fprintln(out, "\nTop journals:")
	for _, c := range v.Journals {
		fmt.Fprintf(out, "  %-48s %d\n", c.Label, c.Count)
	}
	fmt.Fprintln(out, "\nSource distribution:")
	for _, c := range v.Sources {
		fmt.Fprintf(out, "  %-24s %d\n", c.Label, c.Count)
	}
	fmt.Fprintln(out, "\nMost frequent title words:")
	for _, c := range v.Words {
		fmt.Fprintf(out, "  %-24s %d\n", c.Label, c.Count)
	}
}

func init() {
	summaryCmd.Flags().StringVar(&summaryInput, "input", "", "path to metadata file (required)")
	summaryCmd.Flags().IntVar(&summaryTop, "top", 0, "override the top-N size for all ranked views")
	summaryCmd.Flags().IntVar(&summaryMinYear, "min-year", 0, "exclude years before this from the yearly view (0 = keep all)")
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "text", "output format: text, json, or yaml")
	_ = summaryCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(summaryCmd)
}
