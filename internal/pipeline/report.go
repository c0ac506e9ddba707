package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/cord-cli/internal/model"
)

// Stage names, in execution order.
const (
	StageMissing  = "missing_values"
	StageTemporal = "temporal"
	StageDerive   = "features"
)

// StageEntry records what one pipeline stage did to the table.
type StageEntry struct {
	Stage       string `json:"stage" yaml:"stage"`
	Description string `json:"description" yaml:"description"`
	RowsIn      int    `json:"rows_in" yaml:"rows_in"`
	RowsOut     int    `json:"rows_out" yaml:"rows_out"`
	RowsRemoved int    `json:"rows_removed" yaml:"rows_removed"`
	DurationMS  int64  `json:"duration_ms" yaml:"duration_ms"`
}

// Report is the audit trail of one cleaning run. It accumulates stage
// entries as the pipeline executes and is read-only once Run returns.
type Report struct {
	RunID        string       `json:"run_id" yaml:"run_id"`
	Source       string       `json:"source,omitempty" yaml:"source,omitempty"`
	StartedAt    time.Time    `json:"started_at" yaml:"started_at"`
	Steps        []StageEntry `json:"steps" yaml:"steps"`
	OriginalRows int          `json:"original_rows" yaml:"original_rows"`
	FinalRows    int          `json:"final_rows" yaml:"final_rows"`

	// NullCounts is a post-cleaning self-check over the critical fields of
	// the final table. All values are expected to be zero.
	NullCounts map[string]int `json:"null_counts" yaml:"null_counts"`
}

// NewReport starts an empty report for one run.
func NewReport(source string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Source:    source,
		StartedAt: time.Now().UTC(),
	}
}

func (r *Report) append(entry StageEntry) {
	r.Steps = append(r.Steps, entry)
}

// finalize snapshots the row counts and the critical-field null counts.
func (r *Report) finalize(original int, final model.CleanTable) {
	r.OriginalRows = original
	r.FinalRows = final.Rows()

	counts := map[string]int{"title": 0, "abstract": 0, "publication_year": 0}
	for _, rec := range final.Records {
		if rec.Title == "" {
			counts["title"]++
		}
		if rec.Abstract == "" {
			counts["abstract"]++
		}
		if rec.PublicationYear == 0 {
			counts["publication_year"]++
		}
	}
	r.NullCounts = counts
}

// View is the read-only report surface exposed to callers.
type View struct {
	RunID        string         `json:"run_id" yaml:"run_id"`
	Source       string         `json:"source,omitempty" yaml:"source,omitempty"`
	Steps        []string       `json:"steps" yaml:"steps"`
	OriginalRows int            `json:"original_rows" yaml:"original_rows"`
	FinalRows    int            `json:"final_rows" yaml:"final_rows"`
	RowsRemoved  int            `json:"rows_removed" yaml:"rows_removed"`
	NullCounts   map[string]int `json:"null_counts" yaml:"null_counts"`
}

// Summary returns the read-only view of the report.
func (r *Report) Summary() View {
	steps := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		steps[i] = s.Description
	}
	counts := make(map[string]int, len(r.NullCounts))
	for k, v := range r.NullCounts {
		counts[k] = v
	}
	return View{
		RunID:        r.RunID,
		Source:       r.Source,
		Steps:        steps,
		OriginalRows: r.OriginalRows,
		FinalRows:    r.FinalRows,
		RowsRemoved:  r.OriginalRows - r.FinalRows,
		NullCounts:   counts,
	}
}

// Format renders the report for operator consumption.
func (r *Report) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Cleaning Report %s\n", r.RunID)
	if r.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", r.Source)
	}
	fmt.Fprintf(&b, "Started: %s\n\n", r.StartedAt.Format(time.RFC3339))

	b.WriteString("## Steps\n")
	for i, s := range r.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Description)
	}
	b.WriteString("\n## Rows\n")
	fmt.Fprintf(&b, "- Original: %d\n", r.OriginalRows)
	fmt.Fprintf(&b, "- Final: %d\n", r.FinalRows)
	fmt.Fprintf(&b, "- Removed: %d\n", r.OriginalRows-r.FinalRows)
	for _, s := range r.Steps {
		fmt.Fprintf(&b, "- After %s: %d (-%d)\n", s.Stage, s.RowsOut, s.RowsRemoved)
	}

	b.WriteString("\n## Missing values in critical columns\n")
	for _, field := range []string{"title", "abstract", "publication_year"} {
		fmt.Fprintf(&b, "- %s: %d\n", field, r.NullCounts[field])
	}

	return b.String()
}
