package summary

import "github.com/sells-group/cord-cli/internal/model"

// FilterOptions selects a subset of a cleaned table. Zero values mean no
// constraint; HasAbstract is a tri-state (nil = all).
type FilterOptions struct {
	YearFrom    int
	YearTo      int
	Journals    []string
	HasAbstract *bool
}

// Filter returns the records matching every set constraint, preserving row
// order. The input table is not modified.
func Filter(t model.CleanTable, opts FilterOptions) model.CleanTable {
	journals := map[string]bool{}
	for _, j := range opts.Journals {
		journals[j] = true
	}

	out := model.CleanTable{ExtraColumns: t.ExtraColumns}
	for _, rec := range t.Records {
		if opts.YearFrom > 0 && rec.PublicationYear < opts.YearFrom {
			continue
		}
		if opts.YearTo > 0 && rec.PublicationYear > opts.YearTo {
			continue
		}
		if len(journals) > 0 && !journals[rec.Journal] {
			continue
		}
		if opts.HasAbstract != nil && rec.HasAbstract != *opts.HasAbstract {
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out
}
