package pipeline

import (
	"strings"

	"github.com/sells-group/cord-cli/internal/model"
)

// DeriveFeatures computes the analysis features for every row: whitespace
// word counts for title and abstract, the has_abstract flag, and source_type.
// It never fails and never filters or reorders rows.
func DeriveFeatures(in model.CleanTable) (model.CleanTable, StageEntry) {
	out := model.CleanTable{
		ExtraColumns: in.ExtraColumns,
		Records:      make([]model.CleanRecord, len(in.Records)),
	}

	for i, rec := range in.Records {
		rec.AbstractWordCount = len(strings.Fields(rec.Abstract))
		rec.TitleWordCount = len(strings.Fields(rec.Title))
		rec.HasAbstract = rec.Abstract != AbstractSentinel
		if rec.Source != "" {
			rec.SourceType = rec.Source
		} else {
			rec.SourceType = "Unknown"
		}
		out.Records[i] = rec
	}

	entry := StageEntry{
		Stage:       StageDerive,
		Description: "Created new features: word counts, has_abstract flag, and source_type",
		RowsIn:      in.Rows(),
		RowsOut:     out.Rows(),
	}
	return out, entry
}
