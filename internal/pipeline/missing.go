package pipeline

import (
	"fmt"

	"github.com/sells-group/cord-cli/internal/model"
)

// AbstractSentinel is substituted for a missing abstract. Absence of an
// abstract is an analytically meaningful signal, so the record is kept and
// the substitution is recoverable through the has_abstract flag.
const AbstractSentinel = "No abstract available"

// ResolveMissing applies the missing-value policy in fixed order:
//
//  1. Drop rows with an empty title; a record without a title cannot be
//     identified or displayed.
//  2. Drop rows with an empty publish_time string; temporal placement is
//     required downstream, and this gate runs before any parse cost is paid.
//  3. Substitute AbstractSentinel for empty abstracts.
//
// Later steps see only rows surviving earlier ones. Row order is preserved.
// Missing values are never an error, only a filtering decision; the removals
// are accounted for in the returned stage entry.
func ResolveMissing(in model.RawTable) (model.RawTable, StageEntry) {
	out := model.RawTable{ExtraColumns: in.ExtraColumns}

	var noTitle, noDate, noAbstract int
	for _, rec := range in.Records {
		if rec.Title == "" {
			noTitle++
			continue
		}
		if rec.PublishTime == "" {
			noDate++
			continue
		}
		if rec.Abstract == "" {
			rec.Abstract = AbstractSentinel
			noAbstract++
		}
		out.Records = append(out.Records, rec)
	}

	entry := StageEntry{
		Stage: StageMissing,
		Description: fmt.Sprintf(
			"Removed %d rows with missing critical data (%d missing title, %d missing publish_time); substituted %q for %d missing abstracts",
			noTitle+noDate, noTitle, noDate, AbstractSentinel, noAbstract,
		),
		RowsIn:      in.Rows(),
		RowsOut:     out.Rows(),
		RowsRemoved: noTitle + noDate,
	}
	return out, entry
}
