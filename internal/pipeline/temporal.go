package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cord-cli/internal/model"
)

// ErrTemporal signals a systemic temporal-processing failure. The run aborts
// and no table is returned. Per-row parse failures are never systemic; they
// only filter the affected row.
var ErrTemporal = errors.New("pipeline: temporal processing failed")

// dateLayouts covers the publish_time formats observed in CORD-19 metadata,
// most specific first. Layouts without a month or day resolve to January 1.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2006 Jan 2",
	"2006 Jan",
	"2006-01",
	"2006",
}

// NormalizeTemporal parses each row's publish_time leniently and derives the
// calendar fields year, month, and quarter (quarter = ceil(month/3)). Rows
// whose publish_time parses to no known layout are dropped and counted in the
// stage entry. A row with an empty publish_time reaching this stage means the
// missing-value stage did not run first; that is a contract violation and
// aborts the run with ErrTemporal.
func NormalizeTemporal(in model.RawTable) (model.CleanTable, StageEntry, error) {
	out := model.CleanTable{ExtraColumns: in.ExtraColumns}

	var unparseable int
	for i, rec := range in.Records {
		if rec.PublishTime == "" {
			return model.CleanTable{}, StageEntry{}, eris.Wrapf(ErrTemporal, "pipeline: row %d has empty publish_time; missing-value resolution did not run", i)
		}

		ts, ok := parseDate(rec.PublishTime)
		if !ok {
			unparseable++
			continue
		}

		out.Records = append(out.Records, model.CleanRecord{
			Title:              rec.Title,
			Abstract:           rec.Abstract,
			PublishTime:        ts,
			PublicationYear:    ts.Year(),
			PublicationMonth:   int(ts.Month()),
			PublicationQuarter: (int(ts.Month())-1)/3 + 1,
			Journal:            rec.Journal,
			Source:             rec.Source,
			Extra:              rec.Extra,
		})
	}

	entry := StageEntry{
		Stage: StageTemporal,
		Description: fmt.Sprintf(
			"Converted publish_time to dates and extracted year/month/quarter; removed %d rows with unparseable dates",
			unparseable,
		),
		RowsIn:      in.Rows(),
		RowsOut:     out.Rows(),
		RowsRemoved: unparseable,
	}
	return out, entry, nil
}

// parseDate tries each known layout in order.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
