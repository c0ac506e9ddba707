// Package export writes a cleaned table back to a flat CSV file. The output
// schema is stable: the documented analysis columns first, then any
// passthrough columns in their original order. Output files re-ingest
// cleanly, so re-running the pipeline on its own output drops no rows.
package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/cord-cli/internal/model"
)

// cleanColumns defines the ordered analysis columns of the output CSV.
var cleanColumns = []string{
	"title",
	"abstract",
	"has_abstract",
	"publish_time",
	"publication_year",
	"publication_month",
	"publication_quarter",
	"abstract_word_count",
	"title_word_count",
	"journal",
	"source",
	"source_type",
}

const dateLayout = "2006-01-02"

// WriteCSV writes the cleaned table to path.
func WriteCSV(path string, t model.CleanTable) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := append(append([]string{}, cleanColumns...), t.ExtraColumns...)
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	for _, rec := range t.Records {
		row := []string{
			rec.Title,
			rec.Abstract,
			strconv.FormatBool(rec.HasAbstract),
			rec.PublishTime.Format(dateLayout),
			strconv.Itoa(rec.PublicationYear),
			strconv.Itoa(rec.PublicationMonth),
			strconv.Itoa(rec.PublicationQuarter),
			strconv.Itoa(rec.AbstractWordCount),
			strconv.Itoa(rec.TitleWordCount),
			rec.Journal,
			rec.Source,
			rec.SourceType,
		}
		for _, col := range t.ExtraColumns {
			row = append(row, rec.Extra[col])
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush")
	}

	zap.L().Info("export: wrote cleaned csv",
		zap.String("path", path),
		zap.Int("rows", t.Rows()),
		zap.Int("columns", len(header)),
	)
	return nil
}
