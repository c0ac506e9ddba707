// Package ingest loads a raw bibliographic metadata table into memory from a
// delimited-text or XLSX source. It validates structure only: the file must be
// readable and carry the required columns. Field values are not validated here.
package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/cord-cli/internal/config"
	"github.com/sells-group/cord-cli/internal/model"
)

// Structural ingestion failures. Both are fatal: the caller gets no table.
var (
	ErrUnreadable    = errors.New("ingest: source unreadable")
	ErrMissingColumn = errors.New("ingest: required column missing")
)

// Columns the pipeline operates on. source_x is the CORD-19 metadata name for
// the source column; plain source is accepted for re-ingesting cleaned output.
var (
	requiredColumns = []string{"title", "abstract", "publish_time"}
	sourceAliases   = []string{"source_x", "source"}
)

// Load reads the tabular source at path into a RawTable. The format is chosen
// by extension: .xlsx uses the XLSX reader, .tsv forces a tab delimiter, and
// everything else is read as delimited text with the configured delimiter.
func Load(path string, cfg config.IngestConfig) (model.RawTable, error) {
	var header []string
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		header, rows, err = readXLSX(path, cfg)
	case ".tsv":
		header, rows, err = readDelimited(path, '\t', cfg.LazyQuotes)
	default:
		delim := ','
		if cfg.Delimiter != "" {
			delim = []rune(cfg.Delimiter)[0]
		}
		header, rows, err = readDelimited(path, delim, cfg.LazyQuotes)
	}
	if err != nil {
		return model.RawTable{}, err
	}

	colIdx := mapColumns(header)
	if missing := missingRequired(colIdx); len(missing) > 0 {
		return model.RawTable{}, eris.Wrapf(ErrMissingColumn, "ingest: %s: %s", path, strings.Join(missing, ", "))
	}

	table := buildTable(header, colIdx, rows)
	zap.L().Info("ingest: loaded table",
		zap.String("path", path),
		zap.Int("rows", table.Rows()),
		zap.Int("columns", len(header)),
	)
	return table, nil
}

// readDelimited reads an entire CSV/TSV file, header first. Rows with a
// field count different from the header are kept; short rows read as empty
// cells for the trailing columns.
func readDelimited(path string, delim rune, lazyQuotes bool) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(ErrUnreadable, "ingest: open %s: %v", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = delim
	reader.LazyQuotes = lazyQuotes
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err != nil {
		return nil, nil, eris.Wrapf(ErrUnreadable, "ingest: read header %s: %v", path, err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, eris.Wrapf(ErrUnreadable, "ingest: read row %s: %v", path, err)
		}
		rows = append(rows, record)
	}
	return header, rows, nil
}

// buildTable maps positional rows into RawRecords, trimming every cell and
// collecting passthrough columns in header order.
func buildTable(header []string, colIdx map[string]int, rows [][]string) model.RawTable {
	handled := map[int]bool{}
	for _, name := range requiredColumns {
		handled[colIdx[normalizeCol(name)]] = true
	}
	if idx, ok := lookupCol(colIdx, "journal"); ok {
		handled[idx] = true
	}
	sourceIdx, hasSource := lookupAny(colIdx, sourceAliases)
	if hasSource {
		handled[sourceIdx] = true
	}

	var extraCols []string
	for i, name := range header {
		if !handled[i] {
			extraCols = append(extraCols, name)
		}
	}

	table := model.RawTable{ExtraColumns: extraCols}
	for _, row := range rows {
		rec := model.RawRecord{
			Title:       getCol(row, colIdx, "title"),
			Abstract:    getCol(row, colIdx, "abstract"),
			PublishTime: getCol(row, colIdx, "publish_time"),
			Journal:     getCol(row, colIdx, "journal"),
		}
		if hasSource {
			rec.Source = cell(row, sourceIdx)
		}
		if len(extraCols) > 0 {
			rec.Extra = make(map[string]string, len(extraCols))
			for i, name := range header {
				if !handled[i] {
					rec.Extra[name] = cell(row, i)
				}
			}
		}
		table.Records = append(table.Records, rec)
	}
	return table
}

func missingRequired(colIdx map[string]int) []string {
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := lookupCol(colIdx, name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
