package ingest

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/cord-cli/internal/config"
)

// readXLSX reads the configured sheet of an XLSX workbook, returning the
// header row and the data rows as string slices.
func readXLSX(path string, cfg config.IngestConfig) ([]string, [][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, nil, eris.Wrapf(ErrUnreadable, "ingest: open xlsx %s: %v", path, err)
	}

	sheet, err := getSheet(f, cfg)
	if err != nil {
		return nil, nil, err
	}

	var header []string
	var rows [][]string
	for i, row := range sheet.Rows {
		cells := rowToStrings(row)
		if i == 0 {
			header = cells
			continue
		}
		rows = append(rows, cells)
	}
	if header == nil {
		return nil, nil, eris.Wrapf(ErrUnreadable, "ingest: xlsx %s: empty sheet", path)
	}
	return header, rows, nil
}

func getSheet(f *xlsx.File, cfg config.IngestConfig) (*xlsx.Sheet, error) {
	if cfg.SheetName != "" {
		sheet, ok := f.Sheet[cfg.SheetName]
		if !ok {
			return nil, eris.Wrapf(ErrUnreadable, "ingest: xlsx sheet %q not found", cfg.SheetName)
		}
		return sheet, nil
	}
	if cfg.SheetIndex >= len(f.Sheets) {
		return nil, eris.Wrapf(ErrUnreadable, "ingest: xlsx sheet index %d out of range (%d sheets)", cfg.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[cfg.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		cells[i] = c.String()
	}
	return cells
}
