package ingest

import "strings"

// normalizeCol lowercases and trims a header name for case-insensitive
// column matching.
func normalizeCol(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mapColumns builds a normalized column name → index map.
func mapColumns(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[normalizeCol(col)] = i
	}
	return m
}

// lookupCol finds a column index by normalized name.
func lookupCol(colIdx map[string]int, name string) (int, bool) {
	idx, ok := colIdx[normalizeCol(name)]
	return idx, ok
}

// lookupAny returns the index of the first matching name.
func lookupAny(colIdx map[string]int, names []string) (int, bool) {
	for _, name := range names {
		if idx, ok := lookupCol(colIdx, name); ok {
			return idx, true
		}
	}
	return 0, false
}

// cell returns the trimmed value at idx, or empty string for short rows.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// getCol gets a trimmed column value by normalized name.
func getCol(row []string, colIdx map[string]int, name string) string {
	idx, ok := lookupCol(colIdx, name)
	if !ok {
		return ""
	}
	return cell(row, idx)
}
