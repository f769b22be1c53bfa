// Package tabular loads row-oriented data from the file formats EDI
// portals export: Excel workbooks, CSV files and HTML report tables.
// Every reader produces the same Table shape so callers never branch on
// the source format.
package tabular

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Table is one sheet of rows with the header row split off.
type Table struct {
	Headers []string
	Rows    [][]string
}

// HeaderIndex returns the position of the first header matching any of
// the given aliases, case-insensitively. Returns -1 when none match.
func (t *Table) HeaderIndex(aliases ...string) int {
	for i, h := range t.Headers {
		have := strings.ToLower(strings.TrimSpace(h))
		for _, alias := range aliases {
			if have == strings.ToLower(alias) {
				return i
			}
		}
	}
	return -1
}

// Cell returns the trimmed value at col, tolerating short rows.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// ReadFile loads a tabular file, dispatching on the extension.
func ReadFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path)
	case ".csv":
		return ReadCSV(path)
	case ".html", ".htm":
		return ReadHTML(path)
	}
	return nil, fmt.Errorf("unsupported tabular format: %s", filepath.Ext(path))
}
