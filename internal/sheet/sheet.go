// Package sheet reads scan exports into an in-memory table. Spreadsheets are
// read with excelize; CSV exports with encoding/csv.
package sheet

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Table is a header row plus data rows. Every row has len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a table from a header and rows. Short rows are padded with
// empty cells, long rows truncated, fully blank rows dropped.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{Columns: make([]string, len(header)), index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(h)
		t.Columns[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	for _, r := range rows {
		if blank(r) {
			continue
		}
		row := make([]string, len(header))
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	return t
}

func blank(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Value returns the trimmed cell of row for column name, "" when the column is absent.
func (t *Table) Value(row int, name string) string {
	i := t.Index(name)
	if i < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][i])
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Options control how a file is read.
type Options struct {
	// Sheet selects a worksheet by name; empty means the first sheet.
	Sheet string
}

// ReadFile loads path by extension (.xlsx, .xlsm or .csv).
func ReadFile(path string, opts Options) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX(path, opts)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported input file type %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

func fromRecords(recs [][]string) *Table {
	if len(recs) == 0 {
		return NewTable(nil, nil)
	}
	return NewTable(recs[0], recs[1:])
}
