// Package table provides a loosely-typed, column-ordered table used at the
// ingestion boundary. Source spreadsheets drift between uploads: columns come
// and go, headers carry stray whitespace, rows are ragged. Table absorbs that
// so the loader and the upload merger can work over a stable shape.
package table

import "strings"

// Table holds raw tabular data as strings, one slice per row.
// Headers are whitespace-trimmed on construction; cell values are kept as-is.
type Table struct {
	Headers []string
	Rows    [][]string
}

// New creates an empty table with the given (trimmed) headers.
func New(headers []string) *Table {
	trimmed := make([]string, len(headers))
	for i, h := range headers {
		trimmed[i] = strings.TrimSpace(h)
	}
	return &Table{Headers: trimmed}
}

// AppendRow adds a row, padding or truncating it to the header width.
func (t *Table) AppendRow(row []string) {
	if len(row) < len(t.Headers) {
		padded := make([]string, len(t.Headers))
		copy(padded, row)
		row = padded
	} else if len(row) > len(t.Headers) {
		row = row[:len(t.Headers)]
	}
	t.Rows = append(t.Rows, row)
}

// ColumnIndex returns the position of a header, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at (row, column name), or "" when the column is
// absent. Missing-column access defaulting to empty keeps per-row code free
// of presence checks.
func (t *Table) Cell(row int, name string) string {
	idx := t.ColumnIndex(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][idx]
}

// SetCell writes the value at (row, column name); absent columns are ignored.
func (t *Table) SetCell(row int, name, value string) {
	idx := t.ColumnIndex(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return
	}
	t.Rows[row][idx] = value
}

// AddColumn appends a new column filled with the given default value.
// Adding an existing column is a no-op.
func (t *Table) AddColumn(name, defaultValue string) {
	if t.HasColumn(name) {
		return
	}
	t.Headers = append(t.Headers, strings.TrimSpace(name))
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], defaultValue)
	}
}

// RenameColumn renames a column in place. Renaming onto an existing header or
// from an absent one is a no-op.
func (t *Table) RenameColumn(from, to string) {
	if t.HasColumn(to) {
		return
	}
	idx := t.ColumnIndex(from)
	if idx < 0 {
		return
	}
	t.Headers[idx] = strings.TrimSpace(to)
}

// Select returns a new table holding only the named columns, in the given
// order, skipping names the table does not have.
func (t *Table) Select(names []string) *Table {
	var keep []string
	var indices []int
	for _, name := range names {
		if idx := t.ColumnIndex(name); idx >= 0 {
			keep = append(keep, name)
			indices = append(indices, idx)
		}
	}
	out := New(keep)
	for _, row := range t.Rows {
		selected := make([]string, len(indices))
		for i, idx := range indices {
			selected[i] = row[idx]
		}
		out.Rows = append(out.Rows, selected)
	}
	return out
}

// IntersectColumns returns the headers of this table that also appear in
// other, preserving this table's order.
func (t *Table) IntersectColumns(other []string) []string {
	otherSet := make(map[string]bool, len(other))
	for _, h := range other {
		otherSet[strings.TrimSpace(h)] = true
	}
	var common []string
	for _, h := range t.Headers {
		if otherSet[h] {
			common = append(common, h)
		}
	}
	return common
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := New(t.Headers)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		copied := make([]string, len(row))
		copy(copied, row)
		out.Rows[i] = copied
	}
	return out
}
