// pkg/model/table.go
package model

import (
	"errors"
	"fmt"
)

// Row is a single dataset record: column name -> cell value.
// Cell values are strings, float64 numbers, or nil (JSON null).
type Row map[string]interface{}

// Table is an in-memory dataset: an ordered column list plus rows.
// All corruption operates on copies; a loaded Table is never mutated in place.
type Table struct {
	columns []string
	rows    []Row
}

// NewTable creates a table from an ordered column list and rows.
// Rows may omit columns; missing cells read as nil.
func NewTable(columns []string, rows []Row) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.New("table must have at least one column")
	}
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if col == "" {
			return nil, errors.New("column name cannot be empty")
		}
		if seen[col] {
			return nil, fmt.Errorf("duplicate column name: %s", col)
		}
		seen[col] = true
	}

	t := &Table{
		columns: append([]string(nil), columns...),
		rows:    make([]Row, len(rows)),
	}
	copy(t.rows, rows)
	return t, nil
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Columns returns the ordered column names. The returned slice is a copy.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the table declares the given column.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.columns {
		if col == name {
			return true
		}
	}
	return false
}

// Row returns the row at index i. The returned map is the live row;
// callers that need isolation should use Clone first.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Cell returns the raw cell value at (row, column); nil if absent.
func (t *Table) Cell(i int, column string) interface{} {
	return t.rows[i][column]
}

// CellString returns the cell at (row, column) coerced to a string.
// Numbers are formatted, nil becomes the empty string.
func (t *Table) CellString(i int, column string) string {
	return CellToString(t.rows[i][column])
}

// SetCell replaces the cell value at (row, column).
func (t *Table) SetCell(i int, column string, value interface{}) {
	t.rows[i][column] = value
}

// Clone returns a deep copy of the table. Rows are copied map-by-map so the
// original and the clone remain independently inspectable.
func (t *Table) Clone() *Table {
	rows := make([]Row, len(t.rows))
	for i, row := range t.rows {
		dup := make(Row, len(row))
		for k, v := range row {
			dup[k] = v
		}
		rows[i] = dup
	}
	return &Table{
		columns: append([]string(nil), t.columns...),
		rows:    rows,
	}
}

// CloneRow returns a copy of the row at index i, detached from the table.
func (t *Table) CloneRow(i int) Row {
	row := t.rows[i]
	dup := make(Row, len(row))
	for k, v := range row {
		dup[k] = v
	}
	return dup
}
