package dataset

import "fmt"

// Kind classifies a recoded column. The balancer and the report use it to
// decide which columns may be jittered and which must be copied verbatim.
type Kind int

const (
	KindContinuous Kind = iota
	KindOrdinal
	KindIndicator
	KindLabel
)

// Column describes one recoded column.
type Column struct {
	Name string
	Kind Kind
}

// Table is an immutable numeric table produced by the recoder. Derived tables
// (train/test splits, balanced training sets) are new Tables; the source is
// never mutated. Row slices returned by accessors are shared and must be
// treated as read-only.
type Table struct {
	cols []Column
	rows [][]float64
}

// NewTable builds a table from columns and rows. Every row must have exactly
// one value per column.
func NewTable(cols []Column, rows [][]float64) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(cols))
		}
	}
	return &Table{cols: cols, rows: rows}, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns a copy of the column descriptors.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.cols))
	copy(out, t.cols)
	return out
}

// ColumnIndex returns the index of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.cols {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Row returns the i-th row. The slice is shared, not a copy.
func (t *Table) Row(i int) []float64 { return t.rows[i] }

// Value returns the value at row i, column j.
func (t *Table) Value(i, j int) float64 { return t.rows[i][j] }

// ColumnValues returns a copy of the named column's values.
func (t *Table) ColumnValues(name string) ([]float64, bool) {
	j, ok := t.ColumnIndex(name)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[j]
	}
	return out, true
}

// Select returns a new table containing the given rows, in order. Row slices
// are shared with the source table.
func (t *Table) Select(indices []int) *Table {
	rows := make([][]float64, len(indices))
	for i, idx := range indices {
		rows[i] = t.rows[idx]
	}
	return &Table{cols: t.cols, rows: rows}
}
