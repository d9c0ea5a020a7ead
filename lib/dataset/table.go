package dataset

import (
	"iter"
)

// Table is an ordered, immutable sequence of rows.
//
// Thread-safe: a Table is never modified after construction.
type Table struct {
	rows []Row
}

// NewTable creates a table holding a copy of rows.
func NewTable(rows []Row) *Table {
	cp := make([]Row, len(rows))
	copy(cp, rows)
	return &Table{rows: cp}
}

// EmptyTable returns a table with zero rows.
func EmptyTable() *Table {
	return &Table{}
}

// Len returns the number of rows. A nil table has zero rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// Row returns the i-th row by value.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// All iterates over the rows in insertion order.
func (t *Table) All() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		if t == nil {
			return
		}
		for i, r := range t.rows {
			if !yield(i, r) {
				return
			}
		}
	}
}
