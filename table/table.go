// Package table defines the in-memory data model shared by the loader, the
// query engine and the reporter.
//
// A Table is an ordered list of Records that all share one schema. Loaded
// records keep the raw cell text so that writing a table back to CSV and
// reloading it yields the same table; numeric and date interpretation
// happens lazily through the helpers in value.go.
package table

import (
	"errors"
	"fmt"
	"sort"
)

// ErrColumnMismatch is returned when a record's columns differ from the
// table schema.
var ErrColumnMismatch = errors.New("record columns do not match table schema")

// Record is one row, keyed by column name.
type Record map[string]interface{}

// Table is an ordered sequence of records sharing one schema.
type Table struct {
	Columns []string
	Rows    []Record
}

// Note is a key/value pair of metadata exported alongside a table.
type Note struct {
	Key   string
	Value string
}

// New creates an empty table with the given columns.
func New(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols, Rows: make([]Record, 0)}
}

// Append adds a record after checking it carries exactly the table columns.
func (t *Table) Append(r Record) error {
	if len(r) != len(t.Columns) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrColumnMismatch, len(r), len(t.Columns))
	}
	for _, col := range t.Columns {
		if _, ok := r[col]; !ok {
			return fmt.Errorf("%w: missing column %q", ErrColumnMismatch, col)
		}
	}
	t.Rows = append(t.Rows, r)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Has reports whether the table has the named column.
func (t *Table) Has(column string) bool {
	return t.Index(column) >= 0
}

// Index returns the position of column in the schema, or -1.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Head returns a table holding at most the first n rows. Rows are shared
// with the receiver.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	head := New(t.Columns)
	head.Rows = append(head.Rows, t.Rows[:n]...)
	return head
}

// Values returns the values of one column in row order.
func (t *Table) Values(column string) []interface{} {
	values := make([]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[column]
	}
	return values
}

// Strings renders a record as text cells in schema order.
func (t *Table) Strings(r Record) []string {
	cells := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cells[i] = FormatValue(r[col])
	}
	return cells
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := New(t.Columns)
	c.Rows = make([]Record, len(t.Rows))
	for i, row := range t.Rows {
		dup := make(Record, len(row))
		for k, v := range row {
			dup[k] = v
		}
		c.Rows[i] = dup
	}
	return c
}

// SortedColumns returns the column names in lexical order.
func (t *Table) SortedColumns() []string {
	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)
	sort.Strings(cols)
	return cols
}
