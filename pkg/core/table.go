package core

import "fmt"

// Column is a named sequence of cells.
type Column struct {
	Name   string
	Values []Value
}

// Table is an ordered collection of equal-length named columns. Rows
// are positionally aligned across columns.
//
// Transformers treat tables as immutable inputs: they Clone before
// modifying and return the clone, so the caller's table is never
// touched. Row count is invariant under every transform; column order
// may change.
type Table struct {
	cols []Column
	idx  map[string]int
}

// NewTable builds a table from the given columns. Column names must be
// unique and all columns must have the same length.
func NewTable(cols ...Column) (*Table, error) {
	t := &Table{idx: make(map[string]int, len(cols))}
	for _, c := range cols {
		if err := t.AddColumn(c.Name, c.Values); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NumRows returns the number of rows. An empty table has zero rows.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Values)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.cols) }

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.idx[name]
	return ok
}

// Column returns the named column. The returned slice is the table's
// backing storage; callers must not mutate it.
func (t *Table) Column(name string) ([]Value, bool) {
	i, ok := t.idx[name]
	if !ok {
		return nil, false
	}
	return t.cols[i].Values, true
}

// Columns returns the columns in table order. The returned slices are
// the table's backing storage; callers must not mutate them.
func (t *Table) Columns() []Column {
	return t.cols
}

// AddColumn appends a new column. It fails if the name is taken or the
// length does not match the existing rows.
func (t *Table) AddColumn(name string, values []Value) error {
	if name == "" {
		return fmt.Errorf("column name must not be empty")
	}
	if _, ok := t.idx[name]; ok {
		return fmt.Errorf("duplicate column %q", name)
	}
	if len(t.cols) > 0 && len(values) != t.NumRows() {
		return fmt.Errorf("column %q has %d rows, table has %d", name, len(values), t.NumRows())
	}
	if t.idx == nil {
		t.idx = make(map[string]int)
	}
	t.idx[name] = len(t.cols)
	t.cols = append(t.cols, Column{Name: name, Values: values})
	return nil
}

// SetColumn replaces an existing column's values in place, or appends
// a new column if the name is not present.
func (t *Table) SetColumn(name string, values []Value) error {
	if i, ok := t.idx[name]; ok {
		if len(values) != t.NumRows() {
			return fmt.Errorf("column %q has %d rows, table has %d", name, len(values), t.NumRows())
		}
		t.cols[i].Values = values
		return nil
	}
	return t.AddColumn(name, values)
}

// DropColumns removes the named columns. Names not present are
// ignored. Order of the remaining columns is preserved.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := t.cols[:0]
	for _, c := range t.cols {
		if !drop[c.Name] {
			kept = append(kept, c)
		}
	}
	t.cols = kept
	t.idx = make(map[string]int, len(t.cols))
	for i, c := range t.cols {
		t.idx[c.Name] = i
	}
}

// Clone returns a deep copy: value slices are copied so mutations of
// the clone never reach the original.
func (t *Table) Clone() *Table {
	out := &Table{
		cols: make([]Column, len(t.cols)),
		idx:  make(map[string]int, len(t.cols)),
	}
	for i, c := range t.cols {
		vals := make([]Value, len(c.Values))
		copy(vals, c.Values)
		out.cols[i] = Column{Name: c.Name, Values: vals}
		out.idx[c.Name] = i
	}
	return out
}
