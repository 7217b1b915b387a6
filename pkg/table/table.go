// pkg/table/table.go
package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DType identifies the element type of a column.
type DType int

const (
	// Numeric columns hold float64 values
	Numeric DType = iota
	// Text columns hold string values
	Text
	// Temporal columns hold time.Time values
	Temporal
	// Bool columns hold bool values
	Bool
)

// String returns a string representation of the dtype
func (d DType) String() string {
	switch d {
	case Numeric:
		return "numeric"
	case Text:
		return "text"
	case Temporal:
		return "temporal"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("unknown(%d)", d)
	}
}

// Column is a named, homogeneously typed sequence of cells.
// A nil cell is the missing marker, distinct from any valid value.
type Column struct {
	Name   string
	Type   DType
	values []interface{}
}

// NewColumn creates a column after checking that every non-missing cell
// matches the declared dtype.
func NewColumn(name string, dtype DType, values []interface{}) (Column, error) {
	for i, v := range values {
		if v == nil {
			continue
		}
		if !matchesType(v, dtype) {
			return Column{}, fmt.Errorf("column %q: row %d holds %T, want %s", name, i, v, dtype)
		}
	}
	copied := make([]interface{}, len(values))
	copy(copied, values)
	return Column{Name: name, Type: dtype, values: copied}, nil
}

func matchesType(v interface{}, dtype DType) bool {
	switch dtype {
	case Numeric:
		_, ok := v.(float64)
		return ok
	case Text:
		_, ok := v.(string)
		return ok
	case Temporal:
		_, ok := v.(time.Time)
		return ok
	case Bool:
		_, ok := v.(bool)
		return ok
	default:
		return false
	}
}

// Len returns the number of cells in the column
func (c Column) Len() int {
	return len(c.values)
}

// Value returns the cell at row i (nil when missing)
func (c Column) Value(i int) interface{} {
	return c.values[i]
}

// MissingCount returns the number of missing cells
func (c Column) MissingCount() int {
	n := 0
	for _, v := range c.values {
		if v == nil {
			n++
		}
	}
	return n
}

// MissingFraction returns missing cells as a fraction of the column length.
// An empty column has fraction 0.
func (c Column) MissingFraction() float64 {
	if len(c.values) == 0 {
		return 0
	}
	return float64(c.MissingCount()) / float64(len(c.values))
}

// Present returns the non-missing values in row order
func (c Column) Present() []interface{} {
	out := make([]interface{}, 0, len(c.values))
	for _, v := range c.values {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// Floats returns the present values of a numeric column in row order
func (c Column) Floats() []float64 {
	out := make([]float64, 0, len(c.values))
	for _, v := range c.values {
		if f, ok := v.(float64); ok {
			out = append(out, f)
		}
	}
	return out
}

// Table is an ordered sequence of named, row-aligned columns.
// The zero value is an empty table. Tables are logical values: every
// transformation in this module returns a new Table and leaves its
// input untouched.
type Table struct {
	columns []Column
	byName  map[string]int
	rows    int
}

// New builds a table from columns, enforcing unique names and equal
// row counts.
func New(columns ...Column) (Table, error) {
	t := Table{byName: make(map[string]int, len(columns))}
	for i, col := range columns {
		if _, dup := t.byName[col.Name]; dup {
			return Table{}, fmt.Errorf("duplicate column name %q", col.Name)
		}
		if i == 0 {
			t.rows = col.Len()
		} else if col.Len() != t.rows {
			return Table{}, fmt.Errorf("column %q has %d rows, want %d", col.Name, col.Len(), t.rows)
		}
		t.byName[col.Name] = i
		t.columns = append(t.columns, col)
	}
	return t, nil
}

// NumRows returns the row count
func (t Table) NumRows() int {
	return t.rows
}

// NumColumns returns the column count
func (t Table) NumColumns() int {
	return len(t.columns)
}

// ColumnNames returns the column names in order
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether a column with the given name exists
func (t Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Column returns the named column. The boolean is false when the
// column does not exist.
func (t Table) Column(name string) (Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Columns returns a copy of the column list in order
func (t Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Value returns the cell at (row, column name), nil when missing.
// The boolean is false when the column does not exist.
func (t Table) Value(row int, name string) (interface{}, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.columns[i].values[row], true
}

// SelectRows returns a new table containing the given rows, in the
// given order.
func (t Table) SelectRows(rows []int) Table {
	cols := make([]Column, len(t.columns))
	for i, c := range t.columns {
		values := make([]interface{}, len(rows))
		for j, r := range rows {
			values[j] = c.values[r]
		}
		cols[i] = Column{Name: c.Name, Type: c.Type, values: values}
	}
	out, _ := New(cols...)
	return out
}

// DropColumns returns a new table without the named columns. Names not
// present are ignored.
func (t Table) DropColumns(names ...string) Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := make([]Column, 0, len(t.columns))
	for _, c := range t.columns {
		if !drop[c.Name] {
			kept = append(kept, c.cloned())
		}
	}
	out, _ := New(kept...)
	return out
}

// WithColumn returns a new table where the named column is replaced by
// col. The replacement must keep the row count and the column must
// already exist.
func (t Table) WithColumn(name string, col Column) (Table, error) {
	if _, ok := t.byName[name]; !ok {
		return Table{}, fmt.Errorf("column %q not found", name)
	}
	if col.Len() != t.rows {
		return Table{}, fmt.Errorf("replacement for %q has %d rows, want %d", name, col.Len(), t.rows)
	}
	cols := make([]Column, len(t.columns))
	for i, c := range t.columns {
		if c.Name == name {
			cols[i] = col.cloned()
		} else {
			cols[i] = c.cloned()
		}
	}
	return New(cols...)
}

// RenameColumns returns a new table with names mapped through rename.
// Names absent from the map are kept. Collisions surface as the
// duplicate-name error from New.
func (t Table) RenameColumns(rename map[string]string) (Table, error) {
	cols := make([]Column, len(t.columns))
	for i, c := range t.columns {
		nc := c.cloned()
		if to, ok := rename[c.Name]; ok {
			nc.Name = to
		}
		cols[i] = nc
	}
	return New(cols...)
}

// MissingCells returns the total number of missing cells in the table
func (t Table) MissingCells() int {
	n := 0
	for _, c := range t.columns {
		n += c.MissingCount()
	}
	return n
}

// RowKey encodes row r as a type-tagged string over the given columns,
// suitable for duplicate grouping. Missing compares equal to missing.
func (t Table) RowKey(r int, columns []string) string {
	var sb strings.Builder
	for _, name := range columns {
		i := t.byName[name]
		v := t.columns[i].values[r]
		switch val := v.(type) {
		case nil:
			sb.WriteString("_|")
		case float64:
			sb.WriteString("f" + strconv.FormatFloat(val, 'g', -1, 64) + "|")
		case string:
			sb.WriteString("s" + strconv.Quote(val) + "|")
		case bool:
			sb.WriteString("b" + strconv.FormatBool(val) + "|")
		case time.Time:
			sb.WriteString("t" + strconv.FormatInt(val.UnixNano(), 10) + "|")
		default:
			sb.WriteString(fmt.Sprintf("?%v|", val))
		}
	}
	return sb.String()
}

func (c Column) cloned() Column {
	values := make([]interface{}, len(c.values))
	copy(values, c.values)
	return Column{Name: c.Name, Type: c.Type, values: values}
}
