package frame

import (
	"errors"
	"fmt"
)

// Error kinds shared by every stage of the pipeline. Callers match them with
// errors.Is; the wrapped error keeps the underlying cause.
var (
	// ErrIO is returned when a path is missing or cannot be read or written.
	ErrIO = errors.New("io error")
	// ErrFormat is returned for malformed tabular or structured input.
	ErrFormat = errors.New("format error")
	// ErrSchema is returned when a required column is absent or a schema drifts.
	ErrSchema = errors.New("schema error")
)

// Frame is a column-ordered table of string cells. Every row has exactly
// len(Columns) cells.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// New returns an empty frame with the given columns.
func New(columns ...string) *Frame {
	return &Frame{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows, 0 for a nil frame.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// Index returns the position of column or -1.
func (f *Frame) Index(column string) int {
	if f == nil {
		return -1
	}
	for i, c := range f.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Has reports whether column exists.
func (f *Frame) Has(column string) bool {
	return f.Index(column) >= 0
}

// AddRow appends a row. The number of cells must match the column count.
func (f *Frame) AddRow(cells ...string) error {
	if len(cells) != len(f.Columns) {
		return fmt.Errorf("%w: row has %d cells, frame has %d columns", ErrSchema, len(cells), len(f.Columns))
	}
	f.Rows = append(f.Rows, append([]string(nil), cells...))
	return nil
}

// Column returns a copy of the values of column.
func (f *Frame) Column(column string) ([]string, error) {
	i := f.Index(column)
	if i < 0 {
		return nil, fmt.Errorf("%w: missing column %q", ErrSchema, column)
	}
	vals := make([]string, 0, f.Len())
	for _, row := range f.Rows {
		vals = append(vals, row[i])
	}
	return vals, nil
}

// Value returns the cell of row at column, or "" when the column does not exist.
func (f *Frame) Value(row int, column string) string {
	i := f.Index(column)
	if i < 0 {
		return ""
	}
	return f.Rows[row][i]
}

// Concat stacks frames row-wise. The result has the union of all columns in
// order of first appearance; cells a frame does not carry are left empty.
// Nil and empty frames are accepted.
func Concat(frames ...*Frame) *Frame {
	out := &Frame{}
	pos := map[string]int{}
	for _, f := range frames {
		if f == nil {
			continue
		}
		for _, c := range f.Columns {
			if _, ok := pos[c]; !ok {
				pos[c] = len(out.Columns)
				out.Columns = append(out.Columns, c)
			}
		}
	}
	for _, f := range frames {
		if f == nil {
			continue
		}
		for _, row := range f.Rows {
			cells := make([]string, len(out.Columns))
			for i, c := range f.Columns {
				cells[pos[c]] = row[i]
			}
			out.Rows = append(out.Rows, cells)
		}
	}
	return out
}

// SameColumns reports whether a and b name the same columns in the same order.
func SameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
