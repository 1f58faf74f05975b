package join

import (
	"fmt"

	"github.com/cloud-bulldozer/bench-combine/pkg/frame"
)

// Suffixes added to non-key columns that exist on both sides.
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

// Inner joins left and right on key. The result holds the left columns
// followed by the right columns without key. Each left row is followed by
// its matches in right order; keys present on one side only are dropped.
func Inner(left, right *frame.Frame, key string) (*frame.Frame, error) {
	li, ri := left.Index(key), right.Index(key)
	if li < 0 {
		return nil, fmt.Errorf("%w: join key %q missing from left input %v", frame.ErrSchema, key, columnsOf(left))
	}
	if ri < 0 {
		return nil, fmt.Errorf("%w: join key %q missing from right input %v", frame.ErrSchema, key, columnsOf(right))
	}

	rightCols := make([]int, 0, len(right.Columns))
	shared := map[string]bool{}
	for i, c := range right.Columns {
		if i == ri {
			continue
		}
		rightCols = append(rightCols, i)
		if left.Has(c) {
			shared[c] = true
		}
	}

	columns := make([]string, 0, len(left.Columns)+len(rightCols))
	for _, c := range left.Columns {
		if shared[c] {
			c += LeftSuffix
		}
		columns = append(columns, c)
	}
	for _, i := range rightCols {
		c := right.Columns[i]
		if shared[c] {
			c += RightSuffix
		}
		columns = append(columns, c)
	}
	out := frame.New(columns...)

	matches := map[string][]int{}
	for i, row := range right.Rows {
		matches[row[ri]] = append(matches[row[ri]], i)
	}
	for _, lrow := range left.Rows {
		for _, m := range matches[lrow[li]] {
			rrow := right.Rows[m]
			cells := make([]string, 0, len(columns))
			cells = append(cells, lrow...)
			for _, i := range rightCols {
				cells = append(cells, rrow[i])
			}
			out.Rows = append(out.Rows, cells)
		}
	}
	return out, nil
}

func columnsOf(f *frame.Frame) []string {
	if f == nil {
		return nil
	}
	return f.Columns
}
