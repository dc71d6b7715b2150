package fdw

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Column describes one column a wrapper produces.
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"-"`
}

// Row is an ordered list of named cells. Column order is the order cells
// were pushed.
type Row struct {
	cols  []string
	cells []*Cell
}

// Push appends a column. A nil cell stores NULL.
func (r *Row) Push(col string, cell *Cell) {
	r.cols = append(r.cols, col)
	r.cells = append(r.cells, cell)
}

// Len returns the number of columns.
func (r Row) Len() int { return len(r.cols) }

// Cols returns the column names in order.
func (r Row) Cols() []string { return slices.Clone(r.cols) }

// Cells returns the cells in column order.
func (r Row) Cells() []*Cell { return slices.Clone(r.cells) }

// Get returns the cell stored under col. ok is false when the column is
// absent; a present NULL column returns (nil, true).
func (r Row) Get(col string) (*Cell, bool) {
	i := slices.Index(r.cols, col)
	if i < 0 {
		return nil, false
	}
	return r.cells[i], true
}

// MarshalJSON encodes the row as an object with keys in column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		val, err := r.cells[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
