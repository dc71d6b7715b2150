package fdw

// RowBuffer holds the rows produced by one scan and hands them out front
// to back. It is filled once and never reordered. The zero value and a nil
// *RowBuffer are both empty.
type RowBuffer struct {
	rows []Row
	head int
}

// NewRowBuffer takes ownership of rows.
func NewRowBuffer(rows []Row) *RowBuffer {
	return &RowBuffer{rows: rows}
}

// Pop removes and returns the front row. ok is false once the buffer is
// drained; further calls keep returning false.
func (b *RowBuffer) Pop() (Row, bool) {
	if b == nil || b.head >= len(b.rows) {
		return Row{}, false
	}
	row := b.rows[b.head]
	b.rows[b.head] = Row{}
	b.head++
	return row, true
}

// Len returns the number of rows not yet popped.
func (b *RowBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.rows) - b.head
}

// Release drops any remaining rows.
func (b *RowBuffer) Release() {
	if b == nil {
		return
	}
	b.rows = nil
	b.head = 0
}
