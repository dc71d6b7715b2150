package fdw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rowWith(n int64) Row {
	var r Row
	r.Push("n", Int64(n))
	return r
}

func TestRowBufferFIFO(t *testing.T) {
	b := NewRowBuffer([]Row{rowWith(1), rowWith(2), rowWith(3)})
	assert.Equal(t, 3, b.Len())

	for want := int64(1); want <= 3; want++ {
		row, ok := b.Pop()
		assert.True(t, ok)
		c, _ := row.Get("n")
		got, _ := c.AsInt64()
		assert.Equal(t, want, got)
	}

	assert.Equal(t, 0, b.Len())
	_, ok := b.Pop()
	assert.False(t, ok)
	_, ok = b.Pop()
	assert.False(t, ok)
}

func TestRowBufferNilAndEmpty(t *testing.T) {
	var nilBuf *RowBuffer
	_, ok := nilBuf.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, nilBuf.Len())
	nilBuf.Release()

	empty := NewRowBuffer(nil)
	_, ok = empty.Pop()
	assert.False(t, ok)
}

func TestRowBufferRelease(t *testing.T) {
	b := NewRowBuffer([]Row{rowWith(1), rowWith(2)})
	_, _ = b.Pop()
	b.Release()
	assert.Equal(t, 0, b.Len())
	_, ok := b.Pop()
	assert.False(t, ok)
}
