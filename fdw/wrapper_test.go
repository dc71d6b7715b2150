package fdw

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceWrapper struct {
	rows     []Row
	beginErr error
	buf      *RowBuffer
	ended    int
}

func (w *sliceWrapper) BeginScan(_ context.Context, _ []Qual, _ []string, _ []Sort, _ *Limit, _ Options) error {
	if w.beginErr != nil {
		return w.beginErr
	}
	w.buf = NewRowBuffer(append([]Row(nil), w.rows...))
	return nil
}

func (w *sliceWrapper) IterScan(context.Context) (Row, bool, error) {
	row, ok := w.buf.Pop()
	return row, ok, nil
}

func (w *sliceWrapper) EndScan(context.Context) error {
	w.buf.Release()
	w.buf = nil
	w.ended++
	return nil
}

func TestCollect(t *testing.T) {
	w := &sliceWrapper{rows: []Row{rowWith(1), rowWith(2)}}
	rows, err := Collect(context.Background(), w, nil, Options{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 1, w.ended)
}

func TestCollectBeginError(t *testing.T) {
	want := stderrors.New("fetch failed")
	w := &sliceWrapper{beginErr: want}
	rows, err := Collect(context.Background(), w, nil, Options{})
	assert.ErrorIs(t, err, want)
	assert.Nil(t, rows)
	assert.Equal(t, 0, w.ended)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "draining", StateDraining.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}
