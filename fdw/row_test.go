package fdw

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowPushAndGet(t *testing.T) {
	var r Row
	r.Push("id", String("cus_1"))
	r.Push("email", nil)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"id", "email"}, r.Cols())

	c, ok := r.Get("id")
	require.True(t, ok)
	v, _ := c.AsString()
	assert.Equal(t, "cus_1", v)

	c, ok = r.Get("email")
	assert.True(t, ok)
	assert.True(t, c.IsNull())

	_, ok = r.Get("name")
	assert.False(t, ok)
}

func TestRowColsIsCopy(t *testing.T) {
	var r Row
	r.Push("amount", Int64(1))
	cols := r.Cols()
	cols[0] = "changed"
	assert.Equal(t, []string{"amount"}, r.Cols())
}

func TestRowMarshalJSONKeepsOrder(t *testing.T) {
	var r Row
	r.Push("currency", String("usd"))
	r.Push("amount", Int64(100))

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"currency":"usd","amount":100}`, string(out))

	out, err = json.Marshal(Row{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}
