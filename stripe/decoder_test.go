package stripe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/stripefdw/errors"
	"github.com/kbukum/stripefdw/fdw"
	"github.com/kbukum/stripefdw/stripe/stripetest"
)

func cellInt(t *testing.T, row fdw.Row, col string) int64 {
	t.Helper()
	c, ok := row.Get(col)
	require.True(t, ok, "column %s missing", col)
	v, ok := c.AsInt64()
	require.True(t, ok, "column %s is not an integer", col)
	return v
}

func cellStr(t *testing.T, row fdw.Row, col string) string {
	t.Helper()
	c, ok := row.Get(col)
	require.True(t, ok, "column %s missing", col)
	v, ok := c.AsString()
	require.True(t, ok, "column %s is not text", col)
	return v
}

func TestDecodeBalance(t *testing.T) {
	rows, err := Decode(ObjectBalance, []byte(stripetest.BalanceBody))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"amount", "currency"}, rows[0].Cols())
	assert.Equal(t, int64(2000), cellInt(t, rows[0], "amount"))
	assert.Equal(t, "usd", cellStr(t, rows[0], "currency"))
	assert.Equal(t, int64(150), cellInt(t, rows[1], "amount"))
	assert.Equal(t, "eur", cellStr(t, rows[1], "currency"))
}

func TestDecodeCustomers(t *testing.T) {
	rows, err := Decode(ObjectCustomers, []byte(stripetest.CustomersBody))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for i, id := range []string{"cus_A", "cus_B", "cus_C"} {
		assert.Equal(t, []string{"id", "email"}, rows[i].Cols())
		assert.Equal(t, id, cellStr(t, rows[i], "id"))
	}
	assert.Equal(t, "b@example.com", cellStr(t, rows[1], "email"))
}

func TestDecodeEmptyArray(t *testing.T) {
	rows, err := Decode(ObjectBalance, []byte(`{"available":[]}`))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecodeIntegerBounds(t *testing.T) {
	rows, err := Decode(ObjectBalance, []byte(`{"available":[{"amount":9223372036854775807,"currency":"usd"},{"amount":-5,"currency":"usd"}]}`))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), cellInt(t, rows[0], "amount"))
	assert.Equal(t, int64(-5), cellInt(t, rows[1], "amount"))
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		obj  ObjectType
		body string
		path string
	}{
		{"not json", ObjectBalance, `not json`, ""},
		{"empty body", ObjectBalance, ``, ""},
		{"top-level array", ObjectBalance, `[]`, ""},
		{"trailing data", ObjectBalance, `{"available":[]} {}`, ""},
		{"missing array", ObjectBalance, `{"object":"balance"}`, "available"},
		{"array is object", ObjectBalance, `{"available":{}}`, "available"},
		{"record not object", ObjectBalance, `{"available":[1]}`, "available[0]"},
		{"missing amount", ObjectBalance, `{"available":[{"amount":1,"currency":"usd"},{"currency":"usd"}]}`, "available[1].amount"},
		{"string amount", ObjectBalance, `{"available":[{"amount":"1","currency":"usd"}]}`, "available[0].amount"},
		{"fractional amount", ObjectBalance, `{"available":[{"amount":1.5,"currency":"usd"}]}`, "available[0].amount"},
		{"overflowing amount", ObjectBalance, `{"available":[{"amount":9223372036854775808,"currency":"usd"}]}`, "available[0].amount"},
		{"null currency", ObjectBalance, `{"available":[{"amount":1,"currency":null}]}`, "available[0].currency"},
		{"missing data", ObjectCustomers, `{"object":"list"}`, "data"},
		{"null email", ObjectCustomers, `{"data":[{"id":"cus_A","email":null}]}`, "data[0].email"},
		{"numeric id", ObjectCustomers, `{"data":[{"id":7,"email":"a@b.c"}]}`, "data[0].id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Decode(tt.obj, []byte(tt.body))
			require.Error(t, err)
			assert.Nil(t, rows)

			appErr, ok := errors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeMalformedResponse, appErr.Code)
			assert.Equal(t, string(tt.obj), appErr.Details["object"])
			if tt.path == "" {
				assert.NotContains(t, appErr.Details, "path")
			} else {
				assert.Equal(t, tt.path, appErr.Details["path"])
				assert.Contains(t, appErr.Message, tt.path)
			}
		})
	}
}

func TestDecodeNamed(t *testing.T) {
	rows, err := DecodeNamed("customers", []byte(stripetest.CustomersBody))
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = DecodeNamed("invoices", []byte(`{"data":[]}`))
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnsupportedObject))
}

func TestDecodeUnknownObject(t *testing.T) {
	_, err := Decode("charges", []byte(`{}`))
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnsupportedObject))
}
