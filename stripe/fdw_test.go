package stripe

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/stripefdw/errors"
	"github.com/kbukum/stripefdw/fdw"
	"github.com/kbukum/stripefdw/logger"
	"github.com/kbukum/stripefdw/stripe/stripetest"
)

const testKey = "sk_test_4eC39HqLyjWDarjtT1zdp7dc"

func newTestFDW(t *testing.T, srv *stripetest.Server, opts ...Option) *FDW {
	t.Helper()
	w, err := New(fdw.Options{
		OptAPIKey:         testKey,
		OptBaseURL:        srv.BaseURL(),
		OptInitialBackoff: "1ms",
	}, append([]Option{WithLogger(logger.NewNop())}, opts...)...)
	require.NoError(t, err)
	return w
}

func drain(t *testing.T, w *FDW) []fdw.Row {
	t.Helper()
	var rows []fdw.Row
	for {
		row, ok, err := w.IterScan(context.Background())
		require.NoError(t, err)
		if !ok {
			return rows
		}
		rows = append(rows, row)
	}
}

func scan(object string) fdw.Options {
	return fdw.Options{OptObject: object}
}

func TestScanBalance(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()
	srv.Handle("balance", stripetest.OK(stripetest.BalanceBody))

	w := newTestFDW(t, srv)
	ctx := context.Background()
	require.NoError(t, w.BeginScan(ctx, nil, []string{"amount", "currency"}, nil, nil, scan("balance")))
	assert.Equal(t, fdw.StateReady, w.State())

	rows := drain(t, w)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2000), cellInt(t, rows[0], "amount"))
	assert.Equal(t, "usd", cellStr(t, rows[0], "currency"))
	assert.Equal(t, int64(150), cellInt(t, rows[1], "amount"))
	assert.Equal(t, "eur", cellStr(t, rows[1], "currency"))
	assert.Equal(t, fdw.StateDraining, w.State())

	require.NoError(t, w.EndScan(ctx))
	assert.Equal(t, fdw.StateIdle, w.State())

	assert.Equal(t, 1, srv.Hits("balance"))
	assert.Equal(t, []string{"Bearer " + testKey}, srv.Authorizations())
	assert.Equal(t, []string{http.MethodGet}, srv.Methods())
}

func TestScanCustomers(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()
	srv.Handle("customers", stripetest.OK(stripetest.CustomersBody))

	w := newTestFDW(t, srv)
	rows, err := fdw.Collect(context.Background(), w, nil, scan("customers"))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, id := range []string{"cus_A", "cus_B", "cus_C"} {
		assert.Equal(t, id, cellStr(t, rows[i], "id"))
	}
	assert.Equal(t, "c@example.com", cellStr(t, rows[2], "email"))
	assert.Equal(t, fdw.StateIdle, w.State())
}

func TestIterScanEndOfData(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()
	srv.Handle("balance", stripetest.OK(`{"available":[]}`))

	w := newTestFDW(t, srv)
	ctx := context.Background()

	// No scan open yet.
	_, ok, err := w.IterScan(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, fdw.StateIdle, w.State())

	require.NoError(t, w.BeginScan(ctx, nil, nil, nil, nil, scan("balance")))
	for range 3 {
		_, ok, err = w.IterScan(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, fdw.StateReady, w.State())
	assert.Equal(t, 1, srv.Total())
}

func TestEndScanWithoutScan(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()

	w := newTestFDW(t, srv)
	assert.NoError(t, w.EndScan(context.Background()))
	assert.NoError(t, w.EndScan(context.Background()))
	assert.Equal(t, fdw.StateIdle, w.State())
	assert.Zero(t, srv.Total())
}

func TestRescanAfterEndScan(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()
	srv.Handle("balance", stripetest.OK(stripetest.BalanceBody))

	w := newTestFDW(t, srv)
	ctx := context.Background()

	first, err := fdw.Collect(ctx, w, nil, scan("balance"))
	require.NoError(t, err)
	second, err := fdw.Collect(ctx, w, nil, scan("balance"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, srv.Hits("balance"))
}

func TestBeginScanReplacesOpenScan(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()
	srv.Handle("balance", stripetest.OK(stripetest.BalanceBody))
	srv.Handle("customers", stripetest.OK(stripetest.CustomersBody))

	w := newTestFDW(t, srv)
	ctx := context.Background()

	require.NoError(t, w.BeginScan(ctx, nil, nil, nil, nil, scan("balance")))
	_, ok, _ := w.IterScan(ctx)
	require.True(t, ok)

	require.NoError(t, w.BeginScan(ctx, nil, nil, nil, nil, scan("customers")))
	rows := drain(t, w)
	assert.Len(t, rows, 3)
}

func TestNewWithoutAPIKeyNeverFetches(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()
	srv.Handle("balance", stripetest.OK(stripetest.BalanceBody))

	w, err := New(fdw.Options{OptBaseURL: srv.BaseURL()}, WithLogger(logger.NewNop()))
	assert.Nil(t, w)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMissingCredential))
	assert.Zero(t, srv.Total())
}

func TestBeginScanMissingObject(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()

	w := newTestFDW(t, srv)
	err := w.BeginScan(context.Background(), nil, nil, nil, nil, fdw.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMissingSelector))
	assert.Equal(t, fdw.StateFailed, w.State())
	assert.Zero(t, srv.Total())

	_, ok, err := w.IterScan(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPersistentServerErrorRetriesThenFails(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()
	srv.Handle("balance", stripetest.Status(http.StatusInternalServerError))

	w := newTestFDW(t, srv)
	ctx := context.Background()

	err := w.BeginScan(ctx, nil, nil, nil, nil, scan("balance"))
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeHTTPStatusFailure, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	assert.Equal(t, srv.BaseURL()+"/balance", appErr.Details["url"])
	assert.Contains(t, appErr.Message, "500")

	assert.Equal(t, 4, srv.Hits("balance"))
	assert.Equal(t, fdw.StateFailed, w.State())

	_, ok, err = w.IterScan(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestServerErrorRecovers(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()
	srv.Handle("balance",
		stripetest.Status(http.StatusServiceUnavailable),
		stripetest.Status(http.StatusBadGateway),
		stripetest.OK(stripetest.BalanceBody),
	)

	w := newTestFDW(t, srv)
	rows, err := fdw.Collect(context.Background(), w, nil, scan("balance"))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 3, srv.Hits("balance"))
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	for _, status := range []int{
		http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusNotFound,
		http.StatusTooManyRequests,
	} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := stripetest.NewServer()
			defer srv.Close()
			srv.Handle("balance", stripetest.Status(status))

			w := newTestFDW(t, srv)
			err := w.BeginScan(context.Background(), nil, nil, nil, nil, scan("balance"))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeHTTPStatusFailure))
			assert.Equal(t, 1, srv.Hits("balance"))
		})
	}
}

func TestMaxRetriesOption(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()
	srv.Handle("balance", stripetest.Status(http.StatusInternalServerError))

	w, err := New(fdw.Options{
		OptAPIKey:         testKey,
		OptBaseURL:        srv.BaseURL(),
		OptMaxRetries:     "1",
		OptInitialBackoff: "1ms",
	}, WithLogger(logger.NewNop()))
	require.NoError(t, err)

	require.Error(t, w.BeginScan(context.Background(), nil, nil, nil, nil, scan("balance")))
	assert.Equal(t, 2, srv.Hits("balance"))
}

func TestTransportFailure(t *testing.T) {
	srv := stripetest.NewServer()
	base := srv.BaseURL()
	srv.Close()

	w, err := New(fdw.Options{
		OptAPIKey:         testKey,
		OptBaseURL:        base,
		OptMaxRetries:     "1",
		OptInitialBackoff: "1ms",
	}, WithLogger(logger.NewNop()))
	require.NoError(t, err)

	err = w.BeginScan(context.Background(), nil, nil, nil, nil, scan("balance"))
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeTransportFailure, appErr.Code)
	assert.Equal(t, base+"/balance", appErr.Details["url"])
	assert.Equal(t, "connection", appErr.Details["kind"])
	assert.NotNil(t, appErr.Cause)
}

func TestTransportFailureRetriesEveryAttempt(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	var accepted atomic.Int32
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			accepted.Add(1)
			_ = conn.Close()
		}
	}()

	w, err := New(fdw.Options{
		OptAPIKey:         testKey,
		OptBaseURL:        "http://" + ln.Addr().String(),
		OptMaxRetries:     "2",
		OptInitialBackoff: "1ms",
	}, WithLogger(logger.NewNop()))
	require.NoError(t, err)

	err = w.BeginScan(context.Background(), nil, nil, nil, nil, scan("balance"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransportFailure))
	assert.Equal(t, int32(3), accepted.Load())
	assert.Equal(t, fdw.StateFailed, w.State())
}

func TestObjectNameUsedAsGiven(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()
	srv.Handle("balance", stripetest.OK(stripetest.BalanceBody))

	w := newTestFDW(t, srv)
	err := w.BeginScan(context.Background(), nil, nil, nil, nil, scan(" balance\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeHTTPStatusFailure))
	assert.Zero(t, srv.Hits("balance"))
	assert.Equal(t, 1, srv.Hits(" balance\n"))
}

func TestUnsupportedObjectAfterFetch(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()
	srv.Handle("charges", stripetest.OK(`{"object":"list","data":[]}`))

	w := newTestFDW(t, srv)
	err := w.BeginScan(context.Background(), nil, nil, nil, nil, scan("charges"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnsupportedObject))
	assert.Contains(t, err.Error(), "'charges' object is not implemented")
	assert.Equal(t, 1, srv.Hits("charges"))
}

func TestMalformedBodyYieldsNoRows(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()
	srv.Handle("balance", stripetest.OK(`{"available":[{"amount":1,"currency":"usd"},{"amount":"x","currency":"usd"}]}`))

	w := newTestFDW(t, srv)
	err := w.BeginScan(context.Background(), nil, nil, nil, nil, scan("balance"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedResponse))

	_, ok, err := w.IterScan(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPushdownInputsIgnored(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()
	srv.Handle("customers", stripetest.OK(stripetest.CustomersBody))

	w := newTestFDW(t, srv)
	ctx := context.Background()
	quals := []fdw.Qual{{Field: "email", Operator: "=", Value: "a@example.com"}}
	sorts := []fdw.Sort{{Field: "id", Reversed: true}}
	limit := &fdw.Limit{Count: 1}

	require.NoError(t, w.BeginScan(ctx, quals, []string{"id"}, sorts, limit, scan("customers")))
	rows := drain(t, w)
	require.Len(t, rows, 3)
	assert.Equal(t, "cus_A", cellStr(t, rows[0], "id"))
}

func TestLogsNeverContainKey(t *testing.T) {
	srv := stripetest.NewServer()
	defer srv.Close()
	srv.Handle("balance", stripetest.Status(http.StatusInternalServerError), stripetest.OK(stripetest.BalanceBody))

	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)
	w, err := New(fdw.Options{
		OptAPIKey:         testKey,
		OptBaseURL:        srv.BaseURL(),
		OptInitialBackoff: "1ms",
	}, WithLogger(log))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = fdw.Collect(ctx, w, nil, fdw.Options{OptObject: "balance", OptAPIKey: testKey})
	require.NoError(t, err)
	require.Error(t, w.BeginScan(ctx, nil, nil, nil, nil, fdw.Options{}))

	out := buf.String()
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "request failed, retrying")
	assert.Contains(t, out, "scan_id")
	assert.NotContains(t, out, testKey)
}

func TestFactory(t *testing.T) {
	_, err := Factory(fdw.Options{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeMissingCredential))

	w, err := Factory(fdw.Options{OptAPIKey: testKey})
	require.NoError(t, err)
	assert.IsType(t, &FDW{}, w)
}
