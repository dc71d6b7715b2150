package stripe

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/stripefdw/errors"
	"github.com/kbukum/stripefdw/fdw"
	"github.com/kbukum/stripefdw/httpclient"
	"github.com/kbukum/stripefdw/logger"
	"github.com/kbukum/stripefdw/observability"
)

// Operation names used in logs and error reports.
const (
	opBeginScan = "begin_scan"
	opEndScan   = "end_scan"
)

// FDW scans Stripe objects. One instance serves one scan at a time; the
// transport is built once and reused across scans.
type FDW struct {
	client  *httpclient.Client
	log     *logger.Logger
	metrics *observability.ScanMetrics

	state   fdw.State
	session *session
}

var _ fdw.ForeignDataWrapper = (*FDW)(nil)

// Option customizes an FDW.
type Option func(*FDW)

// WithLogger sets the logger. Defaults to the "stripe" component logger.
func WithLogger(log *logger.Logger) Option {
	return func(f *FDW) { f.log = log }
}

// WithMetrics records scan metrics into m.
func WithMetrics(m *observability.ScanMetrics) Option {
	return func(f *FDW) { f.metrics = m }
}

// New builds a wrapper from host construction options.
func New(options fdw.Options, opts ...Option) (*FDW, error) {
	cfg, err := ConfigFromOptions(options)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, opts...)
}

// NewWithConfig builds a wrapper from a loaded config.
func NewWithConfig(cfg Config, opts ...Option) (*FDW, error) {
	f := &FDW{state: fdw.StateIdle}
	for _, opt := range opts {
		opt(f)
	}
	if f.log == nil {
		f.log = logger.Get("stripe")
	}

	client, err := NewTransport(cfg, f.log)
	if err != nil {
		return nil, err
	}
	f.client = client
	f.log.Debug("wrapper created", logger.Fields(logger.FieldURL, client.BaseURL()))
	return f, nil
}

// Factory adapts New to fdw.Factory.
func Factory(options fdw.Options) (fdw.ForeignDataWrapper, error) {
	return New(options)
}

// State returns the lifecycle state of the current scan.
func (f *FDW) State() fdw.State {
	return f.state
}

// BeginScan fetches the object named by the "object" option and buffers
// its rows. The object name is used exactly as given. Pushed-down quals, sorts and limits are not applied; every
// record the API returns is buffered.
func (f *FDW) BeginScan(ctx context.Context, quals []fdw.Qual, columns []string, sorts []fdw.Sort, limit *fdw.Limit, options fdw.Options) error {
	f.dropSession()

	scanID := uuid.NewString()
	ctx = logger.ContextWithScanID(ctx, scanID)
	log := f.log.WithContext(ctx)

	name, ok := options.Raw(OptObject)
	if !ok {
		f.state = fdw.StateFailed
		return fdw.Report(ctx, f.log, opBeginScan, errors.MissingSelector(OptObject))
	}

	log.Debug("begin scan", logger.Fields(
		logger.FieldObject, name,
		"options", options.Redacted(),
		"columns", columns,
		"quals", len(quals),
		"sorts", len(sorts),
		"limit", limit,
	))

	ctx, op := observability.StartScan(ctx, name, scanID, f.metrics)
	f.state = fdw.StateFetching

	target, rows, err := f.fetch(ctx, op, name)
	if err != nil {
		op.End(ctx, 0, string(errors.CodeOf(err)), err)
		f.state = fdw.StateFailed
		return fdw.Report(ctx, f.log, opBeginScan, err)
	}
	op.End(ctx, len(rows), "", nil)

	f.session = newSession(scanID, ObjectType(name), target, rows)
	f.state = fdw.StateReady

	log.Info("scan ready", logger.Fields(
		logger.FieldObject, name,
		logger.FieldRows, len(rows),
		logger.FieldDuration, op.Duration().Milliseconds(),
	))
	return nil
}

// fetch performs the scan's single GET and decodes the body. The object
// name is only checked against the supported set once the body is in hand.
func (f *FDW) fetch(ctx context.Context, op *observability.ScanOperation, name string) (string, []fdw.Row, error) {
	req := httpclient.Request{Path: url.PathEscape(name)}
	target := f.client.URL(req)

	start := time.Now()
	resp, err := f.client.Do(ctx, req)
	if err != nil {
		status := httpclient.StatusCode(err)
		op.Fetched(ctx, target, status, time.Since(start))
		if status > 0 {
			return target, nil, errors.HTTPStatusFailure(target, status, err)
		}
		return target, nil, errors.TransportFailure(target, err).WithDetail("kind", transportKind(err))
	}
	op.Fetched(ctx, target, resp.StatusCode, time.Since(start))

	f.log.WithContext(ctx).Debug("fetched", logger.Fields(
		logger.FieldURL, target,
		logger.FieldStatus, resp.StatusCode,
		logger.FieldAttempt, resp.Attempts,
		"bytes", len(resp.Body),
	))

	rows, err := DecodeNamed(name, resp.Body)
	if err != nil {
		return target, nil, err
	}
	return target, rows, nil
}

// transportKind names the network failure behind a request that got no
// response.
func transportKind(err error) string {
	switch {
	case httpclient.IsTimeout(err):
		return "timeout"
	case httpclient.IsConnection(err):
		return "connection"
	default:
		return "request"
	}
}

// IterScan returns the next buffered row. Without an open scan, or once
// the buffer is drained, it reports end of data and changes nothing.
func (f *FDW) IterScan(ctx context.Context) (fdw.Row, bool, error) {
	if f.session == nil {
		return fdw.Row{}, false, nil
	}
	row, ok := f.session.next()
	if ok {
		f.state = fdw.StateDraining
	}
	return row, ok, nil
}

// EndScan releases the current scan. It is a no-op without one.
func (f *FDW) EndScan(ctx context.Context) error {
	if s := f.session; s != nil {
		f.log.WithContext(logger.ContextWithScanID(ctx, s.id)).Debug("end scan", logger.Fields(
			logger.FieldOperation, opEndScan,
			logger.FieldObject, string(s.object),
			logger.FieldURL, s.url,
			logger.FieldRows, s.served,
			"remaining", s.buffer.Len(),
			logger.FieldDuration, time.Since(s.started).Milliseconds(),
		))
	}
	f.dropSession()
	f.state = fdw.StateIdle
	return nil
}

func (f *FDW) dropSession() {
	if f.session != nil {
		f.session.release()
		f.session = nil
	}
}
