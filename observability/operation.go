package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ScanOperation tracks the span and metrics of one BeginScan call.
type ScanOperation struct {
	Object    string
	ScanID    string
	StartTime time.Time
	Metrics   *ScanMetrics

	span trace.Span
}

// StartScan opens the begin-scan span. If metrics is nil, metric recording
// is skipped.
func StartScan(ctx context.Context, object, scanID string, metrics *ScanMetrics) (context.Context, *ScanOperation) {
	ctx, span := StartSpan(ctx, SpanBeginScan, trace.WithAttributes(
		attribute.String(AttrObject, object),
		attribute.String(AttrScanID, scanID),
	))
	return ctx, &ScanOperation{
		Object:    object,
		ScanID:    scanID,
		StartTime: time.Now(),
		Metrics:   metrics,
		span:      span,
	}
}

// Fetched records the outcome of the remote fetch.
func (op *ScanOperation) Fetched(ctx context.Context, url string, status int, duration time.Duration) {
	op.span.SetAttributes(
		attribute.String(AttrURL, url),
		attribute.Int(AttrStatusCode, status),
	)
	op.Metrics.RecordFetch(ctx, op.Object, status, duration)
}

// End closes the span. A nil err records rows; otherwise the error and its
// code are recorded.
func (op *ScanOperation) End(ctx context.Context, rows int, code string, err error) {
	op.span.SetAttributes(attribute.Int64(AttrDurationMs, time.Since(op.StartTime).Milliseconds()))
	if err != nil {
		op.span.SetAttributes(attribute.String(AttrErrorCode, code))
		SetSpanError(trace.ContextWithSpan(ctx, op.span), err)
		op.Metrics.RecordError(ctx, op.Object, code)
	} else {
		op.span.SetAttributes(attribute.Int(AttrRows, rows))
		op.Metrics.RecordRows(ctx, op.Object, rows)
	}
	op.span.End()
}

// Duration returns the elapsed time since the scan started.
func (op *ScanOperation) Duration() time.Duration {
	return time.Since(op.StartTime)
}
