// Package observability provides OpenTelemetry tracing and metrics for scans.
//
// Nothing is exported unless the host installs providers; until then the
// global no-op providers make every call free.
//
//	tp, err := observability.InitTracer(ctx, cfg.Tracing)
//	defer tp.Shutdown(ctx)
//
//	metrics, _ := observability.NewScanMetrics(observability.Meter("stripe"))
//	ctx, op := observability.StartScan(ctx, "balance", scanID, metrics)
//	defer op.End(ctx, rows, code, err)
package observability
