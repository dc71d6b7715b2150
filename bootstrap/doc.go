// Package bootstrap runs a finite task with a uniform lifecycle: typed
// config defaults and validation, logger setup, start hooks, signal-driven
// cancellation, and stop hooks.
//
//	app, err := bootstrap.NewApp(cfg)
//	app.OnStart(initTelemetry)
//	app.OnStop(flushTelemetry)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return scan(ctx)
//	})
package bootstrap
