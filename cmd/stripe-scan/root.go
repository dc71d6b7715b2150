package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/stripefdw/bootstrap"
	"github.com/kbukum/stripefdw/observability"
	"github.com/kbukum/stripefdw/validation"
	"github.com/kbukum/stripefdw/version"
)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Scan Stripe objects as foreign table rows",
		Long:          "Fetch a Stripe object over the REST API and print it as rows, the way a foreign data wrapper scan would.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Config file (default: config.yml lookup)")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("format", "text", "Output format (text, json)")

	root.AddCommand(newScanCmd(), newObjectsCmd(), newVersionCmd())
	return root
}

// formatterFor resolves the --format flag.
func formatterFor(cmd *cobra.Command) (Formatter, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}
	if err := validation.New().
		Required("format", format).
		OneOf("format", format, formatNames()).
		Validate(); err != nil {
		return nil, err
	}
	return Formatters[format](cmd.OutOrStdout()), nil
}

// newApp loads config and builds the task lifecycle: logging from the
// config, and OTLP tracing and metrics when tracing is enabled.
func newApp(cmd *cobra.Command) (*bootstrap.App[*Config], error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	if level != "" {
		cfg.Logging.Level = level
	}

	info := version.Get()
	app, err := bootstrap.NewApp(cfg, bootstrap.WithVersion(info.Short()))
	if err != nil {
		return nil, err
	}
	if !cfg.Tracing.Enabled {
		return app, nil
	}

	tc := cfg.tracerConfig(info.Short())
	var (
		tp *sdktrace.TracerProvider
		mp *sdkmetric.MeterProvider
	)
	app.OnStart(func(ctx context.Context) error {
		var initErr error
		if tp, initErr = observability.InitTracer(ctx, tc); initErr != nil {
			return initErr
		}
		mp, initErr = observability.InitMeter(ctx, observability.MeterConfigFromTracer(tc))
		return initErr
	})
	app.OnStop(func(ctx context.Context) error {
		if mp != nil {
			_ = mp.Shutdown(ctx)
		}
		if tp != nil {
			return tp.Shutdown(ctx)
		}
		return nil
	})
	return app, nil
}
