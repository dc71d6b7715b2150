package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/stripefdw/fdw"
	"github.com/kbukum/stripefdw/logger"
	"github.com/kbukum/stripefdw/observability"
	"github.com/kbukum/stripefdw/stripe"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Fetch one object and print its rows",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}
	cmd.Flags().String("object", "", "Stripe object to scan (balance, customers)")
	cmd.Flags().String("base-url", "", "Override the Stripe API base URL")
	_ = cmd.MarkFlagRequired("object")
	return cmd
}

func runScan(cmd *cobra.Command, _ []string) error {
	object, err := cmd.Flags().GetString("object")
	if err != nil {
		return err
	}
	baseURL, err := cmd.Flags().GetString("base-url")
	if err != nil {
		return err
	}
	formatter, err := formatterFor(cmd)
	if err != nil {
		return err
	}

	if err := scanObject(cmd, formatter, object, baseURL); err != nil {
		if werr := formatter.WriteError(err); werr != nil {
			return werr
		}
		return err
	}
	return nil
}

func scanObject(cmd *cobra.Command, formatter Formatter, object, baseURL string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	if baseURL != "" {
		app.Cfg.Stripe.BaseURL = baseURL
	}

	return app.RunTask(cmd.Context(), func(ctx context.Context) error {
		metrics, err := observability.NewScanMetrics(observability.Meter(appName))
		if err != nil {
			return err
		}
		w, err := stripe.NewWithConfig(app.Cfg.Stripe,
			stripe.WithLogger(logger.Get("stripe")),
			stripe.WithMetrics(metrics),
		)
		if err != nil {
			return err
		}

		rows, err := fdw.Collect(ctx, w, nil, fdw.Options{stripe.OptObject: object})
		if err != nil {
			return err
		}

		if err := formatter.WriteRows(object, stripe.Columns(stripe.ObjectType(object)), rows); err != nil {
			return err
		}
		return formatter.Flush()
	})
}
