package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/stripefdw/stripe"
)

func newObjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "objects",
		Short: "List supported objects and their columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatter, err := formatterFor(cmd)
			if err != nil {
				return err
			}
			for _, obj := range stripe.Objects() {
				if err := formatter.WriteObject(string(obj), stripe.Columns(obj)); err != nil {
					return err
				}
			}
			return formatter.Flush()
		},
	}
}
