// Package stripe is a read-only foreign data wrapper over the Stripe REST
// API. A scan issues one authenticated GET for the selected object, decodes
// the JSON body into rows, and hands them to the host one at a time.
//
// Supported objects:
//
//	balance    amount bigint, currency text     (from "available")
//	customers  id text, email text              (from "data")
//
// Construction:
//
//	w, err := stripe.New(fdw.Options{"api_key": key})
//	rows, err := fdw.Collect(ctx, w, nil, fdw.Options{"object": "balance"})
package stripe
