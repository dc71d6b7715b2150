// Command stripe-scan runs one foreign-table scan against the Stripe API
// and prints the rows.
//
//	STRIPE_API_KEY=sk_test_... stripe-scan scan --object balance
package main

import "os"

func main() {
	os.Exit(Execute())
}
