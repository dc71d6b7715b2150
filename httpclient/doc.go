// Package httpclient provides an HTTP client with credential handling,
// retry, and rate limiting.
//
// Credentials are carried as Secret values, which always render as
// [REDACTED]. The auth header is registered as sensitive and masked in
// DumpRequest output and debug logs.
//
// Responses are classified into *Error values: connection failures,
// timeouts and 5xx are retryable; every 4xx, 429 included, is final.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.stripe.com/v1",
//	    Auth:    httpclient.BearerAuth(apiKey),
//	    Retry:   httpclient.DefaultRetryConfig(),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{Path: "balance"})
package httpclient
