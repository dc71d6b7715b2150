// Package resilience provides retry with exponential backoff and a token
// bucket rate limiter for outbound calls.
//
//	cfg := resilience.DefaultRetryConfig().WithMaxRetries(3)
//	cfg.RetryIf = httpclient.IsRetryable
//	resp, err := resilience.Retry(ctx, cfg, func(attempt int) (*http.Response, error) {
//	    if err := limiter.Wait(ctx); err != nil {
//	        return nil, err
//	    }
//	    return doOnce(ctx)
//	})
package resilience
