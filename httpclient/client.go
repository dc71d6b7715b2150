package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/stripefdw/logger"
	"github.com/kbukum/stripefdw/resilience"
)

// Client is an HTTP client with built-in auth, retry, and rate limiting.
// It is immutable after New and safe for concurrent use.
type Client struct {
	httpClient *http.Client
	config     Config
	sensitive  map[string]bool
	rl         *resilience.RateLimiter
	log        *logger.Logger
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	c := &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config:    cfg,
		sensitive: make(map[string]bool),
		log:       cfg.Logger,
	}

	for _, h := range cfg.SensitiveHeaders {
		c.sensitive[http.CanonicalHeaderKey(h)] = true
	}
	if cfg.Auth != nil {
		c.sensitive[cfg.Auth.headerName()] = true
	}
	if cfg.RateLimiter != nil {
		c.rl = resilience.NewRateLimiter(*cfg.RateLimiter)
	}

	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// IsSensitive reports whether the named header is masked in dumps.
func (c *Client) IsSensitive(header string) bool {
	return c.sensitive[http.CanonicalHeaderKey(header)]
}

// URL returns the absolute URL a request is sent to.
func (c *Client) URL(req Request) string {
	if c.config.BaseURL == "" || strings.HasPrefix(req.Path, "http://") || strings.HasPrefix(req.Path, "https://") {
		return req.Path
	}
	return strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
}

// Do executes an HTTP request, retrying per the client's retry config, and
// returns the complete response. Non-2xx responses are returned as *Error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	retry := resilience.RetryConfig{MaxAttempts: 1}
	if c.config.Retry != nil {
		retry = *c.config.Retry
	}
	if retry.RetryIf == nil {
		retry.RetryIf = IsRetryable
	}

	target := c.URL(req)
	onRetry := retry.OnRetry
	retry.OnRetry = func(attempt int, err error, backoff time.Duration) {
		c.log.WithContext(ctx).Warn("request failed, retrying", logger.Fields(
			logger.FieldURL, target,
			logger.FieldAttempt, attempt,
			logger.FieldBackoff, backoff.Milliseconds(),
			logger.FieldStatus, StatusCode(err),
			logger.FieldError, err.Error(),
		))
		if onRetry != nil {
			onRetry(attempt, err, backoff)
		}
	}

	return resilience.Retry(ctx, retry, func(attempt int) (*Response, error) {
		resp, err := c.doOnce(ctx, req, attempt)
		if resp != nil {
			resp.Attempts = attempt
		}
		return resp, err
	})
}

// Unwrap returns the underlying *http.Client.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// doOnce executes a single attempt behind the rate limiter.
func (c *Client) doOnce(ctx context.Context, req Request, attempt int) (*Response, error) {
	if c.rl != nil {
		if err := c.rl.Wait(ctx); err != nil {
			return nil, NewTimeoutError(err)
		}
	}

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.log.DebugEnabled() {
		if dump, dumpErr := c.dump(httpReq); dumpErr == nil {
			c.log.WithContext(ctx).Debug("sending request", logger.Fields(logger.FieldAttempt, attempt, "request", dump))
		}
	}

	start := time.Now()
	resp, err := c.execute(httpReq)

	span := trace.SpanFromContext(ctx)
	span.AddEvent("http.attempt", trace.WithAttributes(
		attribute.Int("attempt", attempt),
		attribute.Int("http.status_code", attemptStatus(resp, err)),
		attribute.Int64("duration_ms", time.Since(start).Milliseconds()),
	))

	return resp, err
}

// attemptStatus returns the status an attempt ended with, 0 when no
// response arrived.
func attemptStatus(resp *Response, err error) int {
	if resp != nil {
		return resp.StatusCode
	}
	return StatusCode(err)
}

// execute sends the request and classifies the outcome.
func (c *Client) execute(httpReq *http.Request) (*Response, error) {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		var netErr net.Error
		if httpReq.Context().Err() != nil || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	if classErr := ClassifyStatusCode(resp.StatusCode, body); classErr != nil {
		return nil, classErr
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}, nil
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.URL(req), nil)
	if err != nil {
		return nil, NewRequestError(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	c.config.Auth.apply(httpReq)

	return httpReq, nil
}

// DumpRequest renders the request exactly as it would be sent, with every
// sensitive header masked.
func (c *Client) DumpRequest(ctx context.Context, req Request) (string, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return "", err
	}
	return c.dump(httpReq)
}

func (c *Client) dump(httpReq *http.Request) (string, error) {
	masked := httpReq.Clone(httpReq.Context())
	for name := range masked.Header {
		if c.sensitive[http.CanonicalHeaderKey(name)] {
			masked.Header.Set(name, redacted)
		}
	}
	out, err := httputil.DumpRequestOut(masked, false)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
