// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/metrics"
	"github.com/tomtom215/terrascope/internal/models"
)

// maxErrorBodySize limits the maximum amount of response body read for error reporting
const maxErrorBodySize = 64 * 1024

// maxResponseSize bounds successful response bodies.
const maxResponseSize = 32 << 20

// readBodyForError reads the response body for error reporting (max 64KB)
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// response is what the breaker hands back for a completed call.
type response struct {
	statusCode int
	body       []byte
}

// Client calls one upstream service.
type Client struct {
	name    string
	baseURL string
	timeout time.Duration
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[*response]
	headers http.Header
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithHeader sets a header on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Set(key, value) }
}

// New creates a client for cfg. A RateLimit of zero disables the limiter.
func New(cfg config.UpstreamConfig, opts ...Option) *Client {
	c := &Client{
		name:    cfg.Name,
		baseURL: strings.TrimRight(cfg.URL, "/"),
		timeout: cfg.Timeout,
		http:    &http.Client{},
		cb:      newBreaker(cfg.Name),
		headers: make(http.Header),
	}
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the service name used in errors and metrics.
func (c *Client) Name() string { return c.name }

// URL returns the configured endpoint.
func (c *Client) URL() string { return c.baseURL }

// PostJSON posts in to the configured endpoint and decodes the reply into out.
func (c *Client) PostJSON(ctx context.Context, in, out interface{}) error {
	return c.Do(ctx, http.MethodPost, "", in, out)
}

// Do sends a request to the endpoint joined with path. in may be nil; out
// may be nil to discard the body. Non-2xx replies become *models.UpstreamError
// carrying the status code.
func (c *Client) Do(ctx context.Context, method, path string, in, out interface{}) error {
	start := time.Now()
	resp, err := c.execute(ctx, method, path, in)
	if err != nil {
		outcome := "error"
		if isRejection(err) {
			outcome = "rejected"
		}
		metrics.RecordUpstreamRequest(c.name, outcome, time.Since(start))
		return err
	}
	metrics.RecordUpstreamRequest(c.name, "success", time.Since(start))

	if out == nil || len(resp.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return &models.UpstreamError{
			Service: c.name,
			Message: "malformed response body",
			Err:     err,
		}
	}
	return nil
}

func (c *Client) execute(ctx context.Context, method, path string, in interface{}) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &models.UpstreamError{Service: c.name, Message: "rate limiter", Err: err}
		}
	}

	resp, err := c.cb.Execute(func() (*response, error) {
		return c.roundTrip(ctx, method, path, in)
	})
	if err == nil {
		metrics.CircuitBreakerRequests.WithLabelValues(c.cb.Name(), "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.cb.Name()).Set(0)
		return resp, nil
	}

	if isRejection(err) {
		metrics.CircuitBreakerRequests.WithLabelValues(c.cb.Name(), "rejected").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("service", c.name).Msg("[CIRCUIT BREAKER] Request rejected")
		return nil, &models.UpstreamError{Service: c.name, StatusCode: http.StatusServiceUnavailable, Message: "circuit open", Err: err}
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.cb.Name(), "failure").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.cb.Name()).Set(float64(c.cb.Counts().ConsecutiveFailures))
	return nil, err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, in interface{}) (*response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader = http.NoBody
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", c.name, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &models.UpstreamError{Service: c.name, Message: "create request failed", Err: err}
	}
	for k, v := range c.headers {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &models.UpstreamError{Service: c.name, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &models.UpstreamError{
			Service:    c.name,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(readBodyForError(resp.Body))),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &models.UpstreamError{Service: c.name, Message: "read response failed", Err: err}
	}
	return &response{statusCode: resp.StatusCode, body: data}, nil
}

// StatusCode returns the upstream HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var ue *models.UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}
