// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/metrics"
)

// MaxBodySize caps forwarded request bodies.
const MaxBodySize = 10 << 20

// maxResponseSize caps relayed response bodies.
const maxResponseSize = 32 << 20

// DefaultScope is requested when the config lists no scopes.
const DefaultScope = "https://www.googleapis.com/auth/cloud-platform"

// Proxy is an http.Handler that relays POST requests to a fixed target.
type Proxy struct {
	target string
	tokens oauth2.TokenSource
	client *http.Client
}

// Option configures a Proxy.
type Option func(*Proxy)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Proxy) { p.client = c }
}

// New creates a proxy for target using tokens.
func New(target string, tokens oauth2.TokenSource, opts ...Option) *Proxy {
	p := &Proxy{
		target: target,
		tokens: tokens,
		client: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewFromConfig resolves credentials: cfg.Token when set, otherwise the
// platform default credentials for cfg.Scopes.
func NewFromConfig(ctx context.Context, cfg *config.LLMConfig) (*Proxy, error) {
	if !cfg.ProxyEnabled() {
		return nil, errors.New("llm proxy has no upstream url")
	}
	tokens, err := TokenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return New(cfg.UpstreamURL, tokens, WithHTTPClient(&http.Client{Timeout: timeout})), nil
}

// TokenSource returns the token source described by cfg.
func TokenSource(ctx context.Context, cfg *config.LLMConfig) (oauth2.TokenSource, error) {
	if cfg.Token != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"}), nil
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{DefaultScope}
	}
	ts, err := google.DefaultTokenSource(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("resolve default credentials: %w", err)
	}
	return ts, nil
}

// ServeHTTP relays one request.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.Ctx(ctx)

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		p.fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	token, err := p.tokens.Token()
	if err != nil || token.AccessToken == "" {
		log.Error().Err(err).Msg("LLM proxy could not obtain a token")
		p.fail(w, http.StatusUnauthorized, "failed to obtain access token")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		p.fail(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(body) > MaxBodySize {
		p.fail(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.target, bytes.NewReader(body))
	if err != nil {
		p.fail(w, http.StatusInternalServerError, "failed to build upstream request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	token.SetAuthHeader(req)

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("LLM upstream request failed")
		p.fail(w, http.StatusBadGateway, "llm upstream unreachable")
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, io.LimitReader(resp.Body, maxResponseSize)); err != nil {
		log.Warn().Err(err).Msg("LLM proxy response copy failed")
	}

	metrics.LLMProxyRequests.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	log.Debug().
		Int("status", resp.StatusCode).
		Int("request_bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("LLM request proxied")
}

func (p *Proxy) fail(w http.ResponseWriter, status int, msg string) {
	metrics.LLMProxyRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
