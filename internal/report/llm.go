// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package report

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/models"
	"github.com/tomtom215/terrascope/internal/upstream"
)

// ErrAuthFailed is returned when the LLM endpoint rejects the credentials.
var ErrAuthFailed = errors.New("llm authentication failed")

// LLMClient generates text for a prompt.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

// GenerationConfig holds the sampling parameters sent with every request.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerativeClient calls a generateContent-style endpoint, normally the
// server's own proxy route.
type GenerativeClient struct {
	up  *upstream.Client
	gen GenerationConfig
}

// NewGenerativeClient creates a client for cfg.Endpoint.
func NewGenerativeClient(cfg *config.LLMConfig, opts ...upstream.Option) *GenerativeClient {
	return &GenerativeClient{
		up: upstream.New(cfg.Upstream(), opts...),
		gen: GenerationConfig{
			Temperature:     cfg.Temperature,
			MaxOutputTokens: cfg.MaxOutputTokens,
			TopP:            cfg.TopP,
			TopK:            cfg.TopK,
		},
	}
}

// Generate submits prompt as a single user turn and returns the text of
// the first candidate.
func (c *GenerativeClient) Generate(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: c.gen,
	}

	var resp generateResponse
	if err := c.up.PostJSON(ctx, req, &resp); err != nil {
		switch upstream.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", fmt.Errorf("%w: %w", ErrAuthFailed, err)
		}
		return "", err
	}

	if len(resp.Candidates) == 0 {
		return "", &models.UpstreamError{Service: c.up.Name(), StatusCode: http.StatusOK, Message: "response has no candidates"}
	}
	var text strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", &models.UpstreamError{Service: c.up.Name(), StatusCode: http.StatusOK, Message: "response has no text"}
	}
	return text.String(), nil
}
