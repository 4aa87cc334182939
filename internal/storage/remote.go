// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package storage

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/models"
	"github.com/tomtom215/terrascope/internal/upstream"
)

// RemoteTier talks to a persistence server over HTTP:
//
//	GET  /api/analysis/{companyId}/latest
//	GET  /api/analysis/{companyId}/{quarter}
//	POST /api/analysis/{companyId}/{quarter}
//
// The server may be this same binary running elsewhere. Requests go through
// the shared upstream client, so a dead server trips its circuit breaker
// instead of stalling every save.
type RemoteTier struct {
	client *upstream.Client
}

// NewRemoteTier creates a tier for the server at cfg.RemoteURL.
func NewRemoteTier(cfg *config.StorageConfig, opts ...upstream.Option) *RemoteTier {
	return &RemoteTier{client: upstream.New(cfg.RemoteUpstream(), opts...)}
}

// Name implements Tier.
func (t *RemoteTier) Name() string { return "remote" }

// Put implements Tier.
func (t *RemoteTier) Put(ctx context.Context, companyID, quarter string, rec *models.AnalysisRecord) error {
	return t.client.Do(ctx, http.MethodPost, recordPath(companyID, quarter), rec, nil)
}

// Get implements Tier.
func (t *RemoteTier) Get(ctx context.Context, companyID, quarter string) (*models.AnalysisRecord, error) {
	return t.fetch(ctx, recordPath(companyID, quarter))
}

// Latest implements Tier.
func (t *RemoteTier) Latest(ctx context.Context, companyID string) (*models.AnalysisRecord, error) {
	return t.fetch(ctx, recordPath(companyID, "latest"))
}

// HasKey implements Tier.
func (t *RemoteTier) HasKey(ctx context.Context, companyID, quarter string) (bool, error) {
	_, err := t.Get(ctx, companyID, quarter)
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	default:
		return false, err
	}
}

// Close implements Tier.
func (t *RemoteTier) Close() error { return nil }

func (t *RemoteTier) fetch(ctx context.Context, path string) (*models.AnalysisRecord, error) {
	var rec models.AnalysisRecord
	if err := t.client.Do(ctx, http.MethodGet, path, nil, &rec); err != nil {
		if upstream.StatusCode(err) == http.StatusNotFound {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func recordPath(companyID, last string) string {
	return "/api/analysis/" + url.PathEscape(companyID) + "/" + url.PathEscape(last)
}
