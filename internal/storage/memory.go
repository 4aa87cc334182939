// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package storage

import (
	"context"
	"sync"

	"github.com/tomtom215/terrascope/internal/models"
)

// MemoryTier keeps records in process memory. Records are deep-copied
// through JSON so callers cannot mutate stored state.
type MemoryTier struct {
	mu      sync.RWMutex
	records map[string][]byte
	latest  map[string]string
}

// NewMemoryTier creates an empty tier.
func NewMemoryTier() *MemoryTier {
	return &MemoryTier{
		records: make(map[string][]byte),
		latest:  make(map[string]string),
	}
}

// Name implements Tier.
func (t *MemoryTier) Name() string { return "memory" }

// Put implements Tier.
func (t *MemoryTier) Put(_ context.Context, companyID, quarter string, rec *models.AnalysisRecord) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records[recordKey(companyID, quarter)] = data
	t.latest[companyID] = quarter
	return nil
}

// Get implements Tier.
func (t *MemoryTier) Get(_ context.Context, companyID, quarter string) (*models.AnalysisRecord, error) {
	t.mu.RLock()
	data, ok := t.records[recordKey(companyID, quarter)]
	t.mu.RUnlock()
	if !ok {
		return nil, models.ErrNotFound
	}
	return decodeRecord(data)
}

// Latest implements Tier.
func (t *MemoryTier) Latest(ctx context.Context, companyID string) (*models.AnalysisRecord, error) {
	t.mu.RLock()
	quarter, ok := t.latest[companyID]
	t.mu.RUnlock()
	if !ok {
		return nil, models.ErrNotFound
	}
	return t.Get(ctx, companyID, quarter)
}

// HasKey implements Tier.
func (t *MemoryTier) HasKey(_ context.Context, companyID, quarter string) (bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.records[recordKey(companyID, quarter)]
	return ok, nil
}

// Close implements Tier.
func (t *MemoryTier) Close() error { return nil }
