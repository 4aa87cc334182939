// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tomtom215/terrascope/internal/models"
)

// latestFileName is the per-company pointer to the last written quarter.
// It never parses as a quarter, so it cannot collide with a record file.
const latestFileName = "latest.json"

// FileTier stores one JSON document per record:
//
//	<root>/<companyId>/<quarter>.json
//	<root>/<companyId>/latest.json   {"quarter": "2024-Q1"}
//
// Files are written to a temporary name and renamed into place, so readers
// never observe a partial record.
type FileTier struct {
	root string
	mu   sync.Mutex
}

type latestPointer struct {
	Quarter string `json:"quarter"`
}

// NewFileTier creates the root directory if needed.
func NewFileTier(root string) (*FileTier, error) {
	if root == "" {
		return nil, errors.New("file tier: results directory is required")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create results directory: %w", err)
	}
	return &FileTier{root: root}, nil
}

// Name implements Tier.
func (t *FileTier) Name() string { return "file" }

// Root returns the results directory.
func (t *FileTier) Root() string { return t.root }

// Put implements Tier.
func (t *FileTier) Put(_ context.Context, companyID, quarter string, rec *models.AnalysisRecord) error {
	dir, err := t.companyDir(companyID)
	if err != nil {
		return err
	}
	if _, err := ParseQuarter(quarter); err != nil {
		return err
	}
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	pointer, err := json.Marshal(latestPointer{Quarter: quarter})
	if err != nil {
		return fmt.Errorf("marshal latest pointer: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create company directory: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, quarter+".json"), data); err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(dir, latestFileName), pointer)
}

// Get implements Tier.
func (t *FileTier) Get(_ context.Context, companyID, quarter string) (*models.AnalysisRecord, error) {
	dir, err := t.companyDir(companyID)
	if err != nil {
		return nil, err
	}
	if _, err := ParseQuarter(quarter); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, quarter+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	return decodeRecord(data)
}

// Latest follows the pointer file. Directories populated without one (for
// example copied in by hand) fall back to the newest quarter on disk.
func (t *FileTier) Latest(ctx context.Context, companyID string) (*models.AnalysisRecord, error) {
	dir, err := t.companyDir(companyID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, latestFileName))
	switch {
	case err == nil:
		var p latestPointer
		if err := json.Unmarshal(data, &p); err == nil && p.Quarter != "" {
			return t.Get(ctx, companyID, p.Quarter)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read latest pointer: %w", err)
	}

	quarter, err := newestQuarterIn(dir)
	if err != nil {
		return nil, err
	}
	return t.Get(ctx, companyID, quarter)
}

// HasKey implements Tier.
func (t *FileTier) HasKey(_ context.Context, companyID, quarter string) (bool, error) {
	dir, err := t.companyDir(companyID)
	if err != nil {
		return false, err
	}
	if _, err := ParseQuarter(quarter); err != nil {
		return false, err
	}
	_, err = os.Stat(filepath.Join(dir, quarter+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// Close implements Tier.
func (t *FileTier) Close() error { return nil }

func (t *FileTier) companyDir(companyID string) (string, error) {
	if err := ValidateCompanyID(companyID); err != nil {
		return "", err
	}
	return filepath.Join(t.root, companyID), nil
}

func newestQuarterIn(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", models.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("list records: %w", err)
	}

	var newest *Quarter
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		q, err := ParseQuarter(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		if newest == nil || newest.Before(q) {
			newest = &q
		}
	}
	if newest == nil {
		return "", models.ErrNotFound
	}
	return newest.String(), nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
