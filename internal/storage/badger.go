// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/models"
)

// BadgerTier stores records in an embedded BadgerDB.
//
// Keys:
//
//	analysis:<company>:<quarter> -> record JSON
//	latest:<company>             -> quarter of the last write
type BadgerTier struct {
	db *badger.DB
}

// OpenBadger opens a BadgerDB at path. An empty path opens an in-memory
// database, which tests and the memory-only development mode use.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = badgerLogger{log: logging.WithComponent("badger")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return db, nil
}

// NewBadgerTier wraps an open database. The tier owns db and closes it.
func NewBadgerTier(db *badger.DB) *BadgerTier {
	return &BadgerTier{db: db}
}

// Name implements Tier.
func (t *BadgerTier) Name() string { return "badger" }

// Put stores rec and moves the latest pointer in one transaction.
func (t *BadgerTier) Put(_ context.Context, companyID, quarter string, rec *models.AnalysisRecord) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	return t.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(recordKey(companyID, quarter)), data); err != nil {
			return fmt.Errorf("set record: %w", err)
		}
		if err := txn.Set([]byte(latestKey(companyID)), []byte(quarter)); err != nil {
			return fmt.Errorf("set latest pointer: %w", err)
		}
		return nil
	})
}

// Get implements Tier.
func (t *BadgerTier) Get(_ context.Context, companyID, quarter string) (*models.AnalysisRecord, error) {
	var rec models.AnalysisRecord
	err := t.db.View(func(txn *badger.Txn) error {
		return readRecord(txn, recordKey(companyID, quarter), &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Latest implements Tier.
func (t *BadgerTier) Latest(_ context.Context, companyID string) (*models.AnalysisRecord, error) {
	var rec models.AnalysisRecord
	err := t.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(latestKey(companyID)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get latest pointer: %w", err)
		}
		quarter, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read latest pointer: %w", err)
		}
		return readRecord(txn, recordKey(companyID, string(quarter)), &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// HasKey implements Tier.
func (t *BadgerTier) HasKey(_ context.Context, companyID, quarter string) (bool, error) {
	found := false
	err := t.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(recordKey(companyID, quarter)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// Close closes the database.
func (t *BadgerTier) Close() error {
	return t.db.Close()
}

func readRecord(txn *badger.Txn, key string, rec *models.AnalysisRecord) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, rec)
	})
}

// badgerLogger routes badger's internal logging through zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(strings.TrimSpace(format), args...)
}
