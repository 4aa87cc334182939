// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/metrics"
	"github.com/tomtom215/terrascope/internal/models"
)

// Store is the two-tier analysis store. durable may be nil.
type Store struct {
	local   Tier
	durable Tier
	clock   Clock

	locksMu sync.Mutex
	locks   map[string]*keyLock
}

// keyLock serializes writers of one (company, quarter) key.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces the wall clock used for the current quarter and
// record timestamps.
func WithClock(c Clock) StoreOption {
	return func(s *Store) { s.clock = c }
}

// New creates a store over the given tiers.
func New(local, durable Tier, opts ...StoreOption) *Store {
	s := &Store{
		local:   local,
		durable: durable,
		clock:   time.Now,
		locks:   make(map[string]*keyLock),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig opens the tiers selected in cfg.
func NewFromConfig(ctx context.Context, cfg *config.StorageConfig, opts ...StoreOption) (*Store, error) {
	var local Tier
	switch cfg.LocalBackend {
	case config.BackendMemory:
		local = NewMemoryTier()
	case config.BackendBadger, "":
		db, err := OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, err
		}
		local = NewBadgerTier(db)
	default:
		return nil, fmt.Errorf("unknown local storage backend %q", cfg.LocalBackend)
	}

	var durable Tier
	switch cfg.DurableBackend {
	case config.BackendNone:
	case config.BackendFile, "":
		ft, err := NewFileTier(cfg.ResultsDir)
		if err != nil {
			local.Close()
			return nil, err
		}
		durable = ft
	case config.BackendRemote:
		durable = NewRemoteTier(cfg)
	case config.BackendRedis:
		rt, err := NewRedisTier(ctx, cfg)
		if err != nil {
			local.Close()
			return nil, err
		}
		durable = rt
	default:
		local.Close()
		return nil, fmt.Errorf("unknown durable storage backend %q", cfg.DurableBackend)
	}

	logging.Info().
		Str("local", local.Name()).
		Str("durable", tierName(durable)).
		Msg("Analysis store ready")
	return New(local, durable, opts...), nil
}

// CurrentQuarter returns the quarter of the store's clock.
func (s *Store) CurrentQuarter() string {
	return CurrentQuarter(s.clock())
}

// Save stores rec for companyID under quarter (the current quarter when
// empty) and returns the enriched copy. A previous record for the same key
// is replaced entirely.
//
// Only a local tier failure is returned. A durable tier failure is logged
// and counted as degraded persistence.
func (s *Store) Save(ctx context.Context, companyID string, rec *models.AnalysisRecord, quarter string) (*models.AnalysisRecord, error) {
	if err := ValidateCompanyID(companyID); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.Precondition("record is required")
	}
	if quarter == "" {
		quarter = s.CurrentQuarter()
	}
	if _, err := ParseQuarter(quarter); err != nil {
		return nil, err
	}

	enriched := *rec
	enriched.CompanyID = companyID
	enriched.Quarter = quarter
	enriched.Timestamp = s.clock().UTC()

	unlock := s.lockKey(recordKey(companyID, quarter))
	defer unlock()

	if err := s.observe(s.local, "put", func() error {
		return s.local.Put(ctx, companyID, quarter, &enriched)
	}); err != nil {
		return nil, fmt.Errorf("save %s/%s to %s tier: %w", companyID, quarter, s.local.Name(), err)
	}

	if s.durable != nil {
		if err := s.observe(s.durable, "put", func() error {
			return s.durable.Put(ctx, companyID, quarter, &enriched)
		}); err != nil {
			s.degraded(ctx, "put", companyID, err)
		}
	}

	logging.Ctx(ctx).Info().
		Str("company_id", companyID).
		Str("quarter", quarter).
		Msg("Analysis record saved")
	return &enriched, nil
}

// Get returns the most recently written record of companyID, or nil when
// none exists. When both tiers hold a record the later timestamp wins, with
// ties going to the local tier, so a save whose durable write failed is
// still visible.
func (s *Store) Get(ctx context.Context, companyID string) (*models.AnalysisRecord, error) {
	if err := ValidateCompanyID(companyID); err != nil {
		return nil, err
	}
	return s.read(ctx, companyID, "latest", func(t Tier) (*models.AnalysisRecord, error) {
		return t.Latest(ctx, companyID)
	})
}

// GetQuarter returns the record for one quarter, or nil.
func (s *Store) GetQuarter(ctx context.Context, companyID, quarter string) (*models.AnalysisRecord, error) {
	if err := ValidateCompanyID(companyID); err != nil {
		return nil, err
	}
	if _, err := ParseQuarter(quarter); err != nil {
		return nil, err
	}
	return s.read(ctx, companyID, "get", func(t Tier) (*models.AnalysisRecord, error) {
		return t.Get(ctx, companyID, quarter)
	})
}

// HasQuarterData reports whether a record exists for the quarter in
// either tier.
func (s *Store) HasQuarterData(ctx context.Context, companyID, quarter string) (bool, error) {
	if err := ValidateCompanyID(companyID); err != nil {
		return false, err
	}
	if _, err := ParseQuarter(quarter); err != nil {
		return false, err
	}

	var found bool
	err := s.observe(s.local, "has", func() error {
		var err error
		found, err = s.local.HasKey(ctx, companyID, quarter)
		return err
	})
	if err != nil {
		return false, err
	}
	if found || s.durable == nil {
		return found, nil
	}

	err = s.observe(s.durable, "has", func() error {
		var err error
		found, err = s.durable.HasKey(ctx, companyID, quarter)
		return err
	})
	if err != nil {
		s.degraded(ctx, "has", companyID, err)
		return false, nil
	}
	return found, nil
}

// GetStatus classifies a company as not analyzed, analyzed this quarter,
// or due for a new quarter.
func (s *Store) GetStatus(ctx context.Context, companyID string) (*models.StatusReport, error) {
	rec, err := s.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	report := &models.StatusReport{
		CompanyID:      companyID,
		Status:         models.StatusNotAnalyzed,
		CurrentQuarter: s.CurrentQuarter(),
	}
	if rec == nil {
		return report, nil
	}
	report.LatestQuarter = rec.Quarter
	if rec.Quarter == report.CurrentQuarter {
		report.Status = models.StatusAnalyzed
	} else {
		report.Status = models.StatusNewQuarter
	}
	return report, nil
}

// Close closes both tiers.
func (s *Store) Close() error {
	var errs []error
	if err := s.local.Close(); err != nil {
		errs = append(errs, err)
	}
	if s.durable != nil {
		if err := s.durable.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Store) read(ctx context.Context, companyID, op string, fn func(Tier) (*models.AnalysisRecord, error)) (*models.AnalysisRecord, error) {
	var durableRec *models.AnalysisRecord
	if s.durable != nil {
		err := s.observe(s.durable, op, func() error {
			var err error
			durableRec, err = fn(s.durable)
			return err
		})
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			s.degraded(ctx, op, companyID, err)
			durableRec = nil
		}
	}

	var localRec *models.AnalysisRecord
	err := s.observe(s.local, op, func() error {
		var err error
		localRec, err = fn(s.local)
		return err
	})
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		if durableRec != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("company_id", companyID).Msg("Local tier read failed, using durable record")
			return durableRec, nil
		}
		return nil, fmt.Errorf("read %s from %s tier: %w", companyID, s.local.Name(), err)
	}

	switch {
	case durableRec == nil:
		return localRec, nil
	case localRec == nil:
		return durableRec, nil
	case !localRec.Timestamp.Before(durableRec.Timestamp):
		return localRec, nil
	default:
		return durableRec, nil
	}
}

// observe times fn and records its outcome. A missing key is a "miss",
// not an error.
func (s *Store) observe(t Tier, op string, fn func() error) error {
	start := time.Now()
	err := fn()
	result := "success"
	switch {
	case errors.Is(err, models.ErrNotFound):
		result = "miss"
	case err != nil:
		result = "error"
	}
	metrics.RecordStorageOperation(t.Name(), op, result, time.Since(start))
	return err
}

func (s *Store) degraded(ctx context.Context, op, companyID string, err error) {
	metrics.RecordPersistenceDegraded()
	logging.Ctx(ctx).Warn().
		Err(fmt.Errorf("%w: %w", models.ErrPersistenceDegraded, err)).
		Str("tier", s.durable.Name()).
		Str("operation", op).
		Str("company_id", companyID).
		Msg("Durable tier unavailable, continuing with local tier")
}

func (s *Store) lockKey(key string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &keyLock{}
		s.locks[key] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.locksMu.Unlock()
	}
}

func tierName(t Tier) string {
	if t == nil {
		return config.BackendNone
	}
	return t.Name()
}
