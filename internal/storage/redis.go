// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/models"
)

// RedisTier stores records in Redis using the same key layout as
// BadgerTier. Records do not expire.
type RedisTier struct {
	client *redis.Client
}

// NewRedisTier connects to the configured server and pings it.
func NewRedisTier(ctx context.Context, cfg *config.StorageConfig) (*RedisTier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  cfg.DurableTimeout,
		ReadTimeout:  cfg.DurableTimeout,
		WriteTimeout: cfg.DurableTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	return &RedisTier{client: client}, nil
}

// NewRedisTierFromClient wraps an existing client. The tier owns client.
func NewRedisTierFromClient(client *redis.Client) *RedisTier {
	return &RedisTier{client: client}
}

// Name implements Tier.
func (t *RedisTier) Name() string { return "redis" }

// Put writes the record and the latest pointer in one MULTI/EXEC.
func (t *RedisTier) Put(ctx context.Context, companyID, quarter string, rec *models.AnalysisRecord) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	_, err = t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, recordKey(companyID, quarter), data, 0)
		pipe.Set(ctx, latestKey(companyID), quarter, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put: %w", err)
	}
	return nil
}

// Get implements Tier.
func (t *RedisTier) Get(ctx context.Context, companyID, quarter string) (*models.AnalysisRecord, error) {
	data, err := t.client.Get(ctx, recordKey(companyID, quarter)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return decodeRecord(data)
}

// Latest implements Tier.
func (t *RedisTier) Latest(ctx context.Context, companyID string) (*models.AnalysisRecord, error) {
	quarter, err := t.client.Get(ctx, latestKey(companyID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get latest pointer: %w", err)
	}
	return t.Get(ctx, companyID, quarter)
}

// HasKey implements Tier.
func (t *RedisTier) HasKey(ctx context.Context, companyID, quarter string) (bool, error) {
	n, err := t.client.Exists(ctx, recordKey(companyID, quarter)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// Close implements Tier.
func (t *RedisTier) Close() error {
	return t.client.Close()
}
