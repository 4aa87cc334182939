// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

//go:build integration

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/testinfra"
)

func TestRedisTier_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx := context.Background()
	redisC, err := testinfra.NewRedisContainer(ctx)
	if err != nil {
		t.Fatalf("NewRedisContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, redisC)

	cfg := &config.StorageConfig{RedisAddr: redisC.Addr, DurableTimeout: 2 * time.Second}
	runTierSuite(t, func(t *testing.T) Tier {
		tier, err := NewRedisTier(ctx, cfg)
		if err != nil {
			t.Fatalf("NewRedisTier() error = %v", err)
		}
		if err := tier.client.FlushDB(ctx).Err(); err != nil {
			t.Fatalf("FlushDB() error = %v", err)
		}
		t.Cleanup(func() { tier.Close() })
		return tier
	})
}

func TestStore_RedisDurable_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx := context.Background()
	redisC, err := testinfra.NewRedisContainer(ctx)
	if err != nil {
		t.Fatalf("NewRedisContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, redisC)

	store, err := NewFromConfig(ctx, &config.StorageConfig{
		LocalBackend:   config.BackendBadger,
		DurableBackend: config.BackendRedis,
		RedisAddr:      redisC.Addr,
		DurableTimeout: 2 * time.Second,
	}, WithClock(fixedClock(feb15, time.Second)))
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	defer store.Close()

	saved, err := store.Save(ctx, "mock-0", testRecord("", "", 4), "")
	if err != nil {
		t.Fatal(err)
	}

	// A fresh local tier must still find the record in Redis.
	rt, err := NewRedisTier(ctx, &config.StorageConfig{RedisAddr: redisC.Addr, DurableTimeout: 2 * time.Second})
	if err != nil {
		t.Fatal(err)
	}
	fresh := New(NewMemoryTier(), rt, WithClock(fixedClock(feb15, 0)))
	defer fresh.Close()

	got, err := fresh.Get(ctx, "mock-0")
	if err != nil || got == nil {
		t.Fatalf("Get() = %v, %v", got, err)
	}
	if got.Quarter != saved.Quarter {
		t.Errorf("Get().Quarter = %s, want %s", got.Quarter, saved.Quarter)
	}
	status, err := fresh.GetStatus(ctx, "mock-0")
	if err != nil || status.Status != "analyzed" {
		t.Errorf("GetStatus() = %+v, %v", status, err)
	}
}
