// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

// Package storage keeps one analysis record per (company, quarter).
//
// Records live in two tiers:
//
//   - The local tier (Badger by default, or memory) is fast and must accept
//     every write. A failed local write fails Save.
//   - The durable tier (the persistence server's JSON files, a remote
//     persistence server, or Redis) is a best-effort upgrade. A failed
//     durable write is logged as models.ErrPersistenceDegraded and counted,
//     and Save still returns the enriched record.
//
// Reads consult both tiers and return the most recently written record by
// arrival order. An unreachable durable tier is never an error to the
// caller.
//
// # Quarters
//
// Quarters are labelled "YYYY-Qn" with n = ceil(month/3), computed from the
// store's clock:
//
//	storage.CurrentQuarter(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)) // "2024-Q1"
//
// # Usage
//
//	store, err := storage.NewFromConfig(ctx, &cfg.Storage)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	rec, err := store.Save(ctx, "mock-0", record, "")
//	status, err := store.GetStatus(ctx, "mock-0") // models.StatusAnalyzed
//
// Writes for the same key are serialized within one process. Concurrent
// writers in different processes are last-write-wins.
package storage
