// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

// Package testinfra provides test doubles and containers shared by the
// package tests.
//
// # Mock upstreams
//
// MockUpstream is an httptest server that records every request and answers
// from per-path handlers. The canned payload builders produce responses in
// the shape of the similarity and industrial-analysis services:
//
//	sim := testinfra.NewMockUpstream(t)
//	sim.HandleJSON("/", http.StatusOK, testinfra.SimilarityPayload(bbox, 3))
//
//	ind := testinfra.NewMockUpstream(t)
//	ind.Handle("/", testinfra.IndustrialHandler("2024-Q1", "2024-Q2"))
//
// # Containers
//
// Integration tests (build tag "integration") start real services with
// testcontainers-go:
//
//	func TestRedisTier(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    redis, err := testinfra.NewRedisContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, redis)
//	    // use redis.Addr
//	}
//
// Run them with:
//
//	go test -tags integration ./...
package testinfra
