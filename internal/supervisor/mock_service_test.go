// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package supervisor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// MockService is a controllable suture.Service for tree tests.
type MockService struct {
	name     string
	starts   atomic.Int32
	failures atomic.Int32

	mu       sync.Mutex
	maxFails int32
}

// NewMockService returns a service that blocks until its context ends.
func NewMockService(name string) *MockService {
	return &MockService{name: name}
}

// Serve implements suture.Service.
func (m *MockService) Serve(ctx context.Context) error {
	m.starts.Add(1)

	m.mu.Lock()
	maxFails := m.maxFails
	m.mu.Unlock()

	if maxFails > 0 && m.failures.Add(1) <= maxFails {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

// SetFailCount makes the next n calls to Serve fail immediately.
func (m *MockService) SetFailCount(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxFails = int32(n) //nolint:gosec // test helper with small counts
}

// StartCount returns how many times Serve was entered.
func (m *MockService) StartCount() int32 {
	return m.starts.Load()
}

func (m *MockService) String() string {
	return m.name
}
