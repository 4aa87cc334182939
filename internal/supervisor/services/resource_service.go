// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/tomtom215/terrascope/internal/logging"
)

// ResourceService ties the lifetime of a closable resource (a record store,
// a badger handle) to the supervisor tree. Serve blocks until the tree stops
// and then closes the resource exactly once, even if suture restarts it.
type ResourceService struct {
	name     string
	resource io.Closer
	once     sync.Once
	closeErr error
}

// NewResourceService wraps resource under name.
func NewResourceService(name string, resource io.Closer) *ResourceService {
	return &ResourceService{name: name, resource: resource}
}

// Serve implements suture.Service.
func (r *ResourceService) Serve(ctx context.Context) error {
	<-ctx.Done()
	if err := r.Close(); err != nil {
		return err
	}
	return ctx.Err()
}

// Close releases the resource. Later calls return the first result.
func (r *ResourceService) Close() error {
	r.once.Do(func() {
		if err := r.resource.Close(); err != nil {
			r.closeErr = fmt.Errorf("close %s: %w", r.name, err)
			logging.Err(err).Str("resource", r.name).Msg("Failed to close resource")
			return
		}
		logging.Debug().Str("resource", r.name).Msg("Resource closed")
	})
	return r.closeErr
}

func (r *ResourceService) String() string {
	return r.name
}
