// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package models

import (
	"errors"
	"fmt"
)

// Error taxonomy. Clients wrap these so callers can branch with errors.Is.
var (
	// ErrUpstreamUnavailable covers network failures, non-2xx statuses and
	// malformed bodies from the similarity, industrial or LLM services.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrPreconditionFailed is returned before any network call when the
	// input cannot be processed (wrong match count, degenerate region).
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrPersistenceDegraded marks a durable-store failure. It is logged and
	// counted but never fails the user-visible operation.
	ErrPersistenceDegraded = errors.New("persistence degraded")

	// ErrRenderingFailure is a document generation failure after the LLM
	// content was already obtained.
	ErrRenderingFailure = errors.New("rendering failure")

	// ErrNotFound is returned by storage tiers for missing keys.
	ErrNotFound = errors.New("not found")
)

// UpstreamError carries the status and message of a failed upstream call.
// It matches ErrUpstreamUnavailable with errors.Is.
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
	Err        error
}

// Error implements error.
func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Message != "":
		return fmt.Sprintf("%s: upstream status %d: %s", e.Service, e.StatusCode, e.Message)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: upstream status %d", e.Service, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Service, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Service, e.Message)
	}
}

// Unwrap exposes both the taxonomy sentinel and the underlying cause.
func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstreamUnavailable}
	}
	return []error{ErrUpstreamUnavailable, e.Err}
}

// Precondition wraps a cause as ErrPreconditionFailed.
func Precondition(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrPreconditionFailed, fmt.Sprintf(format, args...))
}
