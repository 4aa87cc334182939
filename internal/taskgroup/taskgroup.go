// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package taskgroup

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/terrascope/internal/metrics"
)

// Result is the outcome of one task. Index is the submission position.
type Result[T any] struct {
	Index int
	Value T
	Err   error
}

// Progress is reported once per settled task. Done is strictly increasing
// across callbacks.
type Progress struct {
	Index     int   `json:"index"`
	Done      int   `json:"done"`
	Total     int   `json:"total"`
	Succeeded int   `json:"succeeded"`
	Err       error `json:"-"`
}

// Option configures a Group.
type Option func(*options)

type options struct {
	limit    int
	total    int
	progress func(Progress)
}

// WithLimit caps the number of tasks running at once. Go blocks while the
// cap is reached.
func WithLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

// WithTotal declares how many tasks will be submitted. With WithLimit, Go
// blocks before later tasks are known, so progress reports need the
// expected count to keep Total fixed from the first callback.
func WithTotal(n int) Option {
	return func(o *options) { o.total = n }
}

// WithProgress registers a callback invoked after each task settles.
// Callbacks are serialized.
func WithProgress(fn func(Progress)) Option {
	return func(o *options) { o.progress = fn }
}

// Group runs tasks returning T. The zero value is not usable; call New.
type Group[T any] struct {
	name     string
	ctx      context.Context
	eg       errgroup.Group
	progress func(Progress)
	expected int

	cbMu      sync.Mutex
	mu        sync.Mutex
	results   []Result[T]
	done      int
	succeeded int
}

// New creates a group. ctx is passed to every task; name labels metrics.
func New[T any](ctx context.Context, name string, opts ...Option) *Group[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	g := &Group[T]{name: name, ctx: ctx, progress: o.progress, expected: o.total}
	if o.limit > 0 {
		g.eg.SetLimit(o.limit)
	}
	return g
}

// Go submits a task. A panicking task settles with an error.
func (g *Group[T]) Go(fn func(ctx context.Context) (T, error)) {
	g.mu.Lock()
	idx := len(g.results)
	g.results = append(g.results, Result[T]{Index: idx})
	g.mu.Unlock()

	g.eg.Go(func() error {
		v, err := run(g.ctx, fn)
		g.settle(idx, v, err)
		return nil
	})
}

func run[T any](ctx context.Context, fn func(context.Context) (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn(ctx)
}

func (g *Group[T]) settle(idx int, v T, err error) {
	metrics.RecordTask(g.name, err)

	g.cbMu.Lock()
	defer g.cbMu.Unlock()

	g.mu.Lock()
	g.results[idx] = Result[T]{Index: idx, Value: v, Err: err}
	g.done++
	if err == nil {
		g.succeeded++
	}
	p := Progress{Index: idx, Done: g.done, Total: g.totalLocked(), Succeeded: g.succeeded, Err: err}
	g.mu.Unlock()

	if g.progress != nil {
		g.progress(p)
	}
}

// totalLocked must be called with mu held.
func (g *Group[T]) totalLocked() int {
	return max(g.expected, len(g.results))
}

// Wait blocks until every submitted task settled and returns the results
// in submission order.
func (g *Group[T]) Wait() []Result[T] {
	_ = g.eg.Wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Result[T], len(g.results))
	copy(out, g.results)
	return out
}

// Done returns the number of settled tasks.
func (g *Group[T]) Done() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.done
}

// Total returns the number of tasks, counting those declared with
// WithTotal that were not submitted yet.
func (g *Group[T]) Total() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.totalLocked()
}

// Succeeded returns the number of tasks that settled without error.
func (g *Group[T]) Succeeded() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.succeeded
}

// AnySucceeded reports whether at least one task settled without error.
func (g *Group[T]) AnySucceeded() bool {
	return g.Succeeded() > 0
}

// Errors returns the errors of failed tasks in submission order. Call it
// after Wait.
func Errors[T any](results []Result[T]) []error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}
