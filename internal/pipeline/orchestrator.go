// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/terrascope/internal/cache"
	"github.com/tomtom215/terrascope/internal/industrial"
	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/metrics"
	"github.com/tomtom215/terrascope/internal/models"
	"github.com/tomtom215/terrascope/internal/similarity"
	"github.com/tomtom215/terrascope/internal/storage"
	"github.com/tomtom215/terrascope/internal/taskgroup"
	"github.com/tomtom215/terrascope/internal/transform"
	"github.com/tomtom215/terrascope/internal/websocket"
)

// RecordStore is the part of storage.Store the pipeline uses.
type RecordStore interface {
	Save(ctx context.Context, companyID string, rec *models.AnalysisRecord, quarter string) (*models.AnalysisRecord, error)
	GetStatus(ctx context.Context, companyID string) (*models.StatusReport, error)
}

// Broadcaster receives progress events. Implemented by websocket.Hub.
type Broadcaster interface {
	BroadcastSimilarityProgress(data websocket.SimilarityProgressData)
	BroadcastAnalysisEvent(messageType string, data websocket.AnalysisEventData)
}

// MatchCache caches similarity results by search key.
type MatchCache = cache.Cache[[]models.SimilarArea]

// Orchestrator wires the clients, the transformer and the store.
type Orchestrator struct {
	searcher similarity.Searcher
	analyzer industrial.Analyzer
	store    RecordStore
	cache    *MatchCache
	hub      Broadcaster
	params   similarity.SearchParams
	limit    int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithCache enables similarity result caching.
func WithCache(c *MatchCache) Option {
	return func(o *Orchestrator) { o.cache = c }
}

// WithBroadcaster sends progress events to b.
func WithBroadcaster(b Broadcaster) Option {
	return func(o *Orchestrator) { o.hub = b }
}

// WithSearchParams replaces DefaultSearchParams.
func WithSearchParams(p similarity.SearchParams) Option {
	return func(o *Orchestrator) { o.params = p }
}

// WithConcurrency caps in-flight similarity searches. 0 means one per area.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) { o.limit = n }
}

// New creates an orchestrator.
func New(searcher similarity.Searcher, analyzer industrial.Analyzer, store RecordStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		searcher: searcher,
		analyzer: analyzer,
		store:    store,
		params:   similarity.DefaultSearchParams(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AreaMatches is the search outcome of one operational area.
type AreaMatches struct {
	AreaID   string               `json:"areaId"`
	AreaName string               `json:"areaName"`
	Matches  []models.SimilarArea `json:"matches"`
	Cached   bool                 `json:"cached"`
	Error    string               `json:"error,omitempty"`
}

// MatchResult is the outcome of a fan-out. Areas are in request order.
type MatchResult struct {
	CorrelationID string        `json:"correlationId"`
	Areas         []AreaMatches `json:"areas"`
	Done          int           `json:"done"`
	Total         int           `json:"total"`
	Succeeded     int           `json:"succeeded"`
	AnySucceeded  bool          `json:"anySucceeded"`
}

type searchOutcome struct {
	matches []models.SimilarArea
	cached  bool
}

// FindMatches searches for the reference areas of every area concurrently.
// Each area keeps at most industrial.RequiredMatches matches, best first.
//
// Failed areas are reported in the result. An error is returned only when
// no search succeeded; the result is still populated in that case.
func (o *Orchestrator) FindMatches(ctx context.Context, areas []models.OperationalArea) (*MatchResult, error) {
	if len(areas) == 0 {
		return nil, models.Precondition("at least one operational area is required")
	}
	ctx = ensureCorrelationID(ctx)
	correlationID := logging.CorrelationIDFromContext(ctx)
	log := logging.Ctx(ctx)

	group := taskgroup.New[searchOutcome](ctx, "similarity",
		taskgroup.WithLimit(o.limit),
		taskgroup.WithTotal(len(areas)),
		taskgroup.WithProgress(func(p taskgroup.Progress) {
			if o.hub == nil {
				return
			}
			data := websocket.SimilarityProgressData{
				CorrelationID: correlationID,
				AreaID:        areas[p.Index].ID,
				Done:          p.Done,
				Total:         p.Total,
				Succeeded:     p.Succeeded,
				AnySucceeded:  p.Succeeded > 0,
			}
			if p.Err != nil {
				data.Error = p.Err.Error()
			}
			o.hub.BroadcastSimilarityProgress(data)
		}),
	)

	for _, area := range areas {
		area := area
		group.Go(func(ctx context.Context) (searchOutcome, error) {
			return o.search(ctx, area)
		})
	}
	results := group.Wait()

	out := &MatchResult{
		CorrelationID: correlationID,
		Areas:         make([]AreaMatches, len(results)),
		Done:          group.Done(),
		Total:         group.Total(),
		Succeeded:     group.Succeeded(),
		AnySucceeded:  group.AnySucceeded(),
	}
	for i, r := range results {
		am := AreaMatches{AreaID: areas[i].ID, AreaName: areas[i].Name, Matches: []models.SimilarArea{}}
		if r.Err != nil {
			am.Error = r.Err.Error()
		} else {
			am.Matches = r.Value.matches
			am.Cached = r.Value.cached
		}
		out.Areas[i] = am
	}

	log.Info().
		Int("areas", out.Total).
		Int("succeeded", out.Succeeded).
		Msg("Similarity fan-out completed")

	if !out.AnySucceeded {
		return out, fmt.Errorf("no similarity search succeeded: %w", errors.Join(taskgroup.Errors(results)...))
	}
	return out, nil
}

func (o *Orchestrator) search(ctx context.Context, area models.OperationalArea) (searchOutcome, error) {
	key := o.params.CacheKey(area.BBox.Normalize())
	if o.cache != nil {
		if cached, ok := o.cache.Get(key); ok {
			return searchOutcome{matches: forArea(cached, area.ID), cached: true}, nil
		}
	}

	matches, err := o.searcher.FindSimilarAreas(ctx, area, o.params)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("area_id", area.ID).Msg("Similarity search failed")
		return searchOutcome{}, err
	}
	if len(matches) > industrial.RequiredMatches {
		matches = matches[:industrial.RequiredMatches]
	}
	if o.cache != nil {
		o.cache.Set(key, forArea(matches, area.ID))
	}
	return searchOutcome{matches: matches}, nil
}

// forArea copies matches and points them at areaID. Two areas drawn over
// the same box share a cache entry but not a reference.
func forArea(matches []models.SimilarArea, areaID string) []models.SimilarArea {
	out := make([]models.SimilarArea, len(matches))
	copy(out, matches)
	for i := range out {
		out[i].ReferenceAreaID = areaID
	}
	return out
}

// AreaInput is one operational area with the matches chosen for it.
type AreaInput struct {
	Area    models.OperationalArea `json:"area" validate:"required"`
	Matches []models.SimilarArea   `json:"matches"`
	// Names overrides the default rectangle names.
	Names []string `json:"names,omitempty"`
}

// AnalysisRequest starts one analysis run. Quarter defaults to the current
// quarter.
type AnalysisRequest struct {
	CompanyID string      `json:"companyId"`
	Quarter   string      `json:"quarter,omitempty"`
	Areas     []AreaInput `json:"areas"`
}

// AnalysisOutcome is the saved record together with the full metric set.
type AnalysisOutcome struct {
	Record  *models.AnalysisRecord  `json:"record"`
	Metrics []models.AnalysisMetric `json:"metrics"`
	Status  *models.StatusReport    `json:"status,omitempty"`
}

// PerformAnalysis runs the industrial analysis for every area, derives the
// metrics and saves the record. Every area must carry exactly
// industrial.RequiredMatches matches; otherwise nothing is sent upstream.
func (o *Orchestrator) PerformAnalysis(ctx context.Context, req AnalysisRequest) (out *AnalysisOutcome, err error) {
	if err := storage.ValidateCompanyID(req.CompanyID); err != nil {
		return nil, err
	}
	if req.Quarter != "" {
		if _, err := storage.ParseQuarter(req.Quarter); err != nil {
			return nil, err
		}
	}
	if len(req.Areas) == 0 {
		return nil, models.Precondition("at least one operational area is required")
	}

	ctx = ensureCorrelationID(ctx)
	correlationID := logging.CorrelationIDFromContext(ctx)
	log := logging.Ctx(ctx).With().Str("company_id", req.CompanyID).Logger()
	start := time.Now()

	o.broadcast(websocket.MessageTypeAnalysisStarted, websocket.AnalysisEventData{
		CorrelationID: correlationID,
		CompanyID:     req.CompanyID,
		Quarter:       req.Quarter,
	})
	defer func() {
		metrics.RecordPipelineRun(time.Since(start), err)
		if err != nil {
			log.Warn().Err(err).Msg("Analysis failed")
			o.broadcast(websocket.MessageTypeAnalysisFailed, websocket.AnalysisEventData{
				CorrelationID: correlationID,
				CompanyID:     req.CompanyID,
				Quarter:       req.Quarter,
				DurationMs:    time.Since(start).Milliseconds(),
				Error:         err.Error(),
			})
		}
	}()

	jobs := make([]industrial.Job, len(req.Areas))
	redAreas := make([]models.OperationalArea, len(req.Areas))
	greenAreas := make([]models.SimilarArea, 0, len(req.Areas)*industrial.RequiredMatches)
	for i, in := range req.Areas {
		area := in.Area
		if area.CompanyID == "" {
			area.CompanyID = req.CompanyID
		}
		jobs[i] = industrial.Job{Area: area, Matches: in.Matches, Names: in.Names}
		redAreas[i] = area
		for _, m := range in.Matches {
			if m.ReferenceAreaID == "" {
				m.ReferenceAreaID = area.ID
			}
			greenAreas = append(greenAreas, m)
		}
	}

	batch, err := o.analyzer.RunBatch(ctx, jobs)
	if err != nil {
		return nil, err
	}

	chart := transform.Transform(batch)
	record := &models.AnalysisRecord{
		Metrics: transform.Summarize(chart),
		EnvironmentalData: models.EnvironmentalData{
			RedAreas:          redAreas,
			GreenAreas:        greenAreas,
			BatchAnalysisData: &batch,
		},
	}

	saved, err := o.store.Save(ctx, req.CompanyID, record, req.Quarter)
	if err != nil {
		return nil, err
	}

	out = &AnalysisOutcome{Record: saved, Metrics: chart}
	status, statusErr := o.store.GetStatus(ctx, req.CompanyID)
	if statusErr != nil {
		log.Warn().Err(statusErr).Msg("Status lookup after save failed")
	} else {
		out.Status = status
	}

	event := websocket.AnalysisEventData{
		CorrelationID: correlationID,
		CompanyID:     req.CompanyID,
		Quarter:       saved.Quarter,
		DurationMs:    time.Since(start).Milliseconds(),
	}
	if status != nil {
		event.Status = string(status.Status)
	}
	o.broadcast(websocket.MessageTypeAnalysisCompleted, event)

	log.Info().
		Str("quarter", saved.Quarter).
		Int("areas", len(req.Areas)).
		Int("metrics", len(chart)).
		Dur("duration", time.Since(start)).
		Msg("Analysis completed")
	return out, nil
}

// Status reports whether the company has been analysed this quarter.
func (o *Orchestrator) Status(ctx context.Context, companyID string) (*models.StatusReport, error) {
	return o.store.GetStatus(ctx, companyID)
}

func (o *Orchestrator) broadcast(messageType string, data websocket.AnalysisEventData) {
	if o.hub != nil {
		o.hub.BroadcastAnalysisEvent(messageType, data)
	}
}

func ensureCorrelationID(ctx context.Context) context.Context {
	if logging.CorrelationIDFromContext(ctx) != "" {
		return ctx
	}
	return logging.ContextWithNewCorrelationID(ctx)
}
