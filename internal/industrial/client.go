// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package industrial

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/models"
	"github.com/tomtom215/terrascope/internal/upstream"
)

// ErrInsufficientMatches is returned when a request does not carry exactly
// RequiredMatches matches. It wraps models.ErrPreconditionFailed.
var ErrInsufficientMatches = fmt.Errorf("%w: industrial analysis needs exactly %d matches", models.ErrPreconditionFailed, RequiredMatches)

// Job is the input for one operational area.
type Job struct {
	Area    models.OperationalArea
	Matches []models.SimilarArea
	// Names overrides DefaultRectangleNames when it has four entries.
	Names []string
}

// AreaError identifies the area whose request aborted a batch.
type AreaError struct {
	AreaID   string
	AreaName string
	Index    int
	Err      error
}

// Error implements error.
func (e *AreaError) Error() string {
	return fmt.Sprintf("industrial analysis for area %q (%d): %v", e.AreaName, e.Index, e.Err)
}

// Unwrap returns the cause.
func (e *AreaError) Unwrap() error { return e.Err }

// Analyzer is what the pipeline needs from an industrial client.
type Analyzer interface {
	RunBatch(ctx context.Context, jobs []Job) (models.BatchAnalysisResult, error)
}

// Client calls the industrial-analysis endpoint.
type Client struct {
	up         *upstream.Client
	dates      DateRange
	thresholds Thresholds
	now        func() time.Time
}

// New creates a client using the configured date range and thresholds.
func New(cfg *config.IndustrialConfig, opts ...upstream.Option) *Client {
	return &Client{
		up:         upstream.New(cfg.Upstream(), opts...),
		dates:      DateRangeFromConfig(cfg),
		thresholds: ThresholdsFromConfig(cfg),
		now:        time.Now,
	}
}

// RunIndustrialAnalysis sends one request for area and its matches. It
// refuses, before any network I/O, unless len(matches) == RequiredMatches
// and every box is usable. names defaults to DefaultRectangleNames.
func (c *Client) RunIndustrialAnalysis(ctx context.Context, area models.OperationalArea, matches []models.SimilarArea, dates DateRange, thresholds Thresholds, names ...string) (*models.IndustrialResponse, error) {
	req, err := buildRequest(area, matches, dates, thresholds, names)
	if err != nil {
		return nil, err
	}

	var resp models.IndustrialResponse
	if err := c.up.PostJSON(ctx, req, &resp); err != nil {
		return nil, err
	}
	resp.AreaNames = req.RectangleNames
	if resp.TimeSeries == nil {
		logging.Ctx(ctx).Warn().Str("area_id", area.ID).Msg("Industrial response has no time_series")
	}
	return &resp, nil
}

func buildRequest(area models.OperationalArea, matches []models.SimilarArea, dates DateRange, thresholds Thresholds, names []string) (*analysisRequest, error) {
	if len(matches) != RequiredMatches {
		return nil, fmt.Errorf("%w: area %q has %d", ErrInsufficientMatches, area.Name, len(matches))
	}
	if len(names) == 0 {
		names = DefaultRectangleNames(area.Name)
	}
	if len(names) != RequiredMatches+1 {
		return nil, models.Precondition("need %d rectangle names, got %d", RequiredMatches+1, len(names))
	}

	rects := make([][4]float64, 0, RequiredMatches+1)
	areaBox := area.BBox.Normalize()
	if err := areaBox.Validate(); err != nil {
		return nil, fmt.Errorf("%w: area %q: %w", models.ErrPreconditionFailed, area.Name, err)
	}
	rects = append(rects, areaBox.Array())
	for i, m := range matches {
		box := m.BBox.Normalize()
		if err := box.Validate(); err != nil {
			return nil, fmt.Errorf("%w: match %d of area %q: %w", models.ErrPreconditionFailed, i+1, area.Name, err)
		}
		rects = append(rects, box.Array())
	}

	return &analysisRequest{
		Rectangles:         rects,
		RectangleNames:     append([]string(nil), names...),
		StartDate:          dates.Start,
		EndDate:            dates.End,
		TemporalResolution: TemporalResolution,
		Thresholds:         thresholds,
	}, nil
}

// RunBatch issues one request per job, in order, awaiting each before the
// next. All preconditions are checked first so a bad job fails the batch
// without any network call. The first request failure aborts the batch.
func (c *Client) RunBatch(ctx context.Context, jobs []Job) (models.BatchAnalysisResult, error) {
	if len(jobs) == 0 {
		return models.BatchAnalysisResult{}, models.Precondition("no operational areas to analyse")
	}
	for i, job := range jobs {
		if _, err := buildRequest(job.Area, job.Matches, c.dates, c.thresholds, job.Names); err != nil {
			return models.BatchAnalysisResult{}, &AreaError{AreaID: job.Area.ID, AreaName: job.Area.Name, Index: i, Err: err}
		}
	}

	log := logging.Ctx(ctx)
	responses := make([]models.IndustrialResponse, 0, len(jobs))
	for i, job := range jobs {
		resp, err := c.RunIndustrialAnalysis(ctx, job.Area, job.Matches, c.dates, c.thresholds, job.Names...)
		if err != nil {
			log.Warn().Err(err).Str("area_id", job.Area.ID).Int("index", i).Msg("Industrial analysis aborted")
			return models.BatchAnalysisResult{}, &AreaError{AreaID: job.Area.ID, AreaName: job.Area.Name, Index: i, Err: err}
		}
		responses = append(responses, *resp)
	}

	return Combine(responses, c.now()), nil
}

// Combine folds per-area responses into one batch result.
func Combine(responses []models.IndustrialResponse, now time.Time) models.BatchAnalysisResult {
	result := models.BatchAnalysisResult{
		Status:    "success",
		Timestamp: now.UTC(),
		Results:   make([]models.IndustrialResponse, 0, len(responses)),
	}
	for _, r := range responses {
		result.Results = append(result.Results, r)
		result.Summary.TotalAreasAnalyzed += r.Summary.TotalAreasAnalyzed
		result.Summary.TotalPeriods += r.Summary.TotalPeriods
		result.Summary.TotalAnomalies += r.AnomalySummary.TotalAnomalies
	}
	result.Summary.TotalRequests = len(responses)
	return result
}

// IsPrecondition reports whether err is a precondition refusal rather than
// an upstream failure.
func IsPrecondition(err error) bool {
	return errors.Is(err, models.ErrPreconditionFailed)
}
