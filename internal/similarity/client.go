// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package similarity

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/geo"
	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/models"
	"github.com/tomtom215/terrascope/internal/upstream"
)

const statusSuccess = "success"

// FetchError is a failed similarity search. It carries the upstream status
// and message and matches models.ErrUpstreamUnavailable.
type FetchError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements error.
func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("similarity search failed (status %d): %s", e.StatusCode, e.Message)
	}
	return "similarity search failed: " + e.Message
}

// Unwrap exposes the taxonomy sentinel and the cause.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{models.ErrUpstreamUnavailable}
	}
	return []error{models.ErrUpstreamUnavailable, e.Err}
}

// searchResponse is the wire shape of a search reply. TopMatches is a
// pointer so a missing list is told apart from an empty one.
type searchResponse struct {
	Status              string           `json:"status"`
	Timestamp           string           `json:"timestamp"`
	Config              json.RawMessage  `json:"config"`
	Reference           json.RawMessage  `json:"reference"`
	CandidatesGenerated int              `json:"candidates_generated"`
	TopMatches          *[]matchResponse `json:"top_matches"`
	Message             string           `json:"message"`
}

type matchResponse struct {
	Rank       int             `json:"rank"`
	Index      json.RawMessage `json:"index"`
	Position   json.RawMessage `json:"position"`
	Similarity float64         `json:"similarity"`
	BBox       json.RawMessage `json:"bbox"`
	Features   models.Features `json:"features"`
}

// Searcher is what the pipeline needs from a similarity client.
type Searcher interface {
	FindSimilarAreas(ctx context.Context, area models.OperationalArea, params SearchParams) ([]models.SimilarArea, error)
}

// Client queries the similarity-search endpoint.
type Client struct {
	up *upstream.Client
}

// New creates a client for the configured endpoint.
func New(cfg *config.SimilarityConfig, opts ...upstream.Option) *Client {
	return &Client{up: upstream.New(cfg.Upstream(), opts...)}
}

// FindSimilarAreas returns the ranked matches for area, rank 1 first. Each
// match is annotated with the queried area's ID and its centroid distance.
func (c *Client) FindSimilarAreas(ctx context.Context, area models.OperationalArea, params SearchParams) ([]models.SimilarArea, error) {
	bbox := area.BBox.Normalize()
	if err := bbox.Validate(); err != nil {
		return nil, fmt.Errorf("%w: area %q: %w", models.ErrPreconditionFailed, area.Name, err)
	}
	if err := params.Validate(); err != nil {
		return nil, models.Precondition("similarity search: %v", err)
	}

	var resp searchResponse
	err := c.up.Do(ctx, http.MethodGet, "?"+params.Query(bbox).Encode(), nil, &resp)
	if err != nil {
		var ue *models.UpstreamError
		if errors.As(err, &ue) {
			msg := ue.Message
			if msg == "" && ue.Err != nil {
				msg = ue.Err.Error()
			}
			return nil, &FetchError{StatusCode: ue.StatusCode, Message: msg, Err: err}
		}
		return nil, &FetchError{Message: err.Error(), Err: err}
	}

	if resp.Status != statusSuccess {
		msg := resp.Message
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %q", resp.Status)
		}
		return nil, &FetchError{StatusCode: http.StatusOK, Message: msg}
	}
	if resp.TopMatches == nil {
		return nil, &FetchError{StatusCode: http.StatusOK, Message: "response has no top_matches"}
	}

	matches := make([]models.SimilarArea, 0, len(*resp.TopMatches))
	for i, m := range *resp.TopMatches {
		matchBox, err := decodeBBox(m.BBox)
		if err != nil {
			return nil, &FetchError{StatusCode: http.StatusOK, Message: fmt.Sprintf("match %d: %v", i, err), Err: err}
		}
		matches = append(matches, models.SimilarArea{
			Rank:            m.Rank,
			Index:           opaqueID(m.Index),
			Position:        opaqueID(m.Position),
			Similarity:      m.Similarity,
			BBox:            matchBox,
			Features:        m.Features,
			ReferenceAreaID: area.ID,
			DistanceKm:      geo.CentroidDistanceKm(bbox, matchBox),
		})
	}

	logging.Ctx(ctx).Debug().
		Str("area_id", area.ID).
		Int("candidates", resp.CandidatesGenerated).
		Int("matches", len(matches)).
		Msg("Similarity search completed")

	return matches, nil
}

// decodeBBox accepts either [minLon, minLat, maxLon, maxLat] or an object
// with minLon/minLat/maxLon/maxLat fields.
func decodeBBox(raw json.RawMessage) (geo.BoundingBox, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return geo.BoundingBox{}, fmt.Errorf("%w: missing bbox", geo.ErrMalformedBBox)
	}
	if raw[0] == '[' {
		var vals []float64
		if err := json.Unmarshal(raw, &vals); err != nil {
			return geo.BoundingBox{}, fmt.Errorf("%w: %v", geo.ErrMalformedBBox, err)
		}
		return geo.FromSlice(vals)
	}
	var b geo.BoundingBox
	if err := json.Unmarshal(raw, &b); err != nil {
		return geo.BoundingBox{}, fmt.Errorf("%w: %v", geo.ErrMalformedBBox, err)
	}
	return b.Normalize(), nil
}

// opaqueID renders an upstream identifier of any JSON type as a string.
func opaqueID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		if s, err := strconv.Unquote(string(raw)); err == nil {
			return s
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err == nil {
		return compact.String()
	}
	return string(raw)
}
