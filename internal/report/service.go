// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package report

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/metrics"
	"github.com/tomtom215/terrascope/internal/models"
	"github.com/tomtom215/terrascope/internal/websocket"
)

// StatusCompleted is the only status a returned handle carries.
const StatusCompleted = "completed"

// DefaultPreviewLength is the preview size in characters.
const DefaultPreviewLength = 280

// Handle describes a generated report.
type Handle struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	Variant      Variant   `json:"variant"`
	Preview      string    `json:"preview"`
	ArtifactName string    `json:"artifactName"`
	ArtifactPath string    `json:"-"`
	Sections     []Section `json:"sections"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Notifier receives a report_completed message. Implemented by websocket.Hub.
type Notifier interface {
	BroadcastJSON(messageType string, data interface{})
}

// Service generates reports.
type Service struct {
	llm        LLMClient
	renderer   Renderer
	notifier   Notifier
	previewLen int
	now        func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPreviewLength sets the preview size; non-positive values keep the default.
func WithPreviewLength(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.previewLen = n
		}
	}
}

// WithNotifier announces completed reports.
func WithNotifier(n Notifier) ServiceOption {
	return func(s *Service) { s.notifier = n }
}

// WithNow overrides the clock.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a report service.
func NewService(llm LLMClient, renderer Renderer, opts ...ServiceOption) *Service {
	s := &Service{llm: llm, renderer: renderer, previewLen: DefaultPreviewLength, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate builds the prompt, calls the model once and renders the result.
// Nothing is retried.
func (s *Service) Generate(ctx context.Context, company models.Company, opAreas []models.OperationalArea, similar []models.SimilarArea, opts Options) (h *Handle, err error) {
	opts, err = opts.normalize()
	if err != nil {
		return nil, err
	}
	if company.Name == "" {
		return nil, models.Precondition("company name is required")
	}
	if len(opAreas) == 0 {
		return nil, models.Precondition("at least one operational area is required")
	}

	start := time.Now()
	log := logging.Ctx(ctx).With().
		Str("company_id", company.ID).
		Str("variant", string(opts.Variant)).
		Logger()
	defer func() {
		metrics.RecordReportGeneration(string(opts.Variant), time.Since(start), err)
		if err != nil {
			log.Warn().Err(err).Msg("Report generation failed")
		}
	}()

	text, err := s.llm.Generate(ctx, BuildPrompt(company, opAreas, similar, opts))
	if err != nil {
		return nil, err
	}

	doc := Document{
		ID:        uuid.New().String(),
		Company:   company,
		Variant:   opts.Variant,
		Sections:  SplitSections(text),
		CreatedAt: s.now().UTC(),
	}
	artifact, err := s.renderer.Render(ctx, doc)
	if err != nil {
		return nil, err
	}

	h = &Handle{
		ID:           doc.ID,
		Status:       StatusCompleted,
		Variant:      opts.Variant,
		Preview:      preview(text, s.previewLen),
		ArtifactName: artifact.Name,
		ArtifactPath: artifact.Path,
		Sections:     doc.Sections,
		CreatedAt:    doc.CreatedAt,
	}
	if s.notifier != nil {
		s.notifier.BroadcastJSON(websocket.MessageTypeReportCompleted, map[string]string{
			"id":           h.ID,
			"company_id":   company.ID,
			"artifactName": h.ArtifactName,
		})
	}

	log.Info().
		Str("report_id", h.ID).
		Int("sections", len(h.Sections)).
		Int64("bytes", artifact.Size).
		Dur("duration", time.Since(start)).
		Msg("Report generated")
	return h, nil
}

// preview returns the first n characters of the trimmed text.
func preview(text string, n int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n])
}
