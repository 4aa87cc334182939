// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateSimilarity,
		c.validateIndustrial,
		c.validateLLM,
		c.validateStorage,
		c.validateReport,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitRequests < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.Server.RateLimitWindow < time.Second {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
		}
	}
	if c.IsProduction() {
		for _, o := range c.Server.CORSOrigins {
			if o == "*" {
				return errors.New("CORS_ORIGINS must not contain '*' in production")
			}
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, disabled; got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console; got %q", c.Logging.Format)
	}
	return nil
}

// validateTimeout enforces the 1s..5m window for upstream calls.
func validateTimeout(d time.Duration, field string) error {
	if d < time.Second || d > 5*time.Minute {
		return fmt.Errorf("%s must be between 1s and 5m, got %s", field, d)
	}
	return nil
}

func validateDateRange(start, end, prefix string) error {
	s, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return fmt.Errorf("%s_START_DATE must be YYYY-MM-DD: %w", prefix, err)
	}
	e, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return fmt.Errorf("%s_END_DATE must be YYYY-MM-DD: %w", prefix, err)
	}
	if e.Before(s) {
		return fmt.Errorf("%s_END_DATE %s is before %s_START_DATE %s", prefix, end, prefix, start)
	}
	return nil
}

func (c *Config) validateSimilarity() error {
	s := &c.Similarity
	if _, err := validateEndpointURL(s.URL, "SIMILARITY_API_URL"); err != nil {
		return err
	}
	if err := validateTimeout(s.Timeout, "SIMILARITY_TIMEOUT"); err != nil {
		return err
	}
	if err := validateDateRange(s.StartDate, s.EndDate, "SIMILARITY"); err != nil {
		return err
	}
	if s.SearchRadiusKm <= 0 {
		return fmt.Errorf("SIMILARITY_SEARCH_RADIUS_KM must be positive")
	}
	if s.SamplingResolutionM <= 0 {
		return fmt.Errorf("SIMILARITY_SAMPLING_RESOLUTION must be positive")
	}
	if s.MaxCandidates < 3 {
		return fmt.Errorf("SIMILARITY_MAX_CANDIDATES must be at least 3")
	}
	if s.SimilarityThreshold < 0 || s.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be within [0, 1]")
	}
	sum := s.WeightNDVI + s.WeightElevation + s.WeightSlope + s.WeightLandcover
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("similarity weights must sum to 1.0, got %.4f", sum)
	}
	if s.MaxConcurrency < 0 {
		return fmt.Errorf("SIMILARITY_MAX_CONCURRENCY must not be negative")
	}
	return nil
}

func (c *Config) validateIndustrial() error {
	in := &c.Industrial
	if _, err := validateEndpointURL(in.URL, "INDUSTRIAL_API_URL"); err != nil {
		return err
	}
	if err := validateTimeout(in.Timeout, "INDUSTRIAL_TIMEOUT"); err != nil {
		return err
	}
	if err := validateDateRange(in.StartDate, in.EndDate, "INDUSTRIAL"); err != nil {
		return err
	}
	if in.VegetationLoss >= 0 {
		return fmt.Errorf("INDUSTRIAL_VEGETATION_LOSS must be negative (an NDVI drop), got %g", in.VegetationLoss)
	}
	return nil
}

func (c *Config) validateLLM() error {
	l := &c.LLM
	if _, err := validateEndpointURL(l.Endpoint, "LLM_ENDPOINT"); err != nil {
		return err
	}
	if l.UpstreamURL != "" {
		if _, err := validateEndpointURL(l.UpstreamURL, "LLM_UPSTREAM_URL"); err != nil {
			return err
		}
	}
	if err := validateTimeout(l.Timeout, "LLM_TIMEOUT"); err != nil {
		return err
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be within [0, 2]")
	}
	if l.MaxOutputTokens < 1 {
		return fmt.Errorf("LLM_MAX_OUTPUT_TOKENS must be positive")
	}
	if l.TopP <= 0 || l.TopP > 1 {
		return fmt.Errorf("LLM_TOP_P must be within (0, 1]")
	}
	if l.TopK < 1 {
		return fmt.Errorf("LLM_TOP_K must be positive")
	}
	return nil
}

func (c *Config) validateStorage() error {
	st := &c.Storage
	switch st.LocalBackend {
	case BackendBadger, BackendMemory:
	default:
		return fmt.Errorf("STORAGE_LOCAL_BACKEND must be badger or memory, got %q", st.LocalBackend)
	}
	if st.ResultsDir == "" {
		return fmt.Errorf("ANALYSIS_RESULTS_DIR is required")
	}
	switch st.DurableBackend {
	case BackendNone, BackendFile:
	case BackendRemote:
		if err := validateHTTPURL(st.RemoteURL, "PERSISTENCE_SERVER_URL"); err != nil {
			return err
		}
	case BackendRedis:
		if st.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when STORAGE_DURABLE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("STORAGE_DURABLE_BACKEND must be none, file, remote or redis, got %q", st.DurableBackend)
	}
	if st.DurableBackend != BackendNone && st.DurableTimeout <= 0 {
		return fmt.Errorf("STORAGE_DURABLE_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateReport() error {
	if c.Report.ArtifactsDir == "" {
		return fmt.Errorf("REPORT_ARTIFACTS_DIR is required")
	}
	if c.Report.PreviewLength < 1 {
		return fmt.Errorf("REPORT_PREVIEW_LENGTH must be positive")
	}
	return nil
}
