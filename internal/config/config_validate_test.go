// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"rate limit disabled skips checks", func(c *Config) {
			c.Server.RateLimitDisabled = true
			c.Server.RateLimitRequests = 0
		}, ""},
		{"rate limit requests", func(c *Config) { c.Server.RateLimitRequests = 0 }, "RATE_LIMIT_REQUESTS"},
		{"wildcard cors in production", func(c *Config) {
			c.Server.Environment = "production"
			c.Server.CORSOrigins = []string{"*"}
		}, "CORS_ORIGINS"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"similarity url scheme", func(c *Config) { c.Similarity.URL = "ftp://x/y" }, "SIMILARITY_API_URL"},
		{"similarity timeout too long", func(c *Config) { c.Similarity.Timeout = 10 * time.Minute }, "SIMILARITY_TIMEOUT"},
		{"similarity dates reversed", func(c *Config) {
			c.Similarity.StartDate = "2024-01-01"
			c.Similarity.EndDate = "2023-01-01"
		}, "SIMILARITY_END_DATE"},
		{"similarity weights", func(c *Config) { c.Similarity.WeightSlope = 0.3 }, "sum to 1.0"},
		{"similarity threshold", func(c *Config) { c.Similarity.SimilarityThreshold = 1.5 }, "SIMILARITY_THRESHOLD"},
		{"max candidates", func(c *Config) { c.Similarity.MaxCandidates = 2 }, "SIMILARITY_MAX_CANDIDATES"},
		{"industrial url missing", func(c *Config) { c.Industrial.URL = "" }, "INDUSTRIAL_API_URL"},
		{"industrial bad date", func(c *Config) { c.Industrial.StartDate = "2023/01/01" }, "INDUSTRIAL_START_DATE"},
		{"vegetation loss positive", func(c *Config) { c.Industrial.VegetationLoss = 0.2 }, "INDUSTRIAL_VEGETATION_LOSS"},
		{"llm upstream url", func(c *Config) { c.LLM.UpstreamURL = "not a url" }, "LLM_UPSTREAM_URL"},
		{"llm top p", func(c *Config) { c.LLM.TopP = 0 }, "LLM_TOP_P"},
		{"local backend", func(c *Config) { c.Storage.LocalBackend = "sqlite" }, "STORAGE_LOCAL_BACKEND"},
		{"durable backend", func(c *Config) { c.Storage.DurableBackend = "s3" }, "STORAGE_DURABLE_BACKEND"},
		{"remote without url", func(c *Config) { c.Storage.DurableBackend = BackendRemote }, "PERSISTENCE_SERVER_URL"},
		{"remote with path", func(c *Config) {
			c.Storage.DurableBackend = BackendRemote
			c.Storage.RemoteURL = "http://localhost:3001/api"
		}, "base URL only"},
		{"remote ok", func(c *Config) {
			c.Storage.DurableBackend = BackendRemote
			c.Storage.RemoteURL = "http://localhost:3001"
		}, ""},
		{"redis without addr", func(c *Config) {
			c.Storage.DurableBackend = BackendRedis
			c.Storage.RedisAddr = ""
		}, "REDIS_ADDR"},
		{"preview length", func(c *Config) { c.Report.PreviewLength = 0 }, "REPORT_PREVIEW_LENGTH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestUpstreamAccessors(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if u := cfg.Similarity.Upstream(); u.Name != "similarity" || u.URL != cfg.Similarity.URL {
		t.Errorf("Similarity.Upstream() = %+v", u)
	}
	if u := cfg.Industrial.Upstream(); u.Name != "industrial" || u.Timeout != cfg.Industrial.Timeout {
		t.Errorf("Industrial.Upstream() = %+v", u)
	}
	if cfg.LLM.ProxyEnabled() {
		t.Error("ProxyEnabled() = true without an upstream URL")
	}
}
