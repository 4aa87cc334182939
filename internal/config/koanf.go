// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/terrascope/config.yaml",
	"/etc/terrascope/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              3857,
			Host:              "0.0.0.0",
			Timeout:           90 * time.Second,
			ShutdownTimeout:   15 * time.Second,
			Environment:       "development",
			CORSOrigins:       []string{"http://localhost:5173", "http://localhost:3000"},
			RateLimitRequests: 120,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "json",
			Service: "terrascope",
		},
		Similarity: SimilarityConfig{
			URL:                 "http://localhost:8000/api/v1/similarity/search",
			Timeout:             45 * time.Second,
			StartDate:           "2023-01-01",
			EndDate:             "2023-12-31",
			SearchRadiusKm:      50,
			SamplingResolutionM: 100,
			MaxCandidates:       200,
			SimilarityThreshold: 0.7,
			WeightNDVI:          0.4,
			WeightElevation:     0.2,
			WeightSlope:         0.2,
			WeightLandcover:     0.2,
		},
		Industrial: IndustrialConfig{
			URL:                "http://localhost:8001/api/v1/industrial/analyze",
			Timeout:            60 * time.Second,
			StartDate:          "2023-01-01",
			EndDate:            "2024-12-31",
			VegetationLoss:     -0.2,
			DustLevel:          0.3,
			ThermalAnomaly:     2.0,
			SoilExposure:       0.15,
			NightLightIncrease: 0.25,
		},
		LLM: LLMConfig{
			Endpoint:        "http://127.0.0.1:3857/api/llm/generate",
			Scopes:          []string{"https://www.googleapis.com/auth/cloud-platform"},
			Timeout:         60 * time.Second,
			Temperature:     0.4,
			MaxOutputTokens: 8192,
			TopP:            0.95,
			TopK:            40,
		},
		Storage: StorageConfig{
			LocalBackend:   BackendBadger,
			DurableBackend: BackendFile,
			DurableTimeout: 10 * time.Second,
			ResultsDir:     "analysis-results",
			RedisAddr:      "localhost:6379",
		},
		Report: ReportConfig{
			ArtifactsDir:  "reports",
			PreviewLength: 280,
		},
		Cache: CacheConfig{
			SimilarityTTL: 30 * time.Minute,
		},
	}
}

// LoadWithKoanf layers defaults, the config file and environment variables
// (highest priority) and returns the validated result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are keys that may arrive from the environment as
// comma-separated strings.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"llm.scopes",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(path, out); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unmapped variables are ignored so unrelated environment does not leak
// into the configuration.
var envMappings = map[string]string{
	"http_port":           "server.port",
	"http_host":           "server.host",
	"http_timeout":        "server.timeout",
	"shutdown_timeout":    "server.shutdown_timeout",
	"environment":         "server.environment",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	"log_level":   "logging.level",
	"log_format":  "logging.format",
	"log_caller":  "logging.caller",
	"log_service": "logging.service",

	"similarity_api_url":              "similarity.url",
	"similarity_timeout":              "similarity.timeout",
	"similarity_rate_limit":           "similarity.rate_limit",
	"similarity_start_date":           "similarity.start_date",
	"similarity_end_date":             "similarity.end_date",
	"similarity_search_radius_km":     "similarity.search_radius_km",
	"similarity_sampling_resolution":  "similarity.sampling_resolution_m",
	"similarity_max_candidates":       "similarity.max_candidates",
	"similarity_threshold":            "similarity.similarity_threshold",
	"similarity_weight_ndvi":          "similarity.weight_ndvi",
	"similarity_weight_elevation":     "similarity.weight_elevation",
	"similarity_weight_slope":         "similarity.weight_slope",
	"similarity_weight_landcover":     "similarity.weight_landcover",
	"similarity_max_concurrency":      "similarity.max_concurrency",
	"industrial_api_url":              "industrial.url",
	"industrial_timeout":              "industrial.timeout",
	"industrial_rate_limit":           "industrial.rate_limit",
	"industrial_start_date":           "industrial.start_date",
	"industrial_end_date":             "industrial.end_date",
	"industrial_vegetation_loss":      "industrial.vegetation_loss",
	"industrial_dust_level":           "industrial.dust_level",
	"industrial_thermal_anomaly":      "industrial.thermal_anomaly",
	"industrial_soil_exposure":        "industrial.soil_exposure",
	"industrial_night_light_increase": "industrial.night_light_increase",

	"llm_endpoint":          "llm.endpoint",
	"llm_upstream_url":      "llm.upstream_url",
	"llm_api_token":         "llm.token",
	"llm_scopes":            "llm.scopes",
	"llm_timeout":           "llm.timeout",
	"llm_temperature":       "llm.temperature",
	"llm_max_output_tokens": "llm.max_output_tokens",
	"llm_top_p":             "llm.top_p",
	"llm_top_k":             "llm.top_k",

	"storage_local_backend":   "storage.local_backend",
	"badger_path":             "storage.badger_path",
	"storage_durable_backend": "storage.durable_backend",
	"storage_durable_timeout": "storage.durable_timeout",
	"persistence_server_url":  "storage.remote_url",
	"analysis_results_dir":    "storage.results_dir",
	"redis_addr":              "storage.redis_addr",
	"redis_password":          "storage.redis_password",
	"redis_db":                "storage.redis_db",

	"report_artifacts_dir":  "report.artifacts_dir",
	"report_preview_length": "report.preview_length",

	"similarity_cache_ttl": "cache.similarity_ttl",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
