// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package config

import "time"

// Config holds the complete application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Similarity SimilarityConfig `koanf:"similarity"`
	Industrial IndustrialConfig `koanf:"industrial"`
	LLM        LLMConfig        `koanf:"llm"`
	Storage    StorageConfig    `koanf:"storage"`
	Report     ReportConfig     `koanf:"report"`
	Cache      CacheConfig      `koanf:"cache"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`

	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig configures the global zerolog logger.
// Service is stamped on every line so logs from several deployments can
// share one sink.
type LoggingConfig struct {
	Level   string `koanf:"level"`
	Format  string `koanf:"format"`
	Caller  bool   `koanf:"caller"`
	Service string `koanf:"service"`
}

// UpstreamConfig holds the transport settings shared by the upstream clients.
// RateLimit is in requests per second; 0 disables limiting.
type UpstreamConfig struct {
	Name      string
	URL       string
	Timeout   time.Duration
	RateLimit float64
}

// SimilarityConfig configures the similarity-search client and the default
// search parameters sent with every query.
type SimilarityConfig struct {
	URL       string        `koanf:"url"`
	Timeout   time.Duration `koanf:"timeout"`
	RateLimit float64       `koanf:"rate_limit"`

	StartDate           string  `koanf:"start_date"`
	EndDate             string  `koanf:"end_date"`
	SearchRadiusKm      float64 `koanf:"search_radius_km"`
	SamplingResolutionM int     `koanf:"sampling_resolution_m"`
	MaxCandidates       int     `koanf:"max_candidates"`
	SimilarityThreshold float64 `koanf:"similarity_threshold"`

	WeightNDVI      float64 `koanf:"weight_ndvi"`
	WeightElevation float64 `koanf:"weight_elevation"`
	WeightSlope     float64 `koanf:"weight_slope"`
	WeightLandcover float64 `koanf:"weight_landcover"`

	// MaxConcurrency bounds the fan-out across operational areas; 0 means
	// one in-flight query per area.
	MaxConcurrency int `koanf:"max_concurrency"`
}

// IndustrialConfig configures the industrial-analysis client.
type IndustrialConfig struct {
	URL       string        `koanf:"url"`
	Timeout   time.Duration `koanf:"timeout"`
	RateLimit float64       `koanf:"rate_limit"`

	StartDate string `koanf:"start_date"`
	EndDate   string `koanf:"end_date"`

	VegetationLoss     float64 `koanf:"vegetation_loss"`
	DustLevel          float64 `koanf:"dust_level"`
	ThermalAnomaly     float64 `koanf:"thermal_anomaly"`
	SoilExposure       float64 `koanf:"soil_exposure"`
	NightLightIncrease float64 `koanf:"night_light_increase"`
}

// LLMConfig configures both sides of the LLM path: the report service's
// client (Endpoint, usually this server's own proxy route) and the proxy
// (UpstreamURL plus credentials).
type LLMConfig struct {
	Endpoint    string        `koanf:"endpoint"`
	UpstreamURL string        `koanf:"upstream_url"`
	Token       string        `koanf:"token"`
	Scopes      []string      `koanf:"scopes"`
	Timeout     time.Duration `koanf:"timeout"`

	Temperature     float64 `koanf:"temperature"`
	MaxOutputTokens int     `koanf:"max_output_tokens"`
	TopP            float64 `koanf:"top_p"`
	TopK            int     `koanf:"top_k"`
}

// Upstream returns the transport settings of the similarity client.
func (c *SimilarityConfig) Upstream() UpstreamConfig {
	return UpstreamConfig{Name: "similarity", URL: c.URL, Timeout: c.Timeout, RateLimit: c.RateLimit}
}

// Upstream returns the transport settings of the industrial client.
func (c *IndustrialConfig) Upstream() UpstreamConfig {
	return UpstreamConfig{Name: "industrial", URL: c.URL, Timeout: c.Timeout, RateLimit: c.RateLimit}
}

// Upstream returns the transport settings of the report service's LLM client.
func (c *LLMConfig) Upstream() UpstreamConfig {
	return UpstreamConfig{Name: "llm", URL: c.Endpoint, Timeout: c.Timeout}
}

// ProxyEnabled reports whether the LLM proxy route should be mounted.
func (c *LLMConfig) ProxyEnabled() bool {
	return c.UpstreamURL != ""
}

// RemoteUpstream returns the transport settings of the remote durable tier.
func (c *StorageConfig) RemoteUpstream() UpstreamConfig {
	return UpstreamConfig{Name: "persistence", URL: c.RemoteURL, Timeout: c.DurableTimeout}
}

// Storage backends.
const (
	BackendBadger = "badger"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRemote = "remote"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// StorageConfig selects the two analysis-record tiers.
//
// The local tier is fast and always written. The durable tier is a
// best-effort upgrade whose failures are logged, never returned.
// ResultsDir also backs the persistence endpoints served by this process.
type StorageConfig struct {
	LocalBackend string `koanf:"local_backend"`
	BadgerPath   string `koanf:"badger_path"`

	DurableBackend string        `koanf:"durable_backend"`
	DurableTimeout time.Duration `koanf:"durable_timeout"`
	RemoteURL      string        `koanf:"remote_url"`
	ResultsDir     string        `koanf:"results_dir"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

// ReportConfig configures report generation.
type ReportConfig struct {
	ArtifactsDir  string `koanf:"artifacts_dir"`
	PreviewLength int    `koanf:"preview_length"`
}

// CacheConfig configures in-process caches.
type CacheConfig struct {
	SimilarityTTL time.Duration `koanf:"similarity_ttl"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
