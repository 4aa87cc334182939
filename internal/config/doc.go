// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

// Package config loads Terrascope configuration with koanf.
//
// Sources are layered, later ones overriding earlier ones:
//
//  1. built-in defaults (defaultConfig)
//  2. an optional YAML file: $CONFIG_PATH, ./config.yaml or /etc/terrascope/config.yaml
//  3. environment variables, mapped explicitly in envMappings
//
// Example config.yaml:
//
//	server:
//	  port: 3857
//	similarity:
//	  url: https://similarity.example.com/api/v1/similarity/search
//	  timeout: 45s
//	industrial:
//	  url: https://industrial.example.com/api/v1/industrial/analyze
//	storage:
//	  local_backend: badger
//	  badger_path: /data/badger
//	  durable_backend: file
//	  results_dir: /data/analysis-results
//	llm:
//	  upstream_url: https://us-central1-aiplatform.googleapis.com/v1/projects/p/locations/us-central1/publishers/google/models/gemini-1.5-pro:generateContent
//
// Environment examples: SIMILARITY_API_URL, INDUSTRIAL_API_URL,
// STORAGE_DURABLE_BACKEND, PERSISTENCE_SERVER_URL, REDIS_ADDR,
// LLM_UPSTREAM_URL, LLM_API_TOKEN, LOG_LEVEL, HTTP_PORT.
//
// Upstream timeouts default to 45s (similarity) and 60s (industrial, LLM);
// Validate keeps every upstream timeout within 1s..5m.
package config
