// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

/*
Command server runs the Terrascope backend.

A user draws operational areas on the map. The server finds terrain that
looks like each area, pulls quarterly industrial indicators for the areas and
their matches, stores the transformed result per company and quarter, and
turns it into an HTML report written by a generative model.

# Process Tree

	terrascope
	├── storage-layer
	│   ├── analysis-store     (local badger/memory + durable file/remote/redis)
	│   └── persistence-store  (file tier behind /api/analysis)
	├── messaging-layer
	│   └── websocket-hub      (progress events)
	└── api-layer
	    └── http-server        (chi router)

# Configuration

Defaults, then an optional YAML file (CONFIG_PATH or ./config.yaml), then
environment variables. The most used variables:

	HTTP_PORT=3857
	LOG_LEVEL=info
	LOG_FORMAT=json
	SIMILARITY_API_URL=https://similarity.example/search
	INDUSTRIAL_API_URL=https://industrial.example/analyze
	LLM_UPSTREAM_URL=https://...:generateContent   # enables /api/llm/generate
	STORAGE_LOCAL_BACKEND=badger                   # badger or memory
	STORAGE_DURABLE_BACKEND=file                   # file, remote, redis or none
	ANALYSIS_RESULTS_DIR=analysis-results

SIGINT and SIGTERM stop the tree. Each service gets SHUTDOWN_TIMEOUT to drain.
*/
package main
