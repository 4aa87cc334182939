// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/terrascope/internal/api"
	"github.com/tomtom215/terrascope/internal/cache"
	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/industrial"
	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/models"
	"github.com/tomtom215/terrascope/internal/pipeline"
	"github.com/tomtom215/terrascope/internal/proxy"
	"github.com/tomtom215/terrascope/internal/report"
	"github.com/tomtom215/terrascope/internal/similarity"
	"github.com/tomtom215/terrascope/internal/storage"
	"github.com/tomtom215/terrascope/internal/websocket"
)

// readinessCompanyID is a company that never exists; reading it exercises
// every configured tier without writing.
const readinessCompanyID = "readiness-check"

// app holds the wired components the supervisor tree runs.
type app struct {
	store      *storage.Store
	records    *storage.Store
	hub        *websocket.Hub
	matchCache *pipeline.MatchCache
	router     http.Handler
}

// buildApp wires every component from cfg. On error nothing is left open.
func buildApp(ctx context.Context, cfg *config.Config) (a *app, err error) {
	store, err := storage.NewFromConfig(ctx, &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open analysis store: %w", err)
	}
	defer func() {
		if err != nil {
			store.Close()
		}
	}()

	// A remote durable tier points back at this process's persistence
	// routes, so only then do those routes read a separate file-backed
	// store. Every other backend serves them from the pipeline's store.
	records := store
	if cfg.Storage.DurableBackend == config.BackendRemote {
		resultsTier, terr := storage.NewFileTier(cfg.Storage.ResultsDir)
		if terr != nil {
			return nil, fmt.Errorf("open results directory: %w", terr)
		}
		records = storage.New(resultsTier, nil)
	}

	hub := websocket.NewHub()
	matchCache := cache.New[[]models.SimilarArea]("similarity", cfg.Cache.SimilarityTTL)

	orch := pipeline.New(
		similarity.New(&cfg.Similarity),
		industrial.New(&cfg.Industrial),
		store,
		pipeline.WithBroadcaster(hub),
		pipeline.WithCache(matchCache),
		pipeline.WithConcurrency(cfg.Similarity.MaxConcurrency),
		pipeline.WithSearchParams(similarity.ParamsFromConfig(&cfg.Similarity)),
	)

	renderer, err := report.NewHTMLRenderer(cfg.Report.ArtifactsDir)
	if err != nil {
		matchCache.Close()
		return nil, fmt.Errorf("open report artifacts directory: %w", err)
	}
	reports := report.NewService(
		report.NewGenerativeClient(&cfg.LLM),
		renderer,
		report.WithNotifier(hub),
		report.WithPreviewLength(cfg.Report.PreviewLength),
	)

	var llmProxy http.Handler
	if cfg.LLM.ProxyEnabled() {
		p, perr := proxy.NewFromConfig(ctx, &cfg.LLM)
		if perr != nil {
			matchCache.Close()
			return nil, fmt.Errorf("create LLM proxy: %w", perr)
		}
		llmProxy = p
	} else {
		logging.Warn().Msg("LLM_UPSTREAM_URL not set; /api/llm/generate will answer 503")
	}

	handler := api.NewHandler(api.Deps{
		Records:   records,
		Pipeline:  orch,
		Reports:   reports,
		Artifacts: renderer,
		LLMProxy:  llmProxy,
		WebSocket: websocket.ServeWS(hub, cfg.Server.CORSOrigins),
		Checks:    readinessChecks(store, records),
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Server)).SetupChi()

	return &app{
		store:      store,
		records:    records,
		hub:        hub,
		matchCache: matchCache,
		router:     router,
	}, nil
}

// separateRecords reports whether the persistence routes own a store that
// must be closed on its own.
func (a *app) separateRecords() bool { return a.records != a.store }

func readinessChecks(store, records *storage.Store) []api.ReadinessCheck {
	checks := []api.ReadinessCheck{{Name: "analysis_store", Check: storeReachable(store)}}
	if records != store {
		checks = append(checks, api.ReadinessCheck{Name: "persistence_store", Check: storeReachable(records)})
	}
	return checks
}

func storeReachable(s *storage.Store) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.GetStatus(ctx, readinessCompanyID)
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}
}
