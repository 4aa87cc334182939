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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/terrascope/internal/config"
	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/supervisor"
	"github.com/tomtom215/terrascope/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Terrascope exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.FromConfig(cfg.Logging))
	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("local_backend", cfg.Storage.LocalBackend).
		Str("durable_backend", cfg.Storage.DurableBackend).
		Bool("llm_proxy", cfg.LLM.ProxyEnabled()).
		Msg("Starting Terrascope")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.matchCache.Close()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// No WriteTimeout: websocket connections and LLM generations outlive it.
		IdleTimeout: 60 * time.Second,
	}

	tree.AddStorageService(services.NewResourceService("analysis-store", app.store))
	if app.separateRecords() {
		tree.AddStorageService(services.NewResourceService("persistence-store", app.records))
	}
	tree.AddMessagingService(services.NewWebSocketHubService(app.hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("Services added to supervisor tree")

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, stopping supervisor tree")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree stopped")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Terrascope stopped")
	return nil
}
