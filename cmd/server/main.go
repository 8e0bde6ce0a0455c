// Spacesd - Tecnico Campus Spaces Directory Mirror
// Copyright 2026 Tecnico Spaces contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tecnicospaces/spacesd

// Package main is the entry point for the spacesd server.
//
// Spacesd mirrors the Tecnico campus space directory: it periodically walks
// the upstream Fenix spaces API, normalizes every space (location parsing,
// error corrections, always-open flags, map links), and serves the result
// from an in-memory snapshot so clients never pay the cost of the slow
// upstream walk. Per-space schedules are fetched on demand and transformed
// to a calendar-friendly shape.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered sources (defaults, YAML file, env)
//  2. Upstream client: Fenix API client with optional circuit breaker
//  3. Directory pipeline: enricher, fetcher, builder, snapshot cache
//  4. Initial rebuild: synchronous warm-up when CACHE_REBUILD_ON_START=true
//  5. Scheduler: cron-driven rebuilds (default daily at 03:00)
//  6. HTTP Server: Chi router with rate limiting, CORS, and Prometheus
//
// Both long-running components run under a suture supervision tree so a
// crash in the scheduler never takes down the read path.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (FENIX_BASE_URL, HTTP_PORT, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits for in-flight requests (10s timeout),
// and stops the rebuild scheduler.
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

	"github.com/tecnicospaces/spacesd/internal/api"
	"github.com/tecnicospaces/spacesd/internal/config"
	"github.com/tecnicospaces/spacesd/internal/directory"
	"github.com/tecnicospaces/spacesd/internal/fenix"
	"github.com/tecnicospaces/spacesd/internal/logging"
	"github.com/tecnicospaces/spacesd/internal/scheduler"
	"github.com/tecnicospaces/spacesd/internal/supervisor"
	"github.com/tecnicospaces/spacesd/internal/supervisor/services"
)

const initialRebuildTimeout = 30 * time.Minute

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("upstream", cfg.Fenix.BaseURL).
		Str("rebuild_schedule", cfg.Cache.RebuildSchedule).
		Msg("Starting spacesd")

	// Directory pipeline over the upstream client.
	client := fenix.NewClientFromConfig(&cfg.Fenix)
	enricher := directory.NewEnricher(&cfg.Directory)
	fetcher := directory.NewFetcher(client, enricher)
	builder := directory.NewBuilder(client, fetcher)
	cache := directory.NewSnapshotCache()
	service := directory.NewService(builder, cache)
	schedules := directory.NewScheduleFetcher(client)

	// Warm the cache before serving. A failed warm-up is not fatal; the
	// API serves 503 until the first scheduled rebuild succeeds.
	if cfg.Cache.RebuildOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), initialRebuildTimeout)
		if err := service.RebuildNow(ctx); err != nil {
			logging.Error().Err(err).Msg("Initial rebuild failed, serving without snapshot")
		}
		cancel()
	}

	handler := api.NewHandler(service, schedules)
	router := api.NewRouter(handler, &cfg.Security)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("failed to build supervisor tree: %w", err)
	}

	tree.AddWorkerService(services.NewSchedulerService(scheduler.New(service, cfg.Cache.RebuildSchedule)))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Serving")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree failed: %w", err)
	}

	logging.Info().Msg("Shutdown complete")
	return nil
}
