// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Reignline HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the dataset store (YAML/JSON file, or PostgreSQL after migrations).
//  4. Open the scene cache (Redis, or in-process when REDIS_URL is empty).
//  5. Wire metrics, the timeline service and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/reignline/internal/api"
	"github.com/taibuivan/reignline/internal/core/timeline"
	"github.com/taibuivan/reignline/internal/platform/config"
	"github.com/taibuivan/reignline/internal/platform/constants"
	"github.com/taibuivan/reignline/internal/platform/metrics"
	"github.com/taibuivan/reignline/internal/platform/migration"
	pgstore "github.com/taibuivan/reignline/internal/platform/postgres"
	redisstore "github.com/taibuivan/reignline/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String(constants.FieldApp, constants.AppName))
	slog.SetDefault(log)

	log.Info("[Reignline] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String(constants.FieldApp, constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("dataset_source", cfg.DatasetSource),
	)

	// Root context lives until shutdown; background janitors stop with it.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Dataset Store ──────────────────────────────────────────────────
	var repo timeline.Repository
	switch cfg.DatasetSource {
	case config.SourcePostgres:
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()
		repo = timeline.NewPostgresRepository(pool)

	default:
		fileRepo, err := timeline.NewFileRepository(cfg.DatasetPath)
		must(log, err, "load dataset file")
		repo = fileRepo
	}

	// ── 4. Scene Cache ────────────────────────────────────────────────────
	var cache timeline.SceneCache
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		cache = timeline.NewRedisSceneCache(rdb)
	} else {
		cache = timeline.NewMemorySceneCache(0)
	}
	log.Info("scene_cache_ready", slog.String("backend", cache.Name()))

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	registry := metrics.NewRegistry()

	service := timeline.NewService(repo, cache, registry, timeline.Options{
		MinYear:  cfg.TimelineMinYear,
		MaxYear:  cfg.TimelineMaxYear,
		Zoom:     cfg.DefaultZoom,
		CacheTTL: cfg.SceneCacheTTL,
	}, log)

	liveness, readiness := api.NewHealthHandlers([]api.HealthCheck{
		{Name: "dataset", Check: repo.Ping},
		{Name: "scene_cache", Check: cache.Ping},
	}, log)

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, registry, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   registry.Handler(),
		Timeline:  timeline.NewHandler(service),
	})

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Only startup wiring uses it. After startup, all errors are returned and handled.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
