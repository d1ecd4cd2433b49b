// Copyright (c) 2026 Saturday Labs. All rights reserved.
// Author: backend@saturday.chat

// Command api is the entry point for the Saturday HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire domain services and HTTP handlers.
//  7. Seed the bootstrap account and start the session sweeper.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/saturdaylabs/saturday/internal/api"
	"github.com/saturdaylabs/saturday/internal/auth"
	"github.com/saturdaylabs/saturday/internal/chat"
	"github.com/saturdaylabs/saturday/internal/platform/config"
	"github.com/saturdaylabs/saturday/internal/platform/constants"
	"github.com/saturdaylabs/saturday/internal/platform/migration"
	pgstore "github.com/saturdaylabs/saturday/internal/platform/postgres"
	redisstore "github.com/saturdaylabs/saturday/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Saturday] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application context for long-lived background work (rate limit cleanup,
	// session sweeper). Cancelled when shutdown begins.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Health Handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 7. Auth Domain ────────────────────────────────────────────────────
	accountRepository := auth.NewAccountRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	authService := auth.NewService(accountRepository, sessionRepository, log)
	authHandler := auth.NewHandler(authService)

	// ── 8. Chat Domain ────────────────────────────────────────────────────
	// The remote model is optional. Without CLASSIFIER_URL every message is
	// classified by the deterministic keyword fallback inside the engine.
	var classifier chat.Classifier
	if cfg.ClassifierURL != "" {
		remote := chat.NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierTimeout)
		classifier = chat.NewCachedClassifier(remote, rdb, cfg.ClassifierCacheTTL, log)
	} else {
		log.Warn("classifier_not_configured")
	}

	engine := chat.NewEngine(classifier, chat.NewResponseBank(), chat.NewMemory(), cfg.ClassifierTimeout, log)
	chatHandler := chat.NewHandler(engine)

	// ── 9. Bootstrap Account & Session Sweeper ────────────────────────────
	if cfg.BootstrapEmail != "" && cfg.BootstrapPassword != "" {
		must(log, authService.Bootstrap(startupCtx, cfg.BootstrapEmail, cfg.BootstrapPassword, cfg.BootstrapName), "bootstrap account")
		log.Info("bootstrap_account_ensured", slog.String("email", cfg.BootstrapEmail))
	}

	go authService.RunSweeper(appCtx, constants.SessionSweepInterval)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Chat:      chatHandler,
	}

	server := api.NewServer(appCtx, cfg, log, authService, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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

	// Stop background workers, then give in-flight requests time to complete.
	appCancel()

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
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
