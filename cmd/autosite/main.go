// Package main is the entry point of the autosite server. It loads
// configuration, connects to the key-value backend, starts the daily
// scheduler and serves the admin API with graceful shutdown support.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autosite/internal/ai"
	"autosite/internal/cache"
	"autosite/internal/config"
	"autosite/internal/database"
	"autosite/internal/deploy"
	"autosite/internal/engine"
	"autosite/internal/handlers"
	"autosite/internal/ideasource"
	"autosite/internal/kv"
	"autosite/internal/middleware"
	"autosite/internal/pipeline"
	"autosite/internal/router"
	"autosite/internal/scheduler"
	"autosite/internal/storage"
	"autosite/internal/store"
)

// Forced runs and previews allowed per client per minute.
const (
	runLimit  = 10
	runWindow = time.Minute
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"backend", cfg.StoreBackend,
		"idea_source", cfg.IdeaSource,
	)

	kvStore, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open key-value store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	ctx := context.Background()

	// Write the default settings document on first start.
	if err := store.Seed(ctx, kvStore); err != nil {
		slog.Error("failed to seed settings", "error", err)
		os.Exit(1)
	}

	sites := store.NewSiteStore(kvStore)
	activity := store.NewActivityStore(kvStore)
	settings := store.NewSettingsStore(kvStore)

	eng, err := engine.New()
	if err != nil {
		slog.Error("failed to parse site templates", "error", err)
		os.Exit(1)
	}

	opts := pipeline.Options{
		Settings: settings,
		Registry: sites,
		Engine:   eng,
		Deployer: deploy.NewSimulated(cfg.DeployLatency),
		Activity: activity,
	}

	switch cfg.IdeaSource {
	case config.IdeaSourceHTTP:
		opts.Source = ideasource.NewHTTPSource(cfg.IdeaSourceURL)
		slog.Info("idea source enabled", "type", "http", "url", cfg.IdeaSourceURL)
	case config.IdeaSourceAI:
		registry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
			cfg.AIProvider: {APIKey: cfg.AIAPIKey, Model: cfg.AIModel, BaseURL: cfg.AIBaseURL},
		})
		if !registry.HasProvider(cfg.AIProvider) {
			slog.Error("unknown ai provider", "provider", cfg.AIProvider, "available", registry.Available())
			os.Exit(1)
		}
		opts.Source = ideasource.NewAISource(registry)
		slog.Info("idea source enabled", "type", "ai", "provider", cfg.AIProvider)
	default:
		slog.Info("idea source disabled, using the built-in catalog only")
	}

	var archive *deploy.Archive
	if cfg.BackupsEnabled() {
		client, err := storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		archive = deploy.NewArchive(client)
		opts.Archive = archive
		slog.Info("s3 backups enabled", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, site backups disabled")
	}

	sched := scheduler.New(scheduler.Options{
		Settings: settings,
		Runner:   pipeline.New(opts),
		Activity: activity,
	})
	sched.Start(ctx)

	deps := handlers.Deps{
		Scheduler: sched,
		Sites:     sites,
		Activity:  activity,
		Settings:  settings,
		Engine:    eng,
	}
	if archive != nil {
		deps.Archive = archive
	}

	limiter := middleware.NewRateLimiter(runLimit, runWindow, nil)
	defer limiter.Stop()

	if cfg.APITokenHash == "" {
		slog.Warn("API_TOKEN_HASH is empty, mutating routes are unauthenticated")
	}

	r := router.New(router.Options{
		API:       handlers.NewAPI(deps),
		TokenHash: cfg.APITokenHash,
		Limiter:   limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// No new runs after this point; an in-flight one gets the same budget
	// as open requests.
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	if err := sched.Wait(shutdownCtx); err != nil {
		slog.Warn("generation still running at shutdown", "error", err)
	}

	slog.Info("server stopped gracefully")
}

// openStore connects the configured key-value backend. The returned func
// releases the connection.
func openStore(cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendValkey:
		client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewValkey(client, cfg.ValkeyKeyPrefix), func() { client.Close() }, nil

	case config.BackendPostgres:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return kv.NewPostgres(db), func() { db.Close() }, nil

	case config.BackendMemory:
		slog.Warn("using in-memory store, records are lost on restart")
		return kv.NewMemory(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
