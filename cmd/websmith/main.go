// Package main is the entry point for the websmith server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"websmith/internal/ai"
	"websmith/internal/cache"
	"websmith/internal/config"
	"websmith/internal/database"
	"websmith/internal/generator"
	"websmith/internal/handlers"
	"websmith/internal/preview"
	"websmith/internal/router"
	"websmith/internal/secrets"
	"websmith/internal/session"
	"websmith/internal/storage"
	"websmith/internal/store"
	"websmith/internal/workspace"
)

func main() {
	// Structured logger — text output, debug level.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Session store backed by Valkey. In non-development environments,
	// session cookies are Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Credential sealing for stored provider API keys.
	box, err := secrets.New(cfg.SecretsKey)
	if err != nil {
		slog.Error("failed to initialize secrets box", "error", err)
		os.Exit(1)
	}

	// Data stores.
	settingsStore := store.NewSettingsStore(db, box)
	snapshotStore := store.NewSnapshotStore(db)

	// AI provider registry. Credentials are per-client and resolved from
	// stored settings at generation time; only models and endpoints come
	// from the environment.
	registry := ai.NewRegistry(map[string]ai.Config{
		"gemini":      {Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL},
		"huggingface": {Model: cfg.HuggingFaceModel, BaseURL: cfg.HuggingFaceBaseURL},
		"openai":      {Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
	})

	slog.Info("ai providers initialized", "available", registry.Available())

	// Generation result cache in Valkey.
	genCache := cache.NewGenerationCache(valkeyClient, cache.DefaultGenerationTTL)
	orchestrator := generator.New(registry, genCache)

	// Workspaces, preview resources, and the websocket push hub. Every
	// buffer change flows manager → synchronizer → hub.
	workspaces := workspace.NewManager()
	hub := preview.NewHub()
	previews := preview.NewSynchronizer(preview.DefaultGrace, hub)
	workspaces.OnChange(previews.Sync)

	// S3-compatible object storage for published exports (optional — the
	// app works without it, publishing just answers 503).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured — publishing disabled")
	}

	api := handlers.New(
		workspaces, previews, hub, orchestrator, registry,
		settingsStore, snapshotStore, storageClient, cfg.PublicURL,
	)

	r := router.New(sessionStore, api)

	// WriteTimeout must accommodate generation requests that wait on LLM
	// responses (typically 10-30s, up to 60s for complex prompts).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
