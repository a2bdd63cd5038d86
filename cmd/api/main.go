package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mara2525/clearpath-health-backend/internal/api"
	"github.com/mara2525/clearpath-health-backend/internal/assistant"
	"github.com/mara2525/clearpath-health-backend/internal/catalog"
	"github.com/mara2525/clearpath-health-backend/internal/config"
	"github.com/mara2525/clearpath-health-backend/internal/highlight"
	"github.com/mara2525/clearpath-health-backend/internal/session"
)

func main() {
	// ── Logger ────────────────────────────────────────────────────────────────
	// JSON in production, pretty text in development.
	var logger *slog.Logger
	if os.Getenv("ENV") == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// ── Config ────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Info("config loaded", "env", cfg.Env, "port", cfg.Port, "data_dir", cfg.DataDir)

	// ── Root context ──────────────────────────────────────────────────────────
	// Cancelled by OS signal. The catalog watcher and HTTP server both
	// respect it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Catalog ───────────────────────────────────────────────────────────────
	// Schema validation happens inside Load; a bad dataset refuses to start.
	cat, err := catalog.Load(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	logger.Info("catalog loaded",
		"plans", len(cat.Plans()),
		"providers", len(cat.Providers()),
		"qa_entries", len(cat.QA()),
		"premium_year", cat.PremiumYear(),
	)

	if cfg.WatchData {
		go func() {
			if err := cat.Watch(ctx, logger); err != nil {
				logger.Error("catalog: watcher stopped", "error", err)
			}
		}()
	}

	// ── Session store (Redis) ─────────────────────────────────────────────────
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	sessions, err := session.NewRedisStore(connectCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
	cancel()
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	logger.Info("session store connected", "addr", cfg.RedisAddr)

	// ── Highlight registry ────────────────────────────────────────────────────
	highlights := highlight.New()

	// ── Assistant ─────────────────────────────────────────────────────────────
	// With no webhook URL every message answers from the local corpus.
	var remote assistant.Remote
	if cfg.WebhookURL != "" {
		remote = assistant.NewWebhookClient(cfg.WebhookURL, cfg.WebhookAuthKey, cfg.WebhookTimeout)
		logger.Info("assistant: webhook configured", "live_by_default", cfg.UseWebhook)
	} else {
		logger.Info("assistant: no webhook configured, demo mode only")
	}
	asst := assistant.New(cat, remote, highlights, cfg.UseWebhook, logger)

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.NewServer(cat, sessions, asst, highlights, api.Config{
		BaseURL: cfg.BaseURL,
		Env:     cfg.Env,
	}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until either a signal arrives or the server dies unexpectedly.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	// Give in-flight HTTP requests up to 20 seconds to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
