package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rednote-ops/internal/config"
	"rednote-ops/internal/http"
	"rednote-ops/internal/llm"
	"rednote-ops/internal/notes"
	"rednote-ops/internal/service"
	"rednote-ops/internal/storage"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API drafts, checks and stores Xiaohongshu style notes.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: RedNote Ops API
//   description: |
//     Draft notes with an OpenAI compatible model, keep a local library of saved
//     notes under a fixed storage quota, and export selections as ZIP archives.
//   version: 1.0.0
// schemes:
//   - http
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	backend, closeStorage, err := storage.Open(cfg.StorageDriver, cfg.DBPath, cfg.StorageQuotaBytes)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer func() {
		_ = closeStorage()
	}()

	store := notes.NewStore(backend, notes.WithKey(cfg.StorageKey))

	if cfg.LLMAPIKey == "" {
		slog.Warn("LLM_API_KEY is not set, content endpoints will fail")
	}
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.ImageModel)

	deps := &http.Deps{
		Library:        service.NewLibraryService(store),
		Content:        service.NewContentService(llmClient, cfg.ImageSize),
		Storage:        backend,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           http.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Starting API server", "addr", server.Addr)
		slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModel, "image_model", cfg.ImageModel)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			slog.Error("API server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
