// Package main implements the entry point for the Email Writer API server,
// which drafts replies to emails with the Gemini API.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/email-writer/internal/config"
	"github.com/phrazzld/email-writer/internal/platform/logger"
)

// main is the entry point for the email-writer server.
// It loads configuration, sets up logging, wires the generator into the HTTP
// router and serves until SIGINT or SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// run contains the startup sequence so it can return errors instead of exiting.
func run(ctx context.Context) error {
	cfg, err := initializeApp()
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// initializeApp loads configuration and sets up structured logging.
// Returns the loaded config and any initialization error.
func initializeApp() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	// The endpoint URL and key are never logged, only their presence.
	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"gemini_api_url_present", cfg.LLM.GeminiAPIURL != "",
		"gemini_api_key_present", cfg.LLM.GeminiAPIKey != "",
		"max_retries", cfg.LLM.MaxRetries)

	return cfg, nil
}
