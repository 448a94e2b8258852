package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/email-writer/internal/config"
	"github.com/phrazzld/email-writer/internal/generation"
	"github.com/phrazzld/email-writer/internal/platform/gemini"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	generator generation.Generator
}

// newApplication creates a new application instance with all dependencies
// initialized. Options are passed through to the Gemini client.
func newApplication(cfg *config.Config, logger *slog.Logger, opts ...gemini.Option) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	generator, err := gemini.NewGenerator(logger.With("component", "llm_generator"), cfg.LLM, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized successfully",
		"max_retries", cfg.LLM.MaxRetries,
		"retry_delay_seconds", cfg.LLM.RetryDelaySeconds,
		"max_retry_delay_seconds", cfg.LLM.MaxRetryDelaySeconds)

	return &application{
		config:    cfg,
		logger:    logger,
		generator: generator,
	}, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}
