package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/email-writer/internal/config"
	"github.com/phrazzld/email-writer/internal/domain"
	"github.com/phrazzld/email-writer/internal/generation"
	"github.com/phrazzld/email-writer/internal/redact"
)

// Completer is the single outbound call the generator depends on.
type Completer interface {
	Complete(ctx context.Context, prompt string) ([]byte, error)
}

// Generator implements generation.Generator on top of a Completer.
type Generator struct {
	logger *slog.Logger
	client Completer
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator that talks to the Gemini endpoint in cfg.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	client, err := NewClient(logger.With("component", "gemini_client"), cfg, opts...)
	if err != nil {
		return nil, err
	}

	return NewGeneratorWithClient(logger, client)
}

// NewGeneratorWithClient creates a Generator around an existing Completer.
func NewGeneratorWithClient(logger *slog.Logger, client Completer) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if client == nil {
		return nil, fmt.Errorf("%w: completion client cannot be nil", generation.ErrInvalidConfig)
	}

	return &Generator{
		logger: logger,
		client: client,
	}, nil
}

// Generate builds the prompt for req, performs one completion and extracts
// the reply. Completion failures are returned as errors; problems with the
// response document come back as an error reply string with a nil error.
func (g *Generator) Generate(ctx context.Context, req domain.EmailRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	prompt := generation.BuildPrompt(req)
	g.logger.DebugContext(ctx, "Prompt generated successfully",
		"email_length", len(req.EmailContent),
		"has_tone", req.HasTone(),
		"prompt_length", len(prompt))

	raw, err := g.client.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	reply := Extract(raw)
	if generation.IsErrorReply(reply) {
		g.logger.WarnContext(ctx, "Unexpected response shape from Gemini API",
			"diagnostic", redact.String(reply),
			"response_bytes", len(raw))
	} else {
		g.logger.InfoContext(ctx, "Email reply generated",
			"reply_length", len(reply))
	}

	return reply, nil
}

// GenerateEmailReply implements generation.Generator. It never fails: any
// error is rendered as a reply starting with generation.ErrorReplyPrefix.
func (g *Generator) GenerateEmailReply(ctx context.Context, req domain.EmailRequest) string {
	reply, err := g.Generate(ctx, req)
	if err != nil {
		g.logger.ErrorContext(ctx, "Email reply generation failed",
			"error", redact.Error(err))
		return generation.ErrorReplyPrefix + redact.Error(err)
	}
	return reply
}
