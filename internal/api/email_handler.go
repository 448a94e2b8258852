package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/email-writer/internal/api/shared"
	"github.com/phrazzld/email-writer/internal/domain"
	"github.com/phrazzld/email-writer/internal/generation"
)

// GenerateEmailRequest represents the request body for generating a reply.
// Field names match the browser front-end; tone is a free-form label of at
// most 64 bytes.
type GenerateEmailRequest struct {
	EmailContent string `json:"emailContent" validate:"required"`
	Tone         string `json:"tone" validate:"max=64"`
}

// EmailHandler handles email reply HTTP requests
type EmailHandler struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(generator generation.Generator, logger *slog.Logger) *EmailHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &EmailHandler{
		generator: generator,
		logger:    logger.With("component", "email_handler"),
	}
}

// GenerateReply handles POST /api/email/generate requests. A generated reply
// is written as text/plain; failures are JSON error responses.
func (h *EmailHandler) GenerateReply(w http.ResponseWriter, r *http.Request) {
	var req GenerateEmailRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	emailReq, err := domain.NewEmailRequest(req.EmailContent, req.Tone)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.logger.DebugContext(r.Context(), "generating email reply",
		"trace_id", shared.GetTraceID(r.Context()),
		"email_length", len(emailReq.EmailContent),
		"has_tone", emailReq.HasTone())

	reply, err := h.generator.Generate(r.Context(), emailReq)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithText(w, r, http.StatusOK, reply)
}
