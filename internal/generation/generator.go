package generation

import (
	"context"

	"github.com/phrazzld/email-writer/internal/domain"
)

// Generator defines the interface for generating email replies.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// Generate produces a reply to the email in req.
	//
	// Returns:
	//   - The generated reply, or an ErrorReplyPrefix string when the model's
	//     response could not be read
	//   - An error if the request is invalid or the remote call failed
	//     (see errors.go for the sentinel types)
	Generate(ctx context.Context, req domain.EmailRequest) (string, error)

	// GenerateEmailReply is the total form of Generate: it always returns a
	// string and reports every failure as an ErrorReplyPrefix string.
	GenerateEmailReply(ctx context.Context, req domain.EmailRequest) string
}
