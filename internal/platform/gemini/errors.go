package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/email-writer/internal/generation"
)

// Error definitions for the gemini package.
var (
	// ErrEmptyPrompt is returned when Complete is called without a prompt.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)

// maxErrorBodyBytes bounds how much of a non-2xx response body is kept for diagnostics.
const maxErrorBodyBytes = 4 << 10

// StatusError is returned when the generation endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	// Body holds the start of the response body, whitespace collapsed.
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	msg := "generation endpoint returned " + status
	if body := strings.Join(strings.Fields(e.Body), " "); body != "" {
		msg += ": " + body
	}
	return msg
}

// CompletionError is the terminal failure of Complete. It records how many
// attempts were made and the last failure observed.
type CompletionError struct {
	Attempts int
	Cause    error
	// Exhausted is set when the last failure was retryable but no retries were left.
	Exhausted bool
}

// Error implements the error interface.
func (e *CompletionError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf("completion failed after %d attempts: %v", e.Attempts, e.Cause)
	}
	return fmt.Sprintf("completion failed: %v", e.Cause)
}

// Unwrap exposes the cause together with the generation sentinel that
// classifies it, so callers can use errors.Is with either.
func (e *CompletionError) Unwrap() []error {
	if e.Exhausted {
		return []error{generation.ErrTransientFailure, e.Cause}
	}
	return []error{generation.ErrGenerationFailed, e.Cause}
}
