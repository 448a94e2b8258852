package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/email-writer/internal/api/shared"
	"github.com/phrazzld/email-writer/internal/domain"
	"github.com/phrazzld/email-writer/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completionFailure mimics an adapter error that carries a generation
// sentinel next to its cause.
type completionFailure struct {
	sentinel error
	cause    error
}

func (e completionFailure) Error() string   { return "completion failed: " + e.cause.Error() }
func (e completionFailure) Unwrap() []error { return []error{e.sentinel, e.cause} }

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "empty email",
			err:            fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrEmptyEmailContent),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Email content is required",
		},
		{
			name:           "other validation error",
			err:            domain.ErrValidation,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request",
		},
		{
			name:           "deadline",
			err:            completionFailure{generation.ErrGenerationFailed, context.DeadlineExceeded},
			expectedStatus: http.StatusGatewayTimeout,
			expectedMsg:    "Reply generation timed out",
		},
		{
			name:           "retries exhausted",
			err:            completionFailure{generation.ErrTransientFailure, errors.New("503 Service Unavailable")},
			expectedStatus: http.StatusServiceUnavailable,
			expectedMsg:    "Reply generation is temporarily unavailable, please try again later",
		},
		{
			name:           "terminal upstream failure",
			err:            completionFailure{generation.ErrGenerationFailed, errors.New("400 Bad Request")},
			expectedStatus: http.StatusBadGateway,
			expectedMsg:    "Reply generation failed",
		},
		{
			name:           "invalid response",
			err:            fmt.Errorf("%w: missing field", generation.ErrInvalidResponse),
			expectedStatus: http.StatusBadGateway,
			expectedMsg:    "Reply generation failed",
		},
		{
			name:           "unknown error",
			err:            errors.New("something odd"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "An unexpected error occurred",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expectedStatus, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.expectedMsg, GetSafeErrorMessage(tc.err))
		})
	}

	assert.Equal(t, http.StatusOK, MapErrorToStatusCode(nil))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/email/generate", nil)
	req = req.WithContext(shared.WithTraceID(req.Context(), "trace-123"))
	w := httptest.NewRecorder()

	err := completionFailure{generation.ErrTransientFailure, errors.New("upstream said key=abc")}
	HandleAPIError(w, req, err, "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "trace-123", resp.TraceID)
	assert.NotContains(t, resp.Error, "upstream", "Internal details must not reach the client")
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	v := validator.New()

	err := v.Struct(GenerateEmailRequest{})
	require.Error(t, err)
	assert.Equal(t, "Invalid EmailContent: required field", SanitizeValidationError(err))

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	err = v.Struct(GenerateEmailRequest{EmailContent: "hi", Tone: string(long)})
	require.Error(t, err)
	assert.Equal(t, "Invalid Tone: too long", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("anything else")))
}
