package domain

import (
	"errors"
	"testing"
)

func TestNewEmailRequest(t *testing.T) {
	t.Parallel()

	req, err := NewEmailRequest("Hi, can we meet on Friday?", "friendly")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if req.EmailContent != "Hi, can we meet on Friday?" {
		t.Errorf("Expected email content to be preserved, got %q", req.EmailContent)
	}

	if req.Tone != "friendly" {
		t.Errorf("Expected tone %q, got %q", "friendly", req.Tone)
	}

	_, err = NewEmailRequest("   \n\t", "")
	if !errors.Is(err, ErrEmptyEmailContent) {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmailContent, err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected error to wrap %v, got %v", ErrValidation, err)
	}
}

func TestEmailRequestHasTone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tone     string
		expected bool
		trimmed  string
	}{
		{name: "empty", tone: "", expected: false, trimmed: ""},
		{name: "whitespace only", tone: "  \t ", expected: false, trimmed: ""},
		{name: "plain", tone: "formal", expected: true, trimmed: "formal"},
		{name: "padded", tone: "  casual ", expected: true, trimmed: "casual"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := EmailRequest{EmailContent: "body", Tone: tt.tone}
			if got := req.HasTone(); got != tt.expected {
				t.Errorf("HasTone() = %v, want %v", got, tt.expected)
			}
			if got := req.NormalizedTone(); got != tt.trimmed {
				t.Errorf("NormalizedTone() = %q, want %q", got, tt.trimmed)
			}
		})
	}
}
