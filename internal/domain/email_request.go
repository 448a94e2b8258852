package domain

import (
	"fmt"
	"strings"
)

// EmailRequest is the caller input for a reply generation: the body of the
// email being answered and an optional tone ("professional", "friendly", ...).
// It is immutable once built and consumed once by the prompt builder.
type EmailRequest struct {
	EmailContent string `json:"emailContent"`
	Tone         string `json:"tone,omitempty"`
}

// NewEmailRequest creates an EmailRequest and validates it.
func NewEmailRequest(emailContent, tone string) (EmailRequest, error) {
	req := EmailRequest{
		EmailContent: emailContent,
		Tone:         tone,
	}

	if err := req.Validate(); err != nil {
		return EmailRequest{}, err
	}

	return req, nil
}

// Validate checks that the request carries email content to reply to.
func (r EmailRequest) Validate() error {
	if strings.TrimSpace(r.EmailContent) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyEmailContent)
	}
	return nil
}

// HasTone reports whether a tone was supplied after trimming whitespace.
func (r EmailRequest) HasTone() bool {
	return strings.TrimSpace(r.Tone) != ""
}

// NormalizedTone returns the tone with surrounding whitespace removed.
func (r EmailRequest) NormalizedTone() string {
	return strings.TrimSpace(r.Tone)
}
