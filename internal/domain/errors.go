// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyEmailContent is returned when a reply is requested for an empty email.
	ErrEmptyEmailContent = errors.New("email content cannot be empty")
)
