package mocks

import (
	"context"
	"sync"
)

// MockCompleter stands in for the remote completion client.
type MockCompleter struct {
	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, prompt string) ([]byte, error)

	// Default response values
	Raw []byte
	Err error

	mu      sync.Mutex
	prompts []string
}

// Complete records prompt and returns the scripted response.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) ([]byte, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, prompt)
	}

	return m.Raw, m.Err
}

// Prompts returns a copy of every prompt received so far.
func (m *MockCompleter) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
