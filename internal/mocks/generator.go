package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/email-writer/internal/domain"
	"github.com/phrazzld/email-writer/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, req domain.EmailRequest) (string, error)

	// Default response values
	Reply string
	Err   error

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate or GenerateEmailReply was called
		Count int

		// Requests contains all requests passed, in call order
		Requests []domain.EmailRequest
	}
}

var _ generation.Generator = (*MockGenerator)(nil)

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, req domain.EmailRequest) (string, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Requests = append(m.GenerateCalls.Requests, req)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}

	return m.Reply, m.Err
}

// GenerateEmailReply implements the generation.Generator interface. Errors
// are rendered with generation.ErrorReply.
func (m *MockGenerator) GenerateEmailReply(ctx context.Context, req domain.EmailRequest) string {
	reply, err := m.Generate(ctx, req)
	if err != nil {
		return generation.ErrorReply(err)
	}
	return reply
}

// CallCount returns the number of recorded calls.
func (m *MockGenerator) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// LastRequest returns the most recent request and whether there was one.
func (m *MockGenerator) LastRequest() (domain.EmailRequest, bool) {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	if len(m.GenerateCalls.Requests) == 0 {
		return domain.EmailRequest{}, false
	}
	return m.GenerateCalls.Requests[len(m.GenerateCalls.Requests)-1], true
}

// NewMockGeneratorWithReply creates a MockGenerator that returns reply
func NewMockGeneratorWithReply(reply string) *MockGenerator {
	return &MockGenerator{
		Reply: reply,
	}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{
		Err: err,
	}
}

// MockGeneratorThatFails creates a MockGenerator that simulates a generation failure
func MockGeneratorThatFails() *MockGenerator {
	return &MockGenerator{
		Err: generation.ErrGenerationFailed,
	}
}

// MockGeneratorWithTransientFailure creates a MockGenerator that simulates a transient failure
func MockGeneratorWithTransientFailure() *MockGenerator {
	return &MockGenerator{
		Err: generation.ErrTransientFailure,
	}
}
