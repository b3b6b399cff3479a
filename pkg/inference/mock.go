package inference

import (
	"context"
	"sync"
)

// Mock is a mock inference provider for testing.
type Mock struct {
	mu sync.Mutex

	// ChatFunc overrides Chat behavior when set.
	ChatFunc func(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// HealthFunc overrides Health behavior when set.
	HealthFunc func(ctx context.Context) error

	// CloseFunc overrides Close behavior when set.
	CloseFunc func() error

	// Calls records all Chat invocations.
	Calls []*ChatRequest
}

// NewMock creates a mock provider that returns a fixed response.
func NewMock() *Mock {
	return &Mock{
		ChatFunc: func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
			return &ChatResponse{
				Message:      NewAssistantMessage("Mock response"),
				FinishReason: "stop",
				Model:        "mock",
			}, nil
		},
	}
}

// WithError creates a mock provider that always returns err.
func WithError(err error) *Mock {
	return &Mock{
		ChatFunc: func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
			return nil, err
		},
	}
}

// Chat records the call and delegates to ChatFunc.
func (m *Mock) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.mu.Unlock()

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}
	return &ChatResponse{
		Message:      NewAssistantMessage(""),
		FinishReason: "stop",
		Model:        "mock",
	}, nil
}

// Health delegates to HealthFunc, or reports healthy.
func (m *Mock) Health(ctx context.Context) error {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// Close delegates to CloseFunc.
func (m *Mock) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// CallCount returns the number of Chat calls made.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent Chat request, or nil.
func (m *Mock) LastCall() *ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	return m.Calls[len(m.Calls)-1]
}

// Reset clears recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = nil
}

var _ Provider = (*Mock)(nil)
