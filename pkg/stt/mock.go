package stt

import (
	"context"
	"sync"

	"github.com/Erunixz/thru.ai/pkg/audioio"
)

// Mock is a mock transcriber for testing.
type Mock struct {
	mu sync.Mutex

	// TranscribeFunc overrides Transcribe behavior when set.
	TranscribeFunc func(ctx context.Context, chunk *audioio.Chunk) (*Result, error)

	// Calls records every transcribed chunk.
	Calls []*audioio.Chunk
}

// NewMock creates a mock transcriber that returns fixed text.
func NewMock(text string) *Mock {
	return &Mock{
		TranscribeFunc: func(ctx context.Context, chunk *audioio.Chunk) (*Result, error) {
			return &Result{Text: text}, nil
		},
	}
}

// WithError creates a mock transcriber that always returns err.
func WithError(err error) *Mock {
	return &Mock{
		TranscribeFunc: func(ctx context.Context, chunk *audioio.Chunk) (*Result, error) {
			return nil, err
		},
	}
}

// Transcribe records the call and delegates to TranscribeFunc.
func (m *Mock) Transcribe(ctx context.Context, chunk *audioio.Chunk) (*Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, chunk)
	m.mu.Unlock()

	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, chunk)
	}
	return &Result{}, nil
}

// CallCount returns the number of Transcribe calls made.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Close is a no-op.
func (m *Mock) Close() error {
	return nil
}

var _ Transcriber = (*Mock)(nil)
