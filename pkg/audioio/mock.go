package audioio

import (
	"context"
	"math"
	"sync"
	"time"
)

// MockSource is a mock audio source for testing.
// It generates synthetic audio (silence or sine wave) instantly.
type MockSource struct {
	cfg Config

	mu       sync.Mutex
	closed   bool
	captures int

	// CaptureFunc overrides Capture behavior when set.
	CaptureFunc func(ctx context.Context, window time.Duration) (*Chunk, error)

	// Synthetic audio generation
	frequency float64 // Hz, 0 = silence
	amplitude float64 // 0.0 to 1.0
}

// MockSourceOption configures a MockSource.
type MockSourceOption func(*MockSource)

// WithSineWave configures the mock to generate a sine wave.
func WithSineWave(frequency, amplitude float64) MockSourceOption {
	return func(m *MockSource) {
		m.frequency = frequency
		m.amplitude = amplitude
	}
}

// NewMockSource creates a new mock audio source.
func NewMockSource(cfg Config, opts ...MockSourceOption) *MockSource {
	m := &MockSource{
		cfg:       cfg,
		frequency: 0, // Silence by default
		amplitude: 0.5,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Capture returns a synthetic chunk of the requested window without
// waiting for wall-clock time.
func (m *MockSource) Capture(ctx context.Context, window time.Duration) (*Chunk, error) {
	m.mu.Lock()
	m.captures++
	closed := m.closed
	m.mu.Unlock()

	if closed {
		return nil, context.Canceled
	}
	if m.CaptureFunc != nil {
		return m.CaptureFunc(ctx, window)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := int(float64(m.cfg.SampleRate)*window.Seconds()) * m.cfg.Channels
	samples := make([]int16, total)
	if m.frequency > 0 {
		for i := range samples {
			t := float64(i) / float64(m.cfg.SampleRate)
			samples[i] = int16(m.amplitude * 32767 * math.Sin(2*math.Pi*m.frequency*t))
		}
	}

	return &Chunk{
		Samples:    samples,
		SampleRate: m.cfg.SampleRate,
		Channels:   m.cfg.Channels,
	}, nil
}

// Name returns the backend name.
func (m *MockSource) Name() string {
	return string(BackendMock)
}

// Captures returns the number of Capture calls made.
func (m *MockSource) Captures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.captures
}

// Close marks the source closed.
func (m *MockSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var _ Source = (*MockSource)(nil)

// MockPlayer records played buffers for testing.
type MockPlayer struct {
	mu sync.Mutex

	// PlayFunc overrides Play behavior when set.
	PlayFunc func(ctx context.Context, mp3Data []byte) error

	// Played records every buffer handed to Play.
	Played [][]byte
}

// NewMockPlayer creates a player that swallows audio.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

// Play records the buffer and delegates to PlayFunc when set.
func (m *MockPlayer) Play(ctx context.Context, mp3Data []byte) error {
	m.mu.Lock()
	m.Played = append(m.Played, mp3Data)
	m.mu.Unlock()

	if m.PlayFunc != nil {
		return m.PlayFunc(ctx, mp3Data)
	}
	return ctx.Err()
}

// PlayCount returns the number of Play calls made.
func (m *MockPlayer) PlayCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Played)
}

// Close is a no-op.
func (m *MockPlayer) Close() error {
	return nil
}

var _ Player = (*MockPlayer)(nil)
