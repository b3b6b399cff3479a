package audioio

import (
	"context"
	"fmt"
	"time"

	"github.com/gordonklaus/portaudio"
)

// PortAudioSource captures from the default input device via PortAudio.
type PortAudioSource struct {
	config Config
}

// NewPortAudioSource initializes PortAudio and returns a capture source.
func NewPortAudioSource(config Config) (*PortAudioSource, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	return &PortAudioSource{config: config}, nil
}

// Capture records one fixed window from the default input device.
// The stream is opened per call so the device is free between windows.
func (s *PortAudioSource) Capture(ctx context.Context, window time.Duration) (*Chunk, error) {
	frame := make([]int16, s.config.FrameSize())

	stream, err := portaudio.OpenDefaultStream(
		s.config.Channels, 0,
		float64(s.config.SampleRate),
		len(frame),
		frame,
	)
	if err != nil {
		return nil, fmt.Errorf("open input stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("start input stream: %w", err)
	}
	defer stream.Stop()

	total := int(float64(s.config.SampleRate)*window.Seconds()) * s.config.Channels
	samples := make([]int16, 0, total)

	for len(samples) < total {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := stream.Read(); err != nil {
			return nil, fmt.Errorf("read input stream: %w", err)
		}
		samples = append(samples, frame...)
	}

	return &Chunk{
		Samples:    samples[:total],
		SampleRate: s.config.SampleRate,
		Channels:   s.config.Channels,
	}, nil
}

// Name returns the backend name.
func (s *PortAudioSource) Name() string {
	return string(BackendPortAudio)
}

// Close terminates PortAudio.
func (s *PortAudioSource) Close() error {
	return portaudio.Terminate()
}

var _ Source = (*PortAudioSource)(nil)
