// Package audioio provides microphone capture and speaker playback for the
// lane hardware.
//
// Capture is fixed-window: the session asks for N seconds of audio and gets
// a single PCM16 chunk back. Playback takes complete MP3 buffers from the
// speech synthesizer. A mock backend covers CI and machines without audio
// hardware.
package audioio

import (
	"fmt"
	"time"
)

// Backend represents the audio backend type.
type Backend string

const (
	// BackendPortAudio uses PortAudio for cross-platform audio I/O.
	BackendPortAudio Backend = "portaudio"
	// BackendMock uses a mock implementation for testing.
	BackendMock Backend = "mock"
)

// Config holds audio configuration.
type Config struct {
	// Backend specifies which audio backend to use.
	Backend Backend `json:"backend"`

	// SampleRate is the capture sample rate in Hz.
	// Default: 16000, the rate the transcription model expects.
	SampleRate int `json:"sample_rate"`

	// Channels is the number of capture channels. Default: 1 (mono).
	Channels int `json:"channels"`

	// FrameDuration is the size of the internal read buffer.
	// Default: 20ms (320 samples at 16kHz).
	FrameDuration time.Duration `json:"frame_duration"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:       BackendPortAudio,
		SampleRate:    16000,
		Channels:      1,
		FrameDuration: 20 * time.Millisecond,
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("channels must be positive, got %d", c.Channels)
	}
	if c.FrameDuration <= 0 {
		return fmt.Errorf("frame_duration must be positive, got %v", c.FrameDuration)
	}
	return nil
}

// FrameSize returns the number of samples per read buffer.
func (c *Config) FrameSize() int {
	return int(float64(c.SampleRate)*c.FrameDuration.Seconds()) * c.Channels
}
