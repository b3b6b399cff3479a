package audioio

import (
	"context"
	"time"
)

// Chunk is a buffer of captured audio.
type Chunk struct {
	// Samples contains PCM16 audio samples (little-endian).
	Samples []int16

	// SampleRate is the sample rate of this chunk.
	SampleRate int

	// Channels is the number of channels in this chunk.
	Channels int
}

// Bytes returns the raw little-endian bytes of the chunk.
func (c *Chunk) Bytes() []byte {
	buf := make([]byte, len(c.Samples)*2)
	for i, s := range c.Samples {
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(s >> 8)
	}
	return buf
}

// FromBytes populates the chunk from raw PCM16 bytes.
func (c *Chunk) FromBytes(data []byte, sampleRate, channels int) {
	c.SampleRate = sampleRate
	c.Channels = channels
	c.Samples = make([]int16, len(data)/2)
	for i := range c.Samples {
		c.Samples[i] = int16(data[i*2]) | int16(data[i*2+1])<<8
	}
}

// Duration returns the playback duration of this chunk.
func (c *Chunk) Duration() time.Duration {
	if c.SampleRate == 0 || c.Channels == 0 {
		return 0
	}
	frames := len(c.Samples) / c.Channels
	return time.Duration(frames) * time.Second / time.Duration(c.SampleRate)
}

// Source captures audio from a microphone or other input device.
type Source interface {
	// Capture records one fixed window of audio and returns it as a
	// single chunk. It blocks for the length of the window unless the
	// context is cancelled first.
	Capture(ctx context.Context, window time.Duration) (*Chunk, error)

	// Name returns the backend name (e.g., "portaudio", "mock").
	Name() string

	// Close releases the capture device.
	Close() error
}

// Player plays complete audio buffers through the speaker.
type Player interface {
	// Play decodes and plays an MP3 buffer, blocking until playback
	// finishes or the context is cancelled.
	Play(ctx context.Context, mp3Data []byte) error

	// Close releases the playback device.
	Close() error
}
