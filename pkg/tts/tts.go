// Package tts converts the order taker's replies into speech.
//
// The default backend is ElevenLabs, which returns a complete MP3 buffer
// the speaker plays in one shot. All backends implement the Provider
// interface, so callers can switch without code changes.
//
// Example usage:
//
//	provider, _ := tts.NewElevenLabs(
//	    tts.WithAPIKey(os.Getenv("ELEVENLABS_API_KEY")),
//	    tts.WithVoice("your-voice-id"),
//	)
//	defer provider.Close()
//
//	result, _ := provider.Synthesize(ctx, "Welcome to Burger Express!")
//	// result.Audio contains MP3 audio bytes
package tts

import (
	"context"
	"time"
)

// Provider defines the TTS provider interface.
type Provider interface {
	// Synthesize converts text to audio, returning the complete audio buffer.
	Synthesize(ctx context.Context, text string) (*AudioResult, error)

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// AudioResult represents a complete audio synthesis result.
type AudioResult struct {
	// Audio contains the raw audio data in the specified format.
	Audio []byte

	// Format describes the audio encoding and sample rate.
	Format AudioFormat

	// Duration is the estimated audio playback duration.
	Duration time.Duration

	// CharCount is the number of characters synthesized.
	CharCount int

	// LatencyMs is the round-trip synthesis time in milliseconds.
	LatencyMs int64
}

// AudioFormat describes the audio encoding parameters.
type AudioFormat struct {
	// Encoding specifies the audio codec (e.g., mp3_44100_128, pcm_16000).
	Encoding Encoding

	// SampleRate in Hz (e.g., 16000, 44100).
	SampleRate int

	// Channels is 1 for mono, 2 for stereo.
	Channels int

	// BitDepth for PCM formats (e.g., 16 for PCM16).
	BitDepth int
}

// Encoding represents audio encoding types.
// These match ElevenLabs output format options.
type Encoding string

const (
	// EncodingMP3 is MP3 at 128kbps, the speaker playback format.
	EncodingMP3 Encoding = "mp3_44100_128"

	// EncodingPCM16 is 16kHz mono PCM16.
	EncodingPCM16 Encoding = "pcm_16000"

	// EncodingPCM24 is 24kHz mono PCM16.
	EncodingPCM24 Encoding = "pcm_24000"
)

// VoiceSettings controls voice characteristics for providers that support it.
type VoiceSettings struct {
	// Stability controls voice consistency (0.0-1.0).
	// Lower values = more expressive/variable, higher = more consistent.
	Stability float64

	// SimilarityBoost controls how closely the voice matches the original (0.0-1.0).
	SimilarityBoost float64

	// Style controls style exaggeration (0.0-1.0).
	// Only supported by ElevenLabs v2 models.
	Style float64

	// SpeakerBoost enhances speaker clarity.
	SpeakerBoost bool
}

// DefaultVoiceSettings returns sensible defaults for voice synthesis.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		Stability:       0.5,
		SimilarityBoost: 0.75,
		Style:           0.0,
		SpeakerBoost:    true,
	}
}

// SampleRateFromEncoding extracts the sample rate from an encoding type.
func SampleRateFromEncoding(enc Encoding) int {
	switch enc {
	case EncodingPCM16:
		return 16000
	case EncodingPCM24:
		return 24000
	case EncodingMP3:
		return 44100
	default:
		return 44100
	}
}
