// Package stt provides speech-to-text transcription of captured lane audio.
//
// The default backend is OpenAI's hosted Whisper API. A mock transcriber
// covers tests and machines without an API key.
package stt

import (
	"context"

	"github.com/Erunixz/thru.ai/pkg/audioio"
)

// Transcriber converts captured audio into text.
type Transcriber interface {
	// Transcribe converts one audio chunk into text. An empty Text with a
	// nil error means the window held no recognizable speech.
	Transcribe(ctx context.Context, chunk *audioio.Chunk) (*Result, error)

	// Close releases any resources held by the transcriber.
	Close() error
}

// Result is one transcription outcome.
type Result struct {
	// Text is the recognized speech, empty when nothing was said.
	Text string

	// LatencyMs is the round-trip transcription time in milliseconds.
	LatencyMs int64
}
