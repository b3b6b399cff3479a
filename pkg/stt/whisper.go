package stt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/Erunixz/thru.ai/pkg/audioio"
)

// ErrNoAPIKey indicates no API key was provided.
var ErrNoAPIKey = errors.New("no API key provided")

// Whisper transcribes audio through OpenAI's hosted Whisper API.
type Whisper struct {
	client openai.Client
	config *Config
}

// NewWhisper creates a Whisper API transcriber.
func NewWhisper(opts ...Option) (*Whisper, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	return &Whisper{
		client: openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		config: cfg,
	}, nil
}

// Transcribe uploads the chunk as a WAV file and returns the recognized
// text. Whisper wants a container format, not raw PCM, so the chunk is
// wrapped in a WAV header first.
func (w *Whisper) Transcribe(ctx context.Context, chunk *audioio.Chunk) (*Result, error) {
	wavData, err := audioio.WAVBytes(chunk)
	if err != nil {
		return nil, fmt.Errorf("render wav: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, w.config.Timeout)
	defer cancel()

	start := time.Now()

	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(wavData), "speech.wav", "audio/wav"),
		Model: openai.AudioModel(w.config.Model),
	}
	if w.config.Language != "" {
		params.Language = openai.String(w.config.Language)
	}

	resp, err := w.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	return &Result{
		Text:      strings.TrimSpace(resp.Text),
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// Close releases resources.
func (w *Whisper) Close() error {
	return nil
}

var _ Transcriber = (*Whisper)(nil)
