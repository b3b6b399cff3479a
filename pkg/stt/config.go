package stt

import (
	"log/slog"
	"time"
)

// Config holds transcriber configuration.
type Config struct {
	// APIKey authenticates against the transcription API.
	APIKey string

	// Model is the transcription model identifier.
	Model string

	// Language hints the spoken language (ISO 639-1), empty for auto.
	Language string

	// Timeout bounds one transcription round trip.
	Timeout time.Duration

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Option is a functional option for configuring transcribers.
type Option func(*Config)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithModel sets the transcription model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithLanguage hints the spoken language.
func WithLanguage(lang string) Option {
	return func(c *Config) { c.Language = lang }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns sensible defaults for the Whisper API.
func DefaultConfig() *Config {
	return &Config{
		Model:    "whisper-1",
		Language: "en",
		Timeout:  30 * time.Second,
		Logger:   slog.Default(),
	}
}

// Apply applies options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
