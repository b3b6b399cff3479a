// Package config loads service configuration from environment variables,
// with a .env file for local runs.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Settings holds all configurable parameters for the lane service.
type Settings struct {
	// Credentials
	OpenAIKey     string `envconfig:"OPENAI_API_KEY"`
	ElevenLabsKey string `envconfig:"ELEVENLABS_API_KEY"`

	// Conversation model
	ChatModel   string  `envconfig:"CHAT_MODEL" default:"gpt-4o-mini"`
	ChatBaseURL string  `envconfig:"CHAT_BASE_URL" default:"https://api.openai.com/v1"`
	ChatTokens  int     `envconfig:"CHAT_MAX_TOKENS" default:"1024"`
	ChatTemp    float64 `envconfig:"CHAT_TEMPERATURE" default:"0.7"`

	// Speech-to-text
	STTModel    string `envconfig:"STT_MODEL" default:"whisper-1"`
	STTLanguage string `envconfig:"STT_LANGUAGE" default:"en"`

	// Text-to-speech
	VoiceID  string `envconfig:"TTS_VOICE_ID" default:"cgSgspJ2msm6clMCkdW9"`
	TTSModel string `envconfig:"TTS_MODEL" default:"eleven_turbo_v2_5"`

	// Audio capture
	SampleRate    int           `envconfig:"SAMPLE_RATE" default:"16000"`
	CaptureWindow time.Duration `envconfig:"CAPTURE_WINDOW" default:"5s"`

	// Order relay
	RelayURL     string        `envconfig:"RELAY_URL" default:"http://localhost:5000/api/order"`
	RelayTimeout time.Duration `envconfig:"RELAY_TIMEOUT" default:"2s"`

	// Display server
	DisplayAddr string `envconfig:"DISPLAY_ADDR" default:":5000"`

	// Catalog
	MenuPath string `envconfig:"MENU_PATH" default:"menu.json"`

	// Observability
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads settings from the environment, optionally seeded from a
// .env file. A missing .env file is not an error.
func Load(envFile string) (*Settings, error) {
	if envFile != "" {
		godotenv.Load(envFile)
	}

	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return nil, fmt.Errorf("config: process environment: %w", err)
	}
	return &s, nil
}

// ValidateLane checks the settings the lane service cannot run without.
func (s *Settings) ValidateLane() error {
	if s.OpenAIKey == "" {
		return fmt.Errorf("config: OPENAI_API_KEY is required")
	}
	if s.ElevenLabsKey == "" {
		return fmt.Errorf("config: ELEVENLABS_API_KEY is required")
	}
	return nil
}
