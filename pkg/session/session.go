// Package session runs one car's visit to the speaker lane: greet, then
// listen, transcribe, think, speak, and sync the order until the customer
// confirms or the service shuts down.
package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Erunixz/thru.ai/pkg/audioio"
	"github.com/Erunixz/thru.ai/pkg/brain"
	"github.com/Erunixz/thru.ai/pkg/relay"
	"github.com/Erunixz/thru.ai/pkg/stt"
	"github.com/Erunixz/thru.ai/pkg/tts"
)

// State identifies where a session is in its cycle.
type State string

const (
	StateGreeting     State = "greeting"
	StateListening    State = "listening"
	StateTranscribing State = "transcribing"
	StateThinking     State = "thinking"
	StateSpeaking     State = "speaking"
	StateSyncing      State = "syncing"
	StateDone         State = "done"
)

// Config holds the session's tunables.
type Config struct {
	// CaptureWindow is how long each listening window records.
	CaptureWindow time.Duration

	// RelayTimeout bounds each order push.
	RelayTimeout time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		CaptureWindow: 5 * time.Second,
		RelayTimeout:  relay.DefaultTimeout,
	}
}

// Session drives one ordering conversation end to end.
type Session struct {
	id          string
	config      Config
	source      audioio.Source
	transcriber stt.Transcriber
	speaker     tts.Provider
	player      audioio.Player
	engine      *brain.Engine
	pusher      relay.Pusher
	logger      *slog.Logger

	state State

	// OnTransition is called on every state change, for dashboards and
	// tests. Optional.
	OnTransition func(from, to State)
}

// New creates a session over its collaborators.
func New(
	config Config,
	source audioio.Source,
	transcriber stt.Transcriber,
	speaker tts.Provider,
	player audioio.Player,
	engine *brain.Engine,
	pusher relay.Pusher,
	logger *slog.Logger,
) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &Session{
		id:          id,
		config:      config,
		source:      source,
		transcriber: transcriber,
		speaker:     speaker,
		player:      player,
		engine:      engine,
		pusher:      pusher,
		logger:      logger.With("component", "session", "session_id", id),
		state:       StateGreeting,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Run greets the customer and cycles until the order is confirmed or ctx
// is cancelled. Every failure inside a cycle is recoverable; only
// cancellation ends the session without a confirmed order.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("session started")
	s.say(ctx, brain.Greeting)

	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info("session interrupted")
			return err
		}

		done, err := s.cycle(ctx)
		if err != nil {
			return err
		}
		if done {
			break
		}
	}

	s.setState(StateSpeaking)
	s.say(ctx, brain.Farewell)
	s.setState(StateDone)
	s.logger.Info("session complete", "turns", s.engine.History().Len()/2)
	return nil
}

// cycle runs one listen-transcribe-think-speak-sync pass. A panic in any
// stage is contained here so one bad turn cannot take down the lane.
func (s *Session) cycle(ctx context.Context) (done bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("cycle panicked", "panic", r)
			done, err = false, nil
		}
	}()

	s.setState(StateListening)
	chunk, err := s.source.Capture(ctx, s.config.CaptureWindow)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		s.logger.Error("capture failed", "error", err)
		return false, nil
	}

	s.setState(StateTranscribing)
	res, err := s.transcriber.Transcribe(ctx, chunk)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		s.logger.Error("transcription failed", "error", err)
		return false, nil
	}
	if res.Text == "" {
		s.logger.Debug("window held no speech")
		return false, nil
	}
	s.logger.Info("customer said", "text", res.Text, "latency_ms", res.LatencyMs)

	s.setState(StateThinking)
	reply, err := s.engine.Advance(ctx, res.Text)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if errors.Is(err, brain.ErrEmptyInput) {
			return false, nil
		}
		// The turn left no trace; apologize and let the customer retry.
		s.logger.Error("turn failed", "error", err)
		s.setState(StateSpeaking)
		s.say(ctx, brain.FallbackReply)
		return false, nil
	}

	s.setState(StateSpeaking)
	s.say(ctx, reply)

	s.setState(StateSyncing)
	s.sync(ctx)

	return s.engine.Done(), nil
}

// say synthesizes and plays one line. Speech failures, panics included,
// are logged and swallowed; the conversation carries more state than the
// speaker does.
func (s *Session) say(ctx context.Context, text string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("speech panicked", "panic", r)
		}
	}()

	result, err := s.speaker.Synthesize(ctx, text)
	if err != nil {
		s.logger.Error("synthesis failed", "error", err)
		return
	}
	if err := s.player.Play(ctx, result.Audio); err != nil {
		if ctx.Err() == nil {
			s.logger.Error("playback failed", "error", err)
		}
	}
}

// sync pushes the current order snapshot to the kitchen display.
// Best effort: the engine's order is authoritative, the display is not.
func (s *Session) sync(ctx context.Context) {
	pushCtx, cancel := context.WithTimeout(ctx, s.config.RelayTimeout)
	defer cancel()

	if err := s.pusher.Push(pushCtx, s.engine.Order()); err != nil {
		s.logger.Warn("order push failed", "error", err)
	}
}

func (s *Session) setState(next State) {
	if s.state == next {
		return
	}
	prev := s.state
	s.state = next
	s.logger.Debug("state changed", "from", prev, "to", next)
	if s.OnTransition != nil {
		s.OnTransition(prev, next)
	}
}
