package tts_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Erunixz/thru.ai/pkg/tts"
)

func TestMockProvider(t *testing.T) {
	mock := tts.NewMock()
	ctx := context.Background()

	t.Run("Synthesize returns audio", func(t *testing.T) {
		result, err := mock.Synthesize(ctx, "Hello world")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Audio) == 0 {
			t.Error("expected audio data")
		}
		if result.CharCount != 11 {
			t.Errorf("expected 11 chars, got %d", result.CharCount)
		}
		if result.Format.Encoding != tts.EncodingMP3 {
			t.Errorf("expected mp3 encoding, got %s", result.Format.Encoding)
		}
	})

	t.Run("Health returns nil", func(t *testing.T) {
		if err := mock.Health(ctx); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Calls are tracked", func(t *testing.T) {
		if mock.CallCount("Synthesize") != 1 {
			t.Errorf("expected 1 Synthesize call, got %d", mock.CallCount("Synthesize"))
		}
		last := mock.LastCall()
		if last == nil || last.Method != "Health" {
			t.Errorf("unexpected last call: %+v", last)
		}
	})

	t.Run("Reset clears calls", func(t *testing.T) {
		mock.Reset()
		if len(mock.Calls()) != 0 {
			t.Error("expected calls to be cleared")
		}
	})
}

func TestMockWithError(t *testing.T) {
	testErr := errors.New("test error")
	mock := tts.WithError(testErr)
	ctx := context.Background()

	if _, err := mock.Synthesize(ctx, "Hello"); !errors.Is(err, testErr) {
		t.Errorf("expected test error, got %v", err)
	}
	if err := mock.Health(ctx); !errors.Is(err, testErr) {
		t.Errorf("expected test error, got %v", err)
	}
}

func TestElevenLabsSynthesize(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fakeMP3 := []byte{0xFF, 0xF3, 0x01, 0x02, 0x03}
		var gotPayload map[string]interface{}

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/text-to-speech/voice-123" {
				t.Errorf("path = %q", r.URL.Path)
			}
			if key := r.Header.Get("xi-api-key"); key != "test-key" {
				t.Errorf("xi-api-key = %q", key)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
				t.Errorf("decode payload: %v", err)
			}
			w.Write(fakeMP3)
		}))
		defer srv.Close()

		provider, err := tts.NewElevenLabs(
			tts.WithAPIKey("test-key"),
			tts.WithVoice("voice-123"),
			tts.WithBaseURL(srv.URL),
		)
		if err != nil {
			t.Fatalf("NewElevenLabs: %v", err)
		}
		defer provider.Close()

		result, err := provider.Synthesize(context.Background(), "Your total is $6.49.")
		if err != nil {
			t.Fatalf("Synthesize: %v", err)
		}
		if len(result.Audio) != len(fakeMP3) {
			t.Errorf("audio len = %d", len(result.Audio))
		}
		if result.Format.Encoding != tts.EncodingMP3 {
			t.Errorf("encoding = %s", result.Format.Encoding)
		}

		if gotPayload["text"] != "Your total is $6.49." {
			t.Errorf("payload text = %v", gotPayload["text"])
		}
		if gotPayload["model_id"] != tts.ModelTurboV2_5 {
			t.Errorf("payload model_id = %v", gotPayload["model_id"])
		}
	})

	t.Run("retries on 429", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte{0xFF, 0xF3})
		}))
		defer srv.Close()

		provider, err := tts.NewElevenLabs(
			tts.WithAPIKey("test-key"),
			tts.WithVoice("voice-123"),
			tts.WithBaseURL(srv.URL),
			tts.WithRetry(2, time.Millisecond),
		)
		if err != nil {
			t.Fatalf("NewElevenLabs: %v", err)
		}
		defer provider.Close()

		if _, err := provider.Synthesize(context.Background(), "hello"); err != nil {
			t.Fatalf("Synthesize: %v", err)
		}
		if got := atomic.LoadInt32(&calls); got != 2 {
			t.Errorf("calls = %d, want 2", got)
		}
	})

	t.Run("api error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":{"message":"invalid key","status":"unauthorized"}}`))
		}))
		defer srv.Close()

		provider, err := tts.NewElevenLabs(
			tts.WithAPIKey("bad-key"),
			tts.WithVoice("voice-123"),
			tts.WithBaseURL(srv.URL),
		)
		if err != nil {
			t.Fatalf("NewElevenLabs: %v", err)
		}
		defer provider.Close()

		_, err = provider.Synthesize(context.Background(), "hello")
		var apiErr *tts.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("err = %v, want *APIError", err)
		}
		if !apiErr.IsUnauthorized() {
			t.Errorf("IsUnauthorized() = false for status %d", apiErr.StatusCode)
		}
		if apiErr.Message != "invalid key" {
			t.Errorf("message = %q", apiErr.Message)
		}
	})
}

func TestValidation(t *testing.T) {
	if _, err := tts.NewElevenLabs(); !errors.Is(err, tts.ErrNoAPIKey) {
		t.Errorf("err = %v, want ErrNoAPIKey", err)
	}
	if _, err := tts.NewElevenLabs(tts.WithAPIKey("k")); !errors.Is(err, tts.ErrNoVoiceID) {
		t.Errorf("err = %v, want ErrNoVoiceID", err)
	}
}
