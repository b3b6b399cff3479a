package audioio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// speaker.Init may only run once per process; later sample rates are
// resampled to the first one.
var speakerOnce sync.Once

// BeepPlayer plays MP3 buffers through the system speaker.
type BeepPlayer struct{}

// NewBeepPlayer returns a speaker-backed player.
func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{}
}

// Play decodes and plays an MP3 buffer, blocking until playback finishes
// or ctx is cancelled. Cancellation stops playback immediately.
func (p *BeepPlayer) Play(ctx context.Context, mp3Data []byte) error {
	streamer, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(mp3Data)))
	if err != nil {
		return fmt.Errorf("decode mp3: %w", err)
	}
	defer streamer.Close()

	var initErr error
	speakerOnce.Do(func() {
		initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	if initErr != nil {
		return fmt.Errorf("init speaker: %w", initErr)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

// Close releases the playback device.
func (p *BeepPlayer) Close() error {
	speaker.Clear()
	return nil
}

var _ Player = (*BeepPlayer)(nil)
