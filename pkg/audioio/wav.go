package audioio

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// EncodeWAV writes the chunk as a PCM16 WAV file. The encoder seeks back
// to patch chunk sizes, hence the WriteSeeker.
func EncodeWAV(ws io.WriteSeeker, c *Chunk) error {
	enc := wav.NewEncoder(ws, c.SampleRate, 16, c.Channels, 1)

	data := make([]int, len(c.Samples))
	for i, s := range c.Samples {
		data[i] = int(s)
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: c.Channels,
			SampleRate:  c.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

// WAVBytes renders the chunk as an in-memory WAV file.
func WAVBytes(c *Chunk) ([]byte, error) {
	var buf seekBuffer
	if err := EncodeWAV(&buf, c); err != nil {
		return nil, err
	}
	return buf.data, nil
}

// seekBuffer is an in-memory io.WriteSeeker for the WAV encoder.
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.data) {
		grown := make([]byte, need)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var next int
	switch whence {
	case io.SeekStart:
		next = int(offset)
	case io.SeekCurrent:
		next = b.pos + int(offset)
	case io.SeekEnd:
		next = len(b.data) + int(offset)
	default:
		return 0, fmt.Errorf("bad whence %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative seek position %d", next)
	}
	b.pos = next
	return int64(next), nil
}
