// Package playback drives a pull-based stereo float32 source through the
// ebiten audio context.
package playback

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Source fills interleaved stereo frames.
type Source interface {
	Process(dst []float32)
}

// FinishingSource is a Source that can report the end of its input.
type FinishingSource interface {
	Source
	Finished() bool
}

const bytesPerFrame = 8 // two float32 channels

// StreamReader adapts a Source to the little-endian float32 byte stream
// expected by ebiten.
type StreamReader struct {
	mu     sync.Mutex
	source Source
	buf    []float32
}

// NewStreamReader returns a reader over source.
func NewStreamReader(source Source) *StreamReader {
	return &StreamReader{source: source}
}

// Read implements io.Reader. It returns io.EOF once a FinishingSource has
// finished.
func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)

	for i, v := range r.buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}

	n := frames * bytesPerFrame
	if fs, ok := r.source.(FinishingSource); ok && fs.Finished() {
		return n, io.EOF
	}
	return n, nil
}

// Close implements io.Closer.
func (r *StreamReader) Close() error { return nil }

var (
	contextOnce sync.Once
	context     *ebitaudio.Context
	contextRate int
)

func sharedContext(sampleRate int) (*ebitaudio.Context, error) {
	contextOnce.Do(func() {
		contextRate = sampleRate
		context = ebitaudio.NewContext(sampleRate)
	})
	if contextRate != sampleRate {
		return nil, fmt.Errorf("playback: audio context already running at %d Hz (requested %d Hz)", contextRate, sampleRate)
	}
	return context, nil
}

// Player plays a Source on the default output device.
type Player struct {
	player *ebitaudio.Player
	reader *StreamReader
}

// NewPlayer creates a paused player. Only one sample rate can be used per
// process.
func NewPlayer(sampleRate int, source Source) (*Player, error) {
	ctx, err := sharedContext(sampleRate)
	if err != nil {
		return nil, err
	}

	reader := NewStreamReader(source)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, fmt.Errorf("playback: %w", err)
	}
	return &Player{player: pl, reader: reader}, nil
}

// Play starts or resumes playback.
func (p *Player) Play() { p.player.Play() }

// IsPlaying reports whether the player is running.
func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Stop halts playback and releases the player.
func (p *Player) Stop() error {
	p.player.Pause()
	p.player.Close()
	return p.reader.Close()
}
