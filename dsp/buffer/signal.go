package buffer

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-vecmath"
	"github.com/tphakala/simd/f64"
)

// ErrRaggedChannels is returned when channels differ in length.
var ErrRaggedChannels = errors.New("buffer: channels differ in length")

// Signal is a finite planar audio signal. Samples are nominally within
// [-1, 1]. Channels all have the same length.
type Signal struct {
	SampleRate float64
	Channels   [][]float64
}

// New returns a silent signal.
func New(channels, frames int, sampleRate float64) *Signal {
	channels = max(channels, 0)
	frames = max(frames, 0)

	s := &Signal{SampleRate: sampleRate, Channels: make([][]float64, channels)}
	for ch := range s.Channels {
		s.Channels[ch] = make([]float64, frames)
	}
	return s
}

// FromMono wraps samples as a one-channel signal without copying.
func FromMono(samples []float64, sampleRate float64) *Signal {
	return &Signal{SampleRate: sampleRate, Channels: [][]float64{samples}}
}

// NumChannels returns the channel count.
func (s *Signal) NumChannels() int { return len(s.Channels) }

// Frames returns the per-channel length.
func (s *Signal) Frames() int {
	if len(s.Channels) == 0 {
		return 0
	}
	return len(s.Channels[0])
}

// Duration returns the signal length in time.
func (s *Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(s.Frames()) * float64(time.Second) / s.SampleRate)
}

// Validate checks the sample rate and channel lengths.
func (s *Signal) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("buffer: sample rate must be > 0: %v", s.SampleRate)
	}
	if len(s.Channels) == 0 {
		return errors.New("buffer: signal has no channels")
	}
	n := len(s.Channels[0])
	for ch, data := range s.Channels {
		if len(data) != n {
			return fmt.Errorf("%w: channel %d has %d frames, want %d", ErrRaggedChannels, ch, len(data), n)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (s *Signal) Clone() *Signal {
	c := &Signal{SampleRate: s.SampleRate, Channels: make([][]float64, len(s.Channels))}
	for ch, data := range s.Channels {
		c.Channels[ch] = append([]float64(nil), data...)
	}
	return c
}

// Mono returns the average of all channels as a new slice.
func (s *Signal) Mono() []float64 {
	out := make([]float64, s.Frames())
	if len(s.Channels) == 0 {
		return out
	}
	for _, data := range s.Channels {
		vecmath.AddBlockInPlace(out, data[:len(out)])
	}
	if len(s.Channels) > 1 {
		f64.Scale(out, out, 1/float64(len(s.Channels)))
	}
	return out
}

// Append adds frames to every channel. frames must have one slice per
// channel, all of equal length.
func (s *Signal) Append(frames [][]float64) error {
	if len(frames) != len(s.Channels) {
		return fmt.Errorf("buffer: append %d channels to %d", len(frames), len(s.Channels))
	}
	for ch := range frames {
		if len(frames[ch]) != len(frames[0]) {
			return ErrRaggedChannels
		}
	}
	for ch := range s.Channels {
		s.Channels[ch] = append(s.Channels[ch], frames[ch]...)
	}
	return nil
}
