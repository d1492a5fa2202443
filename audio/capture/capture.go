// Package capture defines the microphone collaborator of the live monitor
// and a file-backed device that stands in for one.
package capture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cwbudde/algo-voicefx/audio/wavfile"
	"github.com/cwbudde/algo-voicefx/dsp/buffer"
)

// Errors returned by devices and streams.
var (
	ErrDeviceAccess = errors.New("capture: device access denied")
	ErrClosed       = errors.New("capture: stream closed")
)

// Constraints are the capture settings requested from a device.
type Constraints struct {
	EchoCancellation bool
	NoiseSuppression bool
	AutoGainControl  bool
	SampleRate       float64 // 0 accepts the device rate
}

// Raw returns constraints with all voice processing disabled, so the
// effect sees the unaltered microphone signal.
func Raw(sampleRate float64) Constraints {
	return Constraints{SampleRate: sampleRate}
}

// Device opens capture streams.
type Device interface {
	Open(c Constraints) (Stream, error)
}

// Stream delivers mono samples. Read fills dst and returns the number of
// samples written; io.EOF marks the end of a finite source. Close stops
// the underlying tracks and is safe to call more than once.
type Stream interface {
	Read(dst []float64) (int, error)
	SampleRate() float64
	Close() error
}

// FileDevice plays a decoded recording as if it were a microphone.
type FileDevice struct {
	samples    []float64
	sampleRate float64
	loop       bool
}

// NewFileDevice returns a device that streams the mono mixdown of sig.
// With loop set the stream never ends.
func NewFileDevice(sig *buffer.Signal, loop bool) (*FileDevice, error) {
	if err := sig.Validate(); err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	return &FileDevice{samples: sig.Mono(), sampleRate: sig.SampleRate, loop: loop}, nil
}

// OpenFile decodes a WAV file into a FileDevice.
func OpenFile(path string, loop bool) (*FileDevice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceAccess, err)
	}
	defer f.Close()

	sig, err := wavfile.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("capture: %s: %w", path, err)
	}
	return NewFileDevice(sig, loop)
}

// SampleRate returns the source rate.
func (d *FileDevice) SampleRate() float64 { return d.sampleRate }

// Open implements Device. Voice processing flags are ignored; a requested
// sample rate must match the file.
func (d *FileDevice) Open(c Constraints) (Stream, error) {
	if c.SampleRate != 0 && c.SampleRate != d.sampleRate {
		return nil, fmt.Errorf("%w: file rate %v, requested %v", ErrDeviceAccess, d.sampleRate, c.SampleRate)
	}
	return &fileStream{dev: d}, nil
}

type fileStream struct {
	mu     sync.Mutex
	dev    *FileDevice
	pos    int
	closed bool
}

func (s *fileStream) Read(dst []float64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	src := s.dev.samples
	n := 0
	for n < len(dst) {
		if s.pos >= len(src) {
			if !s.dev.loop || len(src) == 0 {
				if n == 0 {
					return 0, io.EOF
				}
				return n, nil
			}
			s.pos = 0
		}
		c := copy(dst[n:], src[s.pos:])
		n += c
		s.pos += c
	}
	return n, nil
}

func (s *fileStream) SampleRate() float64 { return s.dev.sampleRate }

func (s *fileStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
