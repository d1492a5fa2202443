package wavfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
)

// ErrInvalidContainer is returned for input that is not a readable PCM
// WAV file.
var ErrInvalidContainer = errors.New("wavfile: invalid container")

// Decode reads a PCM WAV file into a planar signal normalized to [-1, 1].
func Decode(r io.ReadSeeker) (*buffer.Signal, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidContainer
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: missing format", ErrInvalidContainer)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContainer, err)
	}

	if pcm.Format == nil {
		pcm.Format = format
	}
	return fromIntBuffer(pcm, int(dec.BitDepth))
}

// fromIntBuffer deinterleaves integer PCM into a planar signal.
func fromIntBuffer(pcm *audio.IntBuffer, bitDepth int) (*buffer.Signal, error) {
	scale, offset, err := sampleScale(bitDepth)
	if err != nil {
		return nil, err
	}

	channels := pcm.Format.NumChannels
	frames := len(pcm.Data) / channels
	sig := buffer.New(channels, frames, float64(pcm.Format.SampleRate))
	for i := range frames {
		for ch := range channels {
			sig.Channels[ch][i] = float64(pcm.Data[i*channels+ch]-offset) / scale
		}
	}
	return sig, nil
}

// DecodeBytes decodes an in-memory WAV file.
func DecodeBytes(data []byte) (*buffer.Signal, error) {
	return Decode(bytes.NewReader(data))
}

func sampleScale(bitDepth int) (scale float64, offset int, err error) {
	switch bitDepth {
	case 8:
		return 127, 128, nil
	case 16, 24, 32:
		return float64(int(1)<<(bitDepth-1) - 1), 0, nil
	default:
		return 0, 0, fmt.Errorf("%w: unsupported bit depth %d", ErrInvalidContainer, bitDepth)
	}
}
