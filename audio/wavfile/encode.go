package wavfile

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// Container layout.
const (
	HeaderSize    = 44
	BitsPerSample = 16

	bytesPerSample = BitsPerSample / 8
	fmtChunkSize   = 16
	formatPCM      = 1
	fullScale      = 32767.0
	writerBuffer   = 64 << 10
)

// ErrNoChannels is returned when encoding a signal without channels.
var ErrNoChannels = errors.New("wavfile: signal has no channels")

// Header describes a canonical PCM header.
type Header struct {
	Channels   int
	SampleRate int
	Frames     int
}

// DataSize returns the data chunk length in bytes.
func (h Header) DataSize() int { return h.Frames * h.Channels * bytesPerSample }

// ByteRate returns sampleRate * channels * 2.
func (h Header) ByteRate() int { return h.SampleRate * h.Channels * bytesPerSample }

// BlockAlign returns channels * 2.
func (h Header) BlockAlign() int { return h.Channels * bytesPerSample }

// Bytes returns the 44-byte header.
func (h Header) Bytes() []byte {
	header := make([]byte, HeaderSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(HeaderSize-8+h.DataSize()))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(h.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(h.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(h.ByteRate()))
	binary.LittleEndian.PutUint16(header[32:34], uint16(h.BlockAlign()))
	binary.LittleEndian.PutUint16(header[34:36], BitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(h.DataSize()))

	return header
}

// Quantize clamps x to [-1, 1] and scales it to a 16-bit sample,
// truncating toward zero. NaN maps to 0.
func Quantize(x float64) int16 {
	return int16(core.ClampUnit(x) * fullScale)
}

// Encode returns sig as a canonical WAV file.
func Encode(sig *buffer.Signal) ([]byte, error) {
	var out bytes.Buffer
	if err := Write(&out, sig); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Write streams sig as a canonical WAV file to w.
func Write(w io.Writer, sig *buffer.Signal) error {
	if sig.NumChannels() == 0 {
		return ErrNoChannels
	}
	if err := sig.Validate(); err != nil {
		return fmt.Errorf("wavfile: %w", err)
	}

	h := Header{
		Channels:   sig.NumChannels(),
		SampleRate: int(math.Round(sig.SampleRate)),
		Frames:     sig.Frames(),
	}

	bw := bufio.NewWriterSize(w, writerBuffer)
	if _, err := bw.Write(h.Bytes()); err != nil {
		return fmt.Errorf("wavfile: write header: %w", err)
	}

	data := make([]byte, h.DataSize())
	for i, x := range interleave(sig.Channels) {
		binary.LittleEndian.PutUint16(data[i*bytesPerSample:], uint16(Quantize(x)))
	}
	if _, err := bw.Write(data); err != nil {
		return fmt.Errorf("wavfile: write data: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("wavfile: flush: %w", err)
	}
	return nil
}

func interleave(channels [][]float64) []float64 {
	switch len(channels) {
	case 1:
		return channels[0]
	case 2:
		out := make([]float64, 2*len(channels[0]))
		f64.Interleave2(out, channels[0], channels[1])
		return out
	}

	n := len(channels)
	out := make([]float64, n*len(channels[0]))
	for ch, data := range channels {
		for i, x := range data {
			out[i*n+ch] = x
		}
	}
	return out
}
