package capture

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-voicefx/audio/wavfile"
	"github.com/cwbudde/algo-voicefx/dsp/buffer"
)

func TestRawConstraints(t *testing.T) {
	c := Raw(44100)
	assert.False(t, c.EchoCancellation)
	assert.False(t, c.NoiseSuppression)
	assert.False(t, c.AutoGainControl)
	assert.InDelta(t, 44100.0, c.SampleRate, 0)
}

func TestFileDeviceLoops(t *testing.T) {
	dev, err := NewFileDevice(buffer.FromMono([]float64{1, 2, 3}, 8000), true)
	require.NoError(t, err)

	s, err := dev.Open(Raw(0))
	require.NoError(t, err)

	dst := make([]float64, 7)
	n, err := s.Read(dst)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3, 1}, dst)
}

func TestFileDeviceEnds(t *testing.T) {
	dev, err := NewFileDevice(buffer.FromMono([]float64{1, 2}, 8000), false)
	require.NoError(t, err)
	s, err := dev.Open(Raw(8000))
	require.NoError(t, err)

	dst := make([]float64, 4)
	n, err := s.Read(dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = s.Read(dst)
	assert.ErrorIs(t, err, io.EOF)
}

func TestFileDeviceMixesDown(t *testing.T) {
	sig := &buffer.Signal{SampleRate: 8000, Channels: [][]float64{{1, 1}, {0, -1}}}
	dev, err := NewFileDevice(sig, false)
	require.NoError(t, err)

	s, err := dev.Open(Constraints{})
	require.NoError(t, err)
	dst := make([]float64, 2)
	_, err = s.Read(dst)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0}, dst)
}

func TestRateMismatch(t *testing.T) {
	dev, err := NewFileDevice(buffer.New(1, 10, 8000), true)
	require.NoError(t, err)
	_, err = dev.Open(Raw(44100))
	assert.ErrorIs(t, err, ErrDeviceAccess)
}

func TestClosedStream(t *testing.T) {
	dev, err := NewFileDevice(buffer.New(1, 10, 8000), true)
	require.NoError(t, err)
	s, err := dev.Open(Raw(0))
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	_, err = s.Read(make([]float64, 4))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.wav")
	data, err := wavfile.Encode(buffer.FromMono([]float64{0, 0.5, -0.5}, 16000))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	dev, err := OpenFile(path, false)
	require.NoError(t, err)
	assert.InDelta(t, 16000.0, dev.SampleRate(), 0)

	_, err = OpenFile(filepath.Join(t.TempDir(), "missing.wav"), false)
	assert.ErrorIs(t, err, ErrDeviceAccess)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(8000)
	r.Write([]float64{1, 2})
	r.Write([]float64{3})
	assert.Equal(t, 3, r.Len())

	sig := r.Signal()
	assert.Equal(t, []float64{1, 2, 3}, sig.Channels[0])
	sig.Channels[0][0] = 9
	assert.Equal(t, []float64{1, 2, 3}, r.Signal().Channels[0])
}
