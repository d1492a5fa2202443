package render

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-voicefx/audio/wavfile"
	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/voicefx"
	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func newRenderer(t *testing.T, opts ...Option) (*Renderer, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	r, err := New(append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	return r, hook
}

func TestTelephoneOnSilence(t *testing.T) {
	r, _ := newRenderer(t)

	res, err := r.Render(buffer.New(1, 44100, 44100), voicefx.Telephone, 100)
	require.NoError(t, err)

	data, err := wavfile.Encode(res.Signal)
	require.NoError(t, err)
	require.Len(t, data, wavfile.HeaderSize+44100*2)
	assert.Equal(t, uint32(44100*2), binary.LittleEndian.Uint32(data[40:44]))

	for i := wavfile.HeaderSize; i < len(data); i += 2 {
		require.Zero(t, int16(binary.LittleEndian.Uint16(data[i:])), "sample at byte %d", i)
	}
}

func TestRenderKeepsShape(t *testing.T) {
	r, _ := newRenderer(t)

	sig := buffer.New(2, 5000, 48000)
	copy(sig.Channels[0], testutil.Voice(48000, 5000))
	copy(sig.Channels[1], testutil.Voice(48000, 5000))

	for _, d := range voicefx.List() {
		res, err := r.Render(sig, d.ID, 70)
		require.NoError(t, err, d.ID)
		assert.Equal(t, 2, res.Signal.NumChannels())
		assert.Equal(t, 5000, res.Signal.Frames())
		assert.InDelta(t, 48000.0, res.Signal.SampleRate, 0)
		for _, data := range res.Signal.Channels {
			testutil.RequireFinite(t, data)
		}
	}
}

func TestRenderClamps(t *testing.T) {
	r, _ := newRenderer(t)

	sig := buffer.FromMono(testutil.DeterministicSine(1000, 44100, 0.9, 44100), 44100)
	res, err := r.Render(sig, voicefx.Telephone, 100)
	require.NoError(t, err)

	assert.Greater(t, res.Stats.Peak, 1.0)
	assert.Positive(t, res.Stats.Clipped)
	for _, x := range res.Signal.Channels[0] {
		require.LessOrEqual(t, math.Abs(x), 1.0)
	}
}

func TestRenderDeterministic(t *testing.T) {
	r, _ := newRenderer(t, WithSeed(42))
	sig := buffer.FromMono(testutil.Voice(44100, 8000), 44100)

	a, err := r.Render(sig, voicefx.Reverb, 80)
	require.NoError(t, err)
	b, err := r.Render(sig, voicefx.Reverb, 80)
	require.NoError(t, err)

	assert.Equal(t, a.Signal.Channels, b.Signal.Channels)
}

func TestRenderLeavesInputUntouched(t *testing.T) {
	r, _ := newRenderer(t)
	src := testutil.Voice(44100, 2048)
	sig := buffer.FromMono(append([]float64(nil), src...), 44100)

	_, err := r.Render(sig, voicefx.Radio, 100)
	require.NoError(t, err)
	assert.Equal(t, src, sig.Channels[0])
}

func TestRenderEmpty(t *testing.T) {
	r, _ := newRenderer(t)

	res, err := r.Render(buffer.New(1, 0, 44100), voicefx.Echo, 50)
	require.NoError(t, err)
	assert.Zero(t, res.Signal.Frames())

	data, err := wavfile.Encode(res.Signal)
	require.NoError(t, err)
	assert.Len(t, data, wavfile.HeaderSize)
}

func TestRenderRejectsInvalidSignal(t *testing.T) {
	r, _ := newRenderer(t)
	_, err := r.Render(&buffer.Signal{SampleRate: 0, Channels: [][]float64{{0}}}, voicefx.Delay, 10)
	require.Error(t, err)
}

func TestExportProcessed(t *testing.T) {
	clock := func() time.Time { return time.UnixMilli(1700000000123) }
	r, hook := newRenderer(t, WithClock(clock))

	rec, err := wavfile.Encode(buffer.FromMono(testutil.Voice(44100, 4410), 44100))
	require.NoError(t, err)

	exp := r.Export(rec, voicefx.Delay, 50)
	assert.True(t, exp.Processed)
	assert.Equal(t, "voice-effect-delay-1700000000123.wav", exp.Filename)
	assert.Equal(t, MIMEType, exp.MIMEType)
	assert.Len(t, exp.Data, len(rec))
	assert.NotEqual(t, rec, exp.Data)

	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.WarnLevel, e.Level)
	}
}

func TestExportFallsBack(t *testing.T) {
	r, hook := newRenderer(t)

	rec := []byte("not a recording")
	exp := r.Export(rec, voicefx.Reverb, 100)

	assert.False(t, exp.Processed)
	assert.Equal(t, rec, exp.Data)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, voicefx.Reverb, entry.Data["effect"])
}

func TestOptionsValidate(t *testing.T) {
	_, err := New(WithQuantum(0))
	require.Error(t, err)
	_, err = New(WithLogger(nil))
	require.Error(t, err)
	_, err = New(WithClock(nil))
	require.Error(t, err)
}

func TestRenderRejectsQuantumLongerThanLoop(t *testing.T) {
	r, hook := newRenderer(t, WithQuantum(8192))

	_, err := r.Render(buffer.FromMono(testutil.Impulse(16384, 0), 44100), voicefx.Delay, 1)
	require.ErrorIs(t, err, voicefx.ErrQuantumTooLong)

	rec, err := wavfile.Encode(buffer.FromMono(testutil.Impulse(16384, 0), 44100))
	require.NoError(t, err)
	exp := r.Export(rec, voicefx.Echo, 50)
	assert.False(t, exp.Processed)
	assert.Equal(t, rec, exp.Data)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
