// Package monitor runs the live preview and recording modes: it opens the
// capture device, patches the selected effect between the device and the
// output, and renders interleaved stereo for a playback sink.
package monitor

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-voicefx/audio/capture"
	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/route"
	"github.com/cwbudde/algo-voicefx/dsp/voicefx"
)

// Default output gains.
const (
	DefaultPreviewGain   = 0.7
	DefaultRecordingGain = 0.6
)

// Errors returned by mode transitions.
var (
	ErrRecording    = errors.New("monitor: recording in progress")
	ErrNotRecording = errors.New("monitor: not recording")
	ErrClosed       = errors.New("monitor: closed")
)

// Mode is the active processing context.
type Mode int

// Modes.
const (
	Idle Mode = iota
	Preview
	Recording
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Preview:
		return "preview"
	case Recording:
		return "recording"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Monitor owns at most one capture stream and one effect subgraph. It is
// safe for concurrent use: the playback sink calls Process while the UI
// switches modes and effects.
type Monitor struct {
	device capture.Device
	cfg    core.ProcessorConfig
	seed   int64
	log    logrus.FieldLogger

	previewGain   float64
	recordingGain float64

	mu        sync.Mutex
	mode      Mode
	id        voicefx.ID
	intensity voicefx.Intensity
	stream    capture.Stream
	router    *route.Router
	recorder  *capture.Recorder
	gain      float64
	finished  bool
	closed    bool

	pool    *buffer.Pool
	out     []float64
	pending []float64
}

// Option configures a Monitor.
type Option func(*Monitor) error

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Monitor) error {
		if l == nil {
			return errors.New("monitor: nil logger")
		}
		m.log = l
		return nil
	}
}

// WithGains sets the preview and recording output gains.
func WithGains(preview, recording float64) Option {
	return func(m *Monitor) error {
		if preview < 0 || recording < 0 || !core.IsFinite(preview) || !core.IsFinite(recording) {
			return fmt.Errorf("monitor: invalid gains %v, %v", preview, recording)
		}
		m.previewGain = preview
		m.recordingGain = recording
		return nil
	}
}

// WithQuantum sets the graph block size.
func WithQuantum(n int) Option {
	return func(m *Monitor) error {
		if n <= 0 {
			return fmt.Errorf("monitor: quantum must be > 0: %d", n)
		}
		m.cfg.BlockSize = n
		return nil
	}
}

// WithSeed sets the reverb impulse seed.
func WithSeed(seed int64) Option {
	return func(m *Monitor) error {
		m.seed = seed
		return nil
	}
}

// New returns an idle monitor capturing from device at sampleRate.
func New(device capture.Device, sampleRate float64, opts ...Option) (*Monitor, error) {
	if device == nil {
		return nil, errors.New("monitor: nil device")
	}

	m := &Monitor{
		device:        device,
		cfg:           core.ProcessorConfig{SampleRate: sampleRate, BlockSize: core.DefaultQuantum},
		seed:          voicefx.DefaultSeed,
		log:           logrus.StandardLogger(),
		previewGain:   DefaultPreviewGain,
		recordingGain: DefaultRecordingGain,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	if err := m.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("monitor: %w", err)
	}
	m.pool = buffer.NewPool(m.cfg.BlockSize)
	m.out = make([]float64, m.cfg.BlockSize)
	return m, nil
}

// SampleRate returns the processing rate.
func (m *Monitor) SampleRate() float64 { return m.cfg.SampleRate }

// Mode returns the active mode.
func (m *Monitor) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Selection returns the selected effect and intensity.
func (m *Monitor) Selection() (voicefx.ID, voicefx.Intensity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id, m.intensity
}

// Gain returns the current output gain, zero when idle.
func (m *Monitor) Gain() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gain
}

// SetEffect selects the effect used by the current and later modes. An
// active subgraph is rebuilt immediately.
func (m *Monitor) SetEffect(id voicefx.ID, intensity voicefx.Intensity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	m.id = id
	m.intensity = intensity.Clamp()
	if m.router == nil {
		return nil
	}

	m.log.WithFields(logrus.Fields{
		"mode":      m.mode,
		"effect":    id,
		"intensity": m.intensity,
	}).Debug("switching effect")

	if err := m.router.SetEffect(id, m.intensity); err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	return nil
}

// StartPreview opens the device and plays the selected effect at the
// preview gain. A running preview is restarted. Preview cannot start
// while recording.
func (m *Monitor) StartPreview() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.closed:
		return ErrClosed
	case m.mode == Recording:
		return ErrRecording
	}

	m.stopLocked()
	return m.startLocked(Preview, m.previewGain)
}

// StopPreview ends the preview and releases the device. It is a no-op
// outside preview.
func (m *Monitor) StopPreview() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode == Preview {
		m.stopLocked()
	}
}

// StartRecording tears down any preview, opens the device and records the
// raw input while monitoring the effect at the recording gain.
func (m *Monitor) StartRecording() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.closed:
		return ErrClosed
	case m.mode == Recording:
		return ErrRecording
	}

	m.stopLocked()
	if err := m.startLocked(Recording, m.recordingGain); err != nil {
		return err
	}
	m.recorder = capture.NewRecorder(m.cfg.SampleRate)
	return nil
}

// StopRecording ends the recording, releases the device and returns the
// unprocessed capture.
func (m *Monitor) StopRecording() (*buffer.Signal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode != Recording {
		return nil, ErrNotRecording
	}

	rec := m.recorder
	m.stopLocked()

	sig := rec.Signal()
	m.log.WithFields(logrus.Fields{
		"frames":   sig.Frames(),
		"duration": sig.Duration(),
	}).Info("recording stopped")
	return sig, nil
}

// Finished reports whether a finite capture source has run out.
func (m *Monitor) Finished() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finished
}

// Close stops any mode. Closing twice returns ErrClosed.
func (m *Monitor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.stopLocked()
	m.closed = true
	return nil
}

func (m *Monitor) startLocked(mode Mode, gain float64) error {
	log := m.log.WithFields(logrus.Fields{"mode": mode, "effect": m.id, "intensity": m.intensity})

	stream, err := m.device.Open(capture.Raw(m.cfg.SampleRate))
	if err != nil {
		log.WithError(err).Error("cannot open capture device")
		return fmt.Errorf("monitor: %w: %w", capture.ErrDeviceAccess, err)
	}

	router, err := route.New(m.cfg, voicefx.WithSeed(m.seed))
	if err == nil && m.id != "" {
		err = router.SetEffect(m.id, m.intensity)
	}
	if err != nil {
		_ = stream.Close()
		if router != nil {
			_ = router.Close()
		}
		log.WithError(err).Error("cannot build effect")
		return fmt.Errorf("monitor: %w", err)
	}

	m.mode = mode
	m.stream = stream
	m.router = router
	m.gain = gain
	m.finished = false
	m.pending = m.pending[:0]

	log.Info("monitor started")
	return nil
}

// stopLocked releases the stream and subgraph on every path.
func (m *Monitor) stopLocked() {
	if m.stream != nil {
		if err := m.stream.Close(); err != nil {
			m.log.WithError(err).Warn("capture stream close failed")
		}
		m.stream = nil
	}
	if m.router != nil {
		_ = m.router.Close()
		m.router = nil
	}
	if m.mode != Idle {
		m.log.WithField("mode", m.mode).Info("monitor stopped")
	}
	m.mode = Idle
	m.gain = 0
	m.recorder = nil
	m.pending = m.pending[:0]
}

// Process fills dst with interleaved stereo float32 frames. It outputs
// silence when idle or once the source is exhausted.
func (m *Monitor) Process(dst []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	frames := len(dst) / 2
	for i := 0; i < frames; {
		if len(m.pending) == 0 && !m.renderQuantumLocked() {
			clear(dst[2*i:])
			return
		}

		n := min(frames-i, len(m.pending))
		for j, y := range m.pending[:n] {
			v := float32(y * m.gain)
			dst[2*(i+j)] = v
			dst[2*(i+j)+1] = v
		}
		m.pending = m.pending[n:]
		i += n
	}
}

// renderQuantumLocked reads one quantum from the stream into pending. It
// returns false when there is nothing to play.
func (m *Monitor) renderQuantumLocked() bool {
	if m.stream == nil || m.finished {
		return false
	}

	in := m.pool.Get()
	defer m.pool.Put(in)

	n, err := m.stream.Read(in)
	switch {
	case errors.Is(err, io.EOF):
		m.finished = true
	case err != nil:
		m.log.WithError(err).Warn("capture read failed")
		m.finished = true
	}
	if n == 0 {
		return false
	}
	clear(in[n:])

	if m.recorder != nil {
		m.recorder.Write(in[:n])
	}

	out := m.out
	if err := m.router.Process(out, in); err != nil {
		m.log.WithError(err).Warn("effect processing failed")
		return false
	}
	m.pending = out[:n]
	return true
}
