// Package webdemo is the browser-side engine behind the wasm bridge: it
// patches the selected effect into the page's microphone stream and
// renders exports.
package webdemo

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-voicefx/audio/monitor"
	"github.com/cwbudde/algo-voicefx/audio/render"
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/route"
	"github.com/cwbudde/algo-voicefx/dsp/voicefx"
)

// Engine holds one live patch and a renderer.
type Engine struct {
	sampleRate float64
	gain       float64

	router   *route.Router
	renderer *render.Renderer

	in, out []float64
}

// NewEngine creates an engine with a pass-through patch.
func NewEngine(sampleRate float64) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0: %f", sampleRate)
	}

	cfg := core.ApplyProcessorOptions(core.WithSampleRate(sampleRate))
	router, err := route.New(cfg)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	renderer, err := render.New(render.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &Engine{
		sampleRate: sampleRate,
		gain:       monitor.DefaultPreviewGain,
		router:     router,
		renderer:   renderer,
	}, nil
}

// ListEffects returns the catalog.
func (e *Engine) ListEffects() []voicefx.Descriptor {
	return route.ListEffects()
}

// SetEffect replaces the live patch.
func (e *Engine) SetEffect(id string, intensity int) error {
	return e.router.SetEffect(voicefx.ID(id), voicefx.Intensity(intensity))
}

// SetRecording switches between preview and recording monitoring. The
// active effect is rebuilt so no state carries over from the previous
// mode.
func (e *Engine) SetRecording(recording bool) error {
	if recording {
		e.gain = monitor.DefaultRecordingGain
	} else {
		e.gain = monitor.DefaultPreviewGain
	}

	id, intensity, ok := e.router.Active()
	if !ok {
		return nil
	}
	return e.router.SetEffect(id, intensity)
}

// Gain returns the monitor gain.
func (e *Engine) Gain() float64 { return e.gain }

// Process runs one block of mono microphone samples through the patch
// into dst. Block lengths that are multiples of 128 keep effect state
// continuous.
func (e *Engine) Process(dst, src []float32) error {
	n := min(len(dst), len(src))
	if cap(e.in) < n {
		e.in = make([]float64, n)
		e.out = make([]float64, n)
	}
	in, out := e.in[:n], e.out[:n]

	for i, v := range src[:n] {
		in[i] = float64(v)
	}
	if err := e.router.Process(out, in); err != nil {
		return err
	}
	for i, y := range out {
		dst[i] = float32(core.ClampUnit(y * e.gain))
	}
	return nil
}

// Export renders a recorded WAV blob. On failure the blob comes back
// unchanged with processed set to false.
func (e *Engine) Export(recording []byte, id string, intensity int) (data []byte, filename string, processed bool) {
	exp := e.renderer.Export(recording, voicefx.ID(id), voicefx.Intensity(intensity))
	return exp.Data, exp.Filename, exp.Processed
}
