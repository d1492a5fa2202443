package stage

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/graph"
)

// Oscillator is a sine source driven by the "frequency" parameter. The
// first emitted sample is sin(0).
type Oscillator struct {
	params
	frequency *graph.Param

	sampleRate float64
	phase      float64
}

// NewOscillator returns a sine oscillator at freq Hz.
func NewOscillator(cfg core.ProcessorConfig, freq float64) *Oscillator {
	nyquist := cfg.Nyquist()
	o := &Oscillator{
		frequency:  graph.NewParam("frequency", freq, -nyquist, nyquist),
		sampleRate: cfg.SampleRate,
	}
	o.params = params{o.frequency}
	return o
}

// Process implements graph.Stage.
func (o *Oscillator) Process(dst, _ []float64) {
	step := 2 * math.Pi / o.sampleRate
	for i := range dst {
		dst[i] = math.Sin(o.phase)
		o.phase += step * o.frequency.At(i)
	}
	o.phase = math.Mod(o.phase, 2*math.Pi)
}

// Reset restarts the oscillator at phase 0.
func (o *Oscillator) Reset() {
	o.phase = 0
}
