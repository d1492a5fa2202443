package stage

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/effects"
	"github.com/cwbudde/algo-voicefx/dsp/effects/dynamics"
	"github.com/cwbudde/algo-voicefx/dsp/graph"
)

// CompressorSettings are the static compressor parameters.
type CompressorSettings struct {
	ThresholdDB float64
	KneeDB      float64
	Ratio       float64
	Attack      float64 // seconds
	Release     float64 // seconds
}

// Compressor is a dynamics compressor stage. Its parameters are read once
// per quantum.
type Compressor struct {
	params
	threshold, knee, ratio, attack, release *graph.Param

	comp    *dynamics.Compressor
	applied CompressorSettings
}

// NewCompressor returns a compressor stage.
func NewCompressor(cfg core.ProcessorConfig, s CompressorSettings) (*Compressor, error) {
	comp, err := dynamics.NewCompressor(cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}

	c := &Compressor{
		threshold: graph.NewParam("threshold", s.ThresholdDB, -100, 0),
		knee:      graph.NewParam("knee", s.KneeDB, 0, 40),
		ratio:     graph.NewParam("ratio", s.Ratio, 1, 20),
		attack:    graph.NewParam("attack", s.Attack, 0, 1),
		release:   graph.NewParam("release", s.Release, 0, 1),
		comp:      comp,
	}
	c.params = params{c.threshold, c.knee, c.ratio, c.attack, c.release}

	if err := c.apply(c.current()); err != nil {
		return nil, err
	}
	return c, nil
}

// Dynamics returns the underlying compressor for metering.
func (c *Compressor) Dynamics() *dynamics.Compressor { return c.comp }

// Process implements graph.Stage.
func (c *Compressor) Process(dst, src []float64) {
	if s := c.current(); s != c.applied {
		// Values come from clamped params, so the setters cannot fail.
		_ = c.apply(s)
	}
	c.comp.ProcessBlockTo(dst, src)
}

func (c *Compressor) current() CompressorSettings {
	return CompressorSettings{
		ThresholdDB: c.threshold.At(0),
		KneeDB:      c.knee.At(0),
		Ratio:       c.ratio.At(0),
		Attack:      c.attack.At(0),
		Release:     c.release.At(0),
	}
}

func (c *Compressor) apply(s CompressorSettings) error {
	for _, err := range []error{
		c.comp.SetThreshold(s.ThresholdDB),
		c.comp.SetKnee(s.KneeDB),
		c.comp.SetRatio(s.Ratio),
		c.comp.SetAttack(s.Attack),
		c.comp.SetRelease(s.Release),
	} {
		if err != nil {
			return fmt.Errorf("stage: %w", err)
		}
	}
	c.applied = s
	return nil
}

// Waveshaper maps its input through a transfer curve.
type Waveshaper struct {
	shaper *effects.Waveshaper
}

// NewWaveshaper returns a waveshaper stage for curve. A nil curve passes
// audio through.
func NewWaveshaper(curve []float64) (*Waveshaper, error) {
	ws, err := effects.NewWaveshaper(curve)
	if err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}
	return &Waveshaper{shaper: ws}, nil
}

// Process implements graph.Stage.
func (w *Waveshaper) Process(dst, src []float64) {
	w.shaper.ProcessBlockTo(dst, src)
}
