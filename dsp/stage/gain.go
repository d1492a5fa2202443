package stage

import (
	"github.com/cwbudde/algo-vecmath"
	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/graph"
)

// Gain multiplies its input by the "gain" parameter.
type Gain struct {
	params
	gain *graph.Param
}

// NewGain returns a gain stage with the given intrinsic factor.
func NewGain(value float64) *Gain {
	g := &Gain{gain: graph.NewParam("gain", value, -maxValue, maxValue)}
	g.params = params{g.gain}
	return g
}

// Process implements graph.Stage.
func (g *Gain) Process(dst, src []float64) {
	if values := g.gain.Values(); values != nil {
		vecmath.MulBlock(dst, src, values)
		return
	}
	f64.Scale(dst, src, g.gain.Value())
}

// Constant emits the "offset" parameter as a signal.
type Constant struct {
	params
	offset *graph.Param
}

// NewConstant returns a DC source.
func NewConstant(offset float64) *Constant {
	c := &Constant{offset: graph.NewParam("offset", offset, -maxValue, maxValue)}
	c.params = params{c.offset}
	return c
}

// Process implements graph.Stage.
func (c *Constant) Process(dst, _ []float64) {
	if values := c.offset.Values(); values != nil {
		copy(dst, values)
		return
	}
	core.Fill(dst, c.offset.Value())
}
