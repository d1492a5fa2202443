package graph

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Param is an automatable stage parameter.
type Param struct {
	name     string
	value    float64
	min, max float64

	buf       []float64
	modulated bool
}

// NewParam returns a parameter with an intrinsic value and inclusive range.
func NewParam(name string, value, min, max float64) *Param {
	p := &Param{name: name, min: min, max: max}
	p.SetValue(value)
	return p
}

// Name returns the parameter name.
func (p *Param) Name() string { return p.name }

// Value returns the intrinsic value.
func (p *Param) Value() float64 { return p.value }

// Range returns the inclusive value range.
func (p *Param) Range() (min, max float64) { return p.min, p.max }

// SetValue sets the intrinsic value, clamped to the range. NaN is ignored.
func (p *Param) SetValue(v float64) {
	if math.IsNaN(v) {
		return
	}
	p.value = clamp(v, p.min, p.max)
}

// Modulated reports whether connected signals drive the parameter in the
// current quantum.
func (p *Param) Modulated() bool { return p.modulated }

// At returns the computed value for frame i of the current quantum.
func (p *Param) At(i int) float64 {
	if p.modulated {
		return p.buf[i]
	}
	return p.value
}

// Values returns the per-frame values of the current quantum, or nil when
// the parameter is not modulated.
func (p *Param) Values() []float64 {
	if !p.modulated {
		return nil
	}
	return p.buf
}

// render computes the per-frame values from the intrinsic value and the
// outputs of the connected nodes.
func (p *Param) render(n int, sources [][]float64) {
	if len(sources) == 0 {
		p.modulated = false
		return
	}

	if cap(p.buf) < n {
		p.buf = make([]float64, n)
	}
	p.buf = p.buf[:n]

	for i := range p.buf {
		p.buf[i] = p.value
	}
	for _, src := range sources {
		vecmath.AddBlockInPlace(p.buf, src)
	}
	for i, v := range p.buf {
		p.buf[i] = clamp(v, p.min, p.max)
	}

	p.modulated = true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
