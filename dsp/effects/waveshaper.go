package effects

import (
	"errors"
	"fmt"
	"math"
)

// ErrShortCurve is returned for transfer curves with fewer than two points.
var ErrShortCurve = errors.New("effects: waveshaper curve needs at least 2 points")

// Waveshaper maps every input sample through a sampled transfer curve.
//
// The curve spans the input range [-1, 1] uniformly. Inputs between curve
// points are linearly interpolated; inputs outside [-1, 1] take the value
// of the nearest curve end. A Waveshaper without a curve passes audio
// through unchanged.
type Waveshaper struct {
	curve []float64
}

// NewWaveshaper copies curve into a new shaper. A nil curve gives a
// pass-through shaper.
func NewWaveshaper(curve []float64) (*Waveshaper, error) {
	if curve == nil {
		return &Waveshaper{}, nil
	}
	if len(curve) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrShortCurve, len(curve))
	}
	return &Waveshaper{curve: append([]float64(nil), curve...)}, nil
}

// Curve returns the transfer curve. The result must not be modified.
func (w *Waveshaper) Curve() []float64 {
	return w.curve
}

// Shape returns the shaped value of x.
func (w *Waveshaper) Shape(x float64) float64 {
	n := len(w.curve)
	if n == 0 {
		return x
	}
	if math.IsNaN(x) {
		x = 0
	}

	v := float64(n-1) / 2 * (x + 1)
	if v <= 0 {
		return w.curve[0]
	}
	if v >= float64(n-1) {
		return w.curve[n-1]
	}

	k := int(v)
	f := v - float64(k)
	return (1-f)*w.curve[k] + f*w.curve[k+1]
}

// ProcessBlockTo shapes src into dst. The slices may alias.
func (w *Waveshaper) ProcessBlockTo(dst, src []float64) {
	if len(w.curve) == 0 {
		copy(dst, src)
		return
	}
	for i, x := range src {
		dst[i] = w.Shape(x)
	}
}

// TanhCurve samples tanh(drive*x) at n points x = 2i/n - 1.
func TanhCurve(n int, drive float64) []float64 {
	if n <= 0 {
		return nil
	}
	curve := make([]float64, n)
	for i := range curve {
		x := float64(i)*2/float64(n) - 1
		curve[i] = math.Tanh(x * drive)
	}
	return curve
}
