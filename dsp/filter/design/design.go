package design

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// edge classifies a frequency against the open interval (0, Nyquist).
type edge int

const (
	inside edge = iota
	belowBand
	aboveBand
	invalid
)

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q.
// At or above Nyquist it passes everything; at 0 Hz it is silent.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, e := normalizedW0(freq, sampleRate)
	switch e {
	case aboveBand:
		return biquad.Identity()
	case belowBand, invalid:
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b1 := 1 - cw
	b0 := b1 / 2

	return normalizeBiquad(b0, b1, b0, 1+alpha, -2*cw, 1-alpha)
}

// Highpass designs a highpass biquad at freq (Hz) with quality factor q.
// At 0 Hz it passes everything; at or above Nyquist it is silent.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, e := normalizedW0(freq, sampleRate)
	switch e {
	case belowBand:
		return biquad.Identity()
	case aboveBand, invalid:
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b1 := -(1 + cw)
	b0 := -b1 / 2

	return normalizeBiquad(b0, b1, b0, 1+alpha, -2*cw, 1-alpha)
}

// Bandpass designs a constant 0 dB peak gain bandpass biquad.
func Bandpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, e := normalizedW0(freq, sampleRate)
	if e != inside {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad(alpha, 0, -alpha, 1+alpha, -2*cw, 1-alpha)
}

// Allpass designs an allpass biquad centered at freq (Hz). Outside the
// band it reduces to the identity, so a sweep through 0 Hz stays silent-free.
func Allpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, e := normalizedW0(freq, sampleRate)
	if e != inside {
		return biquad.Identity()
	}

	q = normalizedQ(q)
	cosW := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b0 := 1 - alpha
	b1 := -2 * cosW
	b2 := 1 + alpha

	return normalizeBiquad(b0, b1, b2, b2, b1, b0)
}

// Peak designs a peaking-EQ biquad with gain in dB.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, e := normalizedW0(freq, sampleRate)
	if e != inside {
		return biquad.Identity()
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := core.DBToLinear(gainDB / 2)

	b0 := 1 + alpha*a
	b1 := -2 * cw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a2 := 1 - alpha/a

	return normalizeBiquad(b0, b1, b2, a0, b1, a2)
}

// ResonanceToQ converts a lowpass/highpass resonance in dB into the linear
// quality factor used by the cookbook formulas.
func ResonanceToQ(resonanceDB float64) float64 {
	return core.DBToLinear(resonanceDB)
}

func normalizedW0(freq, sampleRate float64) (float64, edge) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || math.IsNaN(freq) {
		return 0, invalid
	}

	nyquist := sampleRate / 2
	if freq <= 0 {
		return 0, belowBand
	}
	if freq >= nyquist {
		return 0, aboveBand
	}

	return 2 * math.Pi * freq / sampleRate, inside
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
