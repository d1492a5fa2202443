package stage

import (
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
	"github.com/cwbudde/algo-voicefx/dsp/graph"
)

// FilterKind selects the biquad response.
type FilterKind int

// Supported biquad responses.
const (
	Lowpass FilterKind = iota
	Highpass
	Bandpass
	Allpass
	Peaking
)

// String returns the filter kind name.
func (k FilterKind) String() string {
	switch k {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Allpass:
		return "allpass"
	case Peaking:
		return "peaking"
	default:
		return "unknown"
	}
}

// maxGainDB is 40*log10 of the largest float32.
const maxGainDB = 1541

// Biquad is a second-order filter with "frequency", "Q" and "gain"
// parameters. For lowpass and highpass, Q is a resonance in dB; for the
// other kinds it is the linear quality factor. Gain only affects peaking.
//
// While any parameter is modulated, coefficients are recomputed every
// sample and the filter state carries across the change.
type Biquad struct {
	params
	frequency *graph.Param
	q         *graph.Param
	gain      *graph.Param

	kind       FilterKind
	sampleRate float64
	section    *biquad.Section

	cached     [3]float64
	haveCached bool
}

// NewBiquad returns a filter of the given kind.
func NewBiquad(cfg core.ProcessorConfig, kind FilterKind, freq, q, gainDB float64) *Biquad {
	b := &Biquad{
		frequency:  graph.NewParam("frequency", freq, 0, cfg.Nyquist()),
		q:          graph.NewParam("Q", q, -maxValue, maxValue),
		gain:       graph.NewParam("gain", gainDB, -maxValue, maxGainDB),
		kind:       kind,
		sampleRate: cfg.SampleRate,
		section:    biquad.NewSection(biquad.Identity()),
	}
	b.params = params{b.frequency, b.q, b.gain}
	return b
}

// Kind returns the filter response.
func (b *Biquad) Kind() FilterKind { return b.kind }

// Coefficients returns the coefficients for the intrinsic parameter values.
func (b *Biquad) Coefficients() biquad.Coefficients {
	return b.design(b.frequency.Value(), b.q.Value(), b.gain.Value())
}

// Process implements graph.Stage.
func (b *Biquad) Process(dst, src []float64) {
	if !b.frequency.Modulated() && !b.q.Modulated() && !b.gain.Modulated() {
		key := [3]float64{b.frequency.Value(), b.q.Value(), b.gain.Value()}
		if !b.haveCached || key != b.cached {
			b.section.SetCoefficients(b.design(key[0], key[1], key[2]))
			b.cached, b.haveCached = key, true
		}
		b.section.ProcessBlockTo(dst, src)
		return
	}

	b.haveCached = false
	for i, x := range src {
		b.section.SetCoefficients(b.design(b.frequency.At(i), b.q.At(i), b.gain.At(i)))
		dst[i] = b.section.ProcessSample(x)
	}
}

// Reset clears the filter state.
func (b *Biquad) Reset() {
	b.section.Reset()
}

func (b *Biquad) design(freq, q, gainDB float64) biquad.Coefficients {
	switch b.kind {
	case Lowpass:
		return design.Lowpass(freq, design.ResonanceToQ(q), b.sampleRate)
	case Highpass:
		return design.Highpass(freq, design.ResonanceToQ(q), b.sampleRate)
	case Bandpass:
		return design.Bandpass(freq, q, b.sampleRate)
	case Allpass:
		return design.Allpass(freq, q, b.sampleRate)
	case Peaking:
		return design.Peak(freq, gainDB, q, b.sampleRate)
	default:
		return biquad.Identity()
	}
}
