package design

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
)

const sr = 44100.0

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// magnitudeDB evaluates |H(e^jw)| of c at freq in dB.
func magnitudeDB(c biquad.Coefficients, freq float64) float64 {
	w := 2 * math.Pi * freq / sr
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
	return 20 * math.Log10(cmplx.Abs(num/den))
}

func TestDesigners_BasicResponseShape(t *testing.T) {
	lp := Lowpass(1000, defaultQ, sr)
	if !(magnitudeDB(lp, 100) > magnitudeDB(lp, 10000)) {
		t.Fatal("lowpass shape check failed")
	}

	hp := Highpass(1000, defaultQ, sr)
	if !(magnitudeDB(hp, 10000) > magnitudeDB(hp, 100)) {
		t.Fatal("highpass shape check failed")
	}

	bp := Bandpass(1000, 2, sr)
	if db := magnitudeDB(bp, 1000); !almostEqual(db, 0, 1e-6) {
		t.Fatalf("bandpass center gain = %v dB, want 0", db)
	}
	if magnitudeDB(bp, 100) > -10 {
		t.Fatal("bandpass should attenuate far below center")
	}
}

func TestAllpassUnityMagnitude(t *testing.T) {
	ap := Allpass(300, 1, sr)
	for _, f := range []float64{20, 300, 1000, 8000, 20000} {
		if db := magnitudeDB(ap, f); !almostEqual(db, 0, 1e-9) {
			t.Fatalf("allpass |H(%v)| = %v dB, want 0", f, db)
		}
	}
}

func TestPeakCenterGain(t *testing.T) {
	pk := Peak(2000, 6, 1, sr)
	if db := magnitudeDB(pk, 2000); !almostEqual(db, 6, 1e-6) {
		t.Fatalf("peak center gain = %v dB, want 6", db)
	}
	if db := magnitudeDB(pk, 20); math.Abs(db) > 0.1 {
		t.Fatalf("peak far gain = %v dB, want ~0", db)
	}
}

func TestEdgeFrequencies(t *testing.T) {
	zero := biquad.Coefficients{}
	id := biquad.Identity()

	tests := []struct {
		name string
		got  biquad.Coefficients
		want biquad.Coefficients
	}{
		{name: "lowpass above nyquist", got: Lowpass(30000, 1, sr), want: id},
		{name: "lowpass at zero", got: Lowpass(0, 1, sr), want: zero},
		{name: "highpass at zero", got: Highpass(0, 1, sr), want: id},
		{name: "highpass at nyquist", got: Highpass(sr/2, 1, sr), want: zero},
		{name: "allpass at zero", got: Allpass(0, 1, sr), want: id},
		{name: "allpass negative", got: Allpass(-50, 1, sr), want: id},
		{name: "peak at zero", got: Peak(0, 6, 1, sr), want: id},
		{name: "bandpass at zero", got: Bandpass(0, 1, sr), want: zero},
		{name: "invalid sample rate", got: Lowpass(1000, 1, 0), want: zero},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("got %+v, want %+v", tc.got, tc.want)
			}
		})
	}
}

func TestResonanceToQ(t *testing.T) {
	if q := ResonanceToQ(0); q != 1 {
		t.Fatalf("ResonanceToQ(0) = %v, want 1", q)
	}
	if q := ResonanceToQ(20); !almostEqual(q, 10, 1e-12) {
		t.Fatalf("ResonanceToQ(20) = %v, want 10", q)
	}
}

func TestLowpassResonanceAtCutoff(t *testing.T) {
	// With linear Q the cutoff gain of the cookbook lowpass is 20*log10(Q).
	q := ResonanceToQ(1)
	lp := Lowpass(3000, q, sr)
	if db := magnitudeDB(lp, 3000); !almostEqual(db, 1, 1e-6) {
		t.Fatalf("cutoff gain = %v dB, want 1", db)
	}
}
