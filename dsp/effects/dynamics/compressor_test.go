package dynamics

import (
	"math"
	"testing"
)

func newRadioCompressor(t *testing.T) *Compressor {
	t.Helper()
	c, err := NewCompressor(44100)
	if err != nil {
		t.Fatal(err)
	}
	for _, step := range []error{
		c.SetThreshold(-20),
		c.SetKnee(30),
		c.SetRatio(12),
		c.SetAttack(0.003),
		c.SetRelease(0.25),
	} {
		if step != nil {
			t.Fatal(step)
		}
	}
	return c
}

func TestNewCompressorValidation(t *testing.T) {
	for _, sr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewCompressor(sr); err == nil {
			t.Fatalf("expected error for sample rate %v", sr)
		}
	}
}

func TestSetterRanges(t *testing.T) {
	c, err := NewCompressor(48000)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		err  error
	}{
		{name: "knee above 40", err: c.SetKnee(41)},
		{name: "ratio above 20", err: c.SetRatio(21)},
		{name: "ratio below 1", err: c.SetRatio(0.5)},
		{name: "threshold positive", err: c.SetThreshold(3)},
		{name: "attack negative", err: c.SetAttack(-0.1)},
		{name: "release too long", err: c.SetRelease(2)},
	}
	for _, tc := range tests {
		if tc.err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
	if c.Knee() != defaultKneeDB || c.Ratio() != defaultRatio {
		t.Fatal("rejected values must not be applied")
	}
}

func TestStaticCurve(t *testing.T) {
	c := newRadioCompressor(t)

	if got := c.CurveDB(-40); got != -40 {
		t.Fatalf("below threshold: got %v, want -40", got)
	}

	// Above the knee the curve has slope 1/ratio.
	a, b := c.CurveDB(20), c.CurveDB(32)
	if math.Abs((b-a)-1) > 1e-9 {
		t.Fatalf("slope above knee = %v, want 1/12 per dB", (b-a)/12)
	}

	// Knee is continuous at both ends.
	const d = 1e-7
	for _, x := range []float64{-20, 10} {
		if diff := math.Abs(c.CurveDB(x+d) - c.CurveDB(x-d)); diff > 1e-6 {
			t.Fatalf("discontinuity at %v dB: %v", x, diff)
		}
	}
}

func TestMakeupGain(t *testing.T) {
	c := newRadioCompressor(t)
	// 0 dBFS sits 20 dB over the threshold, inside the 30 dB knee.
	gainDB := (1.0/12 - 1) * 20 * 20 / 60
	want := math.Pow(math.Pow(10, -gainDB/20), 0.6)
	if math.Abs(c.MakeupGain()-want) > 1e-12 {
		t.Fatalf("makeup = %v, want %v", c.MakeupGain(), want)
	}
}

func TestCompressionReducesLoudInput(t *testing.T) {
	c := newRadioCompressor(t)

	var out float64
	for range 44100 {
		out = c.ProcessSample(1)
	}
	if c.Reduction() >= 0 {
		t.Fatalf("expected gain reduction, got %v dB", c.Reduction())
	}
	// Steady state: 0 dB input leaves at the curve level plus makeup.
	want := math.Pow(10, c.CurveDB(0)/20) * c.MakeupGain()
	if math.Abs(out-want) > 1e-6 {
		t.Fatalf("steady state = %v, want %v", out, want)
	}

	c.Reset()
	if c.Reduction() != 0 {
		t.Fatal("reset must clear reduction")
	}
}

func TestQuietInputOnlyMakeup(t *testing.T) {
	c := newRadioCompressor(t)
	x := 0.001 // -60 dB
	var y float64
	for range 1000 {
		y = c.ProcessSample(x)
	}
	if math.Abs(y-x*c.MakeupGain()) > 1e-12 {
		t.Fatalf("quiet output = %v, want %v", y, x*c.MakeupGain())
	}
}

func TestZeroTimesAreInstant(t *testing.T) {
	c, err := NewCompressor(44100)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetAttack(0); err != nil {
		t.Fatal(err)
	}
	if err := c.SetRelease(0); err != nil {
		t.Fatal(err)
	}
	c.ProcessSample(1)
	if c.peakLevel != 1 {
		t.Fatalf("instant attack: peak = %v", c.peakLevel)
	}
	c.ProcessSample(0)
	if c.peakLevel != 0 {
		t.Fatalf("instant release: peak = %v", c.peakLevel)
	}
}
