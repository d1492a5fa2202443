package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func TestDecayingNoiseShape(t *testing.T) {
	g := NewGeneratorWithOptions([]core.ProcessorOption{core.WithSampleRate(1000)}, WithSeed(3))
	ir, err := g.DecayingNoise(1.5, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(ir) != 2 {
		t.Fatalf("channels = %d, want 2", len(ir))
	}
	for ch, data := range ir {
		if len(data) != 1500 {
			t.Fatalf("channel %d length = %d, want 1500", ch, len(data))
		}
		testutil.RequireFinite(t, data)
		for i, v := range data {
			decay := math.Pow(1-float64(i)/1500, 2)
			limit := 0.3 * decay
			if i < 100 {
				limit += 0.1 * decay
			}
			if math.Abs(v) > limit+1e-12 {
				t.Fatalf("channel %d index %d: |%v| exceeds envelope %v", ch, i, v, limit)
			}
		}
	}

	again, err := g.DecayingNoise(1.5, 2)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, again[1], ir[1], 0)
}

func TestDecayingNoiseValidation(t *testing.T) {
	g := NewGeneratorWithOptions(nil)
	if _, err := g.DecayingNoise(0, 2); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := g.DecayingNoise(1, 0); err == nil {
		t.Fatal("expected error for zero channels")
	}
}

func TestSeedChangesNoise(t *testing.T) {
	a, err := NewGeneratorWithOptions(nil, WithSeed(1)).DecayingNoise(0.01, 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGeneratorWithOptions(nil, WithSeed(2)).DecayingNoise(0.01, 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff, _ := testutil.MaxAbsDiff(a[0], b[0]); diff == 0 {
		t.Fatal("different seeds produced identical noise")
	}
}
