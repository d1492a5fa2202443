package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	if d != 1 {
		t.Fatalf("got %v, want 1", d)
	}
	if _, err := MaxAbsDiff([]float64{1}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestRMS(t *testing.T) {
	if got := RMS(nil); got != 0 {
		t.Fatalf("empty RMS = %v", got)
	}
	if got := RMS([]float64{1, -1, 1, -1}); got != 1 {
		t.Fatalf("square RMS = %v, want 1", got)
	}
	sine := DeterministicSine(100, 8000, 1, 8000)
	if got := RMS(sine); math.Abs(got-1/math.Sqrt2) > 1e-6 {
		t.Fatalf("sine RMS = %v, want %v", got, 1/math.Sqrt2)
	}
}

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1, 2 + 1e-13}, 1e-12)
	RequireFinite(t, []float64{0, -1, 1e300})
	RequireSilent(t, []float64{0, 1e-9}, 1e-6)
}
