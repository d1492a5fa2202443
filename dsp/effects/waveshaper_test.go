package effects

import (
	"errors"
	"math"
	"testing"
)

func TestWaveshaperLinearCurveIsIdentity(t *testing.T) {
	w, err := NewWaveshaper([]float64{-1, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{-1, -0.5, -0.1, 0, 0.3, 0.99, 1} {
		if got := w.Shape(x); math.Abs(got-x) > 1e-12 {
			t.Fatalf("Shape(%v) = %v, want %v", x, got, x)
		}
	}
}

func TestWaveshaperClampsOutsideRange(t *testing.T) {
	w, err := NewWaveshaper([]float64{-0.5, 0.2, 0.7})
	if err != nil {
		t.Fatal(err)
	}
	if got := w.Shape(-4); got != -0.5 {
		t.Fatalf("Shape(-4) = %v, want -0.5", got)
	}
	if got := w.Shape(3); got != 0.7 {
		t.Fatalf("Shape(3) = %v, want 0.7", got)
	}
	if got := w.Shape(math.NaN()); got != 0.2 {
		t.Fatalf("Shape(NaN) = %v, want 0.2", got)
	}
}

func TestWaveshaperPassThrough(t *testing.T) {
	w, err := NewWaveshaper(nil)
	if err != nil {
		t.Fatal(err)
	}
	src := []float64{2, -3, 0.5}
	dst := make([]float64, len(src))
	w.ProcessBlockTo(dst, src)
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("index %d: got %v, want %v", i, dst[i], src[i])
		}
	}
}

func TestWaveshaperRejectsShortCurve(t *testing.T) {
	if _, err := NewWaveshaper([]float64{1}); !errors.Is(err, ErrShortCurve) {
		t.Fatalf("expected ErrShortCurve, got %v", err)
	}
}

func TestTanhCurve(t *testing.T) {
	curve := TanhCurve(44100, 3)
	if len(curve) != 44100 {
		t.Fatalf("len = %d", len(curve))
	}
	if curve[0] != math.Tanh(-3) {
		t.Fatalf("curve[0] = %v, want tanh(-3)", curve[0])
	}
	if curve[22050] != 0 {
		t.Fatalf("curve midpoint = %v, want 0", curve[22050])
	}
	for i := 1; i < len(curve); i++ {
		if curve[i] < curve[i-1] {
			t.Fatalf("curve not monotonic at %d", i)
		}
	}

	w, err := NewWaveshaper(curve)
	if err != nil {
		t.Fatal(err)
	}
	// Soft clipping keeps the output inside (-1, 1) for any input.
	for _, x := range []float64{-10, -1, -0.2, 0.2, 1, 10} {
		if y := w.Shape(x); math.Abs(y) >= 1 {
			t.Fatalf("Shape(%v) = %v escapes (-1, 1)", x, y)
		}
	}
	if TanhCurve(0, 3) != nil {
		t.Fatal("empty curve expected for n=0")
	}
}
