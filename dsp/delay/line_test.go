package delay

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for size=0")
	}

	if _, err := New(-1); err == nil {
		t.Fatal("expected error for size=-1")
	}

	if _, err := New(1); err == nil {
		t.Fatal("expected error for a line too short to interpolate")
	}
}

func TestLen(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	if d.Len() != 16 {
		t.Fatalf("Len: got %d want 16", d.Len())
	}
}

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 5; i++ {
		d.Write(float64(i))
	}

	for k := 1; k <= 5; k++ {
		want := float64(6 - k)
		if got := d.Read(k); got != want {
			t.Fatalf("Read(%d): got %v want %v", k, got, want)
		}
	}
}

func TestReadLinearInterpolates(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	d.WriteBlock([]float64{0, 10, 20, 30})

	// Read(1)=30, Read(2)=20.
	if got := d.ReadFractional(1.5); !approxEqual(got, 25, 1e-12) {
		t.Fatalf("ReadFractional(1.5): got %v want 25", got)
	}

	if got := d.ReadFractional(2); !approxEqual(got, 20, 1e-12) {
		t.Fatalf("ReadFractional(2): got %v want 20", got)
	}
}

func TestReadFractionalOnRamp(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 10 {
		d.Write(float64(i))
	}

	if got := d.ReadFractional(3.25); !approxEqual(got, 9-2.25, 1e-12) {
		t.Fatalf("ReadFractional(3.25): got %v want %v", got, 9-2.25)
	}
}

func TestReadFractionalClamps(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	d.Write(1)

	for _, delay := range []float64{-4, math.NaN(), 100} {
		if got := d.ReadFractional(delay); math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("ReadFractional(%v) not finite: %v", delay, got)
		}
	}
}

func TestReset(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	d.WriteBlock([]float64{1, 2, 3})
	d.Reset()

	for k := 0; k < d.Len(); k++ {
		if got := d.Read(k); got != 0 {
			t.Fatalf("Read(%d) after reset: got %v", k, got)
		}
	}
}
