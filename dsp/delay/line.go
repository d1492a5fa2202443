// Package delay provides the circular buffer behind delay stages.
package delay

import (
	"fmt"
	"math"
)

// Line is a circular delay line with linear fractional reads.
//
// After Write, Read(1) returns the sample just written and Read(k) the
// sample written k-1 calls earlier.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed size. A fractional read needs two
// neighbouring samples, so size must be at least 2.
func New(size int) (*Line, error) {
	if size < 2 {
		return nil, fmt.Errorf("delay size must be >= 2: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// WriteBlock writes every sample of src in order.
func (d *Line) WriteBlock(src []float64) {
	for _, x := range src {
		d.Write(x)
	}
}

// Read reads an integer delay in samples.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := ((d.writePos-delay)%size + size) % size
	return d.buffer[readPos]
}

// ReadFractional reads a fractional delay in samples, interpolating
// linearly between the two nearest samples. The delay is clamped to the
// readable range.
func (d *Line) ReadFractional(delay float64) float64 {
	if math.IsNaN(delay) || delay < 0 {
		delay = 0
	}
	if maxDelay := float64(len(d.buffer) - 1); delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)
	x0, x1 := d.Read(p), d.Read(p+1)
	return x0 + t*(x1-x0)
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}
