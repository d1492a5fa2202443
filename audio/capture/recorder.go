package capture

import (
	"sync"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
)

// Recorder accumulates captured mono samples.
type Recorder struct {
	mu         sync.Mutex
	sampleRate float64
	samples    []float64
}

// NewRecorder returns an empty recorder.
func NewRecorder(sampleRate float64) *Recorder {
	return &Recorder{sampleRate: sampleRate}
}

// Write appends a copy of p.
func (r *Recorder) Write(p []float64) {
	r.mu.Lock()
	r.samples = append(r.samples, p...)
	r.mu.Unlock()
}

// Len returns the number of recorded samples.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.samples)
}

// Signal returns the recording as a mono signal. The recorder keeps no
// reference to the returned samples.
func (r *Recorder) Signal() *buffer.Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return buffer.FromMono(append([]float64{}, r.samples...), r.sampleRate)
}
