package stage

import (
	"fmt"

	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-voicefx/dsp/conv"
	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// Convolver convolves its input with a fixed impulse response using
// partitioned FFT convolution at the graph quantum.
type Convolver struct {
	engine *conv.Partitioned
}

// NewConvolver returns a convolver for impulse scaled by gain. The impulse
// is copied.
func NewConvolver(cfg core.ProcessorConfig, impulse []float64, gain float64) (*Convolver, error) {
	kernel := make([]float64, len(impulse))
	f64.Scale(kernel, impulse, gain)

	engine, err := conv.NewPartitioned(kernel, cfg.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("stage: convolver: %w", err)
	}
	return &Convolver{engine: engine}, nil
}

// Process implements graph.Stage. Blocks that do not match the quantum
// produce silence.
func (c *Convolver) Process(dst, src []float64) {
	if err := c.engine.ProcessBlock(dst, src); err != nil {
		clear(dst)
	}
}

// Reset clears the convolution history.
func (c *Convolver) Reset() {
	c.engine.Reset()
}
