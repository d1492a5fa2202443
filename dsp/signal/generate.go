package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// Generator synthesizes seeded noise signals at a configured sample rate.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGeneratorWithOptions creates a generator. The seed defaults to 1.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Reverb impulse shape.
const (
	tailLevel        = 0.3
	earlyLevel       = 0.1
	earlyReflections = 0.1 // seconds
)

// DecayingNoise synthesizes a room-like impulse response of the given
// length in seconds. Every channel is white noise under a quadratic decay
// envelope (1-i/N)^2 at level 0.3, with a second noise layer at level 0.1
// over the first 100 ms standing in for early reflections. Channels are
// drawn one after another from a single seeded source.
func (g *Generator) DecayingNoise(seconds float64, channels int) ([][]float64, error) {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil, fmt.Errorf("impulse length must be positive and finite: %f", seconds)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("impulse channels must be > 0: %d", channels)
	}

	length := int(g.cfg.SampleRate * seconds)
	if length <= 0 {
		return nil, fmt.Errorf("impulse shorter than one sample: %f s", seconds)
	}
	early := g.cfg.SampleRate * earlyReflections

	rng := rand.New(rand.NewSource(g.seed))
	out := make([][]float64, channels)
	for ch := range out {
		data := make([]float64, length)
		for i := range data {
			decay := 1 - float64(i)/float64(length)
			decay *= decay
			data[i] = bipolar(rng) * decay * tailLevel
			if float64(i) < early {
				data[i] += bipolar(rng) * decay * earlyLevel
			}
		}
		out[ch] = data
	}
	return out, nil
}

func bipolar(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}
