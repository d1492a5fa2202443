package render

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/voicefx"
)

// Renderer runs effects offline. A Renderer holds no per-render state and
// may be shared.
type Renderer struct {
	quantum int
	seed    int64
	logger  logrus.FieldLogger
	now     func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer) error

// WithLogger sets the logger. The default is the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Renderer) error {
		if l == nil {
			return fmt.Errorf("render: nil logger")
		}
		r.logger = l
		return nil
	}
}

// WithSeed sets the seed of synthesized impulse responses.
func WithSeed(seed int64) Option {
	return func(r *Renderer) error {
		r.seed = seed
		return nil
	}
}

// WithQuantum sets the graph block size in samples.
func WithQuantum(n int) Option {
	return func(r *Renderer) error {
		if n <= 0 {
			return fmt.Errorf("render: quantum must be > 0: %d", n)
		}
		r.quantum = n
		return nil
	}
}

// WithClock overrides the time source used for export file names.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) error {
		if now == nil {
			return fmt.Errorf("render: nil clock")
		}
		r.now = now
		return nil
	}
}

// New returns a Renderer.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		quantum: core.DefaultQuantum,
		seed:    voicefx.DefaultSeed,
		logger:  logrus.StandardLogger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Stats summarizes the rendered levels before clamping.
type Stats struct {
	Peak    float64
	RMS     float64
	Clipped int
}

// Result is a rendered signal clamped to [-1, 1].
type Result struct {
	Signal *buffer.Signal
	Stats  Stats
}

// Render applies id at intensity to every channel of sig. The output has
// the same shape as sig. Each channel runs through its own subgraph;
// channel c of a reverb uses impulse channel c%2.
func (r *Renderer) Render(sig *buffer.Signal, id voicefx.ID, intensity voicefx.Intensity) (*Result, error) {
	if err := sig.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	cfg := core.ProcessorConfig{SampleRate: sig.SampleRate, BlockSize: r.quantum}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	out := buffer.New(sig.NumChannels(), sig.Frames(), sig.SampleRate)

	var g errgroup.Group
	for ch := range sig.Channels {
		g.Go(func() error {
			fx, err := voicefx.Build(cfg, id, intensity,
				voicefx.WithSeed(r.seed), voicefx.WithChannel(ch))
			if err != nil {
				return err
			}
			defer fx.Close()

			if err := fx.Process(out.Channels[ch], sig.Channels[ch]); err != nil {
				return fmt.Errorf("channel %d: %w", ch, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	stats := measure(out.Channels)
	for _, data := range out.Channels {
		for i, x := range data {
			data[i] = core.ClampUnit(x)
		}
	}

	return &Result{Signal: out, Stats: stats}, nil
}

func measure(channels [][]float64) Stats {
	var s Stats
	var energy float64
	var n int
	for _, data := range channels {
		if len(data) == 0 {
			continue
		}
		s.Peak = math.Max(s.Peak, math.Max(math.Abs(floats.Max(data)), math.Abs(floats.Min(data))))
		norm := floats.Norm(data, 2)
		energy += norm * norm
		n += len(data)
		for _, x := range data {
			if math.Abs(x) > 1 {
				s.Clipped++
			}
		}
	}
	if n > 0 {
		s.RMS = math.Sqrt(energy / float64(n))
	}
	return s
}
