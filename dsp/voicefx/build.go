package voicefx

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/effects"
	"github.com/cwbudde/algo-voicefx/dsp/graph"
	"github.com/cwbudde/algo-voicefx/dsp/signal"
	"github.com/cwbudde/algo-voicefx/dsp/stage"
)

// ErrFeedbackLimit is returned when a topology would use a loop gain
// above MaxFeedback.
var ErrFeedbackLimit = errors.New("voicefx: feedback gain out of range")

// ErrQuantumTooLong is returned when the render quantum is longer than a
// feedback delay. A delay on a cycle cannot be shorter than one quantum,
// so the loop would run late.
var ErrQuantumTooLong = errors.New("voicefx: render quantum longer than feedback delay")

// DefaultSeed seeds the reverb impulse noise.
const DefaultSeed int64 = 1

type buildConfig struct {
	seed    int64
	channel int
}

// Option configures Build.
type Option func(*buildConfig)

// WithSeed sets the seed of the synthesized reverb impulse.
func WithSeed(seed int64) Option {
	return func(c *buildConfig) { c.seed = seed }
}

// WithChannel selects which impulse channel a reverb uses. Stereo
// impulses are generated; channel c uses impulse channel c%2.
func WithChannel(channel int) Option {
	return func(c *buildConfig) { c.channel = max(channel, 0) }
}

// Build constructs the effect subgraph for id at intensity. Intensity is
// clamped to [0, 100]. An id that is not in the catalog yields an
// identity pass-through.
func Build(cfg core.ProcessorConfig, id ID, intensity Intensity, opts ...Option) (*Effect, error) {
	bc := buildConfig{seed: DefaultSeed}
	for _, opt := range opts {
		opt(&bc)
	}

	intensity = intensity.Clamp()

	g, err := graph.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("voicefx: %w", err)
	}

	b := &builder{g: g, cfg: cfg}
	mix := MixFor(id, intensity)

	switch id {
	case Delay:
		b.delay(intensity, mix)
	case Reverb:
		b.reverb(intensity, mix, bc)
	case Tremolo:
		b.tremolo(mix)
	case Phaser:
		b.phaser(mix)
	case Telephone:
		b.telephone(mix)
	case Echo:
		b.echo(mix)
	case Underwater:
		b.underwater(mix)
	case Radio:
		b.radio(mix)
	default:
		b.connect(graph.Input, graph.Output)
	}

	if b.err == nil {
		b.err = g.Compile()
	}
	if b.err != nil {
		return nil, fmt.Errorf("voicefx: build %q: %w", id, b.err)
	}

	return &Effect{id: id, intensity: intensity, mix: mix, graph: g}, nil
}

// builder records the first error and turns later calls into no-ops.
type builder struct {
	g   *graph.Graph
	cfg core.ProcessorConfig
	err error
}

func (b *builder) add(name string, s graph.Stage, err error) graph.NodeID {
	if b.err != nil {
		return -1
	}
	if err != nil {
		b.err = err
		return -1
	}
	return b.g.Add(name, s)
}

func (b *builder) gain(name string, v float64) graph.NodeID {
	return b.add(name, stage.NewGain(v), nil)
}

func (b *builder) feedback(name string, v float64) graph.NodeID {
	if err := checkFeedback(name, v); err != nil {
		return b.add(name, nil, err)
	}
	return b.gain(name, v)
}

func (b *builder) lfo(name string, freq float64) graph.NodeID {
	return b.add(name, stage.NewOscillator(b.cfg, freq), nil)
}

func (b *builder) delayLine(name string, seconds, maxSeconds float64) graph.NodeID {
	d, err := stage.NewDelay(b.cfg, seconds, maxSeconds)
	return b.add(name, d, err)
}

// loopDelay is a delay line that closes a feedback cycle with a fixed
// time. The quantum must fit inside it.
func (b *builder) loopDelay(name string, seconds float64) graph.NodeID {
	if samples := seconds * b.cfg.SampleRate; float64(b.cfg.BlockSize) > samples {
		err := fmt.Errorf("%w: %s is %.0f samples, quantum %d", ErrQuantumTooLong, name, samples, b.cfg.BlockSize)
		return b.add(name, nil, err)
	}
	return b.delayLine(name, seconds, 1)
}

func (b *builder) filter(name string, kind stage.FilterKind, freq, q, gainDB float64) graph.NodeID {
	return b.add(name, stage.NewBiquad(b.cfg, kind, freq, q, gainDB), nil)
}

func (b *builder) connect(from, to graph.NodeID) {
	if b.err == nil {
		b.err = b.g.Connect(from, to)
	}
}

func (b *builder) modulate(from, to graph.NodeID, param string) {
	if b.err == nil {
		b.err = b.g.ConnectParam(from, to, param)
	}
}

func (b *builder) chain(ids ...graph.NodeID) {
	if b.err == nil {
		b.err = b.g.Chain(ids...)
	}
}

// mixer wires input->dry->output and returns the wet gain node, already
// connected to the output, for the wet path to feed.
func (b *builder) mixer(m Mix) graph.NodeID {
	dry := b.gain("dry", m.Dry)
	wet := b.gain("wet", m.Wet)
	b.chain(graph.Input, dry, graph.Output)
	b.connect(wet, graph.Output)
	return wet
}

func (b *builder) delay(intensity Intensity, m Mix) {
	s := DelayFor(intensity)
	wet := b.mixer(m)

	d := b.loopDelay("delay", s.Time)
	fb := b.feedback("feedback", s.Feedback)

	b.chain(graph.Input, d, wet)
	b.chain(d, fb, d)
}

func (b *builder) reverb(intensity Intensity, m Mix, bc buildConfig) {
	wet := b.mixer(m)
	if b.err != nil {
		return
	}

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(b.cfg.SampleRate)},
		signal.WithSeed(bc.seed),
	)
	impulse, err := gen.DecayingNoise(ReverbLength(intensity), 2)
	if err != nil {
		b.err = err
		return
	}

	c, err := stage.NewConvolver(b.cfg, impulse[bc.channel%len(impulse)], 1)
	conv := b.add("convolver", c, err)
	b.chain(graph.Input, conv, wet)
}

func (b *builder) tremolo(m Mix) {
	wet := b.mixer(m)

	trem := b.gain("tremolo", 0)
	lfo := b.lfo("lfo", tremoloRate)
	depth := b.gain("lfoGain", tremoloDepth)
	offset := b.add("offset", stage.NewConstant(tremoloDepth), nil)

	b.chain(graph.Input, trem, wet)
	b.connect(lfo, depth)
	b.modulate(depth, trem, "gain")
	b.modulate(offset, trem, "gain")
}

func (b *builder) phaser(m Mix) {
	wet := b.mixer(m)

	lfo := b.lfo("lfo", phaserRate)
	depth := b.gain("lfoGain", phaserDepth)
	b.connect(lfo, depth)

	prev := graph.Input
	for i := range phaserStages {
		f := b.filter(fmt.Sprintf("allpass%d", i), stage.Allpass,
			phaserBaseFreq+float64(i)*phaserStep, phaserQ, 0)
		b.connect(prev, f)
		b.modulate(depth, f, "frequency")
		prev = f
	}

	// The loop back into the input closes through a one-quantum delay.
	fb := b.feedback("feedback", phaserFeedback)
	loop := b.delayLine("feedbackDelay", float64(b.cfg.BlockSize)/b.cfg.SampleRate, 0)
	b.chain(prev, fb, loop, graph.Input)
	b.connect(prev, wet)
}

func (b *builder) telephone(m Mix) {
	wet := b.mixer(m)

	hp := b.filter("highpass", stage.Highpass, telephoneLow, defaultQ, 0)
	lp := b.filter("lowpass", stage.Lowpass, telephoneHigh, defaultQ, 0)
	boost := b.gain("boost", telephoneGain)

	b.chain(graph.Input, hp, lp, boost, wet)
}

func (b *builder) echo(m Mix) {
	wet := b.mixer(m)

	for i, tap := range echoTaps {
		d := b.loopDelay(fmt.Sprintf("delay%d", i), tap.time)
		fb := b.feedback(fmt.Sprintf("feedback%d", i), tap.feedback)

		b.chain(graph.Input, d, wet)
		b.chain(d, fb, d)
	}
}

func (b *builder) underwater(m Mix) {
	wet := b.mixer(m)

	lp := b.filter("lowpass", stage.Lowpass, underwaterCutoff, defaultQ, 0)
	d := b.delayLine("delay", underwaterDelay, 1)
	lfo := b.lfo("lfo", underwaterRate)
	depth := b.gain("lfoGain", underwaterDepth)

	b.chain(graph.Input, lp, d, wet)
	b.connect(lfo, depth)
	b.modulate(depth, d, "delayTime")
}

func (b *builder) radio(m Mix) {
	wet := b.mixer(m)

	c, err := stage.NewCompressor(b.cfg, stage.CompressorSettings{
		ThresholdDB: -20,
		KneeDB:      30,
		Ratio:       12,
		Attack:      0.003,
		Release:     0.25,
	})
	comp := b.add("compressor", c, err)

	ws, err := stage.NewWaveshaper(effects.TanhCurve(radioCurvePoints, radioDrive))
	shaper := b.add("waveshaper", ws, err)

	eq := b.filter("eq", stage.Peaking, radioEQFreq, radioEQQ, radioEQGain)

	b.chain(graph.Input, comp, shaper, eq, wet)
}
