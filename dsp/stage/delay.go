package stage

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/delay"
	"github.com/cwbudde/algo-voicefx/dsp/graph"
)

// DefaultMaxDelay is the delay capacity in seconds when none is given.
const DefaultMaxDelay = 1.0

// Delay delays its input by the "delayTime" parameter in seconds, reading
// fractional positions with linear interpolation.
//
// Off a cycle the delay may be as short as zero. On a cycle the graph
// drives it through Pull and Push and the effective delay is at least one
// quantum.
type Delay struct {
	params
	delayTime *graph.Param

	line       *delay.Line
	sampleRate float64
	quantum    int
}

// NewDelay returns a delay with an initial time and capacity in seconds.
// A non-positive maxSeconds selects DefaultMaxDelay.
func NewDelay(cfg core.ProcessorConfig, seconds, maxSeconds float64) (*Delay, error) {
	if maxSeconds <= 0 {
		maxSeconds = DefaultMaxDelay
	}
	if !core.IsFinite(maxSeconds) || !core.IsFinite(seconds) {
		return nil, fmt.Errorf("stage: delay times must be finite: %v, %v", seconds, maxSeconds)
	}

	size := int(math.Ceil(maxSeconds*cfg.SampleRate)) + cfg.BlockSize + 2
	line, err := delay.New(size)
	if err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}

	d := &Delay{
		delayTime:  graph.NewParam("delayTime", seconds, 0, maxSeconds),
		line:       line,
		sampleRate: cfg.SampleRate,
		quantum:    cfg.BlockSize,
	}
	d.params = params{d.delayTime}
	return d, nil
}

// Process implements graph.Stage.
func (d *Delay) Process(dst, src []float64) {
	for i, x := range src {
		d.line.Write(x)
		// Read(1) is the sample just written, so a zero delay is identity.
		dst[i] = d.line.ReadFractional(d.delayTime.At(i)*d.sampleRate + 1)
	}
}

// Pull implements graph.FeedbackBreaker.
func (d *Delay) Pull(dst []float64) {
	minDelay := float64(d.quantum)
	for i := range dst {
		samples := math.Max(d.delayTime.At(i)*d.sampleRate, minDelay)
		dst[i] = d.line.ReadFractional(samples - float64(i))
	}
}

// Push implements graph.FeedbackBreaker.
func (d *Delay) Push(src []float64) {
	d.line.WriteBlock(src)
}

// Reset clears the delay memory.
func (d *Delay) Reset() {
	d.line.Reset()
}
