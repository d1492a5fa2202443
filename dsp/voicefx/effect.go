package voicefx

import (
	"github.com/cwbudde/algo-voicefx/dsp/graph"
)

// Effect is a built effect subgraph with one input and one output. An
// Effect owns its stages and is not safe for concurrent use.
type Effect struct {
	id        ID
	intensity Intensity
	mix       Mix
	graph     *graph.Graph
}

// ID returns the effect id the subgraph was built for.
func (e *Effect) ID() ID { return e.id }

// Intensity returns the clamped intensity.
func (e *Effect) Intensity() Intensity { return e.intensity }

// Mix returns the dry and wet gains.
func (e *Effect) Mix() Mix { return e.mix }

// Passthrough reports whether the effect is the identity.
func (e *Effect) Passthrough() bool {
	_, ok := Lookup(e.id)
	return !ok
}

// Process renders src into dst. State carries over between calls.
func (e *Effect) Process(dst, src []float64) error {
	return e.graph.Process(dst, src)
}

// Close disconnects the subgraph. Processing a closed effect returns
// graph.ErrClosed, as does closing it again.
func (e *Effect) Close() error {
	return e.graph.Close()
}

// Describe returns the subgraph topology.
func (e *Effect) Describe() graph.Description {
	return e.graph.Describe()
}
