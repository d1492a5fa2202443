package graph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// Errors returned by graph construction and processing.
var (
	ErrCycle          = errors.New("graph: cycle without a feedback delay")
	ErrClosed         = errors.New("graph: closed")
	ErrUnknownNode    = errors.New("graph: unknown node")
	ErrUnknownParam   = errors.New("graph: unknown parameter")
	ErrSelfConnection = errors.New("graph: node connected to itself")
	ErrLengthMismatch = errors.New("graph: buffer length mismatch")
)

// NodeID addresses a node inside one graph.
type NodeID int

// Reserved nodes present in every graph.
const (
	Input  NodeID = 0
	Output NodeID = 1
)

// Stage processes one render quantum. src holds the summed audio inputs
// and is all zeros for a node without inputs; dst receives the output.
// Both have the quantum length.
type Stage interface {
	Process(dst, src []float64)
}

// ParamHolder is implemented by stages with automatable parameters.
// Param returns nil for unknown names.
type ParamHolder interface {
	Param(name string) *Param
}

// FeedbackBreaker is implemented by stages that can close a cycle. When
// the stage lies on a cycle, the graph calls Pull in place of Process and
// Push with the summed input once every other node has run.
type FeedbackBreaker interface {
	Pull(dst []float64)
	Push(src []float64)
}

type node struct {
	name  string
	stage Stage

	inputs []NodeID
	params []paramInput

	out []float64
	mix []float64

	feedback FeedbackBreaker
}

type paramInput struct {
	param   *Param
	sources []NodeID
	bufs    [][]float64
}

// Edge is a directed connection. Param is empty for audio edges.
type Edge struct {
	From  NodeID `json:"from"`
	To    NodeID `json:"to"`
	Param string `json:"param,omitempty"`
}

// Graph is a signal graph rendered in fixed quanta. A Graph is not safe
// for concurrent use.
type Graph struct {
	cfg core.ProcessorConfig

	nodes []node
	edges []Edge

	order     []NodeID
	breakers  []NodeID
	compiled  bool
	closed    bool
	quantumIn []float64
}

// New creates a graph holding only the Input and Output nodes.
func New(cfg core.ProcessorConfig) (*Graph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("graph: %w", err)
	}

	g := &Graph{cfg: cfg}
	g.Add("input", through{})
	g.Add("output", through{})
	return g, nil
}

// Config returns the processing configuration.
func (g *Graph) Config() core.ProcessorConfig { return g.cfg }

// Len returns the number of nodes, including Input and Output.
func (g *Graph) Len() int { return len(g.nodes) }

// Edges returns a copy of the edge list.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Stage returns the stage of a node, or nil for an unknown id.
func (g *Graph) Stage(id NodeID) Stage {
	if !g.valid(id) {
		return nil
	}
	return g.nodes[id].stage
}

// Add appends a stage and returns its id.
func (g *Graph) Add(name string, s Stage) NodeID {
	g.nodes = append(g.nodes, node{name: name, stage: s})
	g.compiled = false
	return NodeID(len(g.nodes) - 1)
}

// Connect routes the audio output of from into to. Connecting the same
// pair twice has no effect.
func (g *Graph) Connect(from, to NodeID) error {
	return g.connect(Edge{From: from, To: to})
}

// ConnectParam routes the audio output of from into the named parameter
// of to.
func (g *Graph) ConnectParam(from, to NodeID, param string) error {
	if param == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownParam)
	}
	if g.valid(to) && g.param(to, param) == nil {
		return fmt.Errorf("%w: %s.%s", ErrUnknownParam, g.nodes[to].name, param)
	}
	return g.connect(Edge{From: from, To: to, Param: param})
}

// Chain connects the given nodes in series.
func (g *Graph) Chain(ids ...NodeID) error {
	for i := 1; i < len(ids); i++ {
		if err := g.Connect(ids[i-1], ids[i]); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) connect(e Edge) error {
	if g.closed {
		return ErrClosed
	}
	if !g.valid(e.From) || !g.valid(e.To) {
		return fmt.Errorf("%w: %d -> %d", ErrUnknownNode, e.From, e.To)
	}
	if e.From == e.To {
		return fmt.Errorf("%w: %s", ErrSelfConnection, g.nodes[e.From].name)
	}
	if slices.Contains(g.edges, e) {
		return nil
	}

	g.edges = append(g.edges, e)
	g.compiled = false
	return nil
}

// Close releases the graph buffers. Closing twice returns ErrClosed.
func (g *Graph) Close() error {
	if g.closed {
		return ErrClosed
	}
	g.closed = true
	for i := range g.nodes {
		g.nodes[i].out = nil
		g.nodes[i].mix = nil
	}
	g.quantumIn = nil
	return nil
}

// Closed reports whether Close has been called.
func (g *Graph) Closed() bool { return g.closed }

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

func (g *Graph) param(id NodeID, name string) *Param {
	ph, ok := g.nodes[id].stage.(ParamHolder)
	if !ok {
		return nil
	}
	return ph.Param(name)
}

type through struct{}

func (through) Process(dst, src []float64) { copy(dst, src) }
