package graph

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Process renders src through the graph into dst. Both slices must have
// the same length and may alias. Input is consumed in whole quanta; a
// trailing partial quantum is padded with silence, so streaming callers
// should feed multiples of the quantum to keep state continuous.
func (g *Graph) Process(dst, src []float64) error {
	if g.closed {
		return ErrClosed
	}
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst %d, src %d", ErrLengthMismatch, len(dst), len(src))
	}
	if !g.compiled {
		if err := g.Compile(); err != nil {
			return err
		}
	}

	q := g.cfg.BlockSize
	out := g.nodes[Output].out
	for off := 0; off < len(src); off += q {
		n := min(q, len(src)-off)

		copy(g.quantumIn, src[off:off+n])
		clear(g.quantumIn[n:])

		g.renderQuantum()

		copy(dst[off:off+n], out[:n])
	}

	return nil
}

func (g *Graph) renderQuantum() {
	q := g.cfg.BlockSize

	for _, id := range g.order {
		nd := &g.nodes[id]
		for i := range nd.params {
			nd.params[i].param.render(q, nd.params[i].bufs)
		}

		if nd.feedback != nil {
			nd.feedback.Pull(nd.out)
			continue
		}

		g.mixInputs(id)
		nd.stage.Process(nd.out, nd.mix)
	}

	for _, id := range g.breakers {
		g.mixInputs(id)
		g.nodes[id].feedback.Push(g.nodes[id].mix)
	}
}

func (g *Graph) mixInputs(id NodeID) {
	nd := &g.nodes[id]
	if id == Input {
		copy(nd.mix, g.quantumIn)
	} else {
		clear(nd.mix)
	}
	for _, src := range nd.inputs {
		vecmath.AddBlockInPlace(nd.mix, g.nodes[src].out)
	}
}
