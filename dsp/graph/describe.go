package graph

import "sort"

// NodeInfo describes one node for inspection and debugging output.
type NodeInfo struct {
	ID       NodeID             `json:"id"`
	Name     string             `json:"name"`
	Params   map[string]float64 `json:"params,omitempty"`
	Feedback bool               `json:"feedback,omitempty"`
}

// Description is a serializable snapshot of a graph's topology.
type Description struct {
	SampleRate float64    `json:"sampleRate"`
	Quantum    int        `json:"quantum"`
	Nodes      []NodeInfo `json:"nodes"`
	Edges      []Edge     `json:"edges"`
	Order      []NodeID   `json:"order,omitempty"`
}

// ParamLister is implemented by stages that can enumerate their parameters.
type ParamLister interface {
	Params() []*Param
}

// Describe returns a snapshot of nodes, intrinsic parameter values and
// edges. Order is filled once the graph has been compiled.
func (g *Graph) Describe() Description {
	d := Description{
		SampleRate: g.cfg.SampleRate,
		Quantum:    g.cfg.BlockSize,
		Nodes:      make([]NodeInfo, len(g.nodes)),
		Edges:      g.Edges(),
	}

	for id, nd := range g.nodes {
		info := NodeInfo{ID: NodeID(id), Name: nd.name, Feedback: nd.feedback != nil}
		if pl, ok := nd.stage.(ParamLister); ok {
			params := pl.Params()
			if len(params) > 0 {
				info.Params = make(map[string]float64, len(params))
				for _, p := range params {
					info.Params[p.Name()] = p.Value()
				}
			}
		}
		d.Nodes[id] = info
	}

	if g.compiled {
		d.Order = append([]NodeID(nil), g.order...)
	}

	sort.SliceStable(d.Edges, func(i, j int) bool {
		if d.Edges[i].From != d.Edges[j].From {
			return d.Edges[i].From < d.Edges[j].From
		}
		return d.Edges[i].To < d.Edges[j].To
	})

	return d
}
