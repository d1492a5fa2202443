package graph

import "fmt"

// Compile validates the graph and computes the processing order. Process
// compiles on demand; calling Compile directly surfaces errors early.
func (g *Graph) Compile() error {
	if g.closed {
		return ErrClosed
	}

	n := len(g.nodes)
	succ := make([][]NodeID, n)
	for _, e := range g.edges {
		succ[e.From] = append(succ[e.From], e.To)
	}

	g.breakers = g.breakers[:0]
	for id := range g.nodes {
		nd := &g.nodes[id]
		nd.feedback = nil
		fb, ok := nd.stage.(FeedbackBreaker)
		if ok && reaches(succ, NodeID(id), NodeID(id)) {
			nd.feedback = fb
			g.breakers = append(g.breakers, NodeID(id))
		}
	}

	indegree := make([]int, n)
	dependents := make([][]NodeID, n)
	for _, e := range g.edges {
		if e.Param == "" && g.nodes[e.To].feedback != nil {
			continue
		}
		indegree[e.To]++
		dependents[e.From] = append(dependents[e.From], e.To)
	}

	queue := make([]NodeID, 0, n)
	for id, d := range indegree {
		if d == 0 {
			queue = append(queue, NodeID(id))
		}
	}

	order := make([]NodeID, 0, n)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		order = append(order, id)
		for _, to := range dependents[id] {
			indegree[to]--
			if indegree[to] == 0 {
				queue = append(queue, to)
			}
		}
	}

	if len(order) != n {
		return fmt.Errorf("%w: %d of %d nodes schedulable", ErrCycle, len(order), n)
	}

	g.wire()
	g.order = order
	g.compiled = true
	return nil
}

// wire resolves edges into per-node input lists and allocates buffers.
func (g *Graph) wire() {
	q := g.cfg.BlockSize

	for id := range g.nodes {
		nd := &g.nodes[id]
		nd.inputs = nd.inputs[:0]
		nd.params = nd.params[:0]
		if len(nd.out) != q {
			nd.out = make([]float64, q)
			nd.mix = make([]float64, q)
		}
	}

	for _, e := range g.edges {
		to := &g.nodes[e.To]
		if e.Param == "" {
			to.inputs = append(to.inputs, e.From)
			continue
		}

		p := g.param(e.To, e.Param)
		idx := -1
		for i := range to.params {
			if to.params[i].param == p {
				idx = i
				break
			}
		}
		if idx < 0 {
			to.params = append(to.params, paramInput{param: p})
			idx = len(to.params) - 1
		}
		to.params[idx].sources = append(to.params[idx].sources, e.From)
	}

	for id := range g.nodes {
		for i := range g.nodes[id].params {
			pi := &g.nodes[id].params[i]
			pi.bufs = make([][]float64, len(pi.sources))
			for j, src := range pi.sources {
				pi.bufs[j] = g.nodes[src].out
			}
		}
	}

	if len(g.quantumIn) != q {
		g.quantumIn = make([]float64, q)
	}
}

// reaches reports whether target is reachable from the successors of start.
func reaches(succ [][]NodeID, start, target NodeID) bool {
	seen := make([]bool, len(succ))
	stack := append([]NodeID(nil), succ[start]...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == target {
			return true
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		stack = append(stack, succ[id]...)
	}
	return false
}
