package ir

type Stats struct {
	// number of nodes in the graph
	NbNodes int
	// number of nodes producing a concrete bit (and, or, not, literal, bit slice)
	NbGates int
	// number of and/or/not gates, i.e. the ones a backend has to compute
	NbBoolOps int
	// number of navigation nodes (array, tuple, concat, indexes, shifts, params)
	NbNavigation int
	// total flat width of params and of the return value
	NbInputBits  int
	NbOutputBits int
	// length of the longest operand chain, counted in nodes
	Depth int
}

// GetStats walks the graph once and collects some counters for logging.
func (g *Graph) GetStats() Stats {
	r := Stats{NbNodes: len(g.nodes)}
	depth := make(map[NodeID]int, len(g.nodes))
	var depthOf func(n *Node) int
	depthOf = func(n *Node) int {
		if d, ok := depth[n.ID]; ok {
			return d
		}
		// cycles are rejected later by the leveler; don't loop on them here
		depth[n.ID] = 0
		d := 0
		for _, x := range n.Operands {
			if y := depthOf(x); y > d {
				d = y
			}
		}
		depth[n.ID] = d + 1
		return d + 1
	}
	for _, n := range g.nodes {
		if n.Op.IsGate() {
			r.NbGates++
		} else {
			r.NbNavigation++
		}
		switch n.Op {
		case OAnd, OOr, ONot:
			r.NbBoolOps++
		case OParam:
			r.NbInputBits += n.Type.FlatBitCount()
		}
		if d := depthOf(n); d > r.Depth {
			r.Depth = d
		}
	}
	r.NbOutputBits = g.ret.Type.FlatBitCount()
	return r
}
