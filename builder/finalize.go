package builder

import "github.com/PolyhedraZK/ExpanderBoolCircuit/ir"

// Finalize returns the graph of a function whose return value is ret.
func (b *Builder) Finalize(ret *ir.Node) (*ir.Graph, error) {
	return b.finalize(ret, false)
}

// FinalizeVoid returns the graph of a void function. ret is the tuple of the
// updated in/out params (an empty tuple when there are none).
func (b *Builder) FinalizeVoid(ret *ir.Node) (*ir.Graph, error) {
	return b.finalize(ret, true)
}

func (b *Builder) finalize(ret *ir.Node, void bool) (*ir.Graph, error) {
	params := make([]ir.Param, len(b.params))
	copy(params, b.params)
	nodes := make([]*ir.Node, len(b.nodes))
	copy(nodes, b.nodes)
	return ir.NewGraph(nodes, ret, ir.Metadata{
		Params:       params,
		ReturnIsVoid: void,
	})
}
