package layering

import (
	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
)

// FromCircuit returns the dependency graph of a circuit: one vertex per node
// id and an edge from each operand to every node using it.
func FromCircuit(c *ir.Graph) *Graph[ir.NodeID] {
	g := NewGraph[ir.NodeID]()
	for _, n := range c.Nodes() {
		g.AddVertex(n.ID)
		for _, x := range n.Operands {
			g.AddEdge(x.ID, n.ID)
		}
	}
	return g
}

func TopoSort(c *ir.Graph) ([]ir.NodeID, error) {
	return FromCircuit(c).TopologicalSort()
}

// LevelSort partitions the nodes of c into levels: each node only depends on
// nodes of strictly earlier levels. Within a level, ids are ascending.
func LevelSort(c *ir.Graph) ([][]ir.NodeID, error) {
	return FromCircuit(c).SortGraphByLevels()
}

func TopoSortedCellNames(c *ir.Graph) ([]string, error) {
	order, err := TopoSort(c)
	if err != nil {
		return nil, err
	}
	return labels(c, order), nil
}

func LevelSortedCellNames(c *ir.Graph) ([][]string, error) {
	levels, err := LevelSort(c)
	if err != nil {
		return nil, err
	}
	res := make([][]string, len(levels))
	for i, ids := range levels {
		res[i] = labels(c, ids)
	}
	return res, nil
}

func labels(c *ir.Graph, ids []ir.NodeID) []string {
	res := make([]string, len(ids))
	for i, id := range ids {
		n, ok := c.Node(id)
		if !ok {
			panic("unexpected: unknown node id")
		}
		res[i] = n.Label()
	}
	return res
}
