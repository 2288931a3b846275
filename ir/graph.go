package ir

import (
	"fmt"
	"io"
)

// Param describes a parameter of the top function in declaration order.
type Param struct {
	Name        string
	IsReference bool
	IsConst     bool
}

// IsInOut reports whether the parameter is passed by mutable reference, i.e. it
// is both read and updated by the computation.
func (p Param) IsInOut() bool {
	return p.IsReference && !p.IsConst
}

// Metadata describes the signature of the function a Graph was lowered from.
type Metadata struct {
	Params       []Param
	ReturnIsVoid bool
}

// NumOutParams counts the values the function produces: the return value
// (unless void) plus every in/out parameter.
func (m *Metadata) NumOutParams() int {
	n := 0
	if !m.ReturnIsVoid {
		n++
	}
	for _, p := range m.Params {
		if p.IsInOut() {
			n++
		}
	}
	return n
}

// Graph is an immutable, acyclic collection of nodes with a distinguished
// return node and an ordered parameter list.
type Graph struct {
	nodes  []*Node
	ret    *Node
	meta   Metadata
	params []*Node

	// position of each node in nodes
	pos   map[NodeID]int
	users [][]*Node
}

// NewGraph validates the nodes and builds the lookup tables of a Graph.
// The nodes must not be modified afterwards.
func NewGraph(nodes []*Node, ret *Node, meta Metadata) (*Graph, error) {
	g := &Graph{
		nodes: nodes,
		ret:   ret,
		meta:  meta,
		pos:   make(map[NodeID]int, len(nodes)),
		users: make([][]*Node, len(nodes)),
	}
	if err := g.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return g, nil
}

var operandCount = [...]int{
	OAnd:        2,
	OOr:         2,
	ONot:        1,
	OLiteral:    0,
	OBitSlice:   1,
	OConcat:     -1,
	OArray:      -1,
	OArrayIndex: -2,
	OTuple:      -1,
	OTupleIndex: 1,
	OParam:      0,
	ORightShift: 2,
}

func (g *Graph) validate() error {
	for i, n := range g.nodes {
		if n == nil {
			return fmt.Errorf("node %d is nil", i)
		}
		if _, ok := g.pos[n.ID]; ok {
			return fmt.Errorf("duplicate node id %d", n.ID)
		}
		g.pos[n.ID] = i
	}
	paramNodes := make(map[string]*Node)
	for _, n := range g.nodes {
		if !n.Op.IsValid() {
			return fmt.Errorf("node %d has unknown operation %v", n.ID, n.Op)
		}
		if n.Type == nil {
			return fmt.Errorf("node %d has no type", n.ID)
		}
		if err := n.Type.validate(); err != nil {
			return fmt.Errorf("node %d: %v", n.ID, err)
		}
		want := operandCount[n.Op]
		if (want >= 0 && len(n.Operands) != want) || (want == -2 && len(n.Operands) < 2) {
			return fmt.Errorf("node %s has %d operands", n.Label(), len(n.Operands))
		}
		for j, x := range n.Operands {
			if x == nil {
				return fmt.Errorf("node %s operand %d is nil", n.Label(), j)
			}
			k, ok := g.pos[x.ID]
			if !ok || g.nodes[k] != x {
				return fmt.Errorf("node %s operand %d (id %d) is not in the graph", n.Label(), j, x.ID)
			}
			g.users[k] = appendUnique(g.users[k], n)
		}
		switch n.Op {
		case OAnd, OOr, ONot:
			if !n.Type.IsBit() {
				return fmt.Errorf("gate %s must be bits[1], got %v", n.Label(), n.Type)
			}
		case OConcat:
			if err := validateConcat(n); err != nil {
				return err
			}
		case OParam:
			if n.Name == "" {
				return fmt.Errorf("param node %d has no name", n.ID)
			}
			if _, ok := paramNodes[n.Name]; ok {
				return fmt.Errorf("duplicate param %s", n.Name)
			}
			paramNodes[n.Name] = n
		}
	}
	if len(paramNodes) != len(g.meta.Params) {
		return fmt.Errorf("graph has %d params but metadata declares %d", len(paramNodes), len(g.meta.Params))
	}
	g.params = make([]*Node, len(g.meta.Params))
	for i, p := range g.meta.Params {
		n, ok := paramNodes[p.Name]
		if !ok {
			return fmt.Errorf("param %s has no node", p.Name)
		}
		g.params[i] = n
	}
	if g.ret == nil {
		return fmt.Errorf("return value is not set")
	}
	if k, ok := g.pos[g.ret.ID]; !ok || g.nodes[k] != g.ret {
		return fmt.Errorf("return value is not in the graph")
	}
	return nil
}

func validateConcat(n *Node) error {
	if n.Type.Kind != TBits {
		return fmt.Errorf("concat %s must be bits, got %v", n.Label(), n.Type)
	}
	if len(n.Operands) == 0 {
		return fmt.Errorf("concat %s has no operands", n.Label())
	}
	w := 0
	for j, x := range n.Operands {
		if x.Type == nil || x.Type.Kind != TBits {
			return fmt.Errorf("concat %s operand %d is not bits", n.Label(), j)
		}
		w += x.Type.Width
	}
	if w != n.Type.Width {
		return fmt.Errorf("concat %s operands have %d bits, want %d", n.Label(), w, n.Type.Width)
	}
	return nil
}

// a node may use the same operand twice, e.g. and(x, x)
func appendUnique(s []*Node, n *Node) []*Node {
	if len(s) > 0 && s[len(s)-1] == n {
		return s
	}
	return append(s, n)
}

func (g *Graph) Nodes() []*Node {
	return g.nodes
}

func (g *Graph) NbNodes() int {
	return len(g.nodes)
}

func (g *Graph) Return() *Node {
	return g.ret
}

func (g *Graph) Metadata() *Metadata {
	return &g.meta
}

// Params returns the param nodes in declaration order.
func (g *Graph) Params() []*Node {
	return g.params
}

func (g *Graph) Node(id NodeID) (*Node, bool) {
	k, ok := g.pos[id]
	if !ok {
		return nil, false
	}
	return g.nodes[k], true
}

// Position returns the index of n in Nodes, or -1.
func (g *Graph) Position(n *Node) int {
	k, ok := g.pos[n.ID]
	if !ok {
		return -1
	}
	return k
}

// Users returns the nodes that use n as an operand, in graph order.
func (g *Graph) Users(n *Node) []*Node {
	k, ok := g.pos[n.ID]
	if !ok {
		return nil
	}
	return g.users[k]
}

func (g *Graph) Print(w io.Writer) {
	for _, p := range g.meta.Params {
		fmt.Fprintf(w, "// param %s reference=%v const=%v\n", p.Name, p.IsReference, p.IsConst)
	}
	for _, n := range g.nodes {
		fmt.Fprintln(w, n.String())
	}
	if g.meta.ReturnIsVoid {
		fmt.Fprintf(w, "ret %s // void\n", g.ret.Label())
	} else {
		fmt.Fprintf(w, "ret %s\n", g.ret.Label())
	}
}
