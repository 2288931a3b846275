package ir

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nand() (*nodes, *Node, Metadata) {
	var ns nodes
	a := ns.param("a", Bits(1))
	b := ns.param("b", Bits(1))
	and := ns.add(OAnd, Bits(1), ns.slice(a, 0, 1), ns.slice(b, 0, 1))
	ret := ns.add(ONot, Bits(1), and)
	return &ns, ret, Metadata{Params: []Param{{Name: "a"}, {Name: "b"}}}
}

func TestNewGraph(t *testing.T) {
	ns, ret, meta := nand()
	g, err := NewGraph(ns.all, ret, meta)
	require.NoError(t, err)

	assert.Equal(t, 6, g.NbNodes())
	assert.Same(t, ret, g.Return())
	require.Len(t, g.Params(), 2)
	assert.Equal(t, "b", g.Params()[1].Name)

	n, ok := g.Node(5)
	require.True(t, ok)
	assert.Equal(t, OAnd, n.Op)
	assert.Equal(t, 4, g.Position(n))
	assert.Equal(t, []*Node{ret}, g.Users(n))
	assert.Equal(t, "and.5: bits[1] = and(bit_slice.3, bit_slice.4)", n.String())

	var buf bytes.Buffer
	g.Print(&buf)
	assert.Contains(t, buf.String(), "ret not.6")

	stats := g.GetStats()
	assert.Equal(t, Stats{
		NbNodes:      6,
		NbGates:      4,
		NbBoolOps:    2,
		NbNavigation: 2,
		NbInputBits:  2,
		NbOutputBits: 1,
		Depth:        4,
	}, stats)
}

func TestNewGraphRejects(t *testing.T) {
	cases := map[string]func(ns *nodes, ret *Node, meta *Metadata) *Node{
		"duplicate id": func(ns *nodes, ret *Node, meta *Metadata) *Node {
			ns.all[1].ID = ns.all[0].ID
			return ret
		},
		"unknown op": func(ns *nodes, ret *Node, meta *Metadata) *Node {
			ns.all[2].Op = Operation(100)
			return ret
		},
		"wrong arity": func(ns *nodes, ret *Node, meta *Metadata) *Node {
			ret.Operands = append(ret.Operands, ret.Operands[0])
			return ret
		},
		"operand outside": func(ns *nodes, ret *Node, meta *Metadata) *Node {
			ret.Operands[0] = &Node{ID: 100, Op: OLiteral, Type: Bits(1)}
			return ret
		},
		"wide gate": func(ns *nodes, ret *Node, meta *Metadata) *Node {
			ret.Type = Bits(2)
			return ret
		},
		"bad type kind": func(ns *nodes, ret *Node, meta *Metadata) *Node {
			ret.Type = &Type{}
			return ret
		},
		"param without metadata": func(ns *nodes, ret *Node, meta *Metadata) *Node {
			meta.Params = meta.Params[:1]
			return ret
		},
		"metadata without param": func(ns *nodes, ret *Node, meta *Metadata) *Node {
			meta.Params[1].Name = "c"
			return ret
		},
		"no return": func(ns *nodes, ret *Node, meta *Metadata) *Node {
			return nil
		},
		"empty concat": func(ns *nodes, ret *Node, meta *Metadata) *Node {
			return ns.add(OConcat, Bits(1))
		},
		"concat width": func(ns *nodes, ret *Node, meta *Metadata) *Node {
			return ns.add(OConcat, Bits(3), ret, ns.all[2])
		},
		"concat of array": func(ns *nodes, ret *Node, meta *Metadata) *Node {
			arr := ns.add(OArray, ArrayOf(1, Bits(1)), ret)
			return ns.add(OConcat, Bits(1), arr)
		},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			ns, ret, meta := nand()
			ret = f(ns, ret, &meta)
			_, err := NewGraph(ns.all, ret, meta)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestNumOutParams(t *testing.T) {
	meta := Metadata{Params: []Param{
		{Name: "a"},
		{Name: "b", IsReference: true},
		{Name: "c", IsReference: true, IsConst: true},
	}}
	assert.Equal(t, 2, meta.NumOutParams())
	meta.ReturnIsVoid = true
	assert.Equal(t, 1, meta.NumOutParams())
	assert.True(t, meta.Params[1].IsInOut())
	assert.False(t, meta.Params[2].IsInOut())
}

func TestTypes(t *testing.T) {
	tt := TupleOf(Bits(3), ArrayOf(4, Bits(8)))
	assert.Equal(t, 35, tt.FlatBitCount())
	assert.Equal(t, "(bits[3], bits[8][4])", tt.String())
	assert.True(t, Bits(1).IsBit())
	assert.False(t, ArrayOf(1, Bits(1)).IsBit())
}

func TestSerialize(t *testing.T) {
	var ns nodes
	tup := ns.param("tup", TupleOf(Bits(3), ArrayOf(2, Bits(2))))
	arr := ns.add(OTupleIndex, ArrayOf(2, Bits(2)), tup)
	arr.Index = 1
	el := ns.add(OArrayIndex, Bits(2), arr, ns.literal(32, 1))
	s := ns.slice(el, 1, 1)
	ret := ns.add(OTuple, TupleOf(Bits(1)), ns.add(ONot, Bits(1), s))
	g, err := NewGraph(ns.all, ret, Metadata{Params: []Param{{Name: "tup", IsReference: true}}, ReturnIsVoid: true})
	require.NoError(t, err)

	h, err := DeserializeGraph(g.Serialize())
	require.NoError(t, err)
	require.Equal(t, g.NbNodes(), h.NbNodes())
	for i, n := range g.Nodes() {
		assert.Equal(t, n.String(), h.Nodes()[i].String())
	}
	assert.Equal(t, g.Metadata(), h.Metadata())
	assert.Equal(t, g.Return().ID, h.Return().ID)

	_, err = DeserializeGraph([]byte("not a graph"))
	require.ErrorIs(t, err, ErrInvalidArgument)
}
