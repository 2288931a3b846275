package engine

import (
	"testing"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/builder"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/plaintext"
	"github.com/stretchr/testify/require"
)

func TestEvalLiterals(t *testing.T) {
	b := builder.New()
	arr := b.Param("arr", ir.ArrayOf(2, ir.Bits(1)))
	idx := b.ArrayIndexAt(arr, 1)
	one := b.Bool(true)
	wide := b.Literal(8, 3)
	g, err := b.Finalize(b.Concat(b.BitSlice(idx, 0, 1), one, wide))
	require.NoError(t, err)

	args := &Bindings[bool]{In: map[string][]bool{"arr": {false, true}}}
	v, err := EvalNode[bool](g, one, nil, args, plaintext.Ops{})
	require.NoError(t, err)
	require.Equal(t, Some(true), v)

	// the index literal has no value of its own
	v, err = EvalNode[bool](g, idx.Operand(1), nil, args, plaintext.Ops{})
	require.NoError(t, err)
	require.False(t, v.Valid)

	require.Panics(t, func() {
		_, _ = EvalNode[bool](g, wide, nil, args, plaintext.Ops{})
	})
}

func TestEvalGateOperands(t *testing.T) {
	b := builder.New()
	x := b.Param("x", ir.Bits(1))
	s := b.BitSlice(x, 0, 1)
	and := b.And(s, s)
	g, err := b.Finalize(and)
	require.NoError(t, err)

	args := &Bindings[bool]{In: map[string][]bool{"x": {true}}}
	v, err := EvalNode[bool](g, and, []Value[bool]{Some(true), Some(false)}, args, plaintext.Ops{})
	require.NoError(t, err)
	require.Equal(t, Some(false), v)

	require.Panics(t, func() {
		_, _ = EvalNode[bool](g, and, []Value[bool]{Some(true), {}}, args, plaintext.Ops{})
	})
	require.Panics(t, func() {
		_, _ = EvalNode[bool](g, s, nil, &Bindings[bool]{}, plaintext.Ops{})
	})
}

func TestCollectOutputsErrors(t *testing.T) {
	b := builder.New()
	acc := b.RefParam("acc", ir.Bits(1))
	s := b.BitSlice(acc, 0, 1)
	n := b.Not(s)
	g, err := b.Finalize(b.Tuple(n, n, n))
	require.NoError(t, err)

	values := map[ir.NodeID]Value[bool]{
		acc.ID: {},
		s.ID:   Some(true),
		n.ID:   Some(false),
	}
	inout := map[string][]bool{"acc": {true}}
	result := make([]bool, 1)

	// three outputs for a return value and a single in/out param
	err = CollectOutputs(g, result, inout, values, plaintext.Ops{})
	require.ErrorIs(t, err, ir.ErrInternal)

	b = builder.New()
	acc = b.RefParam("acc", ir.Bits(1))
	n = b.Not(b.BitSlice(acc, 0, 1))
	g, err = b.Finalize(b.Tuple(n, n))
	require.NoError(t, err)
	values = map[ir.NodeID]Value[bool]{n.ID: Some(false)}

	err = CollectOutputs(g, result, map[string][]bool{}, values, plaintext.Ops{})
	require.ErrorIs(t, err, ir.ErrInternal)

	// a gate without a value
	err = CollectOutputs(g, result, inout, map[ir.NodeID]Value[bool]{}, plaintext.Ops{})
	require.ErrorIs(t, err, ir.ErrInternal)

	require.NoError(t, CollectOutputs(g, result, inout, values, plaintext.Ops{}))
	require.Equal(t, []bool{false}, inout["acc"])
}

func TestCollectNodeValueBitOrder(t *testing.T) {
	b := builder.New()
	x := b.Param("x", ir.Bits(3))
	bits := b.SplitBits(x)
	c := b.Concat(bits[2], bits[1], bits[0])
	values := map[ir.NodeID]Value[bool]{
		bits[0].ID: Some(true),
		bits[1].ID: Some(false),
		bits[2].ID: Some(false),
	}
	out := make([]bool, 5)
	require.NoError(t, CollectNodeValue(c, out, 2, values, plaintext.Ops{}))
	require.Equal(t, []bool{false, false, true, false, false}, out)
}
