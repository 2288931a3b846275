package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tiny builder for this package's tests, which cannot import package builder
type nodes struct {
	next NodeID
	all  []*Node
}

func (ns *nodes) add(op Operation, t *Type, operands ...*Node) *Node {
	ns.next++
	n := &Node{ID: ns.next, Op: op, Type: t, Operands: operands}
	ns.all = append(ns.all, n)
	return n
}

func (ns *nodes) param(name string, t *Type) *Node {
	n := ns.add(OParam, t)
	n.Name = name
	return n
}

func (ns *nodes) slice(x *Node, start, width int) *Node {
	n := ns.add(OBitSlice, Bits(width), x)
	n.Start = start
	return n
}

func (ns *nodes) literal(width int, v uint64) *Node {
	n := ns.add(OLiteral, Bits(width))
	n.Value = v
	return n
}

func TestResolveBits(t *testing.T) {
	var ns nodes
	x := ns.param("x", Bits(8))
	name, offset, err := ResolveBitSlice(ns.slice(x, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, "x", name)
	assert.Equal(t, 3, offset)

	// nested slices add up
	_, offset, err = ResolveBitSlice(ns.slice(ns.slice(x, 2, 4), 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, offset)
}

func TestResolveArray(t *testing.T) {
	var ns nodes
	arr := ns.param("arr", ArrayOf(4, Bits(8)))
	idx := ns.add(OArrayIndex, Bits(8), arr, ns.literal(32, 2))
	name, offset, err := ResolveBitSlice(ns.slice(idx, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "arr", name)
	assert.Equal(t, 17, offset)

	out := ns.add(OArrayIndex, Bits(8), arr, ns.literal(32, 4))
	_, _, err = ResolveBitSlice(ns.slice(out, 0, 1))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestResolveUnsupportedIndexes(t *testing.T) {
	var ns nodes
	arr := ns.param("arr", ArrayOf(4, Bits(8)))
	i := ns.param("i", Bits(2))

	dynamic := ns.add(OArrayIndex, Bits(8), arr, i)
	_, _, err := ResolveBitSlice(ns.slice(dynamic, 1, 1))
	require.ErrorIs(t, err, ErrInvalidArgument)

	grid := ns.param("grid", ArrayOf(2, ArrayOf(2, Bits(1))))
	twoD := ns.add(OArrayIndex, Bits(1), grid, ns.literal(32, 1), ns.literal(32, 0))
	_, _, err = ResolveBitSlice(ns.slice(twoD, 0, 1))
	require.ErrorIs(t, err, ErrInvalidArgument)

	// an array of arrays indexed one level at a time is fine
	row := ns.add(OArrayIndex, ArrayOf(2, Bits(1)), grid, ns.literal(32, 1))
	cell := ns.add(OArrayIndex, Bits(1), row, ns.literal(32, 1))
	_, offset, err := ResolveBitSlice(ns.slice(cell, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, offset)
}

func TestResolveTuple(t *testing.T) {
	var ns nodes
	tup := ns.param("tup", TupleOf(Bits(3), ArrayOf(2, Bits(2)), Bits(5)))
	field := ns.add(OTupleIndex, Bits(5), tup)
	field.Index = 2
	name, offset, err := ResolveBitSlice(ns.slice(field, 4, 1))
	require.NoError(t, err)
	assert.Equal(t, "tup", name)
	assert.Equal(t, 3+4+4, offset)

	arr := ns.add(OTupleIndex, ArrayOf(2, Bits(2)), tup)
	arr.Index = 1
	el := ns.add(OArrayIndex, Bits(2), arr, ns.literal(32, 1))
	_, offset, err = ResolveBitSlice(ns.slice(el, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 3+2+1, offset)
}

func TestResolveOverflow(t *testing.T) {
	var ns nodes
	x := ns.param("x", Bits(4))
	_, offset, err := ResolveBitSlice(ns.slice(x, 4, 1))
	require.NoError(t, err)
	assert.Equal(t, 4, offset)

	_, _, err = ResolveBitSlice(ns.slice(x, 5, 1))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestResolveBadChain(t *testing.T) {
	var ns nodes
	x := ns.param("x", Bits(1))
	y := ns.param("y", Bits(1))
	concat := ns.add(OConcat, Bits(2), x, y)
	_, _, err := ResolveBitSlice(ns.slice(concat, 0, 1))
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = ResolveBitSlice(concat)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
