// Package u32adder builds 32-bit adder circuits, as used to compare the
// depth of different adder layouts.
package u32adder

import (
	"github.com/PolyhedraZK/ExpanderBoolCircuit/builder"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
)

// AdderFunc adds two little-endian 32-bit vectors with a carry in, and
// returns the sum and the carry out.
type AdderFunc func(b *builder.Builder, x, y []*ir.Node, carryIn *ir.Node) ([]*ir.Node, *ir.Node)

// BrentKungAdder32Bits chains eight 4-bit Brent-Kung blocks.
func BrentKungAdder32Bits(b *builder.Builder, x, y []*ir.Node, carryIn *ir.Node) ([]*ir.Node, *ir.Node) {
	if len(x) != 32 || len(y) != 32 {
		panic("Input slices must be 32 bits long")
	}
	sum := make([]*ir.Node, 0, 32)
	carry := carryIn
	for i := 0; i < 32; i += 4 {
		var s []*ir.Node
		s, carry = b.BrentKungAdder4Bits(x[i:i+4], y[i:i+4], carry)
		sum = append(sum, s...)
	}
	return sum, carry
}

// NewCircuit returns the circuit of a 32-bit adder: params a and b (bits[32])
// and cin (bits[1]), returning the tuple (sum: bits[32], cout: bits[1]).
func NewCircuit(adder AdderFunc) (*ir.Graph, error) {
	b := builder.New()
	a := b.Param("a", ir.Bits(32))
	c := b.Param("b", ir.Bits(32))
	cin := b.Param("cin", ir.Bits(1))
	sum, cout := adder(b, b.SplitBits(a), b.SplitBits(c), b.BitSlice(cin, 0, 1))
	return b.Finalize(b.Tuple(b.JoinBits(sum), cout))
}
