package u32adder

import (
	"github.com/PolyhedraZK/ExpanderBoolCircuit/builder"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
)

// NaiveAdder32Bits is a ripple carry adder: one carry after the other.
func NaiveAdder32Bits(b *builder.Builder, x, y []*ir.Node, cin *ir.Node) ([]*ir.Node, *ir.Node) {
	if len(x) != 32 || len(y) != 32 {
		panic("Input slices must be 32 bits long")
	}

	sum := make([]*ir.Node, 32)
	carry := cin

	// Pre-compute generate and propagate for all bits
	gen := make([]*ir.Node, 32)
	prop := make([]*ir.Node, 32)
	for i := 0; i < 32; i++ {
		gen[i] = b.And(x[i], y[i])
		prop[i] = b.Xor(x[i], y[i])
	}

	for i := 0; i < 32; i++ {
		sum[i] = b.Xor(prop[i], carry)
		carry = b.Or(gen[i], b.And(prop[i], carry))
	}
	return sum, carry
}
