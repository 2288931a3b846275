package builder

import (
	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
)

// The helpers below only emit and/or/not gates, which is all the engine and
// the backends know how to compute.

func (b *Builder) Xor(x, y *ir.Node) *ir.Node {
	return b.Or(b.And(x, b.Not(y)), b.And(b.Not(x), y))
}

// Mux returns a if sel is set, else c.
func (b *Builder) Mux(sel, a, c *ir.Node) *ir.Node {
	return b.Or(b.And(sel, a), b.And(b.Not(sel), c))
}

// SplitBits slices every bit out of a bits-typed value, least significant first.
func (b *Builder) SplitBits(x *ir.Node) []*ir.Node {
	if x.Type.Kind != ir.TBits {
		panic("SplitBits expects a bits value")
	}
	res := make([]*ir.Node, x.Type.Width)
	for i := range res {
		res[i] = b.BitSlice(x, i, 1)
	}
	return res
}

// JoinBits is the inverse of SplitBits: bits[0] is the least significant bit.
func (b *Builder) JoinBits(bits []*ir.Node) *ir.Node {
	xs := make([]*ir.Node, len(bits))
	for i, x := range bits {
		xs[len(bits)-1-i] = x
	}
	return b.Concat(xs...)
}

func (b *Builder) FullAdder(x, y, cin *ir.Node) (*ir.Node, *ir.Node) {
	p := b.Xor(x, y)
	sum := b.Xor(p, cin)
	cout := b.Or(b.And(x, y), b.And(p, cin))
	return sum, cout
}

// RippleCarryAdd adds two little-endian bit vectors of the same length.
func (b *Builder) RippleCarryAdd(x, y []*ir.Node, cin *ir.Node) ([]*ir.Node, *ir.Node) {
	if len(x) != len(y) {
		panic("operands must have the same width")
	}
	sum := make([]*ir.Node, len(x))
	c := cin
	for i := range x {
		sum[i], c = b.FullAdder(x[i], y[i], c)
	}
	return sum, c
}

// BrentKungAdder4Bits performs 4-bit addition using the Brent-Kung prefix method.
func (b *Builder) BrentKungAdder4Bits(x, y []*ir.Node, carryIn *ir.Node) ([]*ir.Node, *ir.Node) {
	if len(x) != 4 || len(y) != 4 {
		panic("Input slices must be 4 bits long")
	}

	// Step 1: Generate and propagate
	g := make([]*ir.Node, 4)
	p := make([]*ir.Node, 4)
	for i := 0; i < 4; i++ {
		g[i] = b.And(x[i], y[i])
		p[i] = b.Xor(x[i], y[i])
	}

	// Step 2: Prefix computation
	g10 := b.Or(g[1], b.And(p[1], g[0]))
	g20 := b.Or(g[2], b.And(p[2], g10))
	g30 := b.Or(g[3], b.And(p[3], g20))

	// Step 3: Calculate carries
	p01 := b.And(p[0], p[1])
	p012 := b.And(p01, p[2])
	p0123 := b.And(p012, p[3])
	c := make([]*ir.Node, 5)
	c[0] = carryIn
	c[1] = b.Or(g[0], b.And(p[0], c[0]))
	c[2] = b.Or(g10, b.And(p01, c[0]))
	c[3] = b.Or(g20, b.And(p012, c[0]))
	c[4] = b.Or(g30, b.And(p0123, c[0]))

	// Step 4: Calculate sum
	sum := make([]*ir.Node, 4)
	for i := 0; i < 4; i++ {
		sum[i] = b.Xor(p[i], c[i])
	}

	return sum, c[4]
}

// Add returns x+y truncated to the width of x. Widths that are a multiple of 4
// are built from Brent-Kung blocks, the others with a ripple carry chain.
func (b *Builder) Add(x, y *ir.Node) *ir.Node {
	xs := b.SplitBits(x)
	ys := b.SplitBits(y)
	if len(xs) != len(ys) {
		panic("operands must have the same width")
	}
	c := b.Bool(false)
	var sum []*ir.Node
	if len(xs)%4 == 0 {
		for i := 0; i < len(xs); i += 4 {
			var s []*ir.Node
			s, c = b.BrentKungAdder4Bits(xs[i:i+4], ys[i:i+4], c)
			sum = append(sum, s...)
		}
	} else {
		sum, _ = b.RippleCarryAdd(xs, ys, c)
	}
	return b.JoinBits(sum)
}
