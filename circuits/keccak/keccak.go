// Package keccak builds the Keccak-f[1600] permutation as a boolean circuit.
// It is a large, realistic circuit used to exercise the schedulers.
package keccak

import (
	"fmt"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/builder"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
)

var RoundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// StateType is the type of the permutation state: 25 lanes of 64 bits, lane
// x+5*y at index x+5*y.
var StateType = ir.ArrayOf(25, ir.Bits(64))

// rotation offsets of the rho step, indexed by x+5*y
var rotations = [25]int{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

// NewPermutation returns the circuit of the first nbRounds rounds of
// Keccak-f[1600]. With inPlace, the state is an in/out param named "state"
// and the function returns nothing; otherwise it takes the param "state" and
// returns the permuted state.
func NewPermutation(nbRounds int, inPlace bool) (*ir.Graph, error) {
	if nbRounds < 1 || nbRounds > 24 {
		return nil, fmt.Errorf("%w: %d rounds", ir.ErrInvalidArgument, nbRounds)
	}
	b := builder.New()
	var state *ir.Node
	if inPlace {
		state = b.RefParam("state", StateType)
	} else {
		state = b.Param("state", StateType)
	}

	var a [25][]*ir.Node
	for i := range a {
		a[i] = b.SplitBits(b.ArrayIndexAt(state, i))
	}
	for r := 0; r < nbRounds; r++ {
		a = round(b, a, RoundConstants[r])
	}

	lanes := make([]*ir.Node, 25)
	for i := range lanes {
		lanes[i] = b.JoinBits(a[i])
	}
	if inPlace {
		return b.FinalizeVoid(b.Array(lanes...))
	}
	return b.Finalize(b.Array(lanes...))
}

func round(b *builder.Builder, a [25][]*ir.Node, rc uint64) [25][]*ir.Node {
	// theta
	var c [5][]*ir.Node
	for x := 0; x < 5; x++ {
		c[x] = xor(b, a[x], a[x+5], a[x+10], a[x+15], a[x+20])
	}
	for x := 0; x < 5; x++ {
		d := xor(b, c[(x+4)%5], rotateLeft(c[(x+1)%5], 1))
		for y := 0; y < 5; y++ {
			a[x+5*y] = xor(b, a[x+5*y], d)
		}
	}

	// rho and pi
	var t [25][]*ir.Node
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			t[y+5*((2*x+3*y)%5)] = rotateLeft(a[x+5*y], rotations[x+5*y])
		}
	}

	// chi
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			a[x+5*y] = xor(b, t[x+5*y], and(b, not(b, t[(x+1)%5+5*y]), t[(x+2)%5+5*y]))
		}
	}

	// iota
	for j := 0; j < 64; j++ {
		if rc>>uint(j)&1 == 1 {
			a[0][j] = b.Not(a[0][j])
		}
	}
	return a
}

func xor(b *builder.Builder, lanes ...[]*ir.Node) []*ir.Node {
	res := make([]*ir.Node, 64)
	for i := range res {
		vars := make([]*ir.Node, len(lanes))
		for j, l := range lanes {
			vars[j] = l[i]
		}
		res[i] = binaryTreeOps(vars, b.Xor)
	}
	return res
}

func and(b *builder.Builder, x, y []*ir.Node) []*ir.Node {
	res := make([]*ir.Node, 64)
	for i := range res {
		res[i] = b.And(x[i], y[i])
	}
	return res
}

func not(b *builder.Builder, x []*ir.Node) []*ir.Node {
	res := make([]*ir.Node, 64)
	for i := range res {
		res[i] = b.Not(x[i])
	}
	return res
}

func binaryTreeOps(vars []*ir.Node, f func(*ir.Node, *ir.Node) *ir.Node) *ir.Node {
	if len(vars) == 1 {
		return vars[0]
	}
	mid := len(vars) / 2
	return f(binaryTreeOps(vars[:mid], f), binaryTreeOps(vars[mid:], f))
}

func rotateLeft(bits []*ir.Node, k int) []*ir.Node {
	n := len(bits)
	s := k % n
	res := make([]*ir.Node, 0, n)
	res = append(res, bits[n-s:]...)
	return append(res, bits[:n-s]...)
}
