package engine

import (
	"fmt"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
)

// BitOperations is the backend computing on encoded bits: plaintext booleans,
// ciphertexts of some homomorphic scheme, field elements, ...
//
// Implementations are called concurrently from several workers and must
// support independent concurrent calls.
type BitOperations[B any] interface {
	And(lhs, rhs B) B
	Or(lhs, rhs B) B
	Not(in B) B
	Constant(value bool) B
	Copy(src B, dst *B)
	CopyOf(in B) B
}

// Value is the optional bit stored for a node. Navigation nodes (arrays,
// tuples, concats, indexes, shifts, params) evaluate to a Value that is not Valid.
type Value[B any] struct {
	Bit   B
	Valid bool
}

func Some[B any](b B) Value[B] {
	return Value[B]{Bit: b, Valid: true}
}

// Bindings maps param names to the bits passed by the caller. In spans are
// only read; InOut spans are read during evaluation and receive the updated
// values during output collection.
type Bindings[B any] struct {
	In    map[string][]B
	InOut map[string][]B
}

func (a *Bindings[B]) Lookup(name string) ([]B, bool) {
	if s, ok := a.In[name]; ok {
		return s, true
	}
	s, ok := a.InOut[name]
	return s, ok
}

// Check verifies that the bindings match the params of g: one span per
// param, of the param's flat width. A param bound in neither map is a
// programming error and panics.
func (a *Bindings[B]) Check(g *ir.Graph) error {
	for _, p := range g.Params() {
		span, ok := a.Lookup(p.Name)
		if !ok {
			panic(fmt.Sprintf("param %s is bound neither as an in nor as an inout argument", p.String()))
		}
		if w := p.Type.FlatBitCount(); len(span) != w {
			return fmt.Errorf("%w: param %s has %d bits, got a span of %d", ir.ErrFailedPrecondition, p.Name, w, len(span))
		}
	}
	if n := len(a.In) + len(a.InOut); n != len(g.Params()) {
		return fmt.Errorf("%w: function has %d params, got %d arguments", ir.ErrFailedPrecondition, len(g.Params()), n)
	}
	return nil
}

// EvalNode computes the value of a single node from the values of its operands.
//
// It is a pure function of its arguments, apart from the calls into ops.
// Malformed bit slice chains are reported as errors; anything the lowering
// never emits (unknown operations, multi-bit literals outside of array
// indexes, unbound params) panics.
func EvalNode[B any](g *ir.Graph, n *ir.Node, operands []Value[B], args *Bindings[B], ops BitOperations[B]) (Value[B], error) {
	switch n.Op {
	case ir.OArray, ir.OArrayIndex, ir.OConcat, ir.OParam, ir.ORightShift, ir.OTuple, ir.OTupleIndex:
		// bit slices and output collection walk through these
		return Value[B]{}, nil
	case ir.OBitSlice:
		return evalBitSlice(n, args, ops)
	case ir.OLiteral:
		if n.Type.Width == 1 {
			return Some(ops.Constant(n.Value != 0)), nil
		}
		// wider literals are only allowed as indexes into param arrays
		for _, user := range g.Users(n) {
			if user.Op != ir.OArrayIndex {
				panic("unsupported literal: " + n.String())
			}
		}
		return Value[B]{}, nil
	case ir.OAnd:
		checkOperands(n, operands, 2)
		return Some(ops.And(operands[0].Bit, operands[1].Bit)), nil
	case ir.OOr:
		checkOperands(n, operands, 2)
		return Some(ops.Or(operands[0].Bit, operands[1].Bit)), nil
	case ir.ONot:
		checkOperands(n, operands, 1)
		return Some(ops.Not(operands[0].Bit)), nil
	}
	panic("unsupported node: " + n.String())
}

func checkOperands[B any](n *ir.Node, operands []Value[B], k int) {
	if len(operands) != k {
		panic(fmt.Sprintf("unexpected: %d operands for %s", len(operands), n.String()))
	}
	for i, x := range operands {
		if !x.Valid {
			panic(fmt.Sprintf("unexpected: operand %d of %s has no value", i, n.String()))
		}
	}
}

// evalBitSlice copies the param bit addressed by the slice.
func evalBitSlice[B any](n *ir.Node, args *Bindings[B], ops BitOperations[B]) (Value[B], error) {
	name, offset, err := ir.ResolveBitSlice(n)
	if err != nil {
		return Value[B]{}, err
	}
	span, ok := args.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("param %s is not bound, needed by %s", name, n.String()))
	}
	if offset == len(span) {
		// shifted out by a right shift
		return Value[B]{}, nil
	}
	if offset > len(span) {
		return Value[B]{}, fmt.Errorf("%w: bit %d of %s is out of the bound span of %d bits", ir.ErrFailedPrecondition, offset, name, len(span))
	}
	return Some(ops.CopyOf(span[offset])), nil
}
