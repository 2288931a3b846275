// Package builder provides an API to construct boolean circuits node by node.
// It is what a lowering from a hardware IR or a netlist would use, and what the
// tests use to write circuits by hand.
package builder

import (
	"fmt"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
)

// Builder accumulates nodes and parameter metadata. Node ids are assigned
// sequentially starting from 1.
type Builder struct {
	nodes  []*ir.Node
	params []ir.Param
	nextID ir.NodeID
}

func New() *Builder {
	return &Builder{nextID: 1}
}

func (b *Builder) newNode(op ir.Operation, t *ir.Type, operands ...*ir.Node) *ir.Node {
	n := &ir.Node{
		ID:       b.nextID,
		Op:       op,
		Type:     t,
		Operands: operands,
	}
	b.nextID++
	b.nodes = append(b.nodes, n)
	return n
}

func (b *Builder) param(p ir.Param, t *ir.Type) *ir.Node {
	for _, q := range b.params {
		if q.Name == p.Name {
			panic(fmt.Sprintf("duplicate param %s", p.Name))
		}
	}
	b.params = append(b.params, p)
	n := b.newNode(ir.OParam, t)
	n.Name = p.Name
	return n
}

// Param declares a parameter passed by value.
func (b *Builder) Param(name string, t *ir.Type) *ir.Node {
	return b.param(ir.Param{Name: name}, t)
}

// RefParam declares an in/out parameter (passed by non-const reference).
func (b *Builder) RefParam(name string, t *ir.Type) *ir.Node {
	return b.param(ir.Param{Name: name, IsReference: true}, t)
}

// ConstRefParam declares a parameter passed by const reference. It is read only.
func (b *Builder) ConstRefParam(name string, t *ir.Type) *ir.Node {
	return b.param(ir.Param{Name: name, IsReference: true, IsConst: true}, t)
}

func (b *Builder) Literal(width int, value uint64) *ir.Node {
	n := b.newNode(ir.OLiteral, ir.Bits(width))
	n.Value = value
	return n
}

func (b *Builder) Bool(v bool) *ir.Node {
	if v {
		return b.Literal(1, 1)
	}
	return b.Literal(1, 0)
}

func (b *Builder) And(x, y *ir.Node) *ir.Node {
	return b.newNode(ir.OAnd, ir.Bits(1), x, y)
}

func (b *Builder) Or(x, y *ir.Node) *ir.Node {
	return b.newNode(ir.OOr, ir.Bits(1), x, y)
}

func (b *Builder) Not(x *ir.Node) *ir.Node {
	return b.newNode(ir.ONot, ir.Bits(1), x)
}

// BitSlice takes width bits of x starting at bit start (bit 0 is the least significant).
func (b *Builder) BitSlice(x *ir.Node, start, width int) *ir.Node {
	n := b.newNode(ir.OBitSlice, ir.Bits(width), x)
	n.Start = start
	return n
}

// Concat joins bit values; xs[0] becomes the most significant part.
func (b *Builder) Concat(xs ...*ir.Node) *ir.Node {
	w := 0
	for _, x := range xs {
		if x.Type.Kind != ir.TBits {
			panic("concat operands must be bits")
		}
		w += x.Type.Width
	}
	return b.newNode(ir.OConcat, ir.Bits(w), xs...)
}

func (b *Builder) Array(xs ...*ir.Node) *ir.Node {
	if len(xs) == 0 {
		panic("empty array")
	}
	return b.newNode(ir.OArray, ir.ArrayOf(len(xs), xs[0].Type), xs...)
}

// ArrayIndex indexes arr with one index per dimension.
func (b *Builder) ArrayIndex(arr *ir.Node, indices ...*ir.Node) *ir.Node {
	if len(indices) == 0 {
		panic("array index without indices")
	}
	t := arr.Type
	for range indices {
		if t.Kind != ir.TArray {
			panic(fmt.Sprintf("%s is not an array of enough dimensions", arr.Label()))
		}
		t = t.Elem
	}
	return b.newNode(ir.OArrayIndex, t, append([]*ir.Node{arr}, indices...)...)
}

// ArrayIndexAt is ArrayIndex with literal indices.
func (b *Builder) ArrayIndexAt(arr *ir.Node, indices ...int) *ir.Node {
	lits := make([]*ir.Node, len(indices))
	for i, x := range indices {
		lits[i] = b.Literal(32, uint64(x))
	}
	return b.ArrayIndex(arr, lits...)
}

func (b *Builder) Tuple(xs ...*ir.Node) *ir.Node {
	ts := make([]*ir.Type, len(xs))
	for i, x := range xs {
		ts[i] = x.Type
	}
	return b.newNode(ir.OTuple, ir.TupleOf(ts...), xs...)
}

func (b *Builder) TupleIndex(x *ir.Node, i int) *ir.Node {
	if x.Type.Kind != ir.TTuple || i < 0 || i >= len(x.Type.Elems) {
		panic(fmt.Sprintf("invalid tuple index %d of %s", i, x.Label()))
	}
	n := b.newNode(ir.OTupleIndex, x.Type.Elems[i], x)
	n.Index = i
	return n
}

// RightShift is a logical right shift. Lowerings slice its bits back out of the
// shifted operand, so it never computes anything by itself.
func (b *Builder) RightShift(x, amount *ir.Node) *ir.Node {
	return b.newNode(ir.ORightShift, x.Type, x, amount)
}
