package engine

import (
	"fmt"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
)

// CollectNodeValue copies the bits of n into out, starting at offset.
//
// A multi-bit value is a concat of single bits whose operand 0 is the most
// significant one, while spans are least significant bit first, so bits are
// written in reverse operand order. Array elements and tuple fields are laid
// out one after the other in declaration order.
func CollectNodeValue[B any](n *ir.Node, out []B, offset int, values map[ir.NodeID]Value[B], ops BitOperations[B]) error {
	t := n.Type
	switch t.Kind {
	case ir.TBits:
		if t.Width == 1 {
			for n.Op == ir.OConcat {
				n = singleBit(n)
			}
			v, ok := values[n.ID]
			if !ok || !v.Valid {
				return fmt.Errorf("%w: no value computed for output bit %s", ir.ErrInternal, n.Label())
			}
			if offset >= len(out) {
				return fmt.Errorf("%w: output span of %d bits is too short", ir.ErrFailedPrecondition, len(out))
			}
			ops.Copy(v.Bit, &out[offset])
			return nil
		}
		if len(n.Operands) != t.Width {
			return fmt.Errorf("%w: %s must be a concat of %d single bits", ir.ErrInvalidArgument, n.Label(), t.Width)
		}
		for i := 0; i < t.Width; i++ {
			if err := CollectNodeValue(n.Operand(i), out, offset+(t.Width-i-1), values, ops); err != nil {
				return err
			}
		}
	case ir.TArray:
		if len(n.Operands) != t.Size {
			return fmt.Errorf("%w: %s must list its %d elements", ir.ErrInvalidArgument, n.Label(), t.Size)
		}
		stride := t.Elem.FlatBitCount()
		for i := 0; i < t.Size; i++ {
			if err := CollectNodeValue(n.Operand(i), out, offset+i*stride, values, ops); err != nil {
				return err
			}
		}
	case ir.TTuple:
		if len(n.Operands) != len(t.Elems) {
			return fmt.Errorf("%w: %s must list its %d fields", ir.ErrInvalidArgument, n.Label(), len(t.Elems))
		}
		sub := 0
		for i := range t.Elems {
			x := n.Operand(i)
			if err := CollectNodeValue(x, out, offset+sub, values, ops); err != nil {
				return err
			}
			sub += x.Type.FlatBitCount()
		}
	default:
		return fmt.Errorf("%w: unsupported type kind: %v", ir.ErrInvalidArgument, t.Kind)
	}
	return nil
}

// singleBit returns the only non-empty operand of a bits[1] concat.
func singleBit(n *ir.Node) *ir.Node {
	for _, x := range n.Operands {
		if x.Type.Width == 1 {
			return x
		}
	}
	panic("unexpected: malformed concat " + n.String())
}

// CollectOutputs copies the return value into result and the updated in/out
// params into their inout spans.
//
// A tuple return value is either a single struct (case A: exactly one output
// in total, the function returns it or updates it through its only in/out
// param) or the return value followed by every in/out param update (case B).
func CollectOutputs[B any](g *ir.Graph, result []B, inout map[string][]B, values map[ir.NodeID]Value[B], ops BitOperations[B]) error {
	ret := g.Return()
	meta := g.Metadata()

	var elements []*ir.Node
	if ret.Type.Kind == ir.TTuple && meta.NumOutParams() != 1 {
		if ret.Op != ir.OTuple {
			return fmt.Errorf("%w: return value %s must be a tuple literal", ir.ErrInvalidArgument, ret.Label())
		}
		elements = append(elements, ret.Operands...)
	} else {
		elements = append(elements, ret)
	}

	if meta.ReturnIsVoid {
		if len(result) != 0 {
			return fmt.Errorf("%w: return value requested for a void-returning function", ir.ErrFailedPrecondition)
		}
	} else if len(result) == 0 {
		return fmt.Errorf("%w: missing return value for a value-returning function", ir.ErrFailedPrecondition)
	}
	if len(elements) == 0 {
		return nil
	}

	i := 0
	if !meta.ReturnIsVoid {
		if err := CollectNodeValue(elements[0], result, 0, values, ops); err != nil {
			return fmt.Errorf("return value: %w", err)
		}
		i++
	}
	pi := 0
	for ; i < len(elements); i++ {
		var p ir.Param
		for {
			if pi == len(meta.Params) {
				return fmt.Errorf("%w: no matching in/out param for output %d", ir.ErrInternal, i)
			}
			p = meta.Params[pi]
			pi++
			if p.IsInOut() {
				break
			}
		}
		span, ok := inout[p.Name]
		if !ok {
			return fmt.Errorf("%w: in/out param %s is not bound to an inout span", ir.ErrInternal, p.Name)
		}
		if err := CollectNodeValue(elements[i], span, 0, values, ops); err != nil {
			return fmt.Errorf("param %s: %w", p.Name, err)
		}
	}
	return nil
}
