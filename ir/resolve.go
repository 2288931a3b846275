package ir

import "fmt"

// ResolveBitSlice finds the parameter bit read by a bit slice node.
//
// It follows operand 0 through array indexes, tuple indexes and nested bit
// slices until a param is reached, and returns the param name together with
// the offset of the bit in the flattened param. Only single, literal array
// indexes are supported.
//
// An offset equal to the flat width of the param is not an error: the
// lowering of right shifts produces such slices for the bits shifted out, and
// callers must treat them as no-ops.
func ResolveBitSlice(n *Node) (string, int, error) {
	if n.Op != OBitSlice {
		return "", 0, fmt.Errorf("%w: %s is not a bit slice", ErrInvalidArgument, n.Label())
	}
	offset := n.Start
	operand := n.Operand(0)
	for ; operand.Op != OParam; operand = operand.Operand(0) {
		switch operand.Op {
		case OTupleIndex:
			tuple := operand.Operand(0).Type
			if tuple.Kind != TTuple || operand.Index < 0 || operand.Index >= len(tuple.Elems) {
				return "", 0, fmt.Errorf("%w: invalid tuple index %s", ErrInvalidArgument, operand.Label())
			}
			for i := 0; i < operand.Index; i++ {
				offset += tuple.Elems[i].FlatBitCount()
			}
		case OArrayIndex:
			d, err := arrayIndexOffset(operand)
			if err != nil {
				return "", 0, err
			}
			offset += d
		case OBitSlice:
			offset += operand.Start
		default:
			return "", 0, fmt.Errorf("%w: invalid bit slice operand: %s", ErrInvalidArgument, operand.String())
		}
	}
	if w := operand.Type.FlatBitCount(); offset > w {
		return "", 0, fmt.Errorf("%w: bit %d is out of range for param %s of width %d", ErrInvalidArgument, offset, operand.Name, w)
	}
	return operand.Name, offset, nil
}

func arrayIndexOffset(n *Node) (int, error) {
	array := n.Operand(0).Type
	if array.Kind != TArray {
		return 0, fmt.Errorf("%w: %s indexes a non-array value", ErrInvalidArgument, n.Label())
	}
	indices := n.Indices()
	if len(indices) != 1 {
		return 0, fmt.Errorf("%w: only single-dimensional arrays/array indices are supported", ErrInvalidArgument)
	}
	if indices[0].Op != OLiteral {
		return 0, fmt.Errorf("%w: only literal indexes into arrays are supported", ErrInvalidArgument)
	}
	idx := indices[0].Value
	if idx >= uint64(array.Size) {
		return 0, fmt.Errorf("%w: index %d is out of range for %v", ErrInvalidArgument, idx, array)
	}
	return array.Elem.FlatBitCount() * int(idx), nil
}
