package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeKind enumerates the kinds of values that can flow through a Graph.
type TypeKind int

const (
	_ TypeKind = iota
	TBits
	TArray
	TTuple
)

func (k TypeKind) String() string {
	switch k {
	case TBits:
		return "bits"
	case TArray:
		return "array"
	case TTuple:
		return "tuple"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Type is the type of a node: Bits(width), Array(size, elem) or Tuple(elems).
type Type struct {
	Kind TypeKind
	// number of bits, only for TBits
	Width int
	// number of elements and element type, only for TArray
	Size int
	Elem *Type
	// field types, only for TTuple
	Elems []*Type
}

func Bits(width int) *Type {
	return &Type{Kind: TBits, Width: width}
}

func ArrayOf(size int, elem *Type) *Type {
	return &Type{Kind: TArray, Size: size, Elem: elem}
}

func TupleOf(elems ...*Type) *Type {
	return &Type{Kind: TTuple, Elems: elems}
}

// FlatBitCount returns the number of boolean wires needed to hold a value of this type.
func (t *Type) FlatBitCount() int {
	switch t.Kind {
	case TBits:
		return t.Width
	case TArray:
		return t.Size * t.Elem.FlatBitCount()
	case TTuple:
		n := 0
		for _, e := range t.Elems {
			n += e.FlatBitCount()
		}
		return n
	}
	return 0
}

func (t *Type) IsBit() bool {
	return t.Kind == TBits && t.Width == 1
}

func (t *Type) validate() error {
	switch t.Kind {
	case TBits:
		if t.Width < 0 {
			return fmt.Errorf("negative bit width %d", t.Width)
		}
	case TArray:
		if t.Size < 0 || t.Elem == nil {
			return fmt.Errorf("malformed array type")
		}
		return t.Elem.validate()
	case TTuple:
		for i, e := range t.Elems {
			if e == nil {
				return fmt.Errorf("tuple element %d has no type", i)
			}
			if err := e.validate(); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported type kind: %v", t.Kind)
	}
	return nil
}

// String follows the usual hardware IR notation, e.g. bits[8][4] or (bits[3], bits[5]).
func (t *Type) String() string {
	switch t.Kind {
	case TBits:
		return "bits[" + strconv.Itoa(t.Width) + "]"
	case TArray:
		return t.Elem.String() + "[" + strconv.Itoa(t.Size) + "]"
	case TTuple:
		s := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			s[i] = e.String()
		}
		return "(" + strings.Join(s, ", ") + ")"
	}
	return t.Kind.String()
}
