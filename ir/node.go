package ir

import (
	"strconv"
	"strings"
)

type NodeID uint64

// Operation enumerates the operations a Node can perform.
// The set is closed: the lowering that produces a Graph only emits these.
type Operation int

const (
	_ Operation = iota
	OAnd
	OOr
	ONot
	OLiteral
	OBitSlice
	OConcat
	OArray
	OArrayIndex
	OTuple
	OTupleIndex
	OParam
	ORightShift
)

var opNames = [...]string{
	OAnd:        "and",
	OOr:         "or",
	ONot:        "not",
	OLiteral:    "literal",
	OBitSlice:   "bit_slice",
	OConcat:     "concat",
	OArray:      "array",
	OArrayIndex: "array_index",
	OTuple:      "tuple",
	OTupleIndex: "tuple_index",
	OParam:      "param",
	ORightShift: "shrl",
}

func (op Operation) IsValid() bool {
	return op >= OAnd && op <= ORightShift
}

func (op Operation) String() string {
	if op.IsValid() {
		return opNames[op]
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// IsGate reports whether nodes of this operation produce a concrete bit.
// Every other operation only navigates composite values.
func (op Operation) IsGate() bool {
	switch op {
	case OAnd, OOr, ONot, OLiteral, OBitSlice:
		return true
	}
	return false
}

// Node is a single operation of a Graph.
//
// Depending on Op, some of the extra fields are meaningful:
//  1. OParam: Name
//  2. OBitSlice: Start (the slice width is given by Type)
//  3. OTupleIndex: Index
//  4. OLiteral: Value
//  5. OArrayIndex: Operands[0] is the array, Operands[1:] are the indices
//  6. ORightShift: Operands[0] is shifted by Operands[1]
type Node struct {
	ID       NodeID
	Op       Operation
	Type     *Type
	Operands []*Node

	Name  string
	Start int
	Index int
	Value uint64
}

func (n *Node) Operand(i int) *Node {
	return n.Operands[i]
}

// Indices returns the index operands of an OArrayIndex node.
func (n *Node) Indices() []*Node {
	return n.Operands[1:]
}

// Label is the short name used to reference the node, e.g. and.12 or the param name.
func (n *Node) Label() string {
	if n.Op == OParam {
		return n.Name
	}
	return n.Op.String() + "." + strconv.FormatUint(uint64(n.ID), 10)
}

// String returns the textual form of the node, e.g.
//
//	and.5: bits[1] = and(bit_slice.3, bit_slice.4)
func (n *Node) String() string {
	var sb strings.Builder
	sb.WriteString(n.Label())
	sb.WriteString(": ")
	if n.Type != nil {
		sb.WriteString(n.Type.String())
	} else {
		sb.WriteString("<untyped>")
	}
	sb.WriteString(" = ")
	sb.WriteString(n.Op.String())
	sb.WriteByte('(')
	args := make([]string, 0, len(n.Operands)+1)
	for _, x := range n.Operands {
		args = append(args, x.Label())
	}
	switch n.Op {
	case OParam:
		args = append(args, "id="+strconv.FormatUint(uint64(n.ID), 10))
	case OLiteral:
		args = append(args, "value="+strconv.FormatUint(n.Value, 10))
	case OBitSlice:
		args = append(args, "start="+strconv.Itoa(n.Start))
	case OTupleIndex:
		args = append(args, "index="+strconv.Itoa(n.Index))
	}
	sb.WriteString(strings.Join(args, ", "))
	sb.WriteByte(')')
	return sb.String()
}
