package ir

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

type GraphForSerialization struct {
	Nodes  []NodeForSerialization
	Return NodeID
	Meta   Metadata
}

type NodeForSerialization struct {
	ID       NodeID
	Op       Operation
	Type     *Type
	Operands []NodeID
	Name     string
	Start    int
	Index    int
	Value    uint64
}

// Serialize encodes the graph with gob, so that a parsed circuit can be cached
// and handed to other tools without parsing it again.
func (g *Graph) Serialize() []byte {
	gfs := &GraphForSerialization{
		Nodes:  make([]NodeForSerialization, len(g.nodes)),
		Return: g.ret.ID,
		Meta:   g.meta,
	}
	for i, n := range g.nodes {
		ops := make([]NodeID, len(n.Operands))
		for j, x := range n.Operands {
			ops[j] = x.ID
		}
		gfs.Nodes[i] = NodeForSerialization{
			ID:       n.ID,
			Op:       n.Op,
			Type:     n.Type,
			Operands: ops,
			Name:     n.Name,
			Start:    n.Start,
			Index:    n.Index,
			Value:    n.Value,
		}
	}
	buf := new(bytes.Buffer)
	encoder := gob.NewEncoder(buf)
	err := encoder.Encode(gfs)
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func DeserializeGraph(data []byte) (*Graph, error) {
	decoder := gob.NewDecoder(bytes.NewBuffer(data))
	gfs := &GraphForSerialization{}
	if err := decoder.Decode(gfs); err != nil {
		return nil, fmt.Errorf("%w: decode graph: %v", ErrInvalidArgument, err)
	}
	nodes := make([]*Node, len(gfs.Nodes))
	byID := make(map[NodeID]*Node, len(gfs.Nodes))
	for i, nfs := range gfs.Nodes {
		nodes[i] = &Node{
			ID:    nfs.ID,
			Op:    nfs.Op,
			Type:  nfs.Type,
			Name:  nfs.Name,
			Start: nfs.Start,
			Index: nfs.Index,
			Value: nfs.Value,
		}
		byID[nfs.ID] = nodes[i]
	}
	for i, nfs := range gfs.Nodes {
		nodes[i].Operands = make([]*Node, len(nfs.Operands))
		for j, id := range nfs.Operands {
			x, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("%w: node %d references unknown node %d", ErrInvalidArgument, nfs.ID, id)
			}
			nodes[i].Operands[j] = x
		}
	}
	ret, ok := byID[gfs.Return]
	if !ok {
		return nil, fmt.Errorf("%w: unknown return node %d", ErrInvalidArgument, gfs.Return)
	}
	return NewGraph(nodes, ret, gfs.Meta)
}
