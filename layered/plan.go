// Package layered holds the batch plan emitted by ahead-of-time code
// generators: the nodes of a circuit split into ordered batches, each of
// which can be evaluated as one parallel map.
package layered

import (
	"fmt"
	"io"
	"slices"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/layering"
	"github.com/bits-and-blooms/bitset"
)

type Plan struct {
	// maximum number of nodes in a batch, 0 if unbounded
	Parallelism int
	// number of dependency levels the batches were cut from
	NbLevels int
	// Batches[i] is emitted as codegen level i
	Batches [][]ir.NodeID
	// Prune[i] lists the values that are no longer needed once batch i is done
	Prune map[int][]ir.NodeID
}

// Compile levels the nodes of g and cuts every level into batches of at most
// parallelism nodes (0 keeps whole levels). Batches of one level keep the
// ascending id order of the level.
func Compile(g *ir.Graph, parallelism int) (*Plan, error) {
	if parallelism < 0 {
		return nil, fmt.Errorf("%w: negative parallelism %d", ir.ErrInvalidArgument, parallelism)
	}
	levels, err := layering.LevelSort(g)
	if err != nil {
		return nil, err
	}
	p := &Plan{
		Parallelism: parallelism,
		NbLevels:    len(levels),
		Prune:       make(map[int][]ir.NodeID),
	}
	for _, level := range levels {
		for len(level) > 0 {
			k := len(level)
			if parallelism > 0 && k > parallelism {
				k = parallelism
			}
			p.Batches = append(p.Batches, level[:k:k])
			level = level[k:]
		}
	}
	p.computePrune(g)
	return p, nil
}

// computePrune finds, for every intermediate value, the last batch reading
// it. Params and the nodes read by output collection are never pruned.
func (p *Plan) computePrune(g *ir.Graph) {
	last := layering.LastUseLevels(layering.FromCircuit(g), p.Batches)
	kept := outputNodes(g)
	for i, n := range g.Nodes() {
		b, ok := last[n.ID]
		if n.Op == ir.OParam || !ok || kept.Test(uint(i)) {
			continue
		}
		p.Prune[b] = append(p.Prune[b], n.ID)
	}
	for _, ids := range p.Prune {
		slices.Sort(ids)
	}
}

// outputNodes marks the positions of the return value and of everything the
// output collection walks through: concats, arrays, tuples and their leaves.
func outputNodes(g *ir.Graph) *bitset.BitSet {
	res := bitset.New(uint(g.NbNodes()))
	queue := []*ir.Node{g.Return()}
	for len(queue) > 0 {
		n := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		i := uint(g.Position(n))
		if res.Test(i) {
			continue
		}
		res.Set(i)
		switch n.Op {
		case ir.OConcat, ir.OArray, ir.OTuple:
			queue = append(queue, n.Operands...)
		}
	}
	return res
}

func (p *Plan) NbBatches() int {
	return len(p.Batches)
}

// Print writes one line per batch, with the values pruned after it.
func (p *Plan) Print(w io.Writer) {
	fmt.Fprintf(w, "Parallelism=%d Levels=%d Batches=%d\n", p.Parallelism, p.NbLevels, len(p.Batches))
	for i, batch := range p.Batches {
		fmt.Fprintf(w, "batch %d: %v", i, batch)
		if ids := p.Prune[i]; len(ids) > 0 {
			fmt.Fprintf(w, " prune %v", ids)
		}
		fmt.Fprintln(w)
	}
}

// Validate checks that p schedules every node of g exactly once, after all of
// its operands, and within the parallelism bound.
func Validate(p *Plan, g *ir.Graph) error {
	batchOf := make(map[ir.NodeID]int, g.NbNodes())
	for i, batch := range p.Batches {
		if len(batch) == 0 {
			return fmt.Errorf("batch %d is empty", i)
		}
		if p.Parallelism > 0 && len(batch) > p.Parallelism {
			return fmt.Errorf("batch %d has %d nodes, parallelism is %d", i, len(batch), p.Parallelism)
		}
		for _, id := range batch {
			if _, ok := g.Node(id); !ok {
				return fmt.Errorf("batch %d: unknown node %d", i, id)
			}
			if _, ok := batchOf[id]; ok {
				return fmt.Errorf("node %d is scheduled twice", id)
			}
			batchOf[id] = i
		}
	}
	if len(batchOf) != g.NbNodes() {
		return fmt.Errorf("%d of %d nodes are scheduled", len(batchOf), g.NbNodes())
	}
	for _, n := range g.Nodes() {
		for _, x := range n.Operands {
			if batchOf[x.ID] >= batchOf[n.ID] {
				return fmt.Errorf("%s is scheduled in batch %d, not after its operand %s in batch %d",
					n.Label(), batchOf[n.ID], x.Label(), batchOf[x.ID])
			}
		}
	}
	for i, ids := range p.Prune {
		if i < 0 || i >= len(p.Batches) {
			return fmt.Errorf("prune list for unknown batch %d", i)
		}
		for _, id := range ids {
			n, ok := g.Node(id)
			if !ok {
				return fmt.Errorf("batch %d prunes unknown node %d", i, id)
			}
			for _, u := range g.Users(n) {
				if batchOf[u.ID] > i {
					return fmt.Errorf("%s is pruned after batch %d but read by %s in batch %d", n.Label(), i, u.Label(), batchOf[u.ID])
				}
			}
		}
	}
	return nil
}
