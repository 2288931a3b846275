// Package checker provides reference executors for circuits and batch plans.
// They are slower or less general than the engine and are used to cross-check it.
package checker

import (
	"context"
	"fmt"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/engine"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/layered"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/layering"
	"golang.org/x/sync/errgroup"
)

// EvalSequential evaluates g one node at a time in topological order.
func EvalSequential[B any](g *ir.Graph, result []B, in, inout map[string][]B, ops engine.BitOperations[B]) error {
	args := &engine.Bindings[B]{In: in, InOut: inout}
	if err := args.Check(g); err != nil {
		return err
	}
	order, err := layering.TopoSort(g)
	if err != nil {
		return err
	}
	values := make(map[ir.NodeID]engine.Value[B], g.NbNodes())
	for _, id := range order {
		n, _ := g.Node(id)
		v, err := engine.EvalNode(g, n, operandValues(n, values), args, ops)
		if err != nil {
			return fmt.Errorf("evaluate %s: %w", n.Label(), err)
		}
		values[id] = v
	}
	return engine.CollectOutputs(g, result, inout, values, ops)
}

// EvalPlan executes the batches of p in order, the way generated code does:
// the nodes of a batch are evaluated concurrently, at most p.Parallelism at a
// time, and values are dropped as soon as their last reader has run.
func EvalPlan[B any](ctx context.Context, g *ir.Graph, p *layered.Plan, result []B, in, inout map[string][]B, ops engine.BitOperations[B]) error {
	args := &engine.Bindings[B]{In: in, InOut: inout}
	if err := args.Check(g); err != nil {
		return err
	}
	values := make(map[ir.NodeID]engine.Value[B], g.NbNodes())
	for i, batch := range p.Batches {
		if err := ctx.Err(); err != nil {
			return err
		}
		nodes := make([]*ir.Node, len(batch))
		for j, id := range batch {
			n, ok := g.Node(id)
			if !ok {
				return fmt.Errorf("%w: batch %d has unknown node %d", ir.ErrInvalidArgument, i, id)
			}
			for _, x := range n.Operands {
				if _, ok := values[x.ID]; !ok {
					return fmt.Errorf("%w: %s is scheduled in batch %d before its operand %s", ir.ErrInvalidArgument, n.Label(), i, x.Label())
				}
			}
			nodes[j] = n
		}

		res := make([]engine.Value[B], len(batch))
		eg, gctx := errgroup.WithContext(ctx)
		if p.Parallelism > 0 {
			eg.SetLimit(p.Parallelism)
		}
		for j, n := range nodes {
			j, n, operands := j, n, operandValues(n, values)
			eg.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				v, err := engine.EvalNode(g, n, operands, args, ops)
				if err != nil {
					return fmt.Errorf("evaluate %s: %w", n.Label(), err)
				}
				res[j] = v
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
		for j, id := range batch {
			values[id] = res[j]
		}
		for _, id := range p.Prune[i] {
			delete(values, id)
		}
	}
	return engine.CollectOutputs(g, result, inout, values, ops)
}

func operandValues[B any](n *ir.Node, values map[ir.NodeID]engine.Value[B]) []engine.Value[B] {
	res := make([]engine.Value[B], len(n.Operands))
	for i, x := range n.Operands {
		res[i] = values[x.ID]
	}
	return res
}
