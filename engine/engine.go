// Package engine interprets a boolean circuit against a pluggable bit backend.
//
// Nodes are evaluated in waves: every round, the nodes whose operands are all
// known are handed to a fixed pool of workers, and their results are merged
// before the next round is computed. Only the goroutine calling Run reads or
// writes the table of computed values, so evaluation needs no locking.
package engine

import (
	"fmt"
	"sync"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"
)

// Engine runs one Graph any number of times. The worker pool is started by New
// and stays parked between calls until Close.
type Engine[B any] struct {
	g    *ir.Graph
	log  zerolog.Logger
	pool *pool[B]

	// only one Run at a time
	mu sync.Mutex
}

// New starts an engine for g. The backend type B is fixed for the lifetime of the engine.
func New[B any](g *ir.Graph, opts ...Option) (*Engine[B], error) {
	conf := defaultConfig()
	for _, o := range opts {
		if err := o(&conf); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}
	e := &Engine[B]{
		g:    g,
		log:  conf.Logger,
		pool: newPool[B](conf.NbWorkers),
	}
	stats := g.GetStats()
	e.log.Debug().
		Int("nbNodes", stats.NbNodes).
		Int("nbBoolOps", stats.NbBoolOps).
		Int("depth", stats.Depth).
		Int("nbWorkers", conf.NbWorkers).
		Msg("engine started")
	return e, nil
}

// Close stops the workers and waits for them to exit. A Run in progress
// finishes first. It is safe to call more than once.
func (e *Engine[B]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pool.close()
}

func (e *Engine[B]) Graph() *ir.Graph {
	return e.g
}

// call is the state of a single Run. It is owned by the goroutine calling Run.
type call[B any] struct {
	g           *ir.Graph
	args        *Bindings[B]
	ops         BitOperations[B]
	values      map[ir.NodeID]Value[B]
	unevaluated *bitset.BitSet
}

// Run evaluates the graph with the given params and copies the outputs into
// result (the return value) and inout (the updated in/out params).
//
// result must be as wide as the return type, and empty for void functions.
// in and inout map param names to spans of the param's flat width, least
// significant bit first. Every param must be bound in one of them; a missing
// param is a programming error and panics.
func (e *Engine[B]) Run(result []B, in map[string][]B, inout map[string][]B, ops BitOperations[B]) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pool.closed.Load() {
		return fmt.Errorf("%w: engine is closed", ir.ErrFailedPrecondition)
	}

	c := &call[B]{
		g:           e.g,
		args:        &Bindings[B]{In: in, InOut: inout},
		ops:         ops,
		values:      make(map[ir.NodeID]Value[B], e.g.NbNodes()),
		unevaluated: bitset.New(uint(e.g.NbNodes())),
	}
	if err := c.args.Check(e.g); err != nil {
		return err
	}
	for i := range e.g.Nodes() {
		c.unevaluated.Set(uint(i))
	}

	rounds := 0
	for c.unevaluated.Any() {
		tasks := c.readySet()
		if len(tasks) == 0 {
			i, _ := c.unevaluated.NextSet(0)
			return fmt.Errorf("%w: a cycle was detected in the input graph at %s", ir.ErrInvalidArgument, e.g.Nodes()[i].Label())
		}
		if err := c.merge(e.pool.run(tasks)); err != nil {
			return err
		}
		rounds++
	}

	if err := CollectOutputs(e.g, result, inout, c.values, ops); err != nil {
		return err
	}
	e.log.Debug().Int("rounds", rounds).Int("nbNodes", e.g.NbNodes()).Msg("run finished")
	return nil
}

// readySet returns a task for every unevaluated node whose operands all have
// an entry in the value table, valid or not.
func (c *call[B]) readySet() []task[B] {
	var tasks []task[B]
	nodes := c.g.Nodes()
	for i, ok := c.unevaluated.NextSet(0); ok; i, ok = c.unevaluated.NextSet(i + 1) {
		n := nodes[i]
		operands := make([]Value[B], 0, len(n.Operands))
		ready := true
		for _, x := range n.Operands {
			v, found := c.values[x.ID]
			if !found {
				ready = false
				break
			}
			operands = append(operands, v)
		}
		if ready {
			tasks = append(tasks, task[B]{
				g:        c.g,
				node:     n,
				operands: operands,
				args:     c.args,
				ops:      c.ops,
			})
		}
	}
	return tasks
}

// merge stores the results of a round. If some nodes failed, the error of the
// one with the smallest id is returned and nothing is stored.
func (c *call[B]) merge(results []result[B]) error {
	var errNode *ir.Node
	var err error
	for _, r := range results {
		if r.err != nil && (errNode == nil || r.node.ID < errNode.ID) {
			errNode, err = r.node, r.err
		}
	}
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", errNode.Label(), err)
	}
	for _, r := range results {
		if _, ok := c.values[r.node.ID]; ok {
			panic("unexpected: node evaluated twice: " + r.node.String())
		}
		c.values[r.node.ID] = r.value
		c.unevaluated.Clear(uint(c.g.Position(r.node)))
	}
	return nil
}
