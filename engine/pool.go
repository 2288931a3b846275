package engine

import (
	"sync"
	"sync/atomic"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
)

// task carries everything a worker needs to evaluate one node. Nothing is
// read from the engine itself, so workers never touch per-call state.
type task[B any] struct {
	g        *ir.Graph
	node     *ir.Node
	operands []Value[B]
	args     *Bindings[B]
	ops      BitOperations[B]
	done     chan<- result[B]
}

type result[B any] struct {
	node  *ir.Node
	value Value[B]
	err   error
}

// pool is a fixed set of workers parked on the task channel.
type pool[B any] struct {
	tasks  chan task[B]
	wg     sync.WaitGroup
	once   sync.Once
	closed atomic.Bool
}

func newPool[B any](n int) *pool[B] {
	p := &pool[B]{
		tasks: make(chan task[B]),
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *pool[B]) worker() {
	defer p.wg.Done()
	for t := range p.tasks {
		v, err := EvalNode(t.g, t.node, t.operands, t.args, t.ops)
		t.done <- result[B]{node: t.node, value: v, err: err}
	}
}

// run hands one round of tasks to the workers and blocks until each of them
// has reported back. The result channel has room for the whole round, so a
// worker never waits on the control goroutine.
func (p *pool[B]) run(tasks []task[B]) []result[B] {
	done := make(chan result[B], len(tasks))
	for _, t := range tasks {
		t.done = done
		p.tasks <- t
	}
	res := make([]result[B], 0, len(tasks))
	for range tasks {
		res = append(res, <-done)
	}
	return res
}

// close wakes every worker, makes it exit and waits for all of them.
func (p *pool[B]) close() {
	p.once.Do(func() {
		p.closed.Store(true)
		close(p.tasks)
		p.wg.Wait()
	})
}
