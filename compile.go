// Package boolcircuit schedules boolean circuits: it levels them into batch
// plans for code generators and builds interpreters running them against a
// bit backend.
package boolcircuit

import (
	"context"
	"fmt"
	"io"

	"github.com/PolyhedraZK/ExpanderBoolCircuit/checker"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/engine"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/ir"
	"github.com/PolyhedraZK/ExpanderBoolCircuit/layered"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

type CompileConfig struct {
	// maximum number of nodes per batch, 0 for whole levels
	Parallelism int
	Logger      zerolog.Logger
}

type CompileOption func(*CompileConfig) error

func WithParallelism(n int) CompileOption {
	return func(c *CompileConfig) error {
		if n < 0 {
			return fmt.Errorf("invalid parallelism %d", n)
		}
		c.Parallelism = n
		return nil
	}
}

func WithLogger(l zerolog.Logger) CompileOption {
	return func(c *CompileConfig) error {
		c.Logger = l
		return nil
	}
}

type CompileResult struct {
	g    *ir.Graph
	plan *layered.Plan
	log  zerolog.Logger
}

// Compile levels g into a batch plan.
func Compile(g *ir.Graph, opts ...CompileOption) (*CompileResult, error) {
	conf := CompileConfig{Logger: logger.Logger()}
	for _, o := range opts {
		if err := o(&conf); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}
	log := conf.Logger
	gs := g.GetStats()
	log.Info().
		Int("nbNodes", gs.NbNodes).
		Int("nbGates", gs.NbGates).
		Int("nbInputBits", gs.NbInputBits).
		Int("nbOutputBits", gs.NbOutputBits).
		Msg("built circuit")
	plan, err := layered.Compile(g, conf.Parallelism)
	if err != nil {
		return nil, err
	}
	if err := layered.Validate(plan, g); err != nil {
		panic("unexpected: invalid plan: " + err.Error())
	}
	ps := plan.GetStats()
	log.Info().
		Int("levels", ps.NbLevels).
		Int("batches", ps.NbBatches).
		Int("maxBatch", ps.MaxBatchSize).
		Int("nbPruned", ps.NbPruned).
		Msg("compiled")
	return &CompileResult{
		g:    g,
		plan: plan,
		log:  log,
	}, nil
}

func (c *CompileResult) GetGraph() *ir.Graph {
	return c.g
}

func (c *CompileResult) GetPlan() *layered.Plan {
	return c.plan
}

// Print writes the circuit followed by its plan.
func (c *CompileResult) Print(w io.Writer) {
	c.g.Print(w)
	fmt.Fprintln(w, "================================")
	c.plan.Print(w)
}

// NewInterpreter starts an engine for the compiled circuit. It logs with the
// logger of the compilation unless opts say otherwise.
func NewInterpreter[B any](c *CompileResult, opts ...engine.Option) (*engine.Engine[B], error) {
	return engine.New[B](c.g, append([]engine.Option{engine.WithLogger(c.log)}, opts...)...)
}

// RunPlan executes the batch plan, as generated code would.
func RunPlan[B any](ctx context.Context, c *CompileResult, result []B, in, inout map[string][]B, ops engine.BitOperations[B]) error {
	return checker.EvalPlan(ctx, c.g, c.plan, result, in, inout, ops)
}
