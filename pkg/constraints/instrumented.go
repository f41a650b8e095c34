package constraints

import (
	"context"
	"time"

	"github.com/operator-framework/colorsat/pkg/graph"
)

// InstrumentedSolver reports the duration of every Solve call on its
// wrapped Solver. An unsatisfiable answer is a normal outcome and is
// reported through its own emitter.
type InstrumentedSolver struct {
	solver                      Solver
	successMetricsEmitter       func(time.Duration)
	unsatisfiableMetricsEmitter func(time.Duration)
	failureMetricsEmitter       func(time.Duration)
}

var _ Solver = &InstrumentedSolver{}

func NewInstrumentedSolver(solver Solver, successMetricsEmitter, unsatisfiableMetricsEmitter, failureMetricsEmitter func(time.Duration)) *InstrumentedSolver {
	return &InstrumentedSolver{
		solver:                      solver,
		successMetricsEmitter:       successMetricsEmitter,
		unsatisfiableMetricsEmitter: unsatisfiableMetricsEmitter,
		failureMetricsEmitter:       failureMetricsEmitter,
	}
}

func (is *InstrumentedSolver) Solve(ctx context.Context, g *graph.Graph, clauses []Clause) (graph.Assignment, error) {
	start := time.Now()
	a, err := is.solver.Solve(ctx, g, clauses)
	switch {
	case err == nil:
		is.successMetricsEmitter(time.Since(start))
	case IsNotSatisfiable(err):
		is.unsatisfiableMetricsEmitter(time.Since(start))
	default:
		is.failureMetricsEmitter(time.Since(start))
	}
	return a, err
}
