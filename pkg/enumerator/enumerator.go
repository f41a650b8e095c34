// Package enumerator finds every proper coloring of a graph, one at a
// time and never the same one twice. Each accepted coloring is
// recorded in a ledger and excluded from later searches by a block
// clause, so the search ends once the remaining clauses are
// unsatisfiable.
package enumerator

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/operator-framework/colorsat/pkg/constraints"
	"github.com/operator-framework/colorsat/pkg/graph"
	"github.com/operator-framework/colorsat/pkg/ledger"
)

// Enumerator drives a constraints.Set for one graph. It is not safe
// for concurrent use; independent Enumerators share nothing and may
// run in parallel.
type Enumerator struct {
	graph    *graph.Graph
	set      *constraints.Set
	ledger   *ledger.Ledger
	state    State
	err      error
	solver   constraints.Solver
	logger   logrus.FieldLogger
	observer func(index int, a graph.Assignment)
	prior    []graph.Assignment
}

// New returns an Enumerator for g in the Running state, or Exhausted
// if g has no vertices.
func New(g *graph.Graph, options ...Option) (*Enumerator, error) {
	if g == nil {
		return nil, &graph.InvalidGraph{Reason: "graph is nil"}
	}
	e := Enumerator{
		graph:  g,
		ledger: ledger.New(),
	}
	for _, option := range append(options, defaults...) {
		if err := option(&e); err != nil {
			return nil, err
		}
	}

	set, err := constraints.New(g, e.solver)
	if err != nil {
		return nil, err
	}
	e.set = set

	for i, a := range e.prior {
		if err := g.Verify(a); err != nil {
			return nil, errors.Wrapf(err, "prior solution %d", i)
		}
		if g.VertexCount() == 0 {
			continue
		}
		if e.ledger.Contains(a) {
			e.logger.WithField("solution", a.String()).Debug("skipping repeated prior solution")
			continue
		}
		e.accept(a)
	}
	e.prior = nil

	if g.VertexCount() == 0 {
		e.transition(Exhausted)
	}
	return &e, nil
}

// Step asks the solver for one more solution. It returns the accepted
// assignment, or nil once the enumerator is exhausted. A cancelled ctx
// yields constraints.ErrIncomplete and leaves the enumerator Running.
// Any other error moves it to Failed. Step resumes an enumerator
// stopped at its budget.
func (e *Enumerator) Step(ctx context.Context) (graph.Assignment, error) {
	switch e.state {
	case Exhausted:
		return nil, nil
	case Failed:
		return nil, e.err
	case BudgetReached:
		e.state = Running
	}

	a, err := e.set.Solve(ctx)
	switch {
	case err == nil:
	case constraints.IsNotSatisfiable(err):
		e.transition(Exhausted)
		return nil, nil
	case errors.Is(err, constraints.ErrIncomplete), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		e.logger.WithField("solutions", e.ledger.Len()).Debug("search interrupted")
		return nil, constraints.ErrIncomplete
	default:
		return nil, e.fail(errors.Wrap(err, "solver failed"))
	}

	if err := e.verify(a); err != nil {
		return nil, e.fail(err)
	}
	index := e.accept(a)
	e.logger.WithFields(logrus.Fields{
		"index":    index,
		"solution": a.String(),
	}).Debug("accepted solution")
	if e.observer != nil {
		e.observer(index, a.Clone())
	}
	return a.Clone(), nil
}

// RunToExhaustion steps until every solution has been found.
func (e *Enumerator) RunToExhaustion(ctx context.Context) error {
	return e.run(ctx, -1)
}

// RunUpTo steps until the ledger holds n solutions or every solution
// has been found, whichever comes first. In the first case the
// enumerator stops in BudgetReached and a later call with a larger n,
// or to RunToExhaustion, continues where it left off. If the ledger
// already holds n or more solutions, for instance from WithPrior, it
// stops in BudgetReached without solving and keeps every entry, so the
// ledger may then hold more than n.
func (e *Enumerator) RunUpTo(ctx context.Context, n int) error {
	if n < 0 {
		return errors.Errorf("solution budget %d is negative", n)
	}
	return e.run(ctx, n)
}

func (e *Enumerator) run(ctx context.Context, budget int) error {
	if e.state == BudgetReached {
		e.state = Running
	}
	for e.state == Running {
		if budget >= 0 && e.ledger.Len() >= budget {
			e.transition(BudgetReached)
			break
		}
		if _, err := e.Step(ctx); err != nil {
			return err
		}
	}
	if e.state == Failed {
		return e.err
	}
	return nil
}

// verify checks a against the graph and against every clause in the
// set, which rejects a backend that has ignored a block clause.
func (e *Enumerator) verify(a graph.Assignment) error {
	if err := e.graph.Verify(a); err != nil {
		return &SolverContractViolation{Assignment: a.Clone(), Cause: err}
	}
	if violated := e.set.Violated(a); len(violated) > 0 {
		reasons := make(graph.IllegalColoring, len(violated))
		for i, c := range violated {
			reasons[i] = fmt.Sprintf("violates %q", c)
		}
		return &SolverContractViolation{Assignment: a.Clone(), Cause: reasons}
	}
	return nil
}

func (e *Enumerator) accept(a graph.Assignment) int {
	e.ledger.Append(a)
	if err := e.set.AddBlock(a); err != nil {
		// The assignment has already been verified against the graph.
		panic(err)
	}
	return e.ledger.Len() - 1
}

func (e *Enumerator) fail(err error) error {
	e.err = err
	e.logger.WithError(err).Error("enumeration failed")
	e.transition(Failed)
	return err
}

func (e *Enumerator) transition(s State) {
	e.state = s
	e.logger.WithFields(logrus.Fields{
		"state":     s.String(),
		"solutions": e.ledger.Len(),
	}).Info("enumeration stopped")
}

// Solutions returns a copy of every accepted solution in discovery
// order.
func (e *Enumerator) Solutions() []graph.Assignment {
	return e.ledger.Solutions()
}

// Len returns the number of accepted solutions.
func (e *Enumerator) Len() int {
	return e.ledger.Len()
}

func (e *Enumerator) State() State {
	return e.state
}

// Err returns the error that moved the enumerator to Failed, if any.
func (e *Enumerator) Err() error {
	return e.err
}

func (e *Enumerator) Graph() *graph.Graph {
	return e.graph
}
