package enumerator

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/operator-framework/colorsat/pkg/constraints"
	"github.com/operator-framework/colorsat/pkg/graph"
	"github.com/operator-framework/colorsat/pkg/solver"
)

type Option func(e *Enumerator) error

// WithSolver sets the backend used to solve the constraint set. The
// default is the gini SAT solver.
func WithSolver(s constraints.Solver) Option {
	return func(e *Enumerator) error {
		if s == nil {
			return errors.New("no solver provided")
		}
		e.solver = s
		return nil
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Enumerator) error {
		e.logger = l
		return nil
	}
}

// WithObserver registers a function called with the ledger index and
// a copy of every newly accepted solution.
func WithObserver(f func(index int, a graph.Assignment)) Option {
	return func(e *Enumerator) error {
		e.observer = f
		return nil
	}
}

// WithPrior seeds the ledger and the constraint set with solutions
// found by an earlier run, so that they are never reported again.
// Each must be a proper coloring of the graph.
func WithPrior(solutions ...graph.Assignment) Option {
	return func(e *Enumerator) error {
		for _, a := range solutions {
			e.prior = append(e.prior, a.Clone())
		}
		return nil
	}
}

var defaults = []Option{
	func(e *Enumerator) error {
		if e.solver == nil {
			s, err := solver.New()
			if err != nil {
				return err
			}
			e.solver = s
		}
		return nil
	},
	func(e *Enumerator) error {
		if e.logger == nil {
			l := logrus.New()
			l.SetOutput(io.Discard)
			e.logger = l
		}
		return nil
	},
}
