package solver

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/pkg/errors"

	"github.com/operator-framework/colorsat/pkg/constraints"
	"github.com/operator-framework/colorsat/pkg/graph"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// Solver is a constraints.Solver backed by the gini SAT solver. It is
// incremental: as long as it is called with the same graph and a
// clause list that only grows, each call encodes just the clauses
// appended since the previous one and reuses everything gini has
// learned so far.
type Solver struct {
	g            *gini.Gini
	lits         *litMapping
	graph        *graph.Graph
	encoded      int
	tracer       Tracer
	pollInterval time.Duration
}

var _ constraints.Solver = &Solver{}

// Solve returns an assignment of g satisfying every clause. If no
// assignment exists it returns constraints.NotSatisfiable carrying the
// clauses gini found to be in conflict. If ctx ends before gini
// answers, it returns constraints.ErrIncomplete.
func (s *Solver) Solve(ctx context.Context, g *graph.Graph, clauses []constraints.Clause) (result graph.Assignment, err error) {
	if g == nil {
		return nil, &graph.InvalidGraph{Reason: "graph is nil"}
	}
	if ctx.Err() != nil {
		return nil, constraints.ErrIncomplete
	}

	if s.graph != g || len(clauses) < s.encoded {
		s.reset(g)
	}
	defer func() {
		// This likely indicates a bug, so discard whatever
		// return values were produced and start over next time.
		if derr := s.lits.Error(); derr != nil {
			result = nil
			err = derr
			s.graph = nil
		}
	}()

	if err := s.lits.Add(clauses[s.encoded:]); err != nil {
		s.graph = nil
		return nil, err
	}
	s.encoded = len(clauses)
	s.lits.AddConstraints(s.g)
	s.lits.AssumeConstraints(s.g)

	switch s.solve(ctx) {
	case satisfiable:
		return s.lits.Assignment(s.g), nil
	case unsatisfiable:
		conflicts := s.lits.Conflicts(s.g)
		s.tracer.Trace(position{assumed: len(s.lits.gates), conflicts: conflicts})
		return nil, constraints.NotSatisfiable(conflicts)
	}
	return nil, constraints.ErrIncomplete
}

// solve runs gini in the background so that it can be stopped when
// ctx ends. The handle returned by GoSolve is not safe for concurrent
// use, so it is polled from this goroutine only.
func (s *Solver) solve(ctx context.Context) int {
	if ctx.Done() == nil {
		return s.g.Solve()
	}
	h := s.g.GoSolve()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()
	for {
		if result, ok := h.Test(); ok {
			return result
		}
		select {
		case <-ctx.Done():
			return h.Stop()
		case <-ticker.C:
		}
	}
}

func (s *Solver) reset(g *graph.Graph) {
	s.g = gini.New()
	s.lits = newLitMapping(g)
	s.graph = g
	s.encoded = 0
}

func New(options ...Option) (*Solver, error) {
	var s Solver
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *Solver) error

func WithTracer(t Tracer) Option {
	return func(s *Solver) error {
		s.tracer = t
		return nil
	}
}

// WithPollInterval sets how often a running solve checks whether its
// context has ended.
func WithPollInterval(d time.Duration) Option {
	return func(s *Solver) error {
		if d <= 0 {
			return errors.Errorf("poll interval must be positive, got %s", d)
		}
		s.pollInterval = d
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
	func(s *Solver) error {
		if s.pollInterval == 0 {
			s.pollInterval = 5 * time.Millisecond
		}
		return nil
	},
}
