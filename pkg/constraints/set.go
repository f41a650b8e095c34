package constraints

import (
	"context"

	"github.com/pkg/errors"

	"github.com/operator-framework/colorsat/pkg/graph"
)

// Set is the conjunction of the clauses describing the legal colorings
// of a graph that have not yet been excluded. It starts with one Range
// clause per vertex followed by one Inequality clause per edge, and
// grows only by appending Block clauses.
type Set struct {
	g       *graph.Graph
	solver  Solver
	clauses []Clause
	blocks  int
}

// New returns a Set holding the fixed clauses of g whose Solve
// delegates to s.
func New(g *graph.Graph, s Solver) (*Set, error) {
	if g == nil {
		return nil, &graph.InvalidGraph{Reason: "graph is nil"}
	}
	if s == nil {
		return nil, errors.New("no solver provided")
	}

	edges := g.Edges()
	set := Set{
		g:       g,
		solver:  s,
		clauses: make([]Clause, 0, g.VertexCount()+len(edges)),
	}
	for v := 0; v < g.VertexCount(); v++ {
		set.clauses = append(set.clauses, Range{Vertex: v, Palette: g.PaletteSize()})
	}
	for _, e := range edges {
		set.clauses = append(set.clauses, Inequality{U: e.U, V: e.V})
	}
	return &set, nil
}

// AddBlock appends a clause excluding exactly a. Blocking an
// assignment that is already blocked, or that was never legal, leaves
// the satisfying region unchanged.
func (s *Set) AddBlock(a graph.Assignment) error {
	if len(a) != s.g.VertexCount() {
		return &graph.DimensionMismatch{Expected: s.g.VertexCount(), Actual: len(a)}
	}
	s.clauses = append(s.clauses, Block{Colors: a.Clone()})
	s.blocks++
	return nil
}

// Solve asks the backend for an assignment satisfying every clause
// currently in the set.
func (s *Set) Solve(ctx context.Context) (graph.Assignment, error) {
	return s.solver.Solve(ctx, s.g, s.clauses[:len(s.clauses):len(s.clauses)])
}

// Violated returns the clauses that a fails, in set order.
func (s *Set) Violated(a graph.Assignment) []Clause {
	var result []Clause
	for _, c := range s.clauses {
		if !c.Satisfied(a) {
			result = append(result, c)
		}
	}
	return result
}

// Clauses returns a copy of every clause in the set, fixed clauses
// first and blocks in the order they were added.
func (s *Set) Clauses() []Clause {
	result := make([]Clause, len(s.clauses))
	copy(result, s.clauses)
	return result
}

// Blocks returns the assignments excluded so far, in the order they
// were added.
func (s *Set) Blocks() []graph.Assignment {
	result := make([]graph.Assignment, 0, s.blocks)
	for _, c := range s.clauses[len(s.clauses)-s.blocks:] {
		result = append(result, c.(Block).Colors.Clone())
	}
	return result
}

// Len returns the number of clauses in the set.
func (s *Set) Len() int {
	return len(s.clauses)
}

// Graph returns the graph the set was built for.
func (s *Set) Graph() *graph.Graph {
	return s.g
}
