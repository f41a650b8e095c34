// Package backtrack provides a constraints.Solver that searches the
// assignments of a graph depth first. Vertices are colored in index
// order and colors are tried in ascending order, so the first
// assignment satisfying the clauses in lexicographic order is always
// the one returned.
package backtrack

import (
	"context"
	"fmt"

	"github.com/operator-framework/colorsat/pkg/constraints"
	"github.com/operator-framework/colorsat/pkg/graph"
)

// checkEvery is the number of search nodes visited between checks of
// the context.
const checkEvery = 256

type Solver struct{}

var _ constraints.Solver = Solver{}

func New() Solver {
	return Solver{}
}

// Solve returns the lexicographically smallest assignment of g that
// satisfies every clause, constraints.NotSatisfiable if there is none,
// or constraints.ErrIncomplete if ctx ends first.
func (Solver) Solve(ctx context.Context, g *graph.Graph, clauses []constraints.Clause) (graph.Assignment, error) {
	if g == nil {
		return nil, &graph.InvalidGraph{Reason: "graph is nil"}
	}
	if ctx.Err() != nil {
		return nil, constraints.ErrIncomplete
	}
	p, err := compile(g, clauses)
	if err != nil {
		return nil, err
	}
	alive := make([]int, len(p.blocks))
	for i := range alive {
		alive[i] = i
	}
	a := make(graph.Assignment, g.VertexCount())
	found, err := p.search(ctx, a, 0, alive)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, constraints.NotSatisfiable{}
	}
	return a, nil
}

// problem is the set of clauses rearranged so that each can be checked
// as soon as the vertices it mentions have been colored.
type problem struct {
	// limit[v] is one past the largest color vertex v may take.
	limit []int
	// earlier[v] lists the neighbors u < v that must differ from v.
	earlier [][]int
	blocks  []graph.Assignment
	visited int
}

func compile(g *graph.Graph, clauses []constraints.Clause) (*problem, error) {
	n := g.VertexCount()
	p := problem{
		limit:   make([]int, n),
		earlier: make([][]int, n),
	}
	for v := range p.limit {
		p.limit[v] = g.PaletteSize()
	}
	for _, clause := range clauses {
		switch c := clause.(type) {
		case constraints.Range:
			if c.Vertex < 0 || c.Vertex >= n {
				return nil, &constraints.UnsupportedClause{Clause: clause, Reason: fmt.Sprintf("vertex outside [0, %d)", n)}
			}
			if c.Palette < p.limit[c.Vertex] {
				p.limit[c.Vertex] = max(c.Palette, 0)
			}
		case constraints.Inequality:
			if c.U < 0 || c.U >= n || c.V < 0 || c.V >= n {
				return nil, &constraints.UnsupportedClause{Clause: clause, Reason: fmt.Sprintf("vertex outside [0, %d)", n)}
			}
			lo, hi := min(c.U, c.V), max(c.U, c.V)
			p.earlier[hi] = append(p.earlier[hi], lo)
		case constraints.Block:
			if len(c.Colors) != n {
				return nil, &constraints.UnsupportedClause{Clause: clause, Reason: (&graph.DimensionMismatch{Expected: n, Actual: len(c.Colors)}).Error()}
			}
			p.blocks = append(p.blocks, c.Colors)
		default:
			return nil, &constraints.UnsupportedClause{Clause: clause, Reason: fmt.Sprintf("unknown clause type %T", clause)}
		}
	}
	return &p, nil
}

// search colors vertex v and everything after it. alive holds the
// indices of the blocks that agree with a on every vertex before v;
// a complete assignment is accepted only if none remain.
func (p *problem) search(ctx context.Context, a graph.Assignment, v int, alive []int) (bool, error) {
	if v == len(a) {
		return len(alive) == 0, nil
	}
	for c := 0; c < p.limit[v]; c++ {
		p.visited++
		if p.visited%checkEvery == 0 && ctx.Err() != nil {
			return false, constraints.ErrIncomplete
		}
		if p.conflicts(a, v, c) {
			continue
		}
		a[v] = c
		var next []int
		for _, i := range alive {
			if p.blocks[i][v] == c {
				next = append(next, i)
			}
		}
		found, err := p.search(ctx, a, v+1, next)
		if found || err != nil {
			return found, err
		}
	}
	return false, nil
}

func (p *problem) conflicts(a graph.Assignment, v, c int) bool {
	for _, u := range p.earlier[v] {
		if a[u] == c {
			return true
		}
	}
	return false
}
