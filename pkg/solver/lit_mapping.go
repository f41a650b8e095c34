package solver

import (
	"fmt"
	"strings"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/operator-framework/colorsat/pkg/constraints"
	"github.com/operator-framework/colorsat/pkg/graph"
)

type inconsistentLitMapping []error

func (inconsistentLitMapping) Error() string {
	return "internal solver failure"
}

// litMapping performs translation between the vertex colors and
// clauses of a graph and the variables that appear in the SAT
// formula. Every clause is represented by a single gate literal which
// is assumed on each solve, so that an unsatisfiable result can be
// traced back to the clauses responsible for it.
type litMapping struct {
	g           *graph.Graph
	c           *logic.C
	colors      [][]z.Lit
	gates       []z.Lit
	constraints map[z.Lit]constraints.Clause
	marks       []int8
	added       int
	errs        inconsistentLitMapping
}

// newLitMapping allocates one literal per (vertex, color) pair of g.
// Literal x(v, c) is true when vertex v takes color c.
func newLitMapping(g *graph.Graph) *litMapping {
	n, k := g.VertexCount(), g.PaletteSize()
	d := litMapping{
		g:           g,
		c:           logic.NewCCap(n*k*2 + 2),
		colors:      make([][]z.Lit, n),
		constraints: make(map[z.Lit]constraints.Clause),
	}
	for v := range d.colors {
		d.colors[v] = make([]z.Lit, k)
		for c := range d.colors[v] {
			d.colors[v][c] = d.c.Lit()
		}
	}
	return &d
}

// LitOf returns the literal that is true when vertex v has color c.
func (d *litMapping) LitOf(v, c int) z.Lit {
	if v < 0 || v >= len(d.colors) || c < 0 || c >= len(d.colors[v]) {
		d.errs = append(d.errs, fmt.Errorf("no literal for vertex %d with color %d", v, c))
		return z.LitNull
	}
	return d.colors[v][c]
}

// Add translates each clause into a gate literal of the embedded
// circuit. A clause whose gate is constantly true is dropped from the
// assumptions since it constrains nothing.
func (d *litMapping) Add(clauses []constraints.Clause) error {
	for _, clause := range clauses {
		m, err := d.encode(clause)
		if err != nil {
			return err
		}
		if m == d.c.T {
			continue
		}
		if _, ok := d.constraints[m]; !ok {
			d.constraints[m] = clause
		}
		d.gates = append(d.gates, m)
	}
	return nil
}

func (d *litMapping) encode(clause constraints.Clause) (z.Lit, error) {
	k := d.g.PaletteSize()
	switch c := clause.(type) {
	case constraints.Range:
		if c.Vertex < 0 || c.Vertex >= d.g.VertexCount() {
			return z.LitNull, &constraints.UnsupportedClause{Clause: clause, Reason: fmt.Sprintf("vertex outside [0, %d)", d.g.VertexCount())}
		}
		// The vertex takes exactly one color, and that color is
		// below the clause's palette.
		xs := d.colors[c.Vertex]
		m := d.c.F
		for color := 0; color < k && color < c.Palette; color++ {
			m = d.c.Or(m, xs[color])
		}
		for color := c.Palette; color < k; color++ {
			if color >= 0 {
				m = d.c.And(m, xs[color].Not())
			}
		}
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				m = d.c.And(m, d.c.Or(xs[i].Not(), xs[j].Not()))
			}
		}
		return m, nil
	case constraints.Inequality:
		n := d.g.VertexCount()
		if c.U < 0 || c.U >= n || c.V < 0 || c.V >= n {
			return z.LitNull, &constraints.UnsupportedClause{Clause: clause, Reason: fmt.Sprintf("vertex outside [0, %d)", n)}
		}
		m := d.c.T
		for color := 0; color < k; color++ {
			m = d.c.And(m, d.c.Or(d.colors[c.U][color].Not(), d.colors[c.V][color].Not()))
		}
		return m, nil
	case constraints.Block:
		if len(c.Colors) != d.g.VertexCount() {
			return z.LitNull, &constraints.UnsupportedClause{Clause: clause, Reason: (&graph.DimensionMismatch{Expected: d.g.VertexCount(), Actual: len(c.Colors)}).Error()}
		}
		m := d.c.F
		for v, color := range c.Colors {
			if color < 0 || color >= k {
				// No legal coloring gives v this color.
				return d.c.T, nil
			}
			m = d.c.Or(m, d.colors[v][color].Not())
		}
		return m, nil
	}
	return z.LitNull, &constraints.UnsupportedClause{Clause: clause, Reason: fmt.Sprintf("unknown clause type %T", clause)}
}

// AddConstraints teaches g the part of the circuit reachable from the
// gates added since the previous call.
func (d *litMapping) AddConstraints(g inter.Adder) {
	d.marks, _ = d.c.CnfSince(g, d.marks, d.gates[d.added:]...)
	d.added = len(d.gates)
}

// AssumeConstraints assumes every gate, in clause order.
func (d *litMapping) AssumeConstraints(s inter.Assumable) {
	s.Assume(d.gates...)
}

// Assignment reads the color of every vertex out of the last model
// found by s. Each vertex must have exactly one true color literal.
func (d *litMapping) Assignment(s inter.S) graph.Assignment {
	max := s.MaxVar()
	result := make(graph.Assignment, len(d.colors))
	for v, xs := range d.colors {
		chosen := -1
		for c, m := range xs {
			if m.Var() > max || !s.Value(m) {
				continue
			}
			if chosen >= 0 {
				d.errs = append(d.errs, fmt.Errorf("vertex %d has colors %d and %d in model", v, chosen, c))
			}
			chosen = c
		}
		if chosen < 0 {
			d.errs = append(d.errs, fmt.Errorf("vertex %d has no color in model", v))
		}
		result[v] = chosen
	}
	return result
}

// Conflicts returns the clauses whose gates were among the failed
// assumptions of the last unsatisfiable solve.
func (d *litMapping) Conflicts(g inter.Assumable) []constraints.Clause {
	whys := g.Why(nil)
	result := make([]constraints.Clause, 0, len(whys))
	for _, why := range whys {
		if c, ok := d.constraints[why]; ok {
			result = append(result, c)
		}
	}
	return result
}

// Error returns a single error value that is an aggregation of all
// errors encountered during a litMapping's lifetime, or nil if there have
// been no errors. A non-nil return value likely indicates a problem
// with the solver or clause implementations.
func (d *litMapping) Error() error {
	if len(d.errs) == 0 {
		return nil
	}
	s := make([]string, len(d.errs))
	for i, err := range d.errs {
		s[i] = err.Error()
	}
	return fmt.Errorf("%d errors encountered: %s", len(s), strings.Join(s, ", "))
}
