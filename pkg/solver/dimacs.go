package solver

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-air/gini/z"
	"github.com/pkg/errors"

	"github.com/operator-framework/colorsat/pkg/constraints"
	"github.com/operator-framework/colorsat/pkg/graph"
)

// cnf collects the clauses produced by the circuit as an inter.Adder.
type cnf struct {
	clauses [][]z.Lit
	current []z.Lit
	max     z.Var
}

func (f *cnf) Add(m z.Lit) {
	if m == z.LitNull {
		f.clauses = append(f.clauses, f.current)
		f.current = nil
		return
	}
	if m.Var() > f.max {
		f.max = m.Var()
	}
	f.current = append(f.current, m)
}

// WriteDIMACS writes the same encoding Solve uses for g and clauses to
// w as a DIMACS CNF problem. Gates are asserted as unit clauses rather
// than assumed. Comment lines map each (vertex, color) pair to its
// variable.
func WriteDIMACS(w io.Writer, g *graph.Graph, clauses []constraints.Clause) error {
	if g == nil {
		return &graph.InvalidGraph{Reason: "graph is nil"}
	}
	d := newLitMapping(g)
	if err := d.Add(clauses); err != nil {
		return err
	}

	var f cnf
	d.AddConstraints(&f)
	for _, m := range d.gates {
		f.Add(m)
		f.Add(z.LitNull)
	}
	for v := range d.colors {
		for c := range d.colors[v] {
			if m := d.LitOf(v, c); m.Var() > f.max {
				f.max = m.Var()
			}
		}
	}
	if err := d.Error(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for v := range d.colors {
		for c := range d.colors[v] {
			fmt.Fprintf(bw, "c vertex %d color %d is variable %d\n", v, c, d.LitOf(v, c).Var())
		}
	}
	fmt.Fprintf(bw, "p cnf %d %d\n", f.max, len(f.clauses))
	for _, clause := range f.clauses {
		for _, m := range clause {
			fmt.Fprintf(bw, "%d ", m.Dimacs())
		}
		fmt.Fprintln(bw, "0")
	}
	return errors.Wrap(bw.Flush(), "failed to write dimacs")
}
