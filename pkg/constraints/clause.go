package constraints

import (
	"fmt"

	"github.com/operator-framework/colorsat/pkg/graph"
)

// Clause is a single condition that a satisfying assignment must
// meet. Solver implementations translate each concrete Clause type
// into their own representation and must refuse a Clause they do not
// understand rather than ignore it.
type Clause interface {
	String() string
	// Satisfied reports whether a meets the condition.
	Satisfied(a graph.Assignment) bool
}

// Range requires Vertex to take a color in [0, Palette).
type Range struct {
	Vertex  int
	Palette int
}

func (c Range) String() string {
	return fmt.Sprintf("vertex %d has a color in [0, %d)", c.Vertex, c.Palette)
}

func (c Range) Satisfied(a graph.Assignment) bool {
	if c.Vertex < 0 || c.Vertex >= len(a) {
		return false
	}
	return a[c.Vertex] >= 0 && a[c.Vertex] < c.Palette
}

// Inequality requires the endpoints of an edge to differ in color.
type Inequality struct {
	U int
	V int
}

func (c Inequality) String() string {
	return fmt.Sprintf("vertices %d and %d differ in color", c.U, c.V)
}

func (c Inequality) Satisfied(a graph.Assignment) bool {
	if c.U < 0 || c.U >= len(a) || c.V < 0 || c.V >= len(a) {
		return false
	}
	return a[c.U] != a[c.V]
}

// Block excludes exactly one complete assignment: it is satisfied by
// any assignment that differs from Colors at one or more vertices.
type Block struct {
	Colors graph.Assignment
}

func (c Block) String() string {
	return fmt.Sprintf("assignment is not %s", c.Colors)
}

func (c Block) Satisfied(a graph.Assignment) bool {
	return !c.Colors.Equal(a)
}
