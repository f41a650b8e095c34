// Package ledger records the colorings accepted during an enumeration
// in the order they were discovered.
package ledger

import (
	"github.com/operator-framework/colorsat/pkg/graph"
)

// Ledger is an append-only sequence of assignments. It stores its own
// copies, so callers may reuse the slices they pass to Append and
// modify the slices it returns.
type Ledger struct {
	solutions []graph.Assignment
}

func New() *Ledger {
	return &Ledger{}
}

// Append records a as the next solution.
func (l *Ledger) Append(a graph.Assignment) {
	l.solutions = append(l.solutions, a.Clone())
}

// Len returns the number of recorded solutions.
func (l *Ledger) Len() int {
	return len(l.solutions)
}

// At returns a copy of the i'th solution. It panics if i is out of
// range.
func (l *Ledger) At(i int) graph.Assignment {
	return l.solutions[i].Clone()
}

// Solutions returns a copy of every recorded solution in discovery
// order.
func (l *Ledger) Solutions() []graph.Assignment {
	result := make([]graph.Assignment, len(l.solutions))
	for i, a := range l.solutions {
		result[i] = a.Clone()
	}
	return result
}

// Contains reports whether a has been recorded.
func (l *Ledger) Contains(a graph.Assignment) bool {
	for _, s := range l.solutions {
		if s.Equal(a) {
			return true
		}
	}
	return false
}
