package solver

import (
	"fmt"
	"io"

	"github.com/operator-framework/colorsat/pkg/constraints"
)

// SearchPosition describes the state of the solver when it proved the
// current clauses unsatisfiable.
type SearchPosition interface {
	Assumed() int
	Conflicts() []constraints.Clause
}

type Tracer interface {
	Trace(p SearchPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p SearchPosition) {
	fmt.Fprintf(t.Writer, "---\nAssumed clauses: %d\n", p.Assumed())
	fmt.Fprintf(t.Writer, "Conflicts:\n")
	for _, c := range p.Conflicts() {
		fmt.Fprintf(t.Writer, "- %s\n", c)
	}
}

type position struct {
	assumed   int
	conflicts []constraints.Clause
}

func (p position) Assumed() int {
	return p.assumed
}

func (p position) Conflicts() []constraints.Clause {
	return p.conflicts
}
