package constraints

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/operator-framework/colorsat/pkg/graph"
)

// ErrIncomplete is returned by Solve when its context ends before the
// backend reaches an answer.
var ErrIncomplete = errors.New("cancelled before a solution could be found")

// NotSatisfiable is returned when no assignment meets every clause. It
// may carry the subset of clauses the backend found to be in
// conflict.
type NotSatisfiable []Clause

func (e NotSatisfiable) Error() string {
	const msg = "constraints not satisfiable"
	if len(e) == 0 {
		return msg
	}
	s := make([]string, len(e))
	for i, c := range e {
		s[i] = c.String()
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(s, ", "))
}

// UnsupportedClause is returned by a Solver for a clause it cannot
// translate for the graph it is solving.
type UnsupportedClause struct {
	Clause Clause
	Reason string
}

func (e *UnsupportedClause) Error() string {
	return fmt.Sprintf("cannot encode clause %q: %s", e.Clause, e.Reason)
}

// IsNotSatisfiable reports whether err is, or wraps, NotSatisfiable.
func IsNotSatisfiable(err error) bool {
	var ns NotSatisfiable
	return errors.As(err, &ns)
}

// Solver finds one assignment of g that satisfies every clause in
// clauses. Implementations return NotSatisfiable when none exists,
// ErrIncomplete when ctx ends first, and an error for any clause they
// cannot encode. Callers only ever extend clauses between calls, so an
// implementation may retain work from earlier calls against the same
// graph.
type Solver interface {
	Solve(ctx context.Context, g *graph.Graph, clauses []Clause) (graph.Assignment, error)
}
