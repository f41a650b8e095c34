package graph

import (
	"fmt"
	"strings"
)

// InvalidGraph is returned when a graph description is malformed.
type InvalidGraph struct {
	Reason string
}

func (e *InvalidGraph) Error() string {
	return fmt.Sprintf("invalid graph: %s", e.Reason)
}

// DimensionMismatch is returned when an assignment does not have
// exactly one color per vertex.
type DimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatch) Error() string {
	return fmt.Sprintf("assignment has %d colors, graph has %d vertices", e.Actual, e.Expected)
}

// IllegalColoring lists the reasons an assignment of the right length
// is not a proper coloring of a graph.
type IllegalColoring []string

func (e IllegalColoring) Error() string {
	const msg = "illegal coloring"
	if len(e) == 0 {
		return msg
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(e, ", "))
}
