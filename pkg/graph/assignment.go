package graph

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Assignment is a coloring candidate: the color of vertex i is
// Assignment[i].
type Assignment []int

// Equal reports whether a and b assign the same color to every
// vertex.
func (a Assignment) Equal(b Assignment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of a that shares no storage with it.
func (a Assignment) Clone() Assignment {
	if a == nil {
		return nil
	}
	result := make(Assignment, len(a))
	copy(result, a)
	return result
}

func (a Assignment) String() string {
	s := make([]string, len(a))
	for i, c := range a {
		s[i] = strconv.Itoa(c)
	}
	return "[" + strings.Join(s, " ") + "]"
}

// Names renders a using human-readable color names.
func (a Assignment) Names() []string {
	result := make([]string, len(a))
	for i, c := range a {
		result[i] = ColorName(c)
	}
	return result
}

// LeafIndex returns the id of the leaf reached by a in the complete
// search tree of branching factor k, where nodes are numbered level
// by level from the root (id 0) and the child of the node at position
// i in its level taken with color c sits at position i*k+c. The
// second result is false if a does not fit the tree or the id would
// overflow an int.
func (a Assignment) LeafIndex(k int) (int, bool) {
	if k < 1 {
		return 0, false
	}
	position := 0
	for _, c := range a {
		if c < 0 || c >= k {
			return 0, false
		}
		if position > (math.MaxInt-c)/k {
			return 0, false
		}
		position = position*k + c
	}
	first, ok := firstLeafID(len(a), k)
	if !ok || first > math.MaxInt-position {
		return 0, false
	}
	return first + position, true
}

// firstLeafID is the id of the leftmost node at the given depth:
// (k^depth - 1) / (k - 1), or depth itself for a unary tree.
func firstLeafID(depth, k int) (int, bool) {
	if k == 1 {
		return depth, true
	}
	total, width := 0, 1
	for d := 0; d < depth; d++ {
		if d > 0 {
			if width > math.MaxInt/k {
				return 0, false
			}
			width *= k
		}
		if total > math.MaxInt-width {
			return 0, false
		}
		total += width
	}
	return total, true
}

// Verify checks that a is a proper coloring of g: one color per
// vertex, every color in [0, PaletteSize()) and the endpoints of
// every edge colored differently. It returns a *DimensionMismatch or
// an IllegalColoring on failure.
func (g *Graph) Verify(a Assignment) error {
	if len(a) != g.vertexCount {
		return &DimensionMismatch{Expected: g.vertexCount, Actual: len(a)}
	}
	var reasons IllegalColoring
	for v, c := range a {
		if c < 0 || c >= g.paletteSize {
			reasons = append(reasons, fmt.Sprintf("vertex %d has color %d outside [0, %d)", v, c, g.paletteSize))
		}
	}
	for _, e := range g.edges {
		if a[e.U] == a[e.V] {
			reasons = append(reasons, fmt.Sprintf("edge %s joins two vertices colored %d", e, a[e.U]))
		}
	}
	if len(reasons) > 0 {
		return reasons
	}
	return nil
}
