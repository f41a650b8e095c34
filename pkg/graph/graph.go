package graph

import (
	"fmt"
	"math"
)

// Edge is an unordered pair of distinct vertex indices. Edges held by
// a Graph are normalized so that U < V.
type Edge struct {
	U int `json:"u"`
	V int `json:"v"`
}

func (e Edge) String() string {
	return fmt.Sprintf("(%d, %d)", e.U, e.V)
}

func (e Edge) normalize() Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}
	return e
}

// Graph is an immutable description of a coloring problem: a number
// of vertices, the edges between them and the number of colors
// available to each vertex.
type Graph struct {
	vertexCount int
	paletteSize int
	edges       []Edge
	neighbors   [][]int
}

// New validates its arguments and returns a Graph. It fails with an
// *InvalidGraph if the vertex count is negative, the palette is
// empty, or any edge is a self-loop, a duplicate, or references a
// vertex outside [0, vertexCount).
func New(vertexCount int, edges []Edge, paletteSize int) (*Graph, error) {
	if vertexCount < 0 {
		return nil, &InvalidGraph{Reason: fmt.Sprintf("vertex count %d is negative", vertexCount)}
	}
	if paletteSize < 1 {
		return nil, &InvalidGraph{Reason: fmt.Sprintf("palette size %d is less than 1", paletteSize)}
	}

	g := Graph{
		vertexCount: vertexCount,
		paletteSize: paletteSize,
		edges:       make([]Edge, 0, len(edges)),
		neighbors:   make([][]int, vertexCount),
	}
	seen := make(map[Edge]struct{}, len(edges))
	for _, e := range edges {
		if e.U < 0 || e.U >= vertexCount || e.V < 0 || e.V >= vertexCount {
			return nil, &InvalidGraph{Reason: fmt.Sprintf("edge %s references a vertex outside [0, %d)", e, vertexCount)}
		}
		if e.U == e.V {
			return nil, &InvalidGraph{Reason: fmt.Sprintf("edge %s is a self-loop", e)}
		}
		n := e.normalize()
		if _, ok := seen[n]; ok {
			return nil, &InvalidGraph{Reason: fmt.Sprintf("edge %s is a duplicate", e)}
		}
		seen[n] = struct{}{}
		g.edges = append(g.edges, n)
		g.neighbors[n.U] = append(g.neighbors[n.U], n.V)
		g.neighbors[n.V] = append(g.neighbors[n.V], n.U)
	}
	return &g, nil
}

// VertexCount returns the number of vertices in g.
func (g *Graph) VertexCount() int {
	return g.vertexCount
}

// PaletteSize returns the number of colors available to every vertex.
func (g *Graph) PaletteSize() int {
	return g.paletteSize
}

// Edges returns a copy of the edges of g in input order.
func (g *Graph) Edges() []Edge {
	result := make([]Edge, len(g.edges))
	copy(result, g.edges)
	return result
}

// Neighbors returns the vertices adjacent to v, or nil if v is not a
// vertex of g.
func (g *Graph) Neighbors(v int) []int {
	if v < 0 || v >= g.vertexCount {
		return nil
	}
	result := make([]int, len(g.neighbors[v]))
	copy(result, g.neighbors[v])
	return result
}

// Degree returns the number of edges incident to v.
func (g *Graph) Degree(v int) int {
	if v < 0 || v >= g.vertexCount {
		return 0
	}
	return len(g.neighbors[v])
}

// SearchSpace returns paletteSize^vertexCount, the number of
// assignments (legal or not) over g, saturating at math.MaxInt.
func (g *Graph) SearchSpace() int {
	n := 1
	for i := 0; i < g.vertexCount; i++ {
		if n > math.MaxInt/g.paletteSize {
			return math.MaxInt
		}
		n *= g.paletteSize
	}
	return n
}

func (g *Graph) String() string {
	return fmt.Sprintf("graph with %d vertices, %d edges and %d colors", g.vertexCount, len(g.edges), g.paletteSize)
}
