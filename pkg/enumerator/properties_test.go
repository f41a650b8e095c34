package enumerator

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/colorsat/pkg/backtrack"
	"github.com/operator-framework/colorsat/pkg/constraints"
	"github.com/operator-framework/colorsat/pkg/graph"
	"github.com/operator-framework/colorsat/pkg/solver"
)

func newGraph(n int, edges [][2]int, k int) *graph.Graph {
	es := make([]graph.Edge, len(edges))
	for i, e := range edges {
		es[i] = graph.Edge{U: e[0], V: e[1]}
	}
	g, err := graph.New(n, es, k)
	Expect(err).NotTo(HaveOccurred())
	return g
}

func cycle(n int) [][2]int {
	var edges [][2]int
	for i := 0; i < n; i++ {
		edges = append(edges, [2]int{i, (i + 1) % n})
	}
	return edges
}

// countColorings counts proper colorings of g by brute force.
func countColorings(g *graph.Graph) int {
	a := make(graph.Assignment, g.VertexCount())
	count := 0
	var walk func(v int)
	walk = func(v int) {
		if v == len(a) {
			if g.Verify(a) == nil {
				count++
			}
			return
		}
		for c := 0; c < g.PaletteSize(); c++ {
			a[v] = c
			walk(v + 1)
		}
	}
	walk(0)
	return count
}

func expectDistinctLegal(g *graph.Graph, solutions []graph.Assignment) {
	seen := map[string]struct{}{}
	for _, a := range solutions {
		Expect(g.Verify(a)).To(Succeed())
		_, dup := seen[a.String()]
		Expect(dup).To(BeFalse(), "%s reported twice", a)
		seen[a.String()] = struct{}{}
	}
}

var _ = Describe("Enumerator", func() {
	backends := []struct {
		name      string
		newSolver func() constraints.Solver
	}{
		{
			name: "gini",
			newSolver: func() constraints.Solver {
				s, err := solver.New()
				Expect(err).NotTo(HaveOccurred())
				return s
			},
		},
		{
			name: "backtrack",
			newSolver: func() constraints.Solver {
				return backtrack.New()
			},
		},
	}

	for _, backend := range backends {
		newSolver := backend.newSolver

		Context("with the "+backend.name+" backend", func() {
			var ctx context.Context

			BeforeEach(func() {
				ctx = context.Background()
			})

			enumerate := func(g *graph.Graph) *Enumerator {
				e, err := New(g, WithSolver(newSolver()))
				Expect(err).NotTo(HaveOccurred())
				Expect(e.RunToExhaustion(ctx)).To(Succeed())
				Expect(e.State()).To(Equal(Exhausted))
				return e
			}

			It("finds no colorings of a graph without vertices", func() {
				e := enumerate(newGraph(0, nil, 2))
				Expect(e.Solutions()).To(BeEmpty())
			})

			It("exhausts an odd cycle with two colors without error", func() {
				e := enumerate(newGraph(5, cycle(5), 2))
				Expect(e.Solutions()).To(BeEmpty())
				Expect(e.Err()).NotTo(HaveOccurred())
			})

			It("finds the six colorings of a triangle", func() {
				g := newGraph(3, cycle(3), 3)
				e := enumerate(g)
				Expect(e.Solutions()).To(HaveLen(6))
				expectDistinctLegal(g, e.Solutions())
			})

			It("finds the two colorings of a path", func() {
				e := enumerate(newGraph(3, [][2]int{{0, 1}, {1, 2}}, 2))
				Expect(e.Solutions()).To(ConsistOf(graph.Assignment{0, 1, 0}, graph.Assignment{1, 0, 1}))
			})

			It("colors isolated vertices independently", func() {
				e := enumerate(newGraph(3, nil, 2))
				Expect(e.Solutions()).To(HaveLen(8))
			})

			It("matches a brute force count on random graphs", func() {
				rnd := rand.New(rand.NewSource(7))
				for i := 0; i < 10; i++ {
					n := rnd.Intn(6) + 1
					var edges [][2]int
					for u := 0; u < n; u++ {
						for v := u + 1; v < n; v++ {
							if rnd.Float64() < .4 {
								edges = append(edges, [2]int{u, v})
							}
						}
					}
					g := newGraph(n, edges, rnd.Intn(3)+1)
					e := enumerate(g)
					Expect(e.Solutions()).To(HaveLen(countColorings(g)), "graph %s with edges %v", g, edges)
					expectDistinctLegal(g, e.Solutions())
				}
			})

			It("stops at the budget and resumes without repeats", func() {
				g := newGraph(4, cycle(4), 3)
				e, err := New(g, WithSolver(newSolver()))
				Expect(err).NotTo(HaveOccurred())

				Expect(e.RunUpTo(ctx, 5)).To(Succeed())
				Expect(e.State()).To(Equal(BudgetReached))
				Expect(e.Solutions()).To(HaveLen(5))
				expectDistinctLegal(g, e.Solutions())
				first := e.Solutions()

				// A budget already met changes nothing.
				Expect(e.RunUpTo(ctx, 3)).To(Succeed())
				Expect(e.State()).To(Equal(BudgetReached))
				Expect(e.Solutions()).To(Equal(first))

				Expect(e.RunUpTo(ctx, 12)).To(Succeed())
				Expect(e.State()).To(Equal(BudgetReached))
				Expect(e.Solutions()).To(HaveLen(12))

				Expect(e.RunToExhaustion(ctx)).To(Succeed())
				Expect(e.State()).To(Equal(Exhausted))
				Expect(e.Solutions()).To(HaveLen(countColorings(g)))
				Expect(e.Solutions()[:5]).To(Equal(first))
				expectDistinctLegal(g, e.Solutions())

				Expect(e.RunUpTo(ctx, 100)).To(Succeed())
				Expect(e.State()).To(Equal(Exhausted))
			})

			It("exhausts when the budget exceeds the number of colorings", func() {
				e, err := New(newGraph(3, cycle(3), 3), WithSolver(newSolver()))
				Expect(err).NotTo(HaveOccurred())
				Expect(e.RunUpTo(ctx, 10)).To(Succeed())
				Expect(e.State()).To(Equal(Exhausted))
				Expect(e.Solutions()).To(HaveLen(6))
			})

			It("is not affected by blocking the same coloring twice", func() {
				g := newGraph(3, [][2]int{{0, 1}, {1, 2}}, 2)
				set, err := constraints.New(g, newSolver())
				Expect(err).NotTo(HaveOccurred())
				Expect(set.AddBlock(graph.Assignment{0, 1, 0})).To(Succeed())
				Expect(set.AddBlock(graph.Assignment{0, 1, 0})).To(Succeed())

				a, err := set.Solve(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(a).To(Equal(graph.Assignment{1, 0, 1}))

				Expect(set.AddBlock(a)).To(Succeed())
				_, err = set.Solve(ctx)
				Expect(constraints.IsNotSatisfiable(err)).To(BeTrue())
			})

			It("leaves a cancelled run resumable", func() {
				g := newGraph(3, cycle(3), 3)
				e, err := New(g, WithSolver(newSolver()))
				Expect(err).NotTo(HaveOccurred())

				cancelled, cancel := context.WithCancel(ctx)
				cancel()
				Expect(e.RunToExhaustion(cancelled)).To(MatchError(constraints.ErrIncomplete))
				Expect(e.State()).To(Equal(Running))
				Expect(e.Solutions()).To(BeEmpty())

				Expect(e.RunToExhaustion(ctx)).To(Succeed())
				Expect(e.Solutions()).To(HaveLen(6))
			})
		})
	}
})
