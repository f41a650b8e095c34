//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o zz_fake_solver_test.go ../constraints Solver

package enumerator

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/colorsat/pkg/constraints"
	"github.com/operator-framework/colorsat/pkg/graph"
)

func mustGraph(t testing.TB, n int, edges [][2]int, k int) *graph.Graph {
	es := make([]graph.Edge, len(edges))
	for i, e := range edges {
		es[i] = graph.Edge{U: e[0], V: e[1]}
	}
	g, err := graph.New(n, es, k)
	require.NoError(t, err)
	return g
}

func path3(t testing.TB) *graph.Graph {
	return mustGraph(t, 3, [][2]int{{0, 1}, {1, 2}}, 2)
}

func TestStepWithFakeSolver(t *testing.T) {
	type tc struct {
		Name    string
		Returns []interface{}
		State   State
		Error   func(t *testing.T, err error)
		Ledger  []graph.Assignment
	}

	isContractViolation := func(t *testing.T, err error) {
		var violation *SolverContractViolation
		assert.ErrorAs(t, err, &violation)
	}

	for _, tt := range []tc{
		{
			Name:    "accepted",
			Returns: []interface{}{graph.Assignment{0, 1, 0}, nil},
			State:   Running,
			Ledger:  []graph.Assignment{{0, 1, 0}},
		},
		{
			Name:    "not satisfiable",
			Returns: []interface{}{graph.Assignment(nil), constraints.NotSatisfiable{}},
			State:   Exhausted,
		},
		{
			Name:    "incomplete",
			Returns: []interface{}{graph.Assignment(nil), constraints.ErrIncomplete},
			State:   Running,
			Error: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, constraints.ErrIncomplete)
			},
		},
		{
			Name:    "deadline exceeded",
			Returns: []interface{}{graph.Assignment(nil), context.DeadlineExceeded},
			State:   Running,
			Error: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, constraints.ErrIncomplete)
			},
		},
		{
			Name:    "backend error",
			Returns: []interface{}{graph.Assignment(nil), errors.New("boom")},
			State:   Failed,
			Error: func(t *testing.T, err error) {
				assert.EqualError(t, err, "solver failed: boom")
			},
		},
		{
			Name:    "monochrome edge",
			Returns: []interface{}{graph.Assignment{0, 0, 1}, nil},
			State:   Failed,
			Error:   isContractViolation,
		},
		{
			Name:    "color outside palette",
			Returns: []interface{}{graph.Assignment{0, 1, 2}, nil},
			State:   Failed,
			Error:   isContractViolation,
		},
		{
			Name:    "wrong length",
			Returns: []interface{}{graph.Assignment{0, 1}, nil},
			State:   Failed,
			Error: func(t *testing.T, err error) {
				isContractViolation(t, err)
				var mismatch *graph.DimensionMismatch
				assert.ErrorAs(t, err, &mismatch)
			},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			fake := &FakeSolver{}
			fake.SolveReturns(tt.Returns[0].(graph.Assignment), asError(tt.Returns[1]))

			e, err := New(path3(t), WithSolver(fake))
			require.NoError(t, err)

			_, err = e.Step(context.Background())
			if tt.Error != nil {
				tt.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.State, e.State())
			assert.Equal(t, 1, fake.SolveCallCount())
			if diff := cmp.Diff(tt.Ledger, e.Solutions(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("unexpected ledger (-want +got):\n%s", diff)
			}
			if tt.State == Failed {
				assert.Equal(t, err, e.Err())
			} else {
				assert.NoError(t, e.Err())
			}
		})
	}
}

func asError(v interface{}) error {
	if v == nil {
		return nil
	}
	return v.(error)
}

func TestRepeatedSolutionIsContractViolation(t *testing.T) {
	fake := &FakeSolver{}
	fake.SolveReturns(graph.Assignment{0, 1, 0}, nil)

	e, err := New(path3(t), WithSolver(fake))
	require.NoError(t, err)

	_, err = e.Step(context.Background())
	require.NoError(t, err)

	_, err = e.Step(context.Background())
	var violation *SolverContractViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, graph.Assignment{0, 1, 0}, violation.Assignment)
	assert.EqualError(t, err, `solver returned unacceptable assignment [0 1 0]: illegal coloring: violates "assignment is not [0 1 0]"`)
	assert.Equal(t, Failed, e.State())
	assert.Equal(t, 1, e.Len())

	// Failed is terminal.
	_, again := e.Step(context.Background())
	assert.Equal(t, err, again)
	assert.Equal(t, err, e.RunToExhaustion(context.Background()))
	assert.Equal(t, 2, fake.SolveCallCount())
}

func TestSolverSeesGrowingClauses(t *testing.T) {
	fake := &FakeSolver{}
	fake.SolveReturnsOnCall(0, graph.Assignment{0, 1, 0}, nil)
	fake.SolveReturnsOnCall(1, graph.Assignment{1, 0, 1}, nil)
	fake.SolveReturnsOnCall(2, nil, constraints.NotSatisfiable{})

	g := path3(t)
	e, err := New(g, WithSolver(fake))
	require.NoError(t, err)
	require.NoError(t, e.RunToExhaustion(context.Background()))

	assert.Equal(t, Exhausted, e.State())
	assert.Equal(t, []graph.Assignment{{0, 1, 0}, {1, 0, 1}}, e.Solutions())
	require.Equal(t, 3, fake.SolveCallCount())
	for i := 0; i < 3; i++ {
		_, got, clauses := fake.SolveArgsForCall(i)
		assert.Same(t, g, got)
		assert.Len(t, clauses, 5+i)
	}
	_, _, clauses := fake.SolveArgsForCall(2)
	assert.Equal(t, []constraints.Clause{
		constraints.Block{Colors: graph.Assignment{0, 1, 0}},
		constraints.Block{Colors: graph.Assignment{1, 0, 1}},
	}, clauses[5:])
}

func TestNoVertices(t *testing.T) {
	fake := &FakeSolver{}
	e, err := New(mustGraph(t, 0, nil, 3), WithSolver(fake))
	require.NoError(t, err)
	assert.Equal(t, Exhausted, e.State())

	require.NoError(t, e.RunToExhaustion(context.Background()))
	a, err := e.Step(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, a)
	assert.Empty(t, e.Solutions())
	assert.Equal(t, 0, fake.SolveCallCount())
}

func TestNewErrors(t *testing.T) {
	_, err := New(nil)
	var invalid *graph.InvalidGraph
	assert.ErrorAs(t, err, &invalid)

	_, err = New(path3(t), WithSolver(nil))
	assert.EqualError(t, err, "no solver provided")

	_, err = New(path3(t), WithPrior(graph.Assignment{0, 1}))
	var mismatch *graph.DimensionMismatch
	assert.ErrorAs(t, err, &mismatch)

	_, err = New(path3(t), WithPrior(graph.Assignment{0, 1, 0}, graph.Assignment{1, 1, 0}))
	var illegal graph.IllegalColoring
	assert.ErrorAs(t, err, &illegal)
	assert.EqualError(t, err, "prior solution 1: illegal coloring: edge (0, 1) joins two vertices colored 1")
}

func TestRunUpToNegative(t *testing.T) {
	e, err := New(path3(t), WithSolver(&FakeSolver{}))
	require.NoError(t, err)
	assert.EqualError(t, e.RunUpTo(context.Background(), -1), "solution budget -1 is negative")
	assert.Equal(t, Running, e.State())
}

func TestRunUpToBelowPriorCount(t *testing.T) {
	fake := &FakeSolver{}
	e, err := New(path3(t), WithSolver(fake), WithPrior(graph.Assignment{0, 1, 0}, graph.Assignment{1, 0, 1}))
	require.NoError(t, err)

	require.NoError(t, e.RunUpTo(context.Background(), 1))
	assert.Equal(t, BudgetReached, e.State())
	assert.Equal(t, []graph.Assignment{{0, 1, 0}, {1, 0, 1}}, e.Solutions())
	assert.Equal(t, 0, fake.SolveCallCount())
}

func TestObserverAndLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	type observed struct {
		Index      int
		Assignment graph.Assignment
	}
	var seen []observed

	e, err := New(path3(t),
		WithLogger(logger),
		WithObserver(func(index int, a graph.Assignment) {
			seen = append(seen, observed{Index: index, Assignment: a})
		}),
	)
	require.NoError(t, err)
	require.NoError(t, e.RunToExhaustion(context.Background()))

	require.Len(t, seen, 2)
	assert.Equal(t, 0, seen[0].Index)
	assert.Equal(t, 1, seen[1].Index)
	assert.ElementsMatch(t, []graph.Assignment{{0, 1, 0}, {1, 0, 1}}, []graph.Assignment{seen[0].Assignment, seen[1].Assignment})

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.InfoLevel, last.Level)
	assert.Equal(t, "enumeration stopped", last.Message)
	assert.Equal(t, "Exhausted", last.Data["state"])
	assert.Equal(t, 2, last.Data["solutions"])

	var accepted int
	for _, entry := range hook.AllEntries() {
		if entry.Message == "accepted solution" {
			accepted++
		}
	}
	assert.Equal(t, 2, accepted)
}

func TestPriorSolutionsAreNotRepeated(t *testing.T) {
	e, err := New(mustGraph(t, 3, [][2]int{{0, 1}, {1, 2}, {0, 2}}, 3),
		WithPrior(graph.Assignment{2, 1, 0}, graph.Assignment{0, 1, 2}, graph.Assignment{2, 1, 0}),
	)
	require.NoError(t, err)
	assert.Equal(t, []graph.Assignment{{2, 1, 0}, {0, 1, 2}}, e.Solutions())

	require.NoError(t, e.RunToExhaustion(context.Background()))
	solutions := e.Solutions()
	require.Len(t, solutions, 6)
	assert.Equal(t, []graph.Assignment{{2, 1, 0}, {0, 1, 2}}, solutions[:2])
	assert.ElementsMatch(t, []graph.Assignment{{0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}}, solutions[2:])
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Running", Running.String())
	assert.Equal(t, "Exhausted", Exhausted.String())
	assert.Equal(t, "BudgetReached", BudgetReached.String())
	assert.Equal(t, "Failed", Failed.String())
	assert.Equal(t, "State(9)", State(9).String())

	assert.True(t, Exhausted.Terminal())
	assert.True(t, Failed.Terminal())
	assert.False(t, Running.Terminal())
	assert.False(t, BudgetReached.Terminal())
}
