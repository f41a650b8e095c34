package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	Outcome       = "outcome"
	StateLabel    = "state"
	BackendLabel  = "backend"
	Succeeded     = "succeeded"
	Unsatisfiable = "unsatisfiable"
	Failed        = "failed"
)

var (
	solveDurationSummary = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "colorsat_solve_duration_seconds",
			Help:       "The duration of a single solve call",
			Objectives: map[float64]float64{0.95: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{Outcome},
	)

	solutionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "colorsat_solutions_total",
			Help: "monotonic count of accepted colorings across all enumerations",
		},
	)

	enumerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "colorsat_enumerations_total",
			Help: "monotonic count of enumerations by the state they stopped in",
		},
		[]string{BackendLabel, StateLabel},
	)
)

func RegisterEnumerator() {
	RegisterEnumeratorWith(prometheus.DefaultRegisterer)
}

// RegisterEnumeratorWith registers the enumeration collectors with r.
// It panics if any of them is already registered there.
func RegisterEnumeratorWith(r prometheus.Registerer) {
	r.MustRegister(solveDurationSummary)
	r.MustRegister(solutionsTotal)
	r.MustRegister(enumerationsTotal)
}

func RegisterSolveSuccess(duration time.Duration) {
	solveDurationSummary.WithLabelValues(Succeeded).Observe(duration.Seconds())
}

func RegisterSolveUnsatisfiable(duration time.Duration) {
	solveDurationSummary.WithLabelValues(Unsatisfiable).Observe(duration.Seconds())
}

func RegisterSolveFailure(duration time.Duration) {
	solveDurationSummary.WithLabelValues(Failed).Observe(duration.Seconds())
}

func EmitSolution() {
	solutionsTotal.Inc()
}

// EmitEnumeration records that an enumeration on the named backend
// stopped in state.
func EmitEnumeration(backend, state string) {
	enumerationsTotal.WithLabelValues(backend, state).Inc()
}
