package enumerator

import (
	"fmt"

	"github.com/operator-framework/colorsat/pkg/graph"
)

// SolverContractViolation is returned when a backend reports a model
// that is not a legal coloring or that repeats an accepted solution.
// The enumerator cannot continue once it has seen one.
type SolverContractViolation struct {
	Assignment graph.Assignment
	Cause      error
}

func (e *SolverContractViolation) Error() string {
	return fmt.Sprintf("solver returned unacceptable assignment %s: %s", e.Assignment, e.Cause)
}

func (e *SolverContractViolation) Unwrap() error {
	return e.Cause
}
