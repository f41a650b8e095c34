package enumerator

import "fmt"

// State is the lifecycle stage of an Enumerator.
type State int

const (
	// Running enumerators may find further solutions.
	Running State = iota
	// Exhausted enumerators have found every solution.
	Exhausted
	// BudgetReached enumerators stopped at the size requested by
	// RunUpTo and may be resumed.
	BudgetReached
	// Failed enumerators stopped on an error, available from Err.
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Exhausted:
		return "Exhausted"
	case BudgetReached:
		return "BudgetReached"
	case Failed:
		return "Failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further solutions can be found from s.
func (s State) Terminal() bool {
	return s == Exhausted || s == Failed
}
