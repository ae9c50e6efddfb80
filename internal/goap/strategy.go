package goap

import "fmt"

// PlanningStrategy selects the search direction (§4.8). StartToGoal is the
// only implemented strategy; GoalToStart is reserved.
type PlanningStrategy int

const (
	// StartToGoal searches forward from the current state toward the goal.
	StartToGoal PlanningStrategy = iota
	// GoalToStart is reserved for a future reverse search. It requires a
	// per-mutator inverse, which is ill-defined for Increment/Decrement
	// without knowing the pre-value (§9) — invoking it is a hard error.
	GoalToStart
)

func (s PlanningStrategy) String() string {
	switch s {
	case StartToGoal:
		return "StartToGoal"
	case GoalToStart:
		return "GoalToStart"
	default:
		return "unknown"
	}
}
