package goap

import (
	"fmt"
	"strings"
)

// Effect is a named bundle of mutators with an integer cost: one outcome of
// executing an action (§3 Effect). The author-provided Effect carries only
// mutators and cost; the planner populates ResultingState while exploring.
type Effect struct {
	ActionName     string
	Mutators       []Mutator
	Cost           uint64
	ResultingState LocalState
}

// NewEffect builds an author-provided Effect. cost defaults to 1 when given as 0,
// matching the spec's "non-negative integer (default 1)" (§3).
func NewEffect(actionName string, cost uint64, mutators ...Mutator) Effect {
	if cost == 0 {
		cost = 1
	}
	return Effect{
		ActionName: actionName,
		Mutators:   mutators,
		Cost:       cost,
	}
}

// apply clones state, applies every mutator in order, and returns the result.
// Used by the planner during successor expansion (§4.5).
func (e Effect) apply(state LocalState) LocalState {
	next := state.Clone()
	for _, m := range e.Mutators {
		m.ApplyTo(next)
	}
	return next
}

// String renders the Effect for diagnostics.
func (e Effect) String() string {
	parts := make([]string, len(e.Mutators))
	for i, m := range e.Mutators {
		parts[i] = m.String()
	}
	return fmt.Sprintf("%s(cost=%d){%s}", e.ActionName, e.Cost, strings.Join(parts, ", "))
}
