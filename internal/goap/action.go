package goap

import (
	"fmt"
	"regexp"
	"strings"
)

// Precondition is a (key, Compare) pair that must hold in a state for an
// action to be applicable (§3 Action, glossary).
type Precondition struct {
	Key string
	Cmp Compare
}

// Action is a named collection of preconditions and one or more Effects
// (§3 Action). For this core, the planner considers only the first effect
// during successor generation; multi-effect actions are a reserved
// extension point (§9) — the data model permits iterating every effect as
// an independent successor, but MakePlan does not do so.
type Action struct {
	key           string
	preconditions []Precondition
	effects       []Effect
}

// NewAction builds an Action. key must be unique within the action set
// passed to a single search (§3 invariant).
func NewAction(key string, preconditions []Precondition, effects ...Effect) *Action {
	if len(effects) == 0 {
		panic(fmt.Sprintf("goap: action %q must declare at least one effect", key))
	}
	return &Action{key: key, preconditions: preconditions, effects: effects}
}

// Key returns the action's unique name.
func (a *Action) Key() string { return a.key }

// Preconditions returns the action's ordered preconditions.
func (a *Action) Preconditions() []Precondition { return a.preconditions }

// Effects returns all of the action's effects. Successor generation (§4.5)
// only consumes Effects()[0]; the rest are reserved for a multi-effect
// extension (§9).
func (a *Action) Effects() []Effect { return a.effects }

// FirstEffect returns the effect used for successor generation.
func (a *Action) FirstEffect() Effect { return a.effects[0] }

// CheckPreconditions reports whether every (key, Compare) pair holds
// against state, in declaration order. A referenced key absent from state
// is a programmer error and panics (§4.3); an empty precondition list is
// always satisfied.
func (a *Action) CheckPreconditions(state LocalState) bool {
	for _, pre := range a.preconditions {
		actual := state.MustGet(pre.Key)
		if !pre.Cmp.Satisfied(actual) {
			return false
		}
	}
	return true
}

// String renders the Action for diagnostics.
func (a *Action) String() string {
	return fmt.Sprintf("Action[%s]", a.key)
}

var camelBoundary = regexp.MustCompile("([a-z0-9])([A-Z])")

// SnakeCaseName converts a CamelCase type identifier into the snake_case
// action name the bundled authoring layer derives it to (e.g. EatAction ->
// eat_action). This is sugar over Action.Key, not a core contract (§6).
func SnakeCaseName(identifier string) string {
	snake := camelBoundary.ReplaceAllString(identifier, "${1}_${2}")
	return strings.ToLower(snake)
}
