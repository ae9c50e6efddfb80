package goap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Requirement is a (key, Compare) pair in a Goal's conjunction.
type Requirement struct {
	Key string
	Cmp Compare
}

// Goal is a conjunction of (key, Compare) requirements plus the distance
// function that drives the planner's heuristic (§3 Goal). Equality and hash
// are content-based so identical goals interchange freely (§3 invariant).
type Goal struct {
	name         string
	requirements []Requirement
}

// NewGoal builds a Goal from an ordered list of requirements.
func NewGoal(name string, requirements ...Requirement) *Goal {
	return &Goal{name: name, requirements: requirements}
}

// Name returns the goal's human-readable identifier.
func (g *Goal) Name() string { return g.name }

// Requirements returns the goal's ordered (key, Compare) conjunction.
func (g *Goal) Requirements() []Requirement { return g.requirements }

// IsSatisfied reports whether every requirement holds against state. A
// requirement whose key is absent from state is a programmer error and
// panics (§4.6) — unlike Distance, which tolerates absence as a heuristic
// penalty so the search can explore states that have not set the key yet.
func (g *Goal) IsSatisfied(state LocalState) bool {
	for _, req := range g.requirements {
		actual := state.MustGet(req.Key)
		if !req.Cmp.Satisfied(actual) {
			return false
		}
	}
	return true
}

// Distance is the heuristic estimate of remaining cost from state to this
// goal (§4.7): the sum of per-key Datum distances, with an absent key
// contributing 1. It can exceed the true remaining cost when one step moves
// a key by more than its cost (e.g. +6 energy at cost 1), and A* then does
// not guarantee a minimal-cost plan.
func (g *Goal) Distance(state LocalState) uint64 {
	return state.DistanceToGoal(g)
}

// Equal reports whether g and other have the same name and requirement set,
// irrespective of requirement order.
func (g *Goal) Equal(other *Goal) bool {
	if g == other {
		return true
	}
	if other == nil || g.name != other.name || len(g.requirements) != len(other.requirements) {
		return false
	}
	a := g.sortedRequirementStrings()
	b := other.sortedRequirementStrings()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (g *Goal) sortedRequirementStrings() []string {
	out := make([]string, len(g.requirements))
	for i, r := range g.requirements {
		out[i] = fmt.Sprintf("%s%s", r.Key, r.Cmp)
	}
	sort.Strings(out)
	return out
}

// Hash returns a deterministic, order-independent hash of the goal's
// content, usable as a fingerprint for logging (§7) or as a map key.
func (g *Goal) Hash() uint64 {
	h := xxhash.New()
	h.WriteString(g.name)
	for _, s := range g.sortedRequirementStrings() {
		h.WriteString(s)
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// String renders the Goal for diagnostics.
func (g *Goal) String() string {
	parts := make([]string, len(g.requirements))
	for i, r := range g.requirements {
		parts[i] = fmt.Sprintf("%s %s", r.Key, r.Cmp)
	}
	return fmt.Sprintf("Goal[%s: %s]", g.name, strings.Join(parts, ", "))
}
