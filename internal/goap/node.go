package goap

import "fmt"

// nodeKind distinguishes the two Node payload shapes (§3 Search Node).
type nodeKind int

const (
	nodeKindState nodeKind = iota
	nodeKindEffect
)

// Node is a search node: either the start State or a subsequent Effect. The
// heuristic and goal test always dispatch to Node.State(); equality and
// hashing are delegated to the payload (§3).
type Node struct {
	kind   nodeKind
	state  LocalState
	effect Effect
}

// StateNode wraps the initial LocalState as the search's start node.
func StateNode(s LocalState) Node {
	return Node{kind: nodeKindState, state: s}
}

// EffectNode wraps a search-generated Effect (mutators, cost, and the
// resulting state already applied) as a non-start search node.
func EffectNode(e Effect) Node {
	return Node{kind: nodeKindEffect, effect: e}
}

// IsState reports whether this is the start node.
func (n Node) IsState() bool { return n.kind == nodeKindState }

// State returns the LocalState this node represents: the wrapped state for
// a start node, or the Effect's resulting state otherwise.
func (n Node) State() LocalState {
	if n.kind == nodeKindState {
		return n.state
	}
	return n.effect.ResultingState
}

// Effect returns the wrapped Effect. Only meaningful when !IsState().
func (n Node) Effect() Effect { return n.effect }

// Equal reports payload equality (§3). Two Effect nodes from the same
// Action are necessarily identical in ActionName/Mutators/Cost since
// actions are immutable for the duration of a search (§3 Lifecycles), so
// comparing resulting state plus action name is equivalent to comparing
// the full payload.
func (n Node) Equal(other Node) bool {
	if n.kind != other.kind {
		return false
	}
	if n.kind == nodeKindState {
		return n.state.Equal(other.state)
	}
	return n.effect.ActionName == other.effect.ActionName && n.effect.ResultingState.Equal(other.effect.ResultingState)
}

// key returns a string that is equal for, and only for, payload-equal
// nodes; used as the A* closed-set key.
func (n Node) key() string {
	if n.kind == nodeKindState {
		return "S:" + n.state.String()
	}
	return "E:" + n.effect.ActionName + ":" + n.effect.ResultingState.String()
}

// String renders the Node for diagnostics.
func (n Node) String() string {
	if n.kind == nodeKindState {
		return fmt.Sprintf("State%s", n.state)
	}
	return fmt.Sprintf("Effect[%s]->%s", n.effect.ActionName, n.effect.ResultingState)
}
