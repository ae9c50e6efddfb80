package goap

import (
	"container/heap"
)

// searchItem is one entry in the A* open set.
type searchItem struct {
	node   Node
	parent *searchItem
	g      uint64
	h      uint64
	seq    int // insertion order, used to break f-score ties deterministically
	index  int // heap.Interface bookkeeping
}

func (it *searchItem) f() uint64 { return it.g + it.h }

// openSet is a min-heap on f-score, breaking ties by insertion order so
// that repeated searches over the same inputs expand nodes in the same
// order (§4.8 determinism).
type openSet []*searchItem

func (q openSet) Len() int { return len(q) }

func (q openSet) Less(i, j int) bool {
	fi, fj := q[i].f(), q[j].f()
	if fi != fj {
		return fi < fj
	}
	return q[i].seq < q[j].seq
}

func (q openSet) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *openSet) Push(x interface{}) {
	item := x.(*searchItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *openSet) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

// MakePlan runs StartToGoal A* search over the symbolic state space defined
// by actions, from state to goal (§4.8, §6).
func MakePlan(state LocalState, actions []*Action, goal *Goal) ([]Node, uint64, bool) {
	return MakePlanWithStrategy(StartToGoal, state, actions, goal)
}

// MakePlanWithStrategy runs A* search using the given strategy. Only
// StartToGoal is implemented; invoking GoalToStart is a hard error (§4.8, §9).
func MakePlanWithStrategy(strategy PlanningStrategy, state LocalState, actions []*Action, goal *Goal) ([]Node, uint64, bool) {
	if strategy != StartToGoal {
		panic("goap: planning strategy " + strategy.String() + " is not implemented")
	}

	start := state.Clone()

	// No-op optimality (§4.8, §8): if the goal is already satisfied, the
	// returned path has length 1 and cost 0.
	if goal.IsSatisfied(start) {
		return []Node{StateNode(start)}, 0, true
	}

	open := &openSet{}
	heap.Init(open)

	seq := 0
	push := func(item *searchItem) {
		item.seq = seq
		seq++
		heap.Push(open, item)
	}

	push(&searchItem{
		node: StateNode(start),
		g:    0,
		h:    goal.Distance(start),
	})

	best := make(map[string]uint64)

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchItem)
		key := current.node.key()

		if prevG, seen := best[key]; seen && prevG <= current.g {
			continue
		}
		best[key] = current.g

		if goal.IsSatisfied(current.node.State()) {
			return reconstructPath(current), current.g, true
		}

		for _, action := range actions {
			if !action.CheckPreconditions(current.node.State()) {
				continue
			}

			effect := action.FirstEffect()
			if len(effect.Mutators) == 0 {
				// An effect with no mutators contributes no successor (§4.11).
				continue
			}

			resultingState := effect.apply(current.node.State())
			childEffect := Effect{
				ActionName:     action.Key(),
				Mutators:       effect.Mutators,
				Cost:           effect.Cost,
				ResultingState: resultingState,
			}
			childNode := EffectNode(childEffect)
			childKey := childNode.key()
			newG := current.g + effect.Cost

			if prevG, seen := best[childKey]; seen && prevG <= newG {
				continue
			}

			push(&searchItem{
				node:   childNode,
				parent: current,
				g:      newG,
				h:      goal.Distance(resultingState),
			})
		}
	}

	return nil, 0, false
}

func reconstructPath(goalItem *searchItem) []Node {
	var reversed []Node
	for it := goalItem; it != nil; it = it.parent {
		reversed = append(reversed, it.node)
	}
	path := make([]Node, len(reversed))
	for i, n := range reversed {
		path[len(reversed)-1-i] = n
	}
	return path
}

// EffectsFromPlan strips the leading State node from path and returns the
// ordered Effects, the authoritative representation consumed by the
// execution harness (§4.8).
func EffectsFromPlan(path []Node) []Effect {
	if len(path) == 0 {
		return nil
	}
	effects := make([]Effect, 0, len(path)-1)
	for _, n := range path[1:] {
		effects = append(effects, n.Effect())
	}
	return effects
}
