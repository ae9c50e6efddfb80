package goap

import "testing"

// Scenario 1: single-mutator bool toggle (§8).
func TestMakePlanBoolToggle(t *testing.T) {
	state := NewLocalState().WithDatum("is_hungry", Bool(true))
	goal := NewGoal("not_hungry", Requirement{Key: "is_hungry", Cmp: Equals(Bool(false))})
	eat := NewAction("eat", nil, NewEffect("eat", 1, Set("is_hungry", Bool(false))))

	path, cost, found := MakePlan(state, []*Action{eat}, goal)
	if !found {
		t.Fatal("expected a plan")
	}
	if cost != 1 {
		t.Errorf("cost = %d, want 1", cost)
	}
	effects := EffectsFromPlan(path)
	if len(effects) != 1 || effects[0].ActionName != "eat" {
		t.Errorf("plan = %v, want [eat]", effects)
	}
}

// Scenario 2: preconditioned chain (§8).
func TestMakePlanPreconditionedChain(t *testing.T) {
	state := NewLocalState().WithDatum("is_hungry", Bool(true)).WithDatum("is_tired", Bool(true))
	goal := NewGoal("rested_and_fed",
		Requirement{Key: "is_hungry", Cmp: Equals(Bool(false))},
		Requirement{Key: "is_tired", Cmp: Equals(Bool(false))},
	)
	eat := NewAction("eat",
		[]Precondition{{Key: "is_tired", Cmp: Equals(Bool(false))}},
		NewEffect("eat", 1, Set("is_hungry", Bool(false)), Set("is_tired", Bool(true))),
	)
	sleep := NewAction("sleep", nil, NewEffect("sleep", 1, Set("is_tired", Bool(false))))

	path, cost, found := MakePlan(state, []*Action{eat, sleep}, goal)
	if !found {
		t.Fatal("expected a plan")
	}
	if cost != 3 {
		t.Errorf("cost = %d, want 3", cost)
	}
	effects := EffectsFromPlan(path)
	want := []string{"sleep", "eat", "sleep"}
	if len(effects) != len(want) {
		t.Fatalf("plan length = %d, want %d: %v", len(effects), len(want), effects)
	}
	for i, e := range effects {
		if e.ActionName != want[i] {
			t.Errorf("step %d = %s, want %s", i, e.ActionName, want[i])
		}
	}
}

// Scenario 3: cost preference between a cheap and an expensive action (§8).
func TestMakePlanCostPreference(t *testing.T) {
	state := NewLocalState().WithDatum("gold", I64(0))
	goal := NewGoal("rich", Requirement{Key: "gold", Cmp: Equals(I64(10))})
	cheap := NewAction("work_cheap", nil, NewEffect("work_cheap", 1, Increment("gold", I64(1))))
	expensive := NewAction("work_expensive", nil, NewEffect("work_expensive", 4, Increment("gold", I64(3))))

	path, cost, found := MakePlan(state, []*Action{cheap, expensive}, goal)
	if !found {
		t.Fatal("expected a plan")
	}
	if cost != 10 {
		t.Errorf("cost = %d, want 10 (all-cheap is the minimal-cost-per-gold strategy)", cost)
	}
	effects := EffectsFromPlan(path)
	if len(effects) != 10 {
		t.Errorf("plan length = %d, want 10", len(effects))
	}
	for _, e := range effects {
		if e.ActionName != "work_cheap" {
			t.Errorf("expected only work_cheap steps, found %s", e.ActionName)
		}
	}
}

// Scenario 4: enum-valued location navigation, gated on a fixed route through
// a market (§8).
func TestMakePlanEnumNavigation(t *testing.T) {
	const (
		locHouse uint64 = iota
		locOutside
		locMarket
		locRamenShop
	)
	state := NewLocalState().WithDatum("at", Enum(locHouse))
	goal := NewGoal("eat_ramen", Requirement{Key: "at", Cmp: Equals(Enum(locRamenShop))})

	goOutside := NewAction("go_outside",
		[]Precondition{{Key: "at", Cmp: Equals(Enum(locHouse))}},
		NewEffect("go_outside", 1, Set("at", Enum(locOutside))),
	)
	goToMarket := NewAction("go_to_market",
		[]Precondition{{Key: "at", Cmp: Equals(Enum(locOutside))}},
		NewEffect("go_to_market", 1, Set("at", Enum(locMarket))),
	)
	goToRamen := NewAction("go_to_ramen",
		[]Precondition{{Key: "at", Cmp: Equals(Enum(locMarket))}},
		NewEffect("go_to_ramen", 1, Set("at", Enum(locRamenShop))),
	)

	path, cost, found := MakePlan(state, []*Action{goOutside, goToMarket, goToRamen}, goal)
	if !found {
		t.Fatal("expected a plan")
	}
	if cost != 3 {
		t.Errorf("cost = %d, want 3", cost)
	}
	effects := EffectsFromPlan(path)
	want := []string{"go_outside", "go_to_market", "go_to_ramen"}
	for i, e := range effects {
		if e.ActionName != want[i] {
			t.Errorf("step %d = %s, want %s", i, e.ActionName, want[i])
		}
	}
}

// Scenario 5: integer-targeting via GreaterThanEquals (§8).
func TestMakePlanIntegerTargeting(t *testing.T) {
	state := NewLocalState().WithDatum("energy", I64(0))
	goal := NewGoal("energized", Requirement{Key: "energy", Cmp: GreaterThanEquals(I64(50))})
	eat := NewAction("eat", nil, NewEffect("eat", 1, Increment("energy", I64(6))))

	path, cost, found := MakePlan(state, []*Action{eat}, goal)
	if !found {
		t.Fatal("expected a plan")
	}
	if cost != 9 {
		t.Errorf("cost = %d, want 9 (8*6=48 < 50, 9*6=54 >= 50)", cost)
	}
	final := path[len(path)-1].State()
	if v := final.MustGet("energy"); !v.Equal(I64(54)) {
		t.Errorf("final energy = %s, want 54", v)
	}
}

// Scenario 6: a resource chain gated on two guard conditions that a rob
// action itself disturbs (§8). The literal per-action deltas in spec.md §8
// (sleep +1 energy, eat -1 hunger requiring energy>=50, rob +1 gold/-20
// energy/+20 hunger requiring energy>=50 and hunger<=50) do not algebraically
// reach the narrative's claimed 50-step/{energy:50,hunger:50,gold:10} answer
// under any interleaving (worked by hand: the minimal feasible schedule is a
// once-off buffer of 200 sleeps and 200 eats plus 10 robs, 410 total, ending
// back at {energy:30,hunger:70,gold:10}) — original_source is unavailable to
// resolve the discrepancy (see DESIGN.md), so this test asserts the planner's
// structural invariants on this scenario rather than a specific hardcoded cost.
func TestMakePlanResourceChainWithGuards(t *testing.T) {
	state := NewLocalState().
		WithDatum("energy", I64(30)).
		WithDatum("hunger", I64(70)).
		WithDatum("gold", I64(0))
	goal := NewGoal("get_rich", Requirement{Key: "gold", Cmp: Equals(I64(10))})

	sleep := NewAction("sleep", nil, NewEffect("sleep", 1, Increment("energy", I64(1))))
	eat := NewAction("eat",
		[]Precondition{{Key: "energy", Cmp: GreaterThanEquals(I64(50))}},
		NewEffect("eat", 1, Decrement("hunger", I64(1))),
	)
	rob := NewAction("rob",
		[]Precondition{
			{Key: "energy", Cmp: GreaterThanEquals(I64(50))},
			{Key: "hunger", Cmp: LessThanEquals(I64(50))},
		},
		NewEffect("rob", 1, Increment("gold", I64(1)), Decrement("energy", I64(20)), Increment("hunger", I64(20))),
	)

	path, cost, found := MakePlan(state, []*Action{sleep, eat, rob}, goal)
	if !found {
		t.Fatal("expected a plan")
	}

	final := path[len(path)-1].State()
	if v := final.MustGet("gold"); !v.Equal(I64(10)) {
		t.Fatalf("final gold = %s, want 10", v)
	}

	effects := EffectsFromPlan(path)
	robCount := 0
	for _, e := range effects {
		if e.ActionName == "rob" {
			robCount++
		}
	}
	if robCount != 10 {
		t.Errorf("rob count = %d, want 10 (gold only increases via rob, +1 each)", robCount)
	}

	// Every action along the path must have been legal against the state
	// immediately preceding it — re-derive the state sequence independently
	// of the planner's own bookkeeping and re-check preconditions.
	running := state.Clone()
	actionsByName := map[string]*Action{"sleep": sleep, "eat": eat, "rob": rob}
	var runningCost uint64
	for _, e := range effects {
		a := actionsByName[e.ActionName]
		if !a.CheckPreconditions(running) {
			t.Fatalf("action %s preconditions violated at state %s", e.ActionName, running)
		}
		running = e.apply(running)
		runningCost += e.Cost
	}
	if runningCost != cost {
		t.Errorf("re-derived cost %d does not match planner-reported cost %d", runningCost, cost)
	}
	if !running.Equal(final) {
		t.Errorf("re-derived final state %s does not match planner's final state %s", running, final)
	}
}

// No-op optimality (§4.8, §8): a goal already satisfied at the start yields
// a length-1 path and zero cost.
func TestMakePlanNoOpWhenGoalAlreadySatisfied(t *testing.T) {
	state := NewLocalState().WithDatum("is_hungry", Bool(false))
	goal := NewGoal("not_hungry", Requirement{Key: "is_hungry", Cmp: Equals(Bool(false))})
	eat := NewAction("eat", nil, NewEffect("eat", 1, Set("is_hungry", Bool(false))))

	path, cost, found := MakePlan(state, []*Action{eat}, goal)
	if !found {
		t.Fatal("expected a (trivial) plan")
	}
	if cost != 0 {
		t.Errorf("cost = %d, want 0", cost)
	}
	if len(path) != 1 {
		t.Errorf("path length = %d, want 1", len(path))
	}
	if len(EffectsFromPlan(path)) != 0 {
		t.Error("expected no effects in a no-op plan")
	}
}

func TestMakePlanUnreachableGoal(t *testing.T) {
	state := NewLocalState().WithDatum("is_hungry", Bool(true))
	goal := NewGoal("impossible", Requirement{Key: "is_hungry", Cmp: Equals(Bool(false))})

	_, _, found := MakePlan(state, nil, goal)
	if found {
		t.Error("expected no plan with an empty action set and an unsatisfied goal")
	}
}

func TestMakePlanWithStrategyGoalToStartPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for the unimplemented GoalToStart strategy")
		}
	}()
	state := NewLocalState().WithDatum("x", I64(0))
	goal := NewGoal("g", Requirement{Key: "x", Cmp: Equals(I64(1))})
	MakePlanWithStrategy(GoalToStart, state, nil, goal)
}

// Determinism (§4.8): repeated searches over identical inputs must return
// identical plans, since the open-set tie-break is the action list order.
func TestMakePlanDeterministic(t *testing.T) {
	state := NewLocalState().WithDatum("gold", I64(0))
	goal := NewGoal("rich", Requirement{Key: "gold", Cmp: Equals(I64(3))})
	a := NewAction("add_one", nil, NewEffect("add_one", 1, Increment("gold", I64(1))))
	b := NewAction("add_one_too", nil, NewEffect("add_one_too", 1, Increment("gold", I64(1))))
	actions := []*Action{a, b}

	first, firstCost, _ := MakePlan(state, actions, goal)
	for i := 0; i < 5; i++ {
		path, cost, found := MakePlan(state, actions, goal)
		if !found || cost != firstCost {
			t.Fatalf("run %d: found=%v cost=%d, want found=true cost=%d", i, found, cost, firstCost)
		}
		if len(path) != len(first) {
			t.Fatalf("run %d: path length %d != %d", i, len(path), len(first))
		}
		for j := range path {
			if !path[j].Equal(first[j]) {
				t.Fatalf("run %d: step %d differs from the first run", i, j)
			}
		}
	}
}
