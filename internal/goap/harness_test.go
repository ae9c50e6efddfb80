package goap

import (
	"testing"
	"time"
)

type fixedProvider struct{ d Datum }

func (f fixedProvider) Datum() Datum { return f.d }

type countingMarker struct{ attached, detached int }

func (m *countingMarker) Attach() { m.attached++ }
func (m *countingMarker) Detach() { m.detached++ }

func waitForRunState(t *testing.T, p *AgentPlanner, want RunState, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		p.Tick()
		if p.RunState() == want {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for run state %s, last seen %s", want, p.RunState())
		}
	}
}

func TestAgentPlannerTickReachesExecuting(t *testing.T) {
	pool := NewFixedPool(2)
	p := NewAgentPlanner("agent-1", pool)
	p.SetAlwaysPlan(true)
	p.RegisterDatumProvider("is_hungry", fixedProvider{Bool(true)})

	eatMarker := &countingMarker{}
	eat := NewAction("eat", nil, NewEffect("eat", 1, Set("is_hungry", Bool(false))))
	p.RegisterAction(eat, eatMarker)

	goal := NewGoal("not_hungry", Requirement{Key: "is_hungry", Cmp: Equals(Bool(false))})
	p.SetCurrentGoal(goal)

	waitForRunState(t, p, Executing, time.Second)

	if p.CurrentAction() == nil || p.CurrentAction().Key() != "eat" {
		t.Fatalf("expected current action eat, got %v", p.CurrentAction())
	}
	if eatMarker.attached == 0 {
		t.Error("expected the eat action's marker to have been attached")
	}
}

func TestAgentPlannerRequestPlanWithoutAlwaysPlan(t *testing.T) {
	pool := NewFixedPool(2)
	p := NewAgentPlanner("agent-2", pool)
	p.SetAlwaysPlan(false)
	p.RegisterDatumProvider("is_hungry", fixedProvider{Bool(true)})

	eat := NewAction("eat", nil, NewEffect("eat", 1, Set("is_hungry", Bool(false))))
	p.RegisterAction(eat, &countingMarker{})
	p.SetCurrentGoal(NewGoal("not_hungry", Requirement{Key: "is_hungry", Cmp: Equals(Bool(false))}))

	p.Tick()
	if p.RunState() != Idle {
		t.Fatalf("expected no search launched without RequestPlan, got run state %s", p.RunState())
	}

	p.RequestPlan()
	waitForRunState(t, p, Executing, time.Second)
}

func TestAgentPlannerNoPlanFoundRemovesGoal(t *testing.T) {
	pool := NewFixedPool(2)
	p := NewAgentPlanner("agent-3", pool)
	p.SetAlwaysPlan(true)
	p.SetRemoveGoalOnNoPlanFound(true)
	p.RegisterDatumProvider("is_hungry", fixedProvider{Bool(true)})
	// No actions registered at all: the goal is unreachable.
	goal := NewGoal("not_hungry", Requirement{Key: "is_hungry", Cmp: Equals(Bool(false))})
	p.SetCurrentGoal(goal)

	deadline := time.Now().Add(time.Second)
	for p.CurrentGoal() != nil {
		p.Tick()
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for the unreachable goal to be cleared")
		}
	}
	if p.RunState() != Idle {
		t.Errorf("expected Idle once the unreachable goal is cleared, got %s", p.RunState())
	}
}

func TestFixedPoolSaturation(t *testing.T) {
	pool := NewFixedPool(1)
	block := make(chan struct{})
	_, ok := pool.Submit(func() SearchOutcome {
		<-block
		return SearchOutcome{Found: true}
	})
	if !ok {
		t.Fatal("expected the first submit to succeed")
	}
	_, ok = pool.Submit(func() SearchOutcome { return SearchOutcome{Found: true} })
	if ok {
		t.Error("expected the second submit to be rejected while the pool is saturated")
	}
	close(block)
}
