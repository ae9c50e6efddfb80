package goap

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/austral-sim/goap/internal/o11y"
)

// DatumProvider is a host-implemented capability: for one datum key on an
// agent, return its current Datum value. The harness polls every
// registered provider each tick (§6).
type DatumProvider interface {
	Datum() Datum
}

// ActionMarker is a host-implemented capability: an opaque handle that
// signals "this action is currently selected" to the host's executor
// systems via Attach/Detach (§6).
type ActionMarker interface {
	Attach()
	Detach()
}

// RunState is the per-agent state machine the harness drives (§4.10):
// Idle -> Planning -> Executing(A) -> Executing(B) | Idle.
type RunState int

const (
	Idle RunState = iota
	Planning
	Executing
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Planning:
		return "planning"
	case Executing:
		return "executing"
	default:
		return "unknown"
	}
}

type registeredAction struct {
	action *Action
	marker ActionMarker
}

// AgentPlanner is the per-agent lifecycle of §4.9: it owns one agent's
// LocalState, goal queue, and action set, and drives state-sync, async
// search submission, and plan-head action selection every tick. The
// planner instance is owned by the agent entity; the action set it
// references is shared-immutable across agents (§9).
type AgentPlanner struct {
	id string

	pool         WorkerPool
	searchBudget time.Duration
	metrics      *o11y.Sink

	state     LocalState
	providers map[string]DatumProvider

	goals       []*Goal
	currentGoal *Goal

	actionOrder []string
	actions     map[string]registeredAction
	isPlanning  ActionMarker

	currentAction *Action
	currentPlan   []string

	alwaysPlan              bool
	planNextTick            bool
	removeGoalOnNoPlanFound bool

	inFlight SearchTask
	runState RunState
}

// NewAgentPlanner builds the per-agent harness state for one agent, using
// pool to run searches in the background (§5). The reference soft search
// budget is 10ms (§5 Timeouts); override with SetSearchBudget.
func NewAgentPlanner(id string, pool WorkerPool) *AgentPlanner {
	return &AgentPlanner{
		id:           id,
		pool:         pool,
		searchBudget: 10 * time.Millisecond,
		state:        NewLocalState(),
		providers:    make(map[string]DatumProvider),
		actions:      make(map[string]registeredAction),
		runState:     Idle,
	}
}

// ID returns the agent identifier this planner is bound to.
func (p *AgentPlanner) ID() string { return p.id }

// State returns the planner's current LocalState snapshot.
func (p *AgentPlanner) State() LocalState { return p.state }

// RunState reports the current state-machine state (§4.10).
func (p *AgentPlanner) RunState() RunState { return p.runState }

// CurrentAction returns the action currently selected for execution, or
// nil if the agent is idle.
func (p *AgentPlanner) CurrentAction() *Action { return p.currentAction }

// CurrentPlan returns the action names of the most recently adopted plan,
// in execution order.
func (p *AgentPlanner) CurrentPlan() []string { return p.currentPlan }

// WithMetrics attaches a telemetry sink; nil (the default) disables recording.
func (p *AgentPlanner) WithMetrics(sink *o11y.Sink) *AgentPlanner {
	p.metrics = sink
	return p
}

// SetSearchBudget overrides the soft wall-clock budget used to flag slow searches.
func (p *AgentPlanner) SetSearchBudget(d time.Duration) { p.searchBudget = d }

// SetAlwaysPlan controls whether the harness launches a new search every
// tick regardless of plan_next_tick (§4.9).
func (p *AgentPlanner) SetAlwaysPlan(v bool) { p.alwaysPlan = v }

// SetRemoveGoalOnNoPlanFound controls whether an unreachable goal is
// cleared or retried on the next tick (§4.9, §4.11).
func (p *AgentPlanner) SetRemoveGoalOnNoPlanFound(v bool) { p.removeGoalOnNoPlanFound = v }

// RequestPlan sets plan_next_tick, requesting a search be launched on the
// next Tick even when always_plan is false.
func (p *AgentPlanner) RequestPlan() { p.planNextTick = true }

// SetIsPlanningMarker registers the marker attached to the agent while a
// search is in flight.
func (p *AgentPlanner) SetIsPlanningMarker(m ActionMarker) { p.isPlanning = m }

// RegisterDatumProvider wires a DatumProvider for key; syncState reads it
// every tick before any search considers the agent (§4.9 step 1).
func (p *AgentPlanner) RegisterDatumProvider(key string, provider DatumProvider) {
	p.providers[key] = provider
}

// RegisterAction registers an action and the marker the harness attaches
// to the agent while that action is current. Registration order is the
// action list order used for deterministic A* tie-breaking (§4.8).
func (p *AgentPlanner) RegisterAction(action *Action, marker ActionMarker) {
	if _, exists := p.actions[action.Key()]; !exists {
		p.actionOrder = append(p.actionOrder, action.Key())
	}
	p.actions[action.Key()] = registeredAction{action: action, marker: marker}
}

// SetGoals replaces the agent's goal queue.
func (p *AgentPlanner) SetGoals(goals []*Goal) { p.goals = goals }

// Goals returns the agent's goal queue.
func (p *AgentPlanner) Goals() []*Goal { return p.goals }

// SetCurrentGoal selects which goal the harness plans toward.
func (p *AgentPlanner) SetCurrentGoal(g *Goal) { p.currentGoal = g }

// CurrentGoal returns the goal the harness is currently planning toward,
// or nil.
func (p *AgentPlanner) CurrentGoal() *Goal { return p.currentGoal }

// Tick runs the three-step per-agent protocol of §4.9, in order: sync
// state, launch a search if warranted, collect a completed search if one
// is in flight.
func (p *AgentPlanner) Tick() {
	p.syncState()
	p.launchSearch()
	p.collectSearch()
}

// syncState copies every registered provider's current datum into the
// planner's LocalState (§4.9 step 1).
func (p *AgentPlanner) syncState() {
	for key, provider := range p.providers {
		p.state = p.state.WithDatum(key, provider.Datum())
	}
}

// launchSearch submits a snapshot (state, actions, goal) to the worker
// pool when no search is already in flight (§4.9 step 2).
func (p *AgentPlanner) launchSearch() {
	if p.inFlight != nil {
		return
	}
	if !p.alwaysPlan && !p.planNextTick {
		return
	}
	if p.currentGoal == nil {
		return
	}

	snapshotState := p.state.Clone()
	snapshotActions := make([]*Action, len(p.actionOrder))
	for i, key := range p.actionOrder {
		snapshotActions[i] = p.actions[key].action
	}
	goal := p.currentGoal
	agentID := p.id
	searchBudget := p.searchBudget
	metrics := p.metrics

	t, ok := p.pool.Submit(func() SearchOutcome {
		start := time.Now()
		path, cost, found := MakePlan(snapshotState, snapshotActions, goal)
		elapsed := time.Since(start)

		if metrics != nil {
			metrics.RecordSearch(agentID, goal.Name(), found, len(path), elapsed)
		}
		if elapsed > searchBudget {
			if metrics != nil {
				metrics.RecordSlowSearch(agentID, elapsed, len(path))
			}
			log.Warn("goap: search exceeded soft wall-clock budget",
				"agent", agentID, "goal", goal.Name(), "duration", elapsed, "planLength", len(path))
		}

		return SearchOutcome{Path: path, Cost: cost, Found: found, NodesExpanded: len(path)}
	})
	if !ok {
		// Harness saturation (§4.11): skip launching this tick.
		// plan_next_tick is idempotent and stays set for the next attempt.
		return
	}

	p.inFlight = t
	p.runState = Planning
	p.planNextTick = false
	if p.isPlanning != nil {
		p.isPlanning.Attach()
	}
}

// collectSearch polls the in-flight search without blocking and, once it
// completes, applies the outcome (§4.9 step 3).
func (p *AgentPlanner) collectSearch() {
	if p.inFlight == nil {
		return
	}
	outcome, done := p.inFlight.Poll()
	if !done {
		return
	}
	p.inFlight = nil
	if p.isPlanning != nil {
		p.isPlanning.Detach()
	}

	if !outcome.Found {
		log.Warn("goap: no plan found", "agent", p.id, "goal", p.currentGoal.Name())
		if p.removeGoalOnNoPlanFound {
			p.currentGoal = nil
			if p.currentAction == nil {
				p.runState = Idle
			}
		}
		return
	}

	effects := EffectsFromPlan(outcome.Path)
	if len(effects) == 0 {
		// The goal was already satisfied when the search ran; leave
		// current_action alone so a running action may complete (§4.9).
		return
	}

	names := make([]string, len(effects))
	for i, e := range effects {
		names[i] = e.ActionName
	}
	p.currentPlan = names

	head := effects[0]
	if p.currentAction == nil || p.currentAction.Key() != head.ActionName {
		// Detach every action marker the planner manages — conservative,
		// to avoid a race where multiple action markers linger (§4.9).
		for _, ra := range p.actions {
			ra.marker.Detach()
		}
		next, ok := p.actions[head.ActionName]
		if !ok {
			panic(fmt.Sprintf("goap: plan selected unregistered action %q", head.ActionName))
		}
		next.marker.Attach()
		p.currentAction = next.action
	}
	p.runState = Executing
}
