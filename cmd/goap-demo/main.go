// Command goap-demo runs one of the planner's canonical end-to-end
// scenarios (§8) against a live AgentPlanner harness, printing the plan
// found and driving the agent through execution.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/austral-sim/goap/internal/config"
	"github.com/austral-sim/goap/internal/goap"
	"github.com/austral-sim/goap/internal/o11y"
)

var cli struct {
	Scenario string `name:"scenario" help:"Scenario to run." enum:"hungry,chain,cost,enum,integer,resource" default:"hungry"`
	Config   string `name:"config" help:"Path to a harness config YAML file." type:"path"`
	Verbose  bool   `name:"verbose" help:"Enable debug logging."`
	Ticks    int    `name:"ticks" help:"Maximum harness ticks before giving up." default:"50"`
}

// scenario bundles one of spec.md §8's worked examples: an initial state, an
// action set, and a goal.
type scenario struct {
	name    string
	state   goap.LocalState
	actions []*goap.Action
	goal    *goap.Goal
}

func main() {
	kong.Parse(&cli,
		kong.Name("goap-demo"),
		kong.Description("Demonstrates the GOAP planner and execution harness against the spec's worked scenarios."))

	if cli.Verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	cfg, err := config.LoadConfig(cli.Config)
	if err != nil {
		log.Fatal("failed to load config", "error", err)
	}

	sc := buildScenario(cli.Scenario)

	fmt.Println()
	fmt.Printf("scenario: %s\n", sc.name)
	fmt.Printf("goal:     %s\n", sc.goal)
	fmt.Println()

	// First, run the planner directly as a free function, the way a host
	// would call it off the hot path of a frame loop (§6).
	path, cost, found := goap.MakePlan(sc.state, sc.actions, sc.goal)
	fmt.Println(goap.PrintPlan(path, cost))
	if !found {
		log.Fatal("no plan found for scenario", "scenario", sc.name)
	}

	// Now drive the same scenario through the execution harness (§4.9,
	// §4.10), ticking until the plan's actions have all been selected and
	// the goal is satisfied, or the tick budget runs out.
	runHarness(sc, cfg)
}

func runHarness(sc scenario, cfg *config.Config) {
	pool := goap.NewFixedPool(cfg.Pool.Workers)

	sink := o11y.NewSink(cfg.Telemetry.PushgatewayURL, cfg.Telemetry.JobName)
	if cfg.Telemetry.InfluxURL != "" {
		sink.ConfigureInflux(cfg.Telemetry.InfluxURL, cfg.Telemetry.InfluxToken, cfg.Telemetry.InfluxOrg, cfg.Telemetry.InfluxBucket)
	}

	agentID := uuid.NewString()
	planner := goap.NewAgentPlanner(agentID, pool)
	planner.WithMetrics(sink)
	planner.SetSearchBudget(time.Duration(cfg.Search.SoftBudgetMillis) * time.Millisecond)
	planner.SetAlwaysPlan(cfg.Harness.AlwaysPlan)
	planner.SetRemoveGoalOnNoPlanFound(cfg.Harness.RemoveGoalOnNoPlanFound)

	providers := make(map[string]*memoryProvider, len(sc.state))
	for _, key := range sc.state.Keys() {
		d, _ := sc.state.Get(key)
		p := &memoryProvider{value: d}
		providers[key] = p
		planner.RegisterDatumProvider(key, p)
	}

	for _, action := range sc.actions {
		planner.RegisterAction(action, &loggingMarker{agentID: agentID, name: action.Key()})
	}
	planner.SetGoals([]*goap.Goal{sc.goal})
	planner.SetCurrentGoal(sc.goal)

	log.Info("harness starting", "agent", agentID, "scenario", sc.name, "workers", cfg.Pool.Workers)

	for tick := 0; tick < cli.Ticks; tick++ {
		planner.Tick()

		if planner.RunState() == goap.Executing {
			action := planner.CurrentAction()
			log.Info("executing", "tick", tick, "agent", agentID, "action", action.Key())
			// Apply the selected action's first effect directly to the
			// provider-backed state, the way a host would report the
			// outcome of running the action back into its datum sources.
			applyAction(providers, action)
		}

		if sc.goal.IsSatisfied(currentState(providers)) {
			log.Info("goal satisfied", "agent", agentID, "tick", tick)
			fmt.Println()
			fmt.Println("final state:", currentState(providers))
			return
		}
	}

	log.Warn("tick budget exhausted before the goal was satisfied", "agent", agentID)
}

func applyAction(providers map[string]*memoryProvider, action *goap.Action) {
	effect := action.FirstEffect()
	state := currentState(providers)
	for _, m := range effect.Mutators {
		p, ok := providers[m.Key()]
		if !ok {
			p = &memoryProvider{}
			providers[m.Key()] = p
		}
		scratch := goap.NewLocalState().WithDatum(m.Key(), valueOrZero(state, m.Key()))
		m.ApplyTo(scratch)
		updated, _ := scratch.Get(m.Key())
		p.value = updated
	}
}

func valueOrZero(state goap.LocalState, key string) goap.Datum {
	if d, ok := state.Get(key); ok {
		return d
	}
	return goap.I64(0)
}

func currentState(providers map[string]*memoryProvider) goap.LocalState {
	state := goap.NewLocalState()
	for key, p := range providers {
		state = state.WithDatum(key, p.value)
	}
	return state
}

// memoryProvider is the demo's stand-in for a real host capability: it just
// remembers the last value written to it (§6 DatumProvider).
type memoryProvider struct {
	value goap.Datum
}

func (p *memoryProvider) Datum() goap.Datum { return p.value }

// loggingMarker stands in for a host's action-marker component, logging
// attach/detach transitions instead of driving real execution state (§6
// ActionMarker).
type loggingMarker struct {
	agentID string
	name    string
}

func (m *loggingMarker) Attach() { log.Debug("marker attached", "agent", m.agentID, "action", m.name) }
func (m *loggingMarker) Detach() { log.Debug("marker detached", "agent", m.agentID, "action", m.name) }

func buildScenario(name string) scenario {
	switch name {
	case "hungry":
		return hungryScenario()
	case "chain":
		return chainScenario()
	case "cost":
		return costScenario()
	case "enum":
		return enumScenario()
	case "integer":
		return integerScenario()
	case "resource":
		return resourceScenario()
	default:
		log.Fatal("unknown scenario", "scenario", name)
		os.Exit(1)
		return scenario{}
	}
}

func hungryScenario() scenario {
	state := goap.NewLocalState().WithDatum("is_hungry", goap.Bool(true))
	goal := goap.NewGoal("not_hungry", goap.Requirement{Key: "is_hungry", Cmp: goap.Equals(goap.Bool(false))})
	eat := goap.NewAction("eat", nil, goap.NewEffect("eat", 1, goap.Set("is_hungry", goap.Bool(false))))
	return scenario{name: "bool toggle", state: state, actions: []*goap.Action{eat}, goal: goal}
}

func chainScenario() scenario {
	state := goap.NewLocalState().
		WithDatum("is_hungry", goap.Bool(true)).
		WithDatum("is_tired", goap.Bool(true))
	goal := goap.NewGoal("rested_and_fed",
		goap.Requirement{Key: "is_hungry", Cmp: goap.Equals(goap.Bool(false))},
		goap.Requirement{Key: "is_tired", Cmp: goap.Equals(goap.Bool(false))},
	)
	eat := goap.NewAction("eat",
		[]goap.Precondition{{Key: "is_tired", Cmp: goap.Equals(goap.Bool(false))}},
		goap.NewEffect("eat", 1, goap.Set("is_hungry", goap.Bool(false)), goap.Set("is_tired", goap.Bool(true))),
	)
	sleep := goap.NewAction("sleep", nil, goap.NewEffect("sleep", 1, goap.Set("is_tired", goap.Bool(false))))
	return scenario{name: "preconditioned chain", state: state, actions: []*goap.Action{eat, sleep}, goal: goal}
}

func costScenario() scenario {
	state := goap.NewLocalState().WithDatum("gold", goap.I64(0))
	goal := goap.NewGoal("rich", goap.Requirement{Key: "gold", Cmp: goap.Equals(goap.I64(10))})
	cheap := goap.NewAction("work_cheap", nil, goap.NewEffect("work_cheap", 1, goap.Increment("gold", goap.I64(1))))
	expensive := goap.NewAction("work_expensive", nil, goap.NewEffect("work_expensive", 4, goap.Increment("gold", goap.I64(3))))
	return scenario{name: "cost preference", state: state, actions: []*goap.Action{cheap, expensive}, goal: goal}
}

func enumScenario() scenario {
	const (
		locHouse uint64 = iota
		locOutside
		locMarket
		locRamenShop
	)
	state := goap.NewLocalState().WithDatum("at", goap.Enum(locHouse))
	goal := goap.NewGoal("eat_ramen", goap.Requirement{Key: "at", Cmp: goap.Equals(goap.Enum(locRamenShop))})
	goOutside := goap.NewAction("go_outside",
		[]goap.Precondition{{Key: "at", Cmp: goap.Equals(goap.Enum(locHouse))}},
		goap.NewEffect("go_outside", 1, goap.Set("at", goap.Enum(locOutside))),
	)
	goToMarket := goap.NewAction("go_to_market",
		[]goap.Precondition{{Key: "at", Cmp: goap.Equals(goap.Enum(locOutside))}},
		goap.NewEffect("go_to_market", 1, goap.Set("at", goap.Enum(locMarket))),
	)
	goToRamen := goap.NewAction("go_to_ramen",
		[]goap.Precondition{{Key: "at", Cmp: goap.Equals(goap.Enum(locMarket))}},
		goap.NewEffect("go_to_ramen", 1, goap.Set("at", goap.Enum(locRamenShop))),
	)
	return scenario{name: "enum navigation", state: state, actions: []*goap.Action{goOutside, goToMarket, goToRamen}, goal: goal}
}

func integerScenario() scenario {
	state := goap.NewLocalState().WithDatum("energy", goap.I64(0))
	goal := goap.NewGoal("energized", goap.Requirement{Key: "energy", Cmp: goap.GreaterThanEquals(goap.I64(50))})
	eat := goap.NewAction("eat", nil, goap.NewEffect("eat", 1, goap.Increment("energy", goap.I64(6))))
	return scenario{name: "integer targeting", state: state, actions: []*goap.Action{eat}, goal: goal}
}

func resourceScenario() scenario {
	state := goap.NewLocalState().
		WithDatum("energy", goap.I64(30)).
		WithDatum("hunger", goap.I64(70)).
		WithDatum("gold", goap.I64(0))
	goal := goap.NewGoal("get_rich", goap.Requirement{Key: "gold", Cmp: goap.Equals(goap.I64(10))})

	sleep := goap.NewAction("sleep", nil, goap.NewEffect("sleep", 1, goap.Increment("energy", goap.I64(1))))
	eat := goap.NewAction("eat",
		[]goap.Precondition{{Key: "energy", Cmp: goap.GreaterThanEquals(goap.I64(50))}},
		goap.NewEffect("eat", 1, goap.Decrement("hunger", goap.I64(1))),
	)
	rob := goap.NewAction("rob",
		[]goap.Precondition{
			{Key: "energy", Cmp: goap.GreaterThanEquals(goap.I64(50))},
			{Key: "hunger", Cmp: goap.LessThanEquals(goap.I64(50))},
		},
		goap.NewEffect("rob", 1, goap.Increment("gold", goap.I64(1)), goap.Decrement("energy", goap.I64(20)), goap.Increment("hunger", goap.I64(20))),
	)
	return scenario{name: "resource chain with guards", state: state, actions: []*goap.Action{sleep, eat, rob}, goal: goal}
}
