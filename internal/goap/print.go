package goap

import (
	"fmt"
	"strings"
)

// PrintPlan renders a plan as a stable, human-readable diagnostic string
// (§6). The format is not a contract consumers should parse.
func PrintPlan(path []Node, cost uint64) string {
	if len(path) == 0 {
		return "<no plan>"
	}
	if len(path) == 1 {
		return fmt.Sprintf("<empty plan, cost 0, start state already satisfies goal: %s>", path[0].State())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "plan (cost %d):\n", cost)
	for i, n := range path[1:] {
		e := n.Effect()
		fmt.Fprintf(&b, "  %d. %s (cost %d) -> %s\n", i+1, e.ActionName, e.Cost, n.State())
	}
	return b.String()
}
