package goap

import "fmt"

// CompareOp identifies which predicate a Compare applies.
type CompareOp int

const (
	OpEquals CompareOp = iota
	OpNotEquals
	OpGreaterThanEquals
	OpLessThanEquals
)

func (op CompareOp) String() string {
	switch op {
	case OpEquals:
		return "=="
	case OpNotEquals:
		return "!="
	case OpGreaterThanEquals:
		return ">="
	case OpLessThanEquals:
		return "<="
	default:
		return "?"
	}
}

// Compare is a predicate over a Datum, used in preconditions and goal
// requirements. GreaterThanEquals/LessThanEquals are meaningful for I64/F64;
// applying them to Bool/Enum is a pattern the core does not encourage (§3)
// but does not forbid, since Datum.Less defines an order for every variant.
type Compare struct {
	op    CompareOp
	value Datum
}

// Equals builds an equality Compare against d.
func Equals(d Datum) Compare { return Compare{op: OpEquals, value: d} }

// NotEquals builds an inequality Compare against d.
func NotEquals(d Datum) Compare { return Compare{op: OpNotEquals, value: d} }

// GreaterThanEquals builds a >= Compare against d.
func GreaterThanEquals(d Datum) Compare { return Compare{op: OpGreaterThanEquals, value: d} }

// LessThanEquals builds a <= Compare against d.
func LessThanEquals(d Datum) Compare { return Compare{op: OpLessThanEquals, value: d} }

// Op returns the comparison operator.
func (c Compare) Op() CompareOp { return c.op }

// Value returns the Datum embedded in the Compare, used by the heuristic (§4.7).
func (c Compare) Value() Datum { return c.value }

// Satisfied reports whether actual satisfies this Compare.
func (c Compare) Satisfied(actual Datum) bool {
	switch c.op {
	case OpEquals:
		return actual.Equal(c.value)
	case OpNotEquals:
		return !actual.Equal(c.value)
	case OpGreaterThanEquals:
		return actual.GreaterOrEqual(c.value)
	case OpLessThanEquals:
		return actual.LessOrEqual(c.value)
	default:
		panic(fmt.Sprintf("goap: unknown compare op %d", c.op))
	}
}

// String renders the Compare for diagnostics.
func (c Compare) String() string {
	return fmt.Sprintf("%s %s", c.op, c.value)
}
