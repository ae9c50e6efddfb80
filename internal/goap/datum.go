package goap

import (
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Kind identifies which variant a Datum holds.
type Kind int

const (
	KindBool Kind = iota
	KindI64
	KindF64
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindI64:
		return "i64"
	case KindF64:
		return "f64"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Datum is a tagged scalar value: a bool, a signed integer, a float, or the
// ordinal of an application-defined enumeration. Comparisons and arithmetic
// are only ever valid within one variant; crossing variants is a programmer
// error and panics rather than producing a silently wrong answer.
type Datum struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	u    uint64
}

// Bool constructs a Bool-variant Datum.
func Bool(b bool) Datum { return Datum{kind: KindBool, b: b} }

// I64 constructs an I64-variant Datum.
func I64(i int64) Datum { return Datum{kind: KindI64, i: i} }

// F64 constructs an F64-variant Datum.
func F64(f float64) Datum { return Datum{kind: KindF64, f: f} }

// Enum constructs an Enum-variant Datum from an application enumeration's ordinal.
func Enum(u uint64) Datum { return Datum{kind: KindEnum, u: u} }

// Kind reports which variant this Datum holds.
func (d Datum) Kind() Kind { return d.kind }

func (d Datum) mustKind(other Datum, op string) {
	if d.kind != other.kind {
		panic(fmt.Sprintf("goap: %s across Datum variants %s and %s", op, d.kind, other.kind))
	}
}

// Equal reports variant-wise equality. Cross-variant comparisons are never equal.
func (d Datum) Equal(other Datum) bool {
	if d.kind != other.kind {
		return false
	}
	switch d.kind {
	case KindBool:
		return d.b == other.b
	case KindI64:
		return d.i == other.i
	case KindF64:
		return d.f == other.f
	case KindEnum:
		return d.u == other.u
	default:
		return false
	}
}

// Less reports whether d < other, defined only within the same variant.
// Bool and Enum do not have a meaningful total order beyond equality, but the
// core does not forbid the comparison; callers outside equality/inequality
// checks on Bool/Enum are following a pattern the core discourages (§3).
func (d Datum) Less(other Datum) bool {
	d.mustKind(other, "order")
	switch d.kind {
	case KindBool:
		return !d.b && other.b
	case KindI64:
		return d.i < other.i
	case KindF64:
		return d.f < other.f
	case KindEnum:
		return d.u < other.u
	default:
		return false
	}
}

// GreaterOrEqual reports whether d >= other.
func (d Datum) GreaterOrEqual(other Datum) bool {
	return d.Equal(other) || other.Less(d)
}

// LessOrEqual reports whether d <= other.
func (d Datum) LessOrEqual(other Datum) bool {
	return d.Equal(other) || d.Less(other)
}

// Add returns d + other. Defined only for I64+I64 and F64+F64.
func (d Datum) Add(other Datum) Datum {
	d.mustKind(other, "add")
	switch d.kind {
	case KindI64:
		return I64(d.i + other.i)
	case KindF64:
		return F64(d.f + other.f)
	default:
		panic(fmt.Sprintf("goap: add is not defined for Datum variant %s", d.kind))
	}
}

// Sub returns d - other. Defined only for I64-I64 and F64-F64.
func (d Datum) Sub(other Datum) Datum {
	d.mustKind(other, "subtract")
	switch d.kind {
	case KindI64:
		return I64(d.i - other.i)
	case KindF64:
		return F64(d.f - other.f)
	default:
		panic(fmt.Sprintf("goap: subtract is not defined for Datum variant %s", d.kind))
	}
}

// Distance returns a non-negative integer distance between two same-variant
// Datums. It is zero iff the Datums are equal, which is required for the
// planner's heuristic to remain admissible (§4.1, §4.7).
func (d Datum) Distance(other Datum) uint64 {
	d.mustKind(other, "distance")
	switch d.kind {
	case KindBool:
		if d.b == other.b {
			return 0
		}
		return 1
	case KindEnum:
		if d.u == other.u {
			return 0
		}
		return 1
	case KindI64:
		diff := d.i - other.i
		if diff < 0 {
			diff = -diff
		}
		return uint64(diff)
	case KindF64:
		// Truncated absolute difference. This under-estimates the true gap
		// for fractional differences rather than risking an over-estimate
		// (§4.1). A non-zero gap below 1 counts as 1, so the distance is
		// still zero only for equal values.
		diff := math.Abs(d.f - other.f)
		if diff > 0 && diff < 1 {
			return 1
		}
		return uint64(diff)
	default:
		panic(fmt.Sprintf("goap: distance is not defined for Datum variant %s", d.kind))
	}
}

// Hash returns a deterministic hash of the Datum, folding the variant tag
// into the bit pattern so that values of different variants never collide
// by construction. F64 hashes via its raw bits, so NaN is hashed and
// compared consistently with Equal without special-casing it (open
// question in spec.md §9 — the core neither prevents nor special-cases NaN).
func (d Datum) Hash() uint64 {
	var bits uint64
	switch d.kind {
	case KindBool:
		if d.b {
			bits = 1
		}
	case KindI64:
		bits = uint64(d.i)
	case KindF64:
		bits = math.Float64bits(d.f)
	case KindEnum:
		bits = d.u
	}
	buf := make([]byte, 9)
	buf[0] = byte(d.kind)
	for i := 0; i < 8; i++ {
		buf[i+1] = byte(bits >> (8 * i))
	}
	return xxhash.Sum64(buf)
}

// String renders the Datum for diagnostics.
func (d Datum) String() string {
	switch d.kind {
	case KindBool:
		return fmt.Sprintf("%t", d.b)
	case KindI64:
		return fmt.Sprintf("%d", d.i)
	case KindF64:
		return fmt.Sprintf("%g", d.f)
	case KindEnum:
		return fmt.Sprintf("enum(%d)", d.u)
	default:
		return "invalid"
	}
}
