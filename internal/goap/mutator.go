package goap

import "fmt"

// MutatorKind identifies which change a Mutator makes to a LocalState key.
type MutatorKind int

const (
	MutatorSet MutatorKind = iota
	MutatorIncrement
	MutatorDecrement
)

func (k MutatorKind) String() string {
	switch k {
	case MutatorSet:
		return "set"
	case MutatorIncrement:
		return "increment"
	case MutatorDecrement:
		return "decrement"
	default:
		return "unknown"
	}
}

// Mutator is a symbolic change to one key of a LocalState. It composes into
// an Effect's mutator list (§3 Mutator, §4.4).
type Mutator struct {
	kind  MutatorKind
	key   string
	value Datum
}

// Set builds a Mutator that replaces key's value with d, inserting it if absent.
func Set(key string, d Datum) Mutator { return Mutator{kind: MutatorSet, key: key, value: d} }

// Increment builds a Mutator that adds d to key's current numeric value.
func Increment(key string, d Datum) Mutator { return Mutator{kind: MutatorIncrement, key: key, value: d} }

// Decrement builds a Mutator that subtracts d from key's current numeric value.
func Decrement(key string, d Datum) Mutator { return Mutator{kind: MutatorDecrement, key: key, value: d} }

// Kind returns the mutator's kind.
func (m Mutator) Kind() MutatorKind { return m.kind }

// Key returns the LocalState key this mutator changes.
func (m Mutator) Key() string { return m.key }

// Value returns the Datum this mutator carries.
func (m Mutator) Value() Datum { return m.value }

// ApplyTo mutates state in place according to m (§4.4).
//
// Set replaces or inserts. Increment/Decrement require the current value,
// if any, to share m.Value's numeric variant; applying to an absent key is
// a silent no-op (no partial application), and a variant mismatch against
// an existing key panics since planning domains are expected to be
// internally consistent (§4.11).
func (m Mutator) ApplyTo(state LocalState) {
	switch m.kind {
	case MutatorSet:
		state[m.key] = m.value
	case MutatorIncrement:
		current, ok := state[m.key]
		if !ok {
			return
		}
		state[m.key] = current.Add(m.value)
	case MutatorDecrement:
		current, ok := state[m.key]
		if !ok {
			return
		}
		state[m.key] = current.Sub(m.value)
	default:
		panic(fmt.Sprintf("goap: unknown mutator kind %d", m.kind))
	}
}

// String renders the Mutator for diagnostics.
func (m Mutator) String() string {
	switch m.kind {
	case MutatorSet:
		return fmt.Sprintf("set(%s=%s)", m.key, m.value)
	case MutatorIncrement:
		return fmt.Sprintf("inc(%s+=%s)", m.key, m.value)
	case MutatorDecrement:
		return fmt.Sprintf("dec(%s-=%s)", m.key, m.value)
	default:
		return "invalid mutator"
	}
}
