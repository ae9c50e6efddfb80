package goap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// LocalState is an ordered mapping from string keys to Datums — the search
// node payload (§3 LocalState). Iteration order is not observable through
// the map itself, but every operation that needs determinism (hashing,
// string rendering) sorts keys first so that search remains reproducible
// across runs (§4.2).
type LocalState map[string]Datum

// NewLocalState returns an empty LocalState.
func NewLocalState() LocalState {
	return make(LocalState)
}

// WithDatum returns a new LocalState with key set to d, leaving the receiver
// unmodified (§4.2 fluent insert/replace).
func (s LocalState) WithDatum(key string, d Datum) LocalState {
	next := s.Clone()
	next[key] = d
	return next
}

// Clone returns a shallow copy; Datum is a value type so this is a full copy.
func (s LocalState) Clone() LocalState {
	next := make(LocalState, len(s))
	for k, v := range s {
		next[k] = v
	}
	return next
}

// Get returns the Datum at key and whether it is present.
func (s LocalState) Get(key string) (Datum, bool) {
	d, ok := s[key]
	return d, ok
}

// MustGet returns the Datum at key, panicking if the key is absent. Used at
// the call sites where the spec requires a missing key to fail loudly
// (§4.3 precondition checking, §4.6 goal test).
func (s LocalState) MustGet(key string) Datum {
	d, ok := s[key]
	if !ok {
		panic(fmt.Sprintf("goap: state has no key %q", key))
	}
	return d
}

// Keys returns the state's keys in sorted order, the deterministic
// iteration order required for reproducible search (§4.2).
func (s LocalState) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether s and other hold identical key/value pairs.
func (s LocalState) Equal(other LocalState) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// DistanceToGoal sums the per-key Datum distance between s and goal's
// requirements (§3, §4.7). A key the goal references but s lacks
// contributes a distance of 1, never 0 — an absent key is not a match.
func (s LocalState) DistanceToGoal(goal *Goal) uint64 {
	var total uint64
	for _, req := range goal.requirements {
		actual, ok := s[req.Key]
		if !ok {
			total++
			continue
		}
		total += actual.Distance(req.Cmp.Value())
	}
	return total
}

// Hash returns a deterministic hash over the sorted key/value pairs.
func (s LocalState) Hash() uint64 {
	h := xxhash.New()
	for _, k := range s.Keys() {
		h.WriteString(k)
		h.Write([]byte{0})
		v := s[k].Hash()
		var buf [8]byte
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}

// String renders the state as "{k: v, k2: v2}" with sorted keys, so that
// two equal states always render identically (used as the A* closed-set key).
func (s LocalState) String() string {
	if len(s) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(s))
	for _, k := range s.Keys() {
		parts = append(parts, fmt.Sprintf("%s: %s", k, s[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
