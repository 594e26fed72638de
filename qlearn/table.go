package qlearn

import (
	"maps"

	"gonum.org/v1/gonum/floats"
)

// key addresses one (state, action) entry
type key struct {
	s State
	a Action
}

// ValueTable maps (state, action) to an estimated return
// Keys appear lazily, an absent key reads as 0
type ValueTable struct {
	q map[key]float64
}

// NewValueTable returns an empty table
func NewValueTable() *ValueTable {
	return &ValueTable{q: make(map[key]float64)}
}

// Get returns Q(s,a), 0 when never written
func (t *ValueTable) Get(s State, a Action) float64 {
	return t.q[key{s, a}]
}

// Set writes Q(s,a)
func (t *ValueTable) Set(s State, a Action, v float64) {
	t.q[key{s, a}] = v
}

// Values returns Q(s,·) in Actions order
func (t *ValueTable) Values(s State) [ActionCount]float64 {
	var out [ActionCount]float64
	for i, a := range Actions {
		out[i] = t.q[key{s, a}]
	}
	return out
}

// Max returns max over actions of Q(s,·)
func (t *ValueTable) Max(s State) float64 {
	v := t.Values(s)
	return floats.Max(v[:])
}

// Best returns the greedy action for s, ties resolve to the first action in Actions order
func (t *ValueTable) Best(s State) Action {
	v := t.Values(s)
	return Actions[floats.MaxIdx(v[:])]
}

// Len returns the number of stored entries
func (t *ValueTable) Len() int {
	return len(t.q)
}

// Clone returns a deep copy that shares nothing with t
func (t *ValueTable) Clone() *ValueTable {
	return &ValueTable{q: maps.Clone(t.q)}
}

// Entry is one stored value, used for export
type Entry struct {
	State  State
	Action Action
	Value  float64
}

// Entries returns every stored value in unspecified order
func (t *ValueTable) Entries() []Entry {
	out := make([]Entry, 0, len(t.q))
	for k, v := range t.q {
		out = append(out, Entry{State: k.s, Action: k.a, Value: v})
	}
	return out
}
