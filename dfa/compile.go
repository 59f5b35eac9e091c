package dfa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/coregx/scnr/classes"
	"github.com/coregx/scnr/internal/conv"
	"github.com/coregx/scnr/internal/sparse"
	"github.com/coregx/scnr/nfa"
)

// Graph is the subset-construction source: anything that exposes a start
// state, lets individual states be inspected, and can identify its own
// accept states. Both *nfa.NFA (a single compiled pattern, used for
// lookahead automata) and *nfa.MultiPatternNFA (a whole scanner mode)
// satisfy it, so Compile builds both the same way.
type Graph interface {
	Start() nfa.StateID
	State(id nfa.StateID) *nfa.State
	States() int
	IsAccepting(id nfa.StateID) bool
	AcceptInfo(id nfa.StateID) (nfa.PatternInfo, bool)
}

// rawTransition is an NFA-level (class, target) pair gathered from every
// StateClass state in an epsilon closure, before the target is itself
// closed over.
type rawTransition struct {
	class  classes.ID
	target nfa.StateID
}

// Compile runs subset construction over g, producing an unminimized DFA.
// Call Minimize on the result to collapse equivalent states.
func Compile(g Graph) (*DFA, error) {
	capacity := uint32(g.States())
	if capacity == 0 {
		capacity = 1
	}

	stateMap := make(map[string]StateID)
	var states []State
	var pendingClosures [][]uint32
	var pendingIDs []StateID

	startClosure := epsilonClosure(g, []nfa.StateID{g.Start()}, capacity)
	startIDs := sortedValues(startClosure)
	stateMap[closureKey(startIDs)] = 0
	states = append(states, State{})
	pendingClosures = append(pendingClosures, startIDs)
	pendingIDs = append(pendingIDs, 0)

	for len(pendingIDs) > 0 {
		cur := pendingIDs[0]
		pendingIDs = pendingIDs[1:]
		curClosureIDs := pendingClosures[0]
		pendingClosures = pendingClosures[1:]

		accept := acceptOf(g, curClosureIDs)
		raw := matchTransitions(g, curClosureIDs)

		transitions := make([]Transition, 0, len(raw))
		for _, rt := range raw {
			targetClosure := epsilonClosure(g, []nfa.StateID{rt.target}, capacity)
			targetIDs := sortedValues(targetClosure)
			key := closureKey(targetIDs)

			targetID, exists := stateMap[key]
			if !exists {
				targetID = StateID(conv.IntToUint32(len(states)))
				stateMap[key] = targetID
				states = append(states, State{})
				pendingIDs = append(pendingIDs, targetID)
				pendingClosures = append(pendingClosures, targetIDs)
			}
			transitions = append(transitions, Transition{Class: rt.class, Target: targetID})
		}

		states[cur] = State{Transitions: dedupTransitions(transitions), Accept: accept}
	}

	return &DFA{States: states, Start: 0}, nil
}

// epsilonClosure computes the set of states reachable from seeds by
// following only Epsilon and Split transitions.
func epsilonClosure(g Graph, seeds []nfa.StateID, capacity uint32) *sparse.SparseSet {
	set := sparse.NewSparseSet(capacity)
	stack := append([]nfa.StateID(nil), seeds...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == nfa.InvalidState || set.Contains(uint32(id)) {
			continue
		}
		set.Insert(uint32(id))

		st := g.State(id)
		if st == nil {
			continue
		}
		switch st.Kind() {
		case nfa.StateEpsilon:
			if t := st.Epsilon(); t != nfa.InvalidState {
				stack = append(stack, t)
			}
		case nfa.StateSplit:
			l, r := st.Split()
			if l != nfa.InvalidState {
				stack = append(stack, l)
			}
			if r != nfa.InvalidState {
				stack = append(stack, r)
			}
		}
	}
	return set
}

// matchTransitions gathers the (class, target) pair of every StateClass
// state in the closure named by closureIDs.
func matchTransitions(g Graph, closureIDs []uint32) []rawTransition {
	var out []rawTransition
	for _, v := range closureIDs {
		st := g.State(nfa.StateID(v))
		if st == nil || st.Kind() != nfa.StateClass {
			continue
		}
		cls, target := st.Class()
		out = append(out, rawTransition{class: cls, target: target})
	}
	return out
}

// acceptOf reports the strongest accept (lowest priority) among the states
// in a closure. In practice a closure other than the very first one belongs
// to a single pattern (state arenas are disjoint per pattern except for the
// combined start's fan-out), so there is normally at most one match; the
// priority comparison is a defensive tie-break, not load-bearing.
func acceptOf(g Graph, closureIDs []uint32) AcceptInfo {
	var acc AcceptInfo
	for _, v := range closureIDs {
		id := nfa.StateID(v)
		info, ok := g.AcceptInfo(id)
		if !ok {
			continue
		}
		if !acc.HasMatch || info.Priority < acc.Priority {
			acc = AcceptInfo{HasMatch: true, Terminal: info.Terminal, Priority: info.Priority, LookaheadID: info.LookaheadID}
		}
	}
	return acc
}

// dedupTransitions removes exact (class, target) duplicates, keeping the
// first occurrence's order for determinism.
func dedupTransitions(in []Transition) []Transition {
	seen := make(map[Transition]bool, len(in))
	out := make([]Transition, 0, len(in))
	for _, t := range in {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// sortedValues copies a sparse set's members into a sorted slice, giving a
// canonical ordering for closureKey.
func sortedValues(s *sparse.SparseSet) []uint32 {
	vals := s.Values()
	out := make([]uint32, len(vals))
	copy(out, vals)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// closureKey builds a canonical string key for a sorted NFA state-id set,
// the subset-construction analogue of BTreeSet equality.
func closureKey(ids []uint32) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(strconv.FormatUint(uint64(id), 36))
		b.WriteByte(',')
	}
	return b.String()
}
