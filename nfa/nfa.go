package nfa

import (
	"fmt"

	"github.com/coregx/scnr/classes"
)

// StateID uniquely identifies an NFA state within a single NFA (or, after
// union, within a MultiPatternNFA's shared arena).
type StateID uint32

// Special state constants.
const (
	// InvalidState represents an invalid/uninitialized state ID.
	InvalidState StateID = 0xFFFFFFFF
)

// StateKind identifies the type of NFA state and which fields are valid.
type StateKind uint8

const (
	// StateMatch is an accepting state with no outgoing transitions.
	StateMatch StateKind = iota
	// StateClass transitions on a single character class.
	StateClass
	// StateSplit is an epsilon transition to two states (alternation/quantifiers).
	StateSplit
	// StateEpsilon is an epsilon transition to a single state (sequencing).
	StateEpsilon
)

// String returns a human-readable representation of the StateKind.
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateClass:
		return "Class"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// State is a single NFA state. The Kind determines which fields are valid.
type State struct {
	id   StateID
	kind StateKind

	class classes.ID // for StateClass
	next  StateID    // for StateClass/StateEpsilon

	left, right StateID // for StateSplit
}

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// Kind returns the state's kind.
func (s *State) Kind() StateKind { return s.kind }

// IsMatch reports whether this state is an accepting state.
func (s *State) IsMatch() bool { return s.kind == StateMatch }

// Class returns the (class, next) pair for a StateClass state.
func (s *State) Class() (classes.ID, StateID) {
	if s.kind == StateClass {
		return s.class, s.next
	}
	return classes.Invalid, InvalidState
}

// Epsilon returns the target of a StateEpsilon state.
func (s *State) Epsilon() StateID {
	if s.kind == StateEpsilon {
		return s.next
	}
	return InvalidState
}

// Split returns the two targets of a StateSplit state.
func (s *State) Split() (StateID, StateID) {
	if s.kind == StateSplit {
		return s.left, s.right
	}
	return InvalidState, InvalidState
}

// NFA is a Thompson construction for a single pattern: one start state and
// one accept state, with class-labeled transitions in between.
type NFA struct {
	states []State
	start  StateID
	accept StateID
}

// Start returns the NFA's single start state.
func (n *NFA) Start() StateID { return n.start }

// Accept returns the NFA's single accept state.
func (n *NFA) Accept() StateID { return n.accept }

// State returns the state with the given ID, or nil if id is out of range.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// States returns the total number of states.
func (n *NFA) States() int { return len(n.states) }

// IsAccepting reports whether id is the NFA's accept state. This and
// AcceptInfo let a single-pattern NFA satisfy the same interface the DFA
// subset-construction code uses for a MultiPatternNFA, treating the lone
// pattern as terminal 0 with top priority and no lookahead.
func (n *NFA) IsAccepting(id StateID) bool { return id == n.accept }

// AcceptInfo reports the synthetic single-pattern metadata for id.
func (n *NFA) AcceptInfo(id StateID) (PatternInfo, bool) {
	if id != n.accept {
		return PatternInfo{}, false
	}
	return PatternInfo{Terminal: 0, Priority: 0, LookaheadID: -1}, true
}

// String implements fmt.Stringer for debugging.
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, accept: %d}", len(n.states), n.start, n.accept)
}
