// Package dfa implements subset construction and minimization over the NFA
// package's class-labeled state graphs, producing a compiled automaton whose
// transitions are still resolved against overlapping character classes at
// scan time rather than against disjoint byte ranges: two transitions out of
// the same state can both fire on the same input character, so the scanner
// that walks a DFA produced here must track a set of active states, not a
// single one.
package dfa

import (
	"fmt"

	"github.com/coregx/scnr/classes"
)

// StateID identifies a state within a compiled DFA.
type StateID uint32

// Transition is a single outgoing edge labeled with a character class.
type Transition struct {
	Class  classes.ID
	Target StateID
}

// AcceptInfo records the terminal a DFA state accepts, if any.
type AcceptInfo struct {
	HasMatch    bool
	Terminal    int
	Priority    int
	LookaheadID int // -1 if the pattern has no trailing-context lookahead
}

// State is a single DFA state: its outgoing transitions and, if it accepts,
// which terminal it produces.
type State struct {
	Transitions []Transition
	Accept      AcceptInfo
}

// DFA is a compiled, possibly-minimized automaton for one scanner mode (or,
// for a lookahead, a single pattern treated as its own one-mode DFA).
type DFA struct {
	States []State
	Start  StateID
}

// String implements fmt.Stringer for debugging and DOT export staging.
func (d *DFA) String() string {
	return fmt.Sprintf("DFA{states: %d, start: %d}", len(d.States), d.Start)
}
