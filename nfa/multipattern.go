package nfa

import (
	"fmt"

	"github.com/coregx/scnr/classes"
	"github.com/coregx/scnr/internal/conv"
)

// PatternSpec is a single pattern entry going into a MultiPatternNFA: its
// source text, the terminal it produces, its priority among patterns of
// equal match length (lower index wins, so Priority is normally just the
// pattern's position in the mode's pattern list), and an optional
// lookahead automaton reference.
type PatternSpec struct {
	Source      string
	Terminal    int
	Priority    int
	LookaheadID int // -1 if the pattern has no trailing-context lookahead
}

// PatternInfo is the per-pattern metadata recorded against a MultiPatternNFA
// accept state: which terminal it produces, its tie-break priority, and
// which lookahead automaton (if any) must be satisfied before the match is
// committed.
type PatternInfo struct {
	Terminal    int
	Priority    int
	LookaheadID int
}

// MultiPatternNFA is the union of several single-pattern NFAs sharing one
// state arena, with one accept state per pattern rather than the single
// accept state a plain NFA has. Unlike a hand-rolled virtual start state
// with special-cased epsilon closure, this builds one real combined start
// state (a chain of Split states fanning out to every pattern's start) so
// the rest of the pipeline — epsilon closure, subset construction — treats
// it exactly like any other NFA.
type MultiPatternNFA struct {
	states []State
	start  StateID
	accept map[StateID]int // accept state id -> index into info
	info   []PatternInfo
}

// FromPatterns compiles every pattern and unions the resulting NFAs into a
// single MultiPatternNFA. Character classes referenced by any pattern are
// interned into reg, so classes shared across patterns (e.g. two patterns
// both matching ASCII digits) collapse to the same ClassID.
func FromPatterns(patterns []PatternSpec, reg *classes.Registry, config CompilerConfig) (*MultiPatternNFA, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: scanner mode has no patterns", ErrTooComplex)
	}

	states := make([]State, 0, 64)
	starts := make([]StateID, 0, len(patterns))
	accept := make(map[StateID]int, len(patterns))
	infos := make([]PatternInfo, len(patterns))

	for i, p := range patterns {
		compiler := NewCompiler(reg, config)
		sub, err := compiler.Compile(p.Source)
		if err != nil {
			return nil, fmt.Errorf("pattern #%d %q: %w", i, p.Source, err)
		}

		shift := StateID(conv.IntToUint32(len(states)))
		for _, s := range sub.states {
			states = append(states, shiftState(s, shift))
		}
		starts = append(starts, sub.start+shift)
		accept[sub.accept+shift] = i
		infos[i] = PatternInfo{Terminal: p.Terminal, Priority: p.Priority, LookaheadID: p.LookaheadID}
	}

	start := splitChainStates(&states, starts)

	return &MultiPatternNFA{states: states, start: start, accept: accept, info: infos}, nil
}

// shiftState returns a copy of s with every state-id-valued field shifted
// by offset, used to relocate a freshly compiled NFA into a shared arena.
func shiftState(s State, offset StateID) State {
	ns := s
	ns.id = s.id + offset
	switch s.kind {
	case StateClass, StateEpsilon:
		if s.next != InvalidState {
			ns.next = s.next + offset
		}
	case StateSplit:
		if s.left != InvalidState {
			ns.left = s.left + offset
		}
		if s.right != InvalidState {
			ns.right = s.right + offset
		}
	}
	return ns
}

// splitChainStates appends a right-leaning chain of Split states to *states
// fanning out to every target, mirroring Compiler.splitChain but operating
// on a raw state slice rather than a Builder (a MultiPatternNFA has no
// single Builder of its own — its arena is assembled from several).
func splitChainStates(states *[]State, targets []StateID) StateID {
	if len(targets) == 1 {
		return targets[0]
	}
	addSplit := func(left, right StateID) StateID {
		id := StateID(conv.IntToUint32(len(*states)))
		*states = append(*states, State{id: id, kind: StateSplit, left: left, right: right})
		return id
	}
	if len(targets) == 2 {
		return addSplit(targets[0], targets[1])
	}
	right := splitChainStates(states, targets[1:])
	return addSplit(targets[0], right)
}

// Start returns the combined start state.
func (m *MultiPatternNFA) Start() StateID { return m.start }

// State returns the state with the given ID, or nil if id is out of range.
func (m *MultiPatternNFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(m.states) {
		return nil
	}
	return &m.states[id]
}

// States returns the total number of states in the shared arena.
func (m *MultiPatternNFA) States() int { return len(m.states) }

// PatternCount returns the number of patterns unioned into this NFA.
func (m *MultiPatternNFA) PatternCount() int { return len(m.info) }

// IsAccepting reports whether id is an accept state of one of the patterns.
func (m *MultiPatternNFA) IsAccepting(id StateID) bool {
	_, ok := m.accept[id]
	return ok
}

// AcceptInfo returns the pattern metadata for an accept state, or ok=false
// if id is not an accept state.
func (m *MultiPatternNFA) AcceptInfo(id StateID) (info PatternInfo, ok bool) {
	idx, found := m.accept[id]
	if !found {
		return PatternInfo{}, false
	}
	return m.info[idx], true
}
