package dfa

import "github.com/coregx/scnr/classes"

// MatchResult is the outcome of running FindLongest or one entry of
// FindAccepts: a candidate match anchored at input[0].
type MatchResult struct {
	Matched     bool
	Terminal    int
	Priority    int
	Length      int // runes consumed
	LookaheadID int // -1 if the winning pattern has no lookahead
}

// FindLongest simulates d over input starting at its first rune, returning
// the longest match anchored at that position. Because character classes
// may overlap, more than one state can be active after the same input
// character; find_from in spirit mirrors this by tracking a set of active
// states rather than one, and on ties prefers the lower-priority (earlier
// declared) terminal.
//
// matchFn tests class membership against the registry that produced the
// classes referenced by d's transitions; it must outlive the call.
func FindLongest(d *DFA, input []rune, matchFn func(classes.ID, rune) bool) MatchResult {
	accepts := FindAccepts(d, input, matchFn)
	if len(accepts) == 0 {
		return MatchResult{}
	}
	return accepts[len(accepts)-1]
}

// FindAccepts simulates d over input starting at its first rune, returning
// every distinct-length accept reached, ascending by length, each already
// tie-broken to its lowest-priority winner. A caller that needs longest-
// match-with-lookahead-fallback (4.7 step 5) walks this slice from the end:
// the last entry is the longest match, and if its lookahead fails to hold
// the caller falls back to the previous (second-longest) entry instead of
// re-running the DFA.
func FindAccepts(d *DFA, input []rune, matchFn func(classes.ID, rune) bool) []MatchResult {
	if len(d.States) == 0 {
		return nil
	}

	current := []StateID{d.Start}
	var next []StateID
	var accepts []MatchResult

	for i, ch := range input {
		for _, s := range current {
			st := &d.States[s]
			for _, t := range st.Transitions {
				if !matchFn(t.Class, ch) {
					continue
				}
				if !containsState(next, t.Target) {
					next = append(next, t.Target)
				}

				target := &d.States[t.Target]
				if !target.Accept.HasMatch {
					continue
				}
				length := i + 1
				cand := MatchResult{Matched: true, Terminal: target.Accept.Terminal, Priority: target.Accept.Priority, Length: length, LookaheadID: target.Accept.LookaheadID}

				switch {
				case len(accepts) == 0 || accepts[len(accepts)-1].Length < length:
					accepts = append(accepts, cand)
				case accepts[len(accepts)-1].Length == length && cand.Priority < accepts[len(accepts)-1].Priority:
					accepts[len(accepts)-1] = cand
				}
			}
		}
		current, next = next, current[:0]
		if len(current) == 0 {
			break
		}
	}
	return accepts
}

func containsState(states []StateID, id StateID) bool {
	for _, s := range states {
		if s == id {
			return true
		}
	}
	return false
}
