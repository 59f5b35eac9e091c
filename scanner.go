package scnr

import (
	"sync/atomic"

	"github.com/coregx/scnr/classes"
	"github.com/coregx/scnr/dfa"
)

// modeState is the shared mutable cell backing current_mode (§5): a pointer
// to it is held by both a Scanner and every FindIterator it creates, so a
// mode switch made through either handle is observed by the other without
// copying the mode into the iterator at creation time.
type modeState struct {
	current atomic.Int32
}

// Scanner holds the compiled modes and character-class registry produced
// by ScannerBuilder.Build. Everything except current_mode is immutable
// after construction and safe to share across goroutines; current_mode is
// read and written through an atomic, shared with every live FindIterator.
type Scanner struct {
	modes    []*CompiledMode
	names    []string
	registry *classes.Registry
	matchFn  func(classes.ID, rune) bool
	mode     *modeState
}

// FindIter constructs a new iterator over input, positioned at byte 0,
// sharing this scanner's mode state.
func (s *Scanner) FindIter(input []byte) *FindIterator {
	return newFindIterator(s, input, 0)
}

// SetMode assigns current_mode, observable immediately by every live
// iterator derived from s. It reports ErrInvalidMode if m is out of range.
func (s *Scanner) SetMode(m int) error {
	if m < 0 || m >= len(s.modes) {
		return ErrInvalidMode
	}
	s.mode.current.Store(int32(m))
	return nil
}

// CurrentMode returns the scanner's current mode index.
func (s *Scanner) CurrentMode() int {
	return int(s.mode.current.Load())
}

// ModeName returns the name of mode i, or ("", false) if i is out of range.
func (s *Scanner) ModeName(i int) (string, bool) {
	if i < 0 || i >= len(s.names) {
		return "", false
	}
	return s.names[i], true
}

// MatchCharClass tests whether ch belongs to the character class cid, the
// predicate lookup the inner scan loop calls once per (state, character).
func (s *Scanner) MatchCharClass(cid classes.ID, ch rune) bool {
	return s.matchFn(cid, ch)
}

// attemptMatch runs the longest-match-with-lookahead-fallback procedure
// (4.7 steps 2-5): it walks the accept stack from longest to shortest,
// returning the first candidate whose lookahead (if any) is satisfied.
func (m *CompiledMode) attemptMatch(runes []rune, matchFn func(classes.ID, rune) bool) (terminal, length int, ok bool) {
	accepts := dfa.FindAccepts(m.DFA, runes, matchFn)
	for i := len(accepts) - 1; i >= 0; i-- {
		cand := accepts[i]
		if cand.LookaheadID < 0 {
			return cand.Terminal, cand.Length, true
		}
		la, exists := m.Lookaheads[cand.LookaheadID]
		if !exists {
			return cand.Terminal, cand.Length, true
		}
		if satisfied, _ := la.Satisfies(runes[cand.Length:], matchFn); satisfied {
			return cand.Terminal, cand.Length, true
		}
	}
	return 0, 0, false
}
