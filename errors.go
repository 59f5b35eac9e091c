// Package scnr compiles named scanner modes — ordered lists of regex
// patterns with associated token types and inter-mode transitions — into
// minimized DFAs, and scans text against them producing a non-overlapping
// stream of (terminal, span) matches.
//
// The pattern grammar is intentionally restricted: no anchors, no inline
// flags, no capture groups, no byte-sequence matching. See the nfa package
// for exactly which regexp/syntax operators are accepted.
package scnr

import (
	"errors"
	"fmt"
	"regexp/syntax"

	"github.com/coregx/scnr/nfa"
)

// Sentinel errors surfaced by the builder.
var (
	// ErrRegexSyntax indicates a pattern failed to parse as a regular
	// expression.
	ErrRegexSyntax = errors.New("regex syntax error")

	// ErrUnsupportedFeature indicates a pattern used a construct outside the
	// supported grammar (anchors, flags, captures, backreferences).
	ErrUnsupportedFeature = errors.New("unsupported regex feature")

	// ErrDfaBuild indicates automaton construction failed, e.g. because a
	// mode has no patterns.
	ErrDfaBuild = errors.New("dfa build error")

	// ErrIo is returned by the mode-definition loader on malformed input.
	ErrIo = errors.New("io error")

	// ErrNoMatch is returned by operations that require a prior match (none
	// of the core scanning API returns it — it exists for callers building
	// stricter layers on top that want to treat "no match at cursor" as an
	// error rather than a silent skip).
	ErrNoMatch = errors.New("no match")

	// ErrInvalidMode indicates a transition or SetMode call referenced a
	// mode index outside [0, len(modes)).
	ErrInvalidMode = errors.New("invalid mode index")
)

// BuildError wraps a builder-time failure with enough context to locate the
// offending pattern: which mode, which pattern within it, and the
// underlying cause.
type BuildError struct {
	Mode         string
	PatternIndex int
	Err          error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.PatternIndex >= 0 {
		return fmt.Sprintf("mode %q, pattern #%d: %v", e.Mode, e.PatternIndex, e.Err)
	}
	return fmt.Sprintf("mode %q: %v", e.Mode, e.Err)
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error { return e.Err }

// translateCompileErr maps a failure from the nfa/lookahead compilers onto
// this package's own sentinels, so callers can errors.Is against
// scnr.ErrUnsupportedFeature or scnr.ErrRegexSyntax without reaching for the
// nfa package's (or regexp/syntax's) internal error types.
func translateCompileErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, nfa.ErrUnsupportedFeature) {
		return fmt.Errorf("%w: %w", err, ErrUnsupportedFeature)
	}
	var synErr *syntax.Error
	if errors.As(err, &synErr) {
		return fmt.Errorf("%w: %w", err, ErrRegexSyntax)
	}
	return err
}

// DfaError represents a malformed-automaton error surfaced during DFA
// construction or minimization.
type DfaError struct {
	Message string
	StateID int
}

// Error implements the error interface.
func (e *DfaError) Error() string {
	if e.StateID >= 0 {
		return fmt.Sprintf("dfa error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("dfa error: %s", e.Message)
}
