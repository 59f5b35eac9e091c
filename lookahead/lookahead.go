// Package lookahead compiles and evaluates the trailing-context assertions
// that can be attached to a pattern: "this pattern only matches here if the
// text immediately following it does (or does not) match some other
// pattern". The lookahead itself never consumes characters that belong to
// the reported match; it is purely a verification step run once the
// surrounding DFA has proposed a candidate match end.
package lookahead

import (
	"fmt"

	"github.com/coregx/scnr/classes"
	"github.com/coregx/scnr/dfa"
	"github.com/coregx/scnr/nfa"
)

// Spec describes a trailing-context assertion before compilation.
type Spec struct {
	Pattern  string
	Positive bool
}

// Lookahead is a compiled trailing-context assertion: a small DFA plus its
// polarity.
type Lookahead struct {
	dfa      *dfa.DFA
	positive bool
}

// Compile builds a Lookahead from a Spec, interning any character classes it
// needs into reg so they are shared with the rest of the scanner's patterns.
func Compile(spec Spec, reg *classes.Registry, config nfa.CompilerConfig) (*Lookahead, error) {
	compiler := nfa.NewCompiler(reg, config)
	n, err := compiler.Compile(spec.Pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling lookahead %q: %w", spec.Pattern, err)
	}

	raw, err := dfa.Compile(n)
	if err != nil {
		return nil, fmt.Errorf("building lookahead DFA for %q: %w", spec.Pattern, err)
	}

	return &Lookahead{dfa: dfa.Minimize(raw), positive: spec.Positive}, nil
}

// Satisfies checks whether the trailing context holds for the text
// immediately following a candidate match. residual is every rune from the
// candidate match's end to the end of the scanned input; matchFn resolves
// class membership against the same registry the lookahead was compiled
// with. It returns whether the constraint is satisfied and, if so, how many
// runes the lookahead itself consumed while verifying (informational only —
// the lookahead never extends the reported match span).
func (l *Lookahead) Satisfies(residual []rune, matchFn func(classes.ID, rune) bool) (satisfied bool, consumed int) {
	res := dfa.FindLongest(l.dfa, residual, matchFn)
	if res.Matched {
		return l.positive, res.Length
	}
	return !l.positive, 0
}

// IsPositive reports the lookahead's polarity.
func (l *Lookahead) IsPositive() bool { return l.positive }
