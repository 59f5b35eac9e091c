// Package prefilter implements the scan loop's "no match here" fast path
// (A6): a literal/byte-level pre-scan that narrows candidate match-start
// positions without ever changing which matches get reported. It is
// consulted only after the DFA simulation has already confirmed that no
// pattern fires at the current position — never in place of running the
// DFA.
package prefilter

import (
	"regexp/syntax"
	"strings"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/scnr/classes"
	"github.com/coregx/scnr/simd"
)

// asciiWhitespace is the set of bytes the whitespace-skip fast path treats
// as safe to skip, mirroring what Go's regexp/syntax treats as "space" for
// the default (non-Unicode-space) classes: plain ASCII layout characters.
const asciiWhitespace = " \t\n\r\v\f"

// Prefilter accelerates the scan loop's no-match skip for one compiled
// mode. The whitespace skip is a sound lower bound on the next possible
// match start; the literal hit is one only when every pattern is a literal,
// and otherwise is used only together with the whitespace skip, whose
// minimum with it is again sound. So the result never skips past a genuine
// match.
type Prefilter struct {
	literals  *ahocorasick.Automaton // nil if the mode has no literal-only patterns, or has non-literal patterns and skipSpace is false
	skipSpace bool                   // true if no pattern's first class admits ASCII whitespace
}

// Build extracts literal-only patterns into an Aho-Corasick automaton and
// records whether ASCII whitespace can be safely skipped ahead of the DFA,
// which firstClasses (the set of ClassIDs reachable directly from this
// mode's combined start state) tells us by never admitting a whitespace
// byte.
func Build(patterns []string, reg *classes.Registry, firstClasses []classes.ID) *Prefilter {
	pf := &Prefilter{skipSpace: classesExcludeWhitespace(reg, firstClasses)}

	builder := ahocorasick.NewBuilder()
	any := false
	allLiteral := true
	for _, src := range patterns {
		if lit, ok := literalOf(src); ok && lit != "" {
			builder.AddPattern([]byte(lit))
			any = true
		} else {
			allLiteral = false
		}
	}
	if any && (allLiteral || pf.skipSpace) {
		if auto, err := builder.Build(); err == nil {
			pf.literals = auto
		}
	}
	return pf
}

// classesExcludeWhitespace reports whether none of the given classes admit
// any ASCII whitespace byte, in which case the scan loop can skip runs of
// whitespace ahead of the DFA without risking a missed match.
func classesExcludeWhitespace(reg *classes.Registry, firstClasses []classes.ID) bool {
	for _, id := range firstClasses {
		for i := 0; i < len(asciiWhitespace); i++ {
			if reg.Contains(id, rune(asciiWhitespace[i])) {
				return false
			}
		}
	}
	return true
}

// literalOf reports the exact string a pattern matches if and only if it is
// built entirely out of literal runes (no alternation, repetition, or
// character class) — e.g. `/\*` but not `[a-z]+` or `a|b`.
func literalOf(source string) (string, bool) {
	re, err := syntax.Parse(source, syntax.Perl)
	if err != nil {
		return "", false
	}
	re = re.Simplify()
	return literalText(re)
}

func literalText(re *syntax.Regexp) (string, bool) {
	switch re.Op {
	case syntax.OpLiteral:
		return string(re.Rune), true
	case syntax.OpEmptyMatch:
		return "", true
	case syntax.OpConcat:
		var b strings.Builder
		for _, sub := range re.Sub {
			s, ok := literalText(sub)
			if !ok {
				return "", false
			}
			b.WriteString(s)
		}
		return b.String(), true
	default:
		return "", false
	}
}

// NextCandidate returns the earliest byte offset >= at at which some
// pattern could plausibly start matching, or len(input) if none can. It is
// only ever used to skip ahead after the DFA has already failed to match at
// the current position, so an imprecise (too-close) answer is always safe;
// this function never returns an offset *past* a genuine candidate.
func (p *Prefilter) NextCandidate(input []byte, at int) int {
	best := len(input)

	if p.literals != nil && at < len(input) {
		if m := p.literals.Find(input, at); m != nil && m.Start < best {
			best = m.Start
		}
	}

	if p.skipSpace {
		if s := skipASCIIWhitespace(input, at); s < best {
			best = s
		}
	}

	if best < at {
		return at
	}
	return best
}

// skipASCIIWhitespace returns the offset of the first byte at or after at
// that is not ASCII whitespace, or len(input) if the rest of the input is
// all whitespace. It only trusts the fast path while the scanned window is
// pure ASCII, falling back byte-by-byte otherwise — simd.IsASCII is the
// same gate the teacher's engine uses before running its SIMD primitives.
func skipASCIIWhitespace(input []byte, at int) int {
	i := at
	for i < len(input) {
		end := i + 64
		if end > len(input) {
			end = len(input)
		}
		chunk := input[i:end]
		if !simd.IsASCII(chunk) {
			if !isASCIISpace(input[i]) {
				return i
			}
			i++
			continue
		}
		j := 0
		for j < len(chunk) && isASCIISpace(chunk[j]) {
			j++
		}
		i += j
		if j < len(chunk) {
			return i
		}
	}
	return i
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
