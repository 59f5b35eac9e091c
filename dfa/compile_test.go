package dfa

import (
	"testing"

	"github.com/coregx/scnr/classes"
	"github.com/coregx/scnr/nfa"
)

func compileAndMinimize(t *testing.T, reg *classes.Registry, pattern string) *DFA {
	t.Helper()
	n, err := nfa.NewCompiler(reg, nfa.DefaultCompilerConfig()).Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	d, err := Compile(n)
	if err != nil {
		t.Fatalf("dfa.Compile(%q): %v", pattern, err)
	}
	return Minimize(d)
}

func runFull(d *DFA, reg *classes.Registry, input string) MatchResult {
	runes := []rune(input)
	return FindLongest(d, runes, reg.MatchFunc())
}

// Fixtures below mirror the classic regex-automaton test corpus: a
// branch-then-concat pattern, an identifier grammar, and two patterns
// exercising star/union interaction.
func TestCompileAndMinimizeFixtures(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		wantLen int
	}{
		{"(?:A*B|AC)D", "AAABD", 5},
		{"(?:A*B|AC)D", "ACD", 3},
		{`[a-zA-Z_][a-zA-Z0-9_]*`, "_foo123 bar", 7},
		{"(?:0|1)*1(?:0|1)", "10110", 5},
		{"a*(?:a|b)b*", "aaabbb", 6},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			reg := classes.NewRegistry()
			d := compileAndMinimize(t, reg, tt.pattern)
			got := runFull(d, reg, tt.input)
			if !got.Matched {
				t.Fatalf("expected a match, got none")
			}
			if got.Length != tt.wantLen {
				t.Errorf("Length = %d, want %d", got.Length, tt.wantLen)
			}
		})
	}
}

func TestFindLongestPrefersLongerMatch(t *testing.T) {
	reg := classes.NewRegistry()
	d := compileAndMinimize(t, reg, "a+")
	got := runFull(d, reg, "aaa;")
	if got.Length != 3 {
		t.Errorf("Length = %d, want 3 (should not consume the trailing ';')", got.Length)
	}
}

func TestFindLongestNoMatchReturnsZeroValue(t *testing.T) {
	reg := classes.NewRegistry()
	d := compileAndMinimize(t, reg, "[0-9]+")
	got := runFull(d, reg, "abc")
	if got.Matched {
		t.Errorf("expected no match, got %+v", got)
	}
}

func TestFindAcceptsReturnsAscendingLengths(t *testing.T) {
	reg := classes.NewRegistry()
	d := compileAndMinimize(t, reg, "a+")
	accepts := FindAccepts(d, []rune("aaa"), reg.MatchFunc())
	if len(accepts) != 3 {
		t.Fatalf("expected one accept per additional rune of 'a', got %d entries: %+v", len(accepts), accepts)
	}
	for i, a := range accepts {
		if a.Length != i+1 {
			t.Errorf("accepts[%d].Length = %d, want %d", i, a.Length, i+1)
		}
	}
}

func TestFindAcceptsTieBreaksOnPriority(t *testing.T) {
	// Two patterns matching the exact same text at the same length: the
	// earlier-declared (lower priority number) pattern must win.
	reg := classes.NewRegistry()
	specs := []nfa.PatternSpec{
		{Source: "if", Terminal: 100, Priority: 0, LookaheadID: -1},
		{Source: "[a-z]+", Terminal: 200, Priority: 1, LookaheadID: -1},
	}
	mp, err := nfa.FromPatterns(specs, reg, nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("FromPatterns: %v", err)
	}
	d, err := Compile(mp)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	d = Minimize(d)

	got := runFull(d, reg, "if")
	if !got.Matched || got.Terminal != 100 {
		t.Fatalf("expected the earlier-declared pattern (terminal 100) to win the tie, got %+v", got)
	}
}
