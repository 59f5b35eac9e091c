package lookahead

import (
	"testing"

	"github.com/coregx/scnr/classes"
	"github.com/coregx/scnr/nfa"
)

func TestSatisfiesPositiveLookaheadRequiresMatch(t *testing.T) {
	reg := classes.NewRegistry()
	la, err := Compile(Spec{Pattern: "!", Positive: true}, reg, nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	ok, _ := la.Satisfies([]rune("!"), reg.MatchFunc())
	if !ok {
		t.Error("expected a positive lookahead to be satisfied when the trailing context matches")
	}

	ok, _ = la.Satisfies([]rune(""), reg.MatchFunc())
	if ok {
		t.Error("expected a positive lookahead to fail when there is no trailing context at all")
	}

	ok, _ = la.Satisfies([]rune("?"), reg.MatchFunc())
	if ok {
		t.Error("expected a positive lookahead to fail when the trailing context does not match")
	}
}

func TestSatisfiesNegativeLookaheadRequiresAbsence(t *testing.T) {
	reg := classes.NewRegistry()
	la, err := Compile(Spec{Pattern: "!", Positive: false}, reg, nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	ok, _ := la.Satisfies([]rune("!"), reg.MatchFunc())
	if ok {
		t.Error("expected a negative lookahead to fail when the trailing context matches")
	}

	ok, _ = la.Satisfies([]rune("?"), reg.MatchFunc())
	if !ok {
		t.Error("expected a negative lookahead to be satisfied when the trailing context does not match")
	}
}

// TestWorldExclamationScenario mirrors the "World"/"World!" example: a
// pattern followed only by a punctuation mark should not consume that
// punctuation itself, but a plain positive lookahead still needs it present
// to be satisfied.
func TestWorldExclamationScenario(t *testing.T) {
	reg := classes.NewRegistry()
	la, err := Compile(Spec{Pattern: "!", Positive: true}, reg, nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	matchFn := reg.MatchFunc()
	full := []rune("World!")
	residualAfterWorld := full[len("World"):]

	ok, consumed := la.Satisfies(residualAfterWorld, matchFn)
	if !ok {
		t.Fatal("expected \"World\" followed by \"!\" to satisfy the positive lookahead")
	}
	if consumed != 1 {
		t.Errorf("consumed = %d, want 1 (lookahead consumption is informational, never extends the match)", consumed)
	}

	bareWorld := []rune("World")
	ok, _ = la.Satisfies(bareWorld[len("World"):], matchFn)
	if ok {
		t.Error("expected \"World\" with no trailing \"!\" to fail the lookahead")
	}
}

func TestIsPositive(t *testing.T) {
	reg := classes.NewRegistry()
	pos, err := Compile(Spec{Pattern: "x", Positive: true}, reg, nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !pos.IsPositive() {
		t.Error("expected IsPositive() to report true")
	}

	neg, err := Compile(Spec{Pattern: "x", Positive: false}, reg, nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatal(err)
	}
	if neg.IsPositive() {
		t.Error("expected IsPositive() to report false")
	}
}
