package nfa

import (
	"testing"

	"github.com/coregx/scnr/classes"
)

func TestFromPatternsRejectsEmptyList(t *testing.T) {
	reg := classes.NewRegistry()
	if _, err := FromPatterns(nil, reg, DefaultCompilerConfig()); err == nil {
		t.Fatal("expected an error for a mode with no patterns")
	}
}

func TestFromPatternsBuildsOneAcceptPerPattern(t *testing.T) {
	reg := classes.NewRegistry()
	specs := []PatternSpec{
		{Source: "if", Terminal: 1, Priority: 0, LookaheadID: -1},
		{Source: "[a-z]+", Terminal: 2, Priority: 1, LookaheadID: -1},
		{Source: `\d+`, Terminal: 3, Priority: 2, LookaheadID: -1},
	}
	mp, err := FromPatterns(specs, reg, DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("FromPatterns: %v", err)
	}
	if mp.PatternCount() != 3 {
		t.Fatalf("PatternCount() = %d, want 3", mp.PatternCount())
	}

	accepts := 0
	for i := 0; i < mp.States(); i++ {
		if mp.IsAccepting(StateID(i)) {
			accepts++
		}
	}
	if accepts != 3 {
		t.Fatalf("expected exactly 3 accept states, found %d", accepts)
	}
}

func TestFromPatternsCombinedStartReachesEveryPattern(t *testing.T) {
	reg := classes.NewRegistry()
	specs := []PatternSpec{
		{Source: "a", Terminal: 1, Priority: 0, LookaheadID: -1},
		{Source: "b", Terminal: 2, Priority: 1, LookaheadID: -1},
	}
	mp, err := FromPatterns(specs, reg, DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("FromPatterns: %v", err)
	}

	// The combined start must be reachable to both pattern starts via
	// epsilon/split transitions only, since it is a real state like any
	// other rather than a special-cased virtual one.
	start := mp.State(mp.Start())
	if start.Kind() != StateSplit {
		t.Fatalf("expected the combined start of a 2-pattern union to be a Split state, got %s", start.Kind())
	}
}

func TestFromPatternsPreservesPerPatternMetadata(t *testing.T) {
	reg := classes.NewRegistry()
	specs := []PatternSpec{
		{Source: "a", Terminal: 10, Priority: 0, LookaheadID: -1},
		{Source: "b", Terminal: 20, Priority: 1, LookaheadID: 20},
	}
	mp, err := FromPatterns(specs, reg, DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("FromPatterns: %v", err)
	}

	found := map[int]PatternInfo{}
	for i := 0; i < mp.States(); i++ {
		if info, ok := mp.AcceptInfo(StateID(i)); ok {
			found[info.Terminal] = info
		}
	}
	if info, ok := found[10]; !ok || info.LookaheadID != -1 {
		t.Errorf("pattern with terminal 10: got %+v, ok=%v", info, ok)
	}
	if info, ok := found[20]; !ok || info.LookaheadID != 20 {
		t.Errorf("pattern with terminal 20: got %+v, ok=%v", info, ok)
	}
}
