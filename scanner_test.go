package scnr

import "testing"

const (
	termSemi   = 0
	termNumber = 1
	termIdent  = 2
	termEq     = 3
)

func buildArithmeticScanner(t *testing.T) *Scanner {
	t.Helper()
	mode := NewScannerMode("INITIAL").
		AddPattern(NewPattern(";", termSemi)).
		AddPattern(NewPattern(`0|[1-9][0-9]*`, termNumber)).
		AddPattern(NewPattern(`[a-zA-Z_]\w*`, termIdent)).
		AddPattern(NewPattern("=", termEq))

	s, err := NewScannerBuilder().AddScannerMode(mode).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func TestScanArithmeticStatements(t *testing.T) {
	s := buildArithmeticScanner(t)
	it := s.FindIter([]byte("a = 10;\nb = 20;\n"))

	wantTerminals := []int{termIdent, termEq, termNumber, termSemi, termIdent, termEq, termNumber, termSemi}
	wantSpans := [][2]int{{0, 1}, {2, 3}, {4, 6}, {6, 7}, {8, 9}, {10, 11}, {12, 14}, {14, 15}}

	for i, wantTerm := range wantTerminals {
		m, ok := it.NextMatch()
		if !ok {
			t.Fatalf("match %d: expected a match, got none", i)
		}
		if m.Terminal != wantTerm {
			t.Errorf("match %d: Terminal = %d, want %d", i, m.Terminal, wantTerm)
		}
		if m.Start != wantSpans[i][0] || m.End != wantSpans[i][1] {
			t.Errorf("match %d: span = [%d,%d), want [%d,%d)", i, m.Start, m.End, wantSpans[i][0], wantSpans[i][1])
		}
	}
	if _, ok := it.NextMatch(); ok {
		t.Error("expected no further matches")
	}
}

func TestLongestMatchOverridesPriority(t *testing.T) {
	mode := NewScannerMode("INITIAL").
		AddPattern(NewPattern("if", 1)).
		AddPattern(NewPattern("[a-zA-Z_][a-zA-Z0-9_]*", 2))
	s, err := NewScannerBuilder().AddScannerMode(mode).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	it := s.FindIter([]byte("ifi"))
	m, ok := it.NextMatch()
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Terminal != 2 || m.Start != 0 || m.End != 3 {
		t.Errorf("got %+v, want the identifier spanning [0,3)", m)
	}
}

func TestKeywordWinsOnEqualLength(t *testing.T) {
	mode := NewScannerMode("INITIAL").
		AddPattern(NewPattern("if", 1)).
		AddPattern(NewPattern("[a-zA-Z_][a-zA-Z0-9_]*", 2))
	s, err := NewScannerBuilder().AddScannerMode(mode).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	it := s.FindIter([]byte("if;"))
	m, ok := it.NextMatch()
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Terminal != 1 {
		t.Errorf("Terminal = %d, want the keyword's terminal (1)", m.Terminal)
	}
	if m.Start != 0 || m.End != 2 {
		t.Errorf("span = [%d,%d), want [0,2)", m.Start, m.End)
	}
}

func buildCommentScanner(t *testing.T) *Scanner {
	t.Helper()
	initial := NewScannerMode("INITIAL").
		AddPattern(NewPattern(`/\*`, 1)).
		AddTransition(1, 1)
	// §6's JSON wire example writes this content pattern as "[.\\r\\n]",
	// but a bracket expression's "." is literal under regexp/syntax (as in
	// the teacher's engine), so that pattern would only ever match the
	// three literal characters '.', '\r' and '\n' — not "any character",
	// which is evidently the intent behind §8 property 5's expected
	// terminal sequence for arbitrary comment bodies. ".|\r|\n" is used
	// here instead to actually match any character, matching the
	// DESIGN.md decision.
	comment := NewScannerMode("COMMENT").
		AddPattern(NewPattern(`\*/`, 2)).
		AddPattern(NewPattern(`.|\r|\n`, 3)).
		AddTransition(2, 0)

	s, err := NewScannerBuilder().AddScannerModes([]ScannerMode{initial, comment}).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func TestModeSwitchOrdering(t *testing.T) {
	s := buildCommentScanner(t)
	it := s.FindIter([]byte("/* x */"))

	wantTerminals := []int{1, 3, 3, 3, 2}
	for i, want := range wantTerminals {
		m, ok := it.NextMatch()
		if !ok {
			t.Fatalf("match %d: expected a match, got none", i)
		}
		if m.Terminal != want {
			t.Errorf("match %d: Terminal = %d, want %d", i, m.Terminal, want)
		}
		if i == 0 && it.CurrentMode() != 1 {
			t.Errorf("CurrentMode() after the first match = %d, want 1", it.CurrentMode())
		}
	}
	if it.CurrentMode() != 0 {
		t.Errorf("CurrentMode() after the fifth match = %d, want 0", it.CurrentMode())
	}
}

func TestModeSwitchBlockCommentWithContent(t *testing.T) {
	s := buildCommentScanner(t)
	it := s.FindIter([]byte("/* *Comment 1* */"))

	var terminals []int
	for {
		m, ok := it.NextMatch()
		if !ok {
			break
		}
		terminals = append(terminals, m.Terminal)
	}
	if len(terminals) == 0 || terminals[0] != 1 {
		t.Fatalf("expected the first terminal to be the comment-open token (1), got %v", terminals)
	}
	if terminals[len(terminals)-1] != 2 {
		t.Errorf("expected the last terminal to be the comment-close token (2), got %v", terminals)
	}
	for _, term := range terminals[1 : len(terminals)-1] {
		if term != 3 {
			t.Errorf("expected every interior terminal to be 3 (content), got %d in %v", term, terminals)
		}
	}
	if it.CurrentMode() != 0 {
		t.Errorf("expected the scanner to return to mode 0 after the comment closes, got %d", it.CurrentMode())
	}
}

func TestFindIterPosition(t *testing.T) {
	s := buildArithmeticScanner(t)
	it := s.FindIter([]byte("hello\nworld"))
	pos := it.Position(6)
	if pos.Line != 2 || pos.Column != 1 {
		t.Errorf("Position(6) = %+v, want {Line:2 Column:1}", pos)
	}
}

// A lone "\r" (no following "\n") must not count as a line break: only
// "\n" does, per §8 property 7's "one plus the number of '\n'" wording.
func TestPositionLoneCarriageReturnIsNotALineBreak(t *testing.T) {
	s := buildArithmeticScanner(t)
	it := s.FindIter([]byte("hello\rworld\nagain"))

	pos := it.Position(6) // 'w', right after the lone '\r'
	if pos.Line != 1 || pos.Column != 7 {
		t.Errorf("Position(6) = %+v, want {Line:1 Column:7} (a lone '\\r' must not start a new line)", pos)
	}

	pos = it.Position(12) // 'a', right after the real '\n'
	if pos.Line != 2 || pos.Column != 1 {
		t.Errorf("Position(12) = %+v, want {Line:2 Column:1}", pos)
	}
}

func TestPositionCRLFAdvancesOneLine(t *testing.T) {
	s := buildArithmeticScanner(t)
	it := s.FindIter([]byte("hello\r\nworld"))

	pos := it.Position(7) // 'w', right after "\r\n"
	if pos.Line != 2 || pos.Column != 1 {
		t.Errorf("Position(7) = %+v, want {Line:2 Column:1}", pos)
	}
}

func TestPeekNIdempotenceAndNonAdvancement(t *testing.T) {
	mode := NewScannerMode("INITIAL").
		AddPattern(NewPattern(";", termSemi)).
		AddPattern(NewPattern(`[a-zA-Z_]\w*`, termIdent))
	s, err := NewScannerBuilder().AddScannerMode(mode).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	it := s.FindIter([]byte("a;b;c;"))

	first := it.PeekN(3)
	second := it.PeekN(3)
	if first.Kind != PeekMatches || second.Kind != PeekMatches {
		t.Fatalf("expected both peeks to report PeekMatches, got %v and %v", first.Kind, second.Kind)
	}
	if len(first.Matches) != 3 || len(second.Matches) != 3 {
		t.Fatalf("expected 3 matches from each peek, got %d and %d", len(first.Matches), len(second.Matches))
	}
	for i := range first.Matches {
		if first.Matches[i] != second.Matches[i] {
			t.Errorf("peek %d differs between calls: %+v vs %+v", i, first.Matches[i], second.Matches[i])
		}
	}

	wantTerminals := []int{termIdent, termSemi, termIdent}
	for i, m := range first.Matches {
		if m.Terminal != wantTerminals[i] {
			t.Errorf("Matches[%d].Terminal = %d, want %d", i, m.Terminal, wantTerminals[i])
		}
	}

	m, ok := it.NextMatch()
	if !ok {
		t.Fatal("expected NextMatch to still find the first match after peeking")
	}
	if m.Terminal != termIdent || m.Start != 0 || m.End != 1 {
		t.Errorf("NextMatch() after peeking = %+v, want the first ident at [0,1)", m)
	}
}

func TestAdvanceToAndWithOffset(t *testing.T) {
	s := buildArithmeticScanner(t)
	it := s.FindIter([]byte("a = 10;"))

	off := it.AdvanceTo(4)
	if off != 4 {
		t.Fatalf("AdvanceTo(4) = %d, want 4", off)
	}
	m, ok := it.NextMatch()
	if !ok || m.Terminal != termNumber || m.Start != 4 {
		t.Errorf("expected the number token at offset 4 after AdvanceTo, got %+v, ok=%v", m, ok)
	}

	shifted := s.FindIter([]byte("a")).WithOffset(100)
	m2, ok := shifted.NextMatch()
	if !ok || m2.Start != 100 {
		t.Errorf("expected WithOffset to shift reported positions, got %+v, ok=%v", m2, ok)
	}
}

func TestSetModeRejectsOutOfRange(t *testing.T) {
	s := buildArithmeticScanner(t)
	if err := s.SetMode(5); err == nil {
		t.Error("expected an error for an out-of-range mode index")
	}
	if err := s.SetMode(0); err != nil {
		t.Errorf("SetMode(0) unexpectedly failed: %v", err)
	}
}

func TestWithPositionsEnrichesSpan(t *testing.T) {
	s := buildArithmeticScanner(t)
	it := s.FindIter([]byte("a\nb = 1;"))
	it.NextMatch() // a
	m, ok := it.NextMatch()
	if !ok {
		t.Fatal("expected a second match")
	}
	enriched := it.WithPositions(m)
	if enriched.StartPos.Line != 2 {
		t.Errorf("StartPos.Line = %d, want 2", enriched.StartPos.Line)
	}
}
