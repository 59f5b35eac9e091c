package scnr

import (
	"errors"
	"strings"
	"testing"
)

const wireCommentModes = `[
  { "name": "INITIAL",
    "patterns": [ { "pattern": "/\\*", "token_type": 1 } ],
    "transitions": [ [1, 1] ] },
  { "name": "COMMENT",
    "patterns": [
      { "pattern": "\\*/", "token_type": 2 },
      { "pattern": ".|\\r|\\n", "token_type": 3 } ],
    "transitions": [ [2, 0] ] }
]`

func TestLoadModeDefinitionsParsesWireFormat(t *testing.T) {
	modes, err := LoadModeDefinitions(strings.NewReader(wireCommentModes))
	if err != nil {
		t.Fatalf("LoadModeDefinitions: %v", err)
	}
	if len(modes) != 2 {
		t.Fatalf("len(modes) = %d, want 2", len(modes))
	}
	if modes[0].Name != "INITIAL" || modes[1].Name != "COMMENT" {
		t.Errorf("mode names = %q, %q", modes[0].Name, modes[1].Name)
	}
	if len(modes[0].Patterns) != 1 || modes[0].Patterns[0].Terminal != 1 {
		t.Errorf("INITIAL patterns = %+v", modes[0].Patterns)
	}
	if target, ok := modes[0].Transitions[1]; !ok || target != 1 {
		t.Errorf("INITIAL transition for terminal 1 = %d, %v, want 1, true", target, ok)
	}
}

func TestLoadModeDefinitionsBuildsAWorkingScanner(t *testing.T) {
	modes, err := LoadModeDefinitions(strings.NewReader(wireCommentModes))
	if err != nil {
		t.Fatalf("LoadModeDefinitions: %v", err)
	}
	s, err := NewScannerBuilder().AddScannerModes(modes).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	it := s.FindIter([]byte("/* x */"))
	var terminals []int
	for {
		m, ok := it.NextMatch()
		if !ok {
			break
		}
		terminals = append(terminals, m.Terminal)
	}
	want := []int{1, 3, 3, 3, 2}
	if len(terminals) != len(want) {
		t.Fatalf("terminals = %v, want %v", terminals, want)
	}
	for i := range want {
		if terminals[i] != want[i] {
			t.Errorf("terminals[%d] = %d, want %d", i, terminals[i], want[i])
		}
	}
}

func TestLoadModeDefinitionsRejectsMalformedJSON(t *testing.T) {
	_, err := LoadModeDefinitions(strings.NewReader("{not valid json"))
	if !errors.Is(err, ErrIo) {
		t.Errorf("expected ErrIo for malformed JSON, got %v", err)
	}
}

func TestLoadModeDefinitionsRejectsInvalidTransitionTarget(t *testing.T) {
	const wire = `[
	  { "name": "ONLY",
	    "patterns": [ { "pattern": "a", "token_type": 1 } ],
	    "transitions": [ [1, 9] ] }
	]`
	_, err := LoadModeDefinitions(strings.NewReader(wire))
	if !errors.Is(err, ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode for an out-of-range transition target, got %v", err)
	}
}

func TestLoadModeDefinitionsWithLookahead(t *testing.T) {
	const wire = `[
	  { "name": "INITIAL",
	    "patterns": [
	      { "pattern": "World", "token_type": 1, "lookahead": { "pattern": "!", "positive": true } } ],
	    "transitions": [] }
	]`
	modes, err := LoadModeDefinitions(strings.NewReader(wire))
	if err != nil {
		t.Fatalf("LoadModeDefinitions: %v", err)
	}
	p := modes[0].Patterns[0]
	if p.Lookahead == nil || !p.Lookahead.Positive || p.Lookahead.Source != "!" {
		t.Errorf("Lookahead = %+v, want a positive lookahead on \"!\"", p.Lookahead)
	}
}
