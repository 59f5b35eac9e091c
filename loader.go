package scnr

import (
	"encoding/json"
	"fmt"
	"io"
)

// wireMode mirrors §6's JSON wire format for one scanner mode:
//
//	{ "name": "INITIAL",
//	  "patterns": [ { "pattern": "/\\*", "token_type": 1 } ],
//	  "transitions": [ [1, 1] ] }
type wireMode struct {
	Name        string        `json:"name"`
	Patterns    []wirePattern `json:"patterns"`
	Transitions [][2]int      `json:"transitions"`
}

type wirePattern struct {
	Pattern   string         `json:"pattern"`
	TokenType int            `json:"token_type"`
	Lookahead *wireLookahead `json:"lookahead,omitempty"`
}

type wireLookahead struct {
	Pattern  string `json:"pattern"`
	Positive bool   `json:"positive"`
}

// LoadModeDefinitions decodes the §6 JSON wire format into builder-ready
// ScannerMode values. Malformed JSON is wrapped as ErrIo; a transition whose
// target mode index is out of range surfaces as a BuildError. The terminal
// of a transition is not checked against the mode's patterns.
func LoadModeDefinitions(r io.Reader) ([]ScannerMode, error) {
	var wire []wireMode
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIo, err)
	}

	modes := make([]ScannerMode, len(wire))
	for i, wm := range wire {
		mode := NewScannerMode(wm.Name)
		for _, wp := range wm.Patterns {
			p := NewPattern(wp.Pattern, wp.TokenType)
			if wp.Lookahead != nil {
				if wp.Lookahead.Positive {
					p = p.WithPositiveLookahead(wp.Lookahead.Pattern)
				} else {
					p = p.WithNegativeLookahead(wp.Lookahead.Pattern)
				}
			}
			mode = mode.AddPattern(p)
		}
		for _, pair := range wm.Transitions {
			terminal, target := pair[0], pair[1]
			if target < 0 || target >= len(wire) {
				return nil, &BuildError{Mode: wm.Name, PatternIndex: -1, Err: fmt.Errorf("transition for terminal %d targets invalid mode %d: %w", terminal, target, ErrInvalidMode)}
			}
			mode = mode.AddTransition(terminal, target)
		}
		modes[i] = mode
	}
	return modes, nil
}
