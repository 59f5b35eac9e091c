package scnr

import (
	"github.com/coregx/scnr/classes"
	"github.com/coregx/scnr/dfa"
	"github.com/coregx/scnr/lookahead"
	"github.com/coregx/scnr/nfa"
	"github.com/coregx/scnr/prefilter"
)

// CompiledMode bundles everything the scanner needs to run one mode: its
// minimized DFA, the lookahead automata keyed by pattern index, the
// terminal-to-mode transition table, and an optional prefilter.
type CompiledMode struct {
	Name        string
	DFA         *dfa.DFA
	Lookaheads  map[int]*lookahead.Lookahead // pattern index -> lookahead
	Transitions map[int]int                  // terminal id -> target mode index
	Prefilter   *prefilter.Prefilter          // nil when disabled or pointless
	patterns    []Pattern                     // kept for diagnostics (DOT export, errors)
	registry    *classes.Registry             // kept for diagnostics (DOT export edge labels)
}

// compileMode turns a builder-level ScannerMode into a CompiledMode: C2+C3
// via nfa.FromPatterns, C5 via dfa.Compile+Minimize, then attaches
// lookaheads and, if enabled, a prefilter.
func compileMode(mode ScannerMode, reg *classes.Registry, config Config) (*CompiledMode, error) {
	if len(mode.Patterns) == 0 {
		return nil, &BuildError{Mode: mode.Name, PatternIndex: -1, Err: ErrDfaBuild}
	}

	compilerConfig := nfa.CompilerConfig{MaxRecursionDepth: config.MaxRecursionDepth}

	specs := make([]nfa.PatternSpec, len(mode.Patterns))
	lookaheads := make(map[int]*lookahead.Lookahead)
	for i, p := range mode.Patterns {
		lookaheadID := -1
		if p.Lookahead != nil {
			la, err := lookahead.Compile(lookahead.Spec{Pattern: p.Lookahead.Source, Positive: p.Lookahead.Positive}, reg, compilerConfig)
			if err != nil {
				return nil, &BuildError{Mode: mode.Name, PatternIndex: i, Err: translateCompileErr(err)}
			}
			// Keyed by pattern index, not Terminal: a mode's patterns are
			// free to share a terminal id while carrying distinct
			// lookaheads (or none), and the pattern's list position is
			// already unique within the mode (it doubles as Priority).
			lookaheads[i] = la
			lookaheadID = i // AcceptInfo.LookaheadID doubles as the Lookaheads map key
		}
		specs[i] = nfa.PatternSpec{Source: p.Source, Terminal: p.Terminal, Priority: i, LookaheadID: lookaheadID}
	}

	mp, err := nfa.FromPatterns(specs, reg, compilerConfig)
	if err != nil {
		return nil, &BuildError{Mode: mode.Name, PatternIndex: -1, Err: translateCompileErr(err)}
	}

	raw, err := dfa.Compile(mp)
	if err != nil {
		return nil, &BuildError{Mode: mode.Name, PatternIndex: -1, Err: err}
	}
	minimized := dfa.Minimize(raw)

	cm := &CompiledMode{
		Name:        mode.Name,
		DFA:         minimized,
		Lookaheads:  lookaheads,
		Transitions: mode.Transitions,
		patterns:    mode.Patterns,
		registry:    reg,
	}

	if config.EnablePrefilter {
		sources := make([]string, len(mode.Patterns))
		for i, p := range mode.Patterns {
			sources[i] = p.Source
		}
		cm.Prefilter = prefilter.Build(sources, reg, firstClasses(minimized))
	}

	return cm, nil
}

// firstClasses collects the ClassIDs reachable directly from a DFA's start
// state, the set a prefilter checks before deciding an ASCII whitespace
// byte can never begin any of this mode's patterns.
func firstClasses(d *dfa.DFA) []classes.ID {
	if int(d.Start) >= len(d.States) {
		return nil
	}
	start := d.States[d.Start]
	out := make([]classes.ID, 0, len(start.Transitions))
	for _, t := range start.Transitions {
		out = append(out, t.Class)
	}
	return out
}
