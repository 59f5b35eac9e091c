package scnr

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/coregx/scnr/classes"
)

// ScannerBuilder accumulates ScannerMode definitions and compiles them into
// an immutable Scanner, mirroring the teacher's CompileWithConfig/
// DefaultConfig pattern (meta/config.go) lifted to a multi-mode builder.
type ScannerBuilder struct {
	modes []ScannerMode
}

// NewScannerBuilder creates an empty builder.
func NewScannerBuilder() *ScannerBuilder {
	return &ScannerBuilder{}
}

// AddPatterns is a shortcut for the common single-mode case: it builds one
// unnamed-transition mode named name out of patterns.
func (b *ScannerBuilder) AddPatterns(name string, patterns []Pattern) *ScannerBuilder {
	mode := NewScannerMode(name)
	mode.Patterns = patterns
	b.modes = append(b.modes, mode)
	return b
}

// AddScannerMode appends a single fully-constructed mode.
func (b *ScannerBuilder) AddScannerMode(mode ScannerMode) *ScannerBuilder {
	b.modes = append(b.modes, mode)
	return b
}

// AddScannerModes appends several modes at once, preserving order.
func (b *ScannerBuilder) AddScannerModes(modes []ScannerMode) *ScannerBuilder {
	b.modes = append(b.modes, modes...)
	return b
}

// Build compiles the accumulated modes into a Scanner. Mode indices are
// assigned by list order; transitions reference modes by that index.
// Options default to DefaultConfig(); WithConfig replaces the whole thing.
func (b *ScannerBuilder) Build(opts ...BuildOption) (*Scanner, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if len(b.modes) == 0 {
		return nil, &BuildError{Mode: "", PatternIndex: -1, Err: ErrDfaBuild}
	}
	if err := validateTransitions(b.modes); err != nil {
		return nil, err
	}

	if config.EnableCache {
		if cached, ok := buildCache.lookup(b.modes); ok {
			return cached, nil
		}
	}

	reg := classes.NewRegistry()
	compiled := make([]*CompiledMode, len(b.modes))
	names := make([]string, len(b.modes))
	for i, mode := range b.modes {
		cm, err := compileMode(mode, reg, config)
		if err != nil {
			return nil, err
		}
		compiled[i] = cm
		names[i] = mode.Name

		if config.DotExportDir != "" {
			if err := writeDotFile(config.DotExportDir, mode.Name, cm); err != nil {
				return nil, fmt.Errorf("scnr: writing DOT export for mode %q: %w", mode.Name, err)
			}
		}
	}

	scanner := &Scanner{
		modes:    compiled,
		names:    names,
		registry: reg,
		matchFn:  reg.MatchFunc(),
		mode:     &modeState{},
	}

	if config.EnableCache {
		buildCache.store(b.modes, scanner)
	}
	return scanner, nil
}

// validateTransitions checks that every transition target names a real
// mode index, before any DFA construction is attempted.
func validateTransitions(modes []ScannerMode) error {
	for _, mode := range modes {
		for terminal, target := range mode.Transitions {
			if target < 0 || target >= len(modes) {
				return &BuildError{Mode: mode.Name, PatternIndex: -1, Err: fmt.Errorf("transition for terminal %d targets invalid mode %d: %w", terminal, target, ErrInvalidMode)}
			}
		}
	}
	return nil
}

func writeDotFile(dir, modeName string, cm *CompiledMode) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, modeName+".dot"))
	if err != nil {
		return err
	}
	defer f.Close()
	return cm.WriteDot(f)
}
