package scnr

import "unicode/utf8"

// FindIterator scans one input byte slice against a Scanner, producing a
// non-overlapping stream of matches. It owns its own cursor and
// line-offset index; the only state it shares with its creating Scanner is
// current_mode, via the pointer in scanner.mode (§5).
type FindIterator struct {
	scanner *Scanner

	input       []byte
	runes       []rune
	byteOffsets []int // len(runes)+1; byteOffsets[i] = byte offset of rune i, byteOffsets[len(runes)] = len(input)
	lineStarts  []int // rune indices of line-start positions, ascending

	cursor int // rune index of the next unscanned position
	base   int // added to every reported byte offset
}

// newFindIterator decodes input once into a rune table plus a parallel
// byte-offset table, and builds the line-offset index eagerly, since the
// whole input is available up front rather than arriving as a stream.
func newFindIterator(s *Scanner, input []byte, base int) *FindIterator {
	runes := make([]rune, 0, len(input))
	offsets := make([]int, 0, len(input)+1)
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRune(input[i:])
		runes = append(runes, r)
		offsets = append(offsets, i)
		i += size
	}
	offsets = append(offsets, len(input))

	return &FindIterator{
		scanner:     s,
		input:       input,
		runes:       runes,
		byteOffsets: offsets,
		lineStarts:  buildLineStarts(input, offsets),
		base:        base,
	}
}

// SetMode, CurrentMode and ModeName delegate to the creating scanner so the
// iterator and its creator observe the same current_mode (§5's
// mode-switcher interface).
func (it *FindIterator) SetMode(m int) error     { return it.scanner.SetMode(m) }
func (it *FindIterator) CurrentMode() int        { return it.scanner.CurrentMode() }
func (it *FindIterator) ModeName(i int) (string, bool) { return it.scanner.ModeName(i) }

// Offset returns the iterator's current absolute byte offset.
func (it *FindIterator) Offset() int {
	return it.base + it.byteOffsets[it.cursor]
}

// WithOffset returns a copy of it whose reported positions are shifted by
// o, for scanning a slice of a larger buffer while reporting positions
// relative to that buffer.
func (it *FindIterator) WithOffset(o int) *FindIterator {
	clone := *it
	clone.base = o
	return &clone
}

// AdvanceTo fast-forwards the cursor to absolute byte offset p, clamped
// into range and snapped to the next valid rune boundary at or after p. It
// returns the actual resulting absolute offset.
func (it *FindIterator) AdvanceTo(p int) int {
	local := p - it.base
	if local < 0 {
		local = 0
	}
	if local > len(it.input) {
		local = len(it.input)
	}
	it.cursor = runeIndexAtByte(it.byteOffsets, local)
	return it.Offset()
}

// NextMatch advances past the next non-overlapping match, applying a mode
// switch (if the matched terminal has a transition entry) before
// returning, per 4.7 step 6. It returns ok=false at end of input.
func (it *FindIterator) NextMatch() (Match, bool) {
	modeIdx := it.scanner.CurrentMode()
	terminal, startRune, endRune, ok := it.scanNext(modeIdx, it.cursor)
	if !ok {
		it.cursor = len(it.runes)
		return Match{}, false
	}

	m := Match{
		Terminal: terminal,
		Start:    it.base + it.byteOffsets[startRune],
		End:      it.base + it.byteOffsets[endRune],
	}
	it.cursor = endRune

	if target, has := it.scanner.modes[modeIdx].Transitions[terminal]; has {
		_ = it.scanner.SetMode(target) // transitions are validated at build time
	}
	return m, true
}

// PeekKind discriminates the variants of PeekResult.
type PeekKind int

const (
	// PeekMatches means the full requested prefix was produced with no
	// mode switch along the way.
	PeekMatches PeekKind = iota
	// PeekReachedEnd means input was exhausted before n matches were found.
	PeekReachedEnd
	// PeekReachedModeSwitch means a mode switch would occur after the
	// SwitchIndex-th match; matches beyond it were not attempted because
	// they depend on the mode that hasn't actually been switched to.
	PeekReachedModeSwitch
	// PeekNotFound means no match exists at the current cursor at all.
	PeekNotFound
)

// PeekResult is the outcome of PeekN.
type PeekResult struct {
	Kind        PeekKind
	Matches     []Match
	SwitchIndex int // valid only when Kind == PeekReachedModeSwitch
}

// PeekN produces up to n upcoming matches without advancing the iterator's
// observable cursor and without performing any actual mode switch; it
// simulates mode transitions against a local variable instead of writing
// through scanner.mode. Calling PeekN twice at the same cursor yields
// identical results and never changes NextMatch's subsequent output.
func (it *FindIterator) PeekN(n int) PeekResult {
	if n <= 0 {
		return PeekResult{Kind: PeekNotFound}
	}

	modeIdx := it.scanner.CurrentMode()
	cursor := it.cursor
	var matches []Match

	for len(matches) < n {
		terminal, startRune, endRune, ok := it.scanNext(modeIdx, cursor)
		if !ok {
			if len(matches) == 0 {
				return PeekResult{Kind: PeekNotFound}
			}
			return PeekResult{Kind: PeekReachedEnd, Matches: matches}
		}

		matches = append(matches, Match{
			Terminal: terminal,
			Start:    it.base + it.byteOffsets[startRune],
			End:      it.base + it.byteOffsets[endRune],
		})
		cursor = endRune

		if target, has := it.scanner.modes[modeIdx].Transitions[terminal]; has && target != modeIdx {
			if len(matches) < n {
				return PeekResult{Kind: PeekReachedModeSwitch, Matches: matches, SwitchIndex: len(matches)}
			}
			modeIdx = target
		}
	}
	return PeekResult{Kind: PeekMatches, Matches: matches}
}

// scanNext finds the next match at or after the rune index runeIdx in mode
// modeIdx, silently skipping positions where nothing matches (accelerated,
// never changed, by the mode's prefilter) until one is found or input ends.
func (it *FindIterator) scanNext(modeIdx, runeIdx int) (terminal, startRune, endRune int, ok bool) {
	mode := it.scanner.modes[modeIdx]
	matchFn := it.scanner.matchFn

	i := runeIdx
	for i < len(it.runes) {
		t, length, found := mode.attemptMatch(it.runes[i:], matchFn)
		if found {
			return t, i, i + length, true
		}
		i = it.skipAhead(mode, i)
	}
	return 0, 0, 0, false
}

// skipAhead returns the next rune index worth probing after a failed match
// attempt at runeIdx, consulting the mode's prefilter (if any) for a sound
// lower bound on the next possible match start.
func (it *FindIterator) skipAhead(mode *CompiledMode, runeIdx int) int {
	fallback := runeIdx + 1
	if mode.Prefilter == nil {
		return fallback
	}
	hint := mode.Prefilter.NextCandidate(it.input, it.byteOffsets[runeIdx])
	next := runeIndexAtByte(it.byteOffsets, hint)
	if next <= runeIdx {
		return fallback
	}
	return next
}
