package scnr

import (
	"sort"

	"github.com/coregx/scnr/simd"
)

// Position is a 1-based (line, column) pair; column is measured in
// characters, not bytes, and resets to 1 after every line start.
type Position struct {
	Line   int
	Column int
}

// runeIndexAtByte returns the index into a rune-aligned byte-offset table
// (sorted, strictly increasing, one entry per rune plus a trailing
// len(input) sentinel) of the first entry >= b. Used to translate a byte
// offset into the rune-indexed coordinate system the DFA simulation and
// line-offset index both use.
func runeIndexAtByte(byteOffsets []int, b int) int {
	return sort.Search(len(byteOffsets), func(i int) bool { return byteOffsets[i] >= b })
}

// buildLineStarts scans input for line-start positions, expressed as rune
// indices into the rune table described by byteOffsets, so Position's
// column math is a plain subtraction rather than a second byte-to-rune
// conversion per query. Only "\n" triggers a new line start, matching
// Testable Property #7's definition of line as "one plus the number of
// '\n' in input[0..start]" — a lone "\r" (old Mac-style line endings, or a
// "\r" not followed by "\n") is not a line break, it is just an ordinary
// character that happens to precede whatever comes next. Records a line
// start immediately after a trailing newline even when it sits at
// end-of-input (4.8's trailing-LF edge case).
func buildLineStarts(input []byte, byteOffsets []int) []int {
	starts := []int{0}
	pos := 0
	for pos < len(input) {
		idx := simd.Memchr(input[pos:], '\n')
		if idx < 0 {
			break
		}
		next := pos + idx + 1
		starts = append(starts, runeIndexAtByte(byteOffsets, next))
		pos = next
	}
	return starts
}

// Position resolves an absolute byte offset (including the iterator's base
// offset) to a (line, column) pair via binary search over the line-offset
// index, per 4.8's position(off).
func (it *FindIterator) Position(off int) Position {
	local := off - it.base
	if local < 0 {
		local = 0
	}
	if local > len(it.input) {
		local = len(it.input)
	}
	runeIdx := runeIndexAtByte(it.byteOffsets, local)

	lineIdx := sort.Search(len(it.lineStarts), func(i int) bool { return it.lineStarts[i] > runeIdx }) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}
	column := runeIdx - it.lineStarts[lineIdx] + 1
	return Position{Line: lineIdx + 1, Column: column}
}
