// Package classes implements the character-class registry: deduplication and
// predicate compilation for the character-class sub-expressions that appear
// anywhere in any pattern of a scanner.
//
// Two classes are registered under the same ClassID iff their canonicalized
// rune ranges are identical after sorting and merging. The registry is
// build-time only; once a scanner is compiled, the registry and every
// predicate it hands out are immutable and safe to share across goroutines.
package classes

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ID identifies a registered character class. Equal IDs mean semantically
// identical classes; distinct IDs may still overlap in the characters they
// accept (see the DFA Compiler's overlap-aware transition composition).
type ID uint32

// Invalid is returned by lookups that fail to find a class.
const Invalid ID = 0xFFFFFFFF

// Range is an inclusive rune range [Lo, Hi].
type Range struct {
	Lo, Hi rune
}

// Class is a registered, canonicalized character class.
type Class struct {
	id     ID
	ranges []Range // sorted, non-overlapping, merged
}

// ID returns the class's stable identifier.
func (c *Class) ID() ID { return c.id }

// Ranges returns the class's canonical ranges. The returned slice must not
// be mutated by the caller.
func (c *Class) Ranges() []Range { return c.ranges }

// Describe renders the class's ranges as a compact human-readable label,
// with each rune Go-quoted, e.g. "['a'-'z']" for [a-z], for
// diagnostics such as DOT export edge labels.
func (c *Class) Describe() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, rg := range c.ranges {
		if rg.Lo == rg.Hi {
			b.WriteString(strconv.QuoteRune(rg.Lo))
		} else {
			b.WriteString(strconv.QuoteRune(rg.Lo))
			b.WriteByte('-')
			b.WriteString(strconv.QuoteRune(rg.Hi))
		}
	}
	b.WriteByte(']')
	return b.String()
}

// Contains reports whether r falls within one of the class's ranges.
// Ranges are sorted, so this runs in O(log n) via binary search.
func (c *Class) Contains(r rune) bool {
	ranges := c.ranges
	lo, hi := 0, len(ranges)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case r < ranges[mid].Lo:
			hi = mid
		case r > ranges[mid].Hi:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// Registry interns character classes and hands out stable IDs.
//
// Registration is idempotent: two calls with the same canonical range set
// return the same ID, mirroring a classic AST-interning table keyed by
// structural equality rather than identity.
type Registry struct {
	classes []*Class
	byKey   map[string]ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]ID)}
}

// Intern canonicalizes ranges (sort + merge overlapping/adjacent pairs) and
// returns the ID of the matching class, registering a new one if necessary.
func (r *Registry) Intern(ranges []Range) ID {
	canon := canonicalize(ranges)
	key := rangeKey(canon)
	if id, ok := r.byKey[key]; ok {
		return id
	}
	id := ID(len(r.classes))
	r.classes = append(r.classes, &Class{id: id, ranges: canon})
	r.byKey[key] = id
	return id
}

// InternRune registers a single-rune class, a common case for literals.
func (r *Registry) InternRune(ch rune) ID {
	return r.Intern([]Range{{Lo: ch, Hi: ch}})
}

// Class returns the class registered under id, or nil if id is unknown.
func (r *Registry) Class(id ID) *Class {
	if int(id) < 0 || int(id) >= len(r.classes) {
		return nil
	}
	return r.classes[id]
}

// Len returns the number of distinct classes registered so far.
func (r *Registry) Len() int { return len(r.classes) }

// Contains tests membership of ch in the class identified by id. This is the
// hot-loop membership primitive used by the DFA simulation.
func (r *Registry) Contains(id ID, ch rune) bool {
	c := r.Class(id)
	if c == nil {
		return false
	}
	return c.Contains(ch)
}

// MatchFunc returns a predicate closure bound to the registry's current
// contents, analogous to create_match_char_class in the reference
// implementation: each class is pre-resolved once, then indexed by id at
// call time, avoiding a map lookup per character in the scan loop.
func (r *Registry) MatchFunc() func(id ID, ch rune) bool {
	snapshot := make([]*Class, len(r.classes))
	copy(snapshot, r.classes)
	return func(id ID, ch rune) bool {
		if int(id) < 0 || int(id) >= len(snapshot) {
			return false
		}
		return snapshot[id].Contains(ch)
	}
}

// AnyExceptNewline returns the class matching every Unicode scalar value
// except '\n', the default meaning of '.' in the supported grammar (4.4).
func (r *Registry) AnyExceptNewline() ID {
	return r.Intern([]Range{
		{Lo: 0, Hi: '\n' - 1},
		{Lo: '\n' + 1, Hi: utf8.MaxRune},
	})
}

// canonicalize sorts ranges by Lo and merges overlapping or adjacent ranges,
// the same normalization a ComparableAst equality check would require.
func canonicalize(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	cp := make([]Range, len(ranges))
	copy(cp, ranges)
	sort.Slice(cp, func(i, j int) bool {
		if cp[i].Lo != cp[j].Lo {
			return cp[i].Lo < cp[j].Lo
		}
		return cp[i].Hi < cp[j].Hi
	})
	out := cp[:1]
	for _, next := range cp[1:] {
		last := &out[len(out)-1]
		if next.Lo <= last.Hi+1 {
			if next.Hi > last.Hi {
				last.Hi = next.Hi
			}
			continue
		}
		out = append(out, next)
	}
	return out
}

// rangeKey builds a canonical string key for map lookup. Ranges are already
// sorted and merged by canonicalize, so structurally equal classes always
// produce identical keys.
func rangeKey(ranges []Range) string {
	var b strings.Builder
	for _, rg := range ranges {
		b.WriteString(strconv.FormatInt(int64(rg.Lo), 36))
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(int64(rg.Hi), 36))
		b.WriteByte(',')
	}
	return b.String()
}
