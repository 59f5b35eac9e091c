package scnr

// Match is a single non-overlapping token: which terminal matched and the
// byte span it covers in the scanned input. Spans are half-open,
// Start < End always.
type Match struct {
	Terminal int
	Start    int
	End      int
}

// MatchWithPosition enriches a Match with line/column positions for both
// endpoints, resolved against a FindIterator's line-offset index.
type MatchWithPosition struct {
	Terminal int
	Start    int
	End      int
	StartPos Position
	EndPos   Position
}

// WithPositions resolves m's start and end byte offsets to positions using
// it, returning the enriched match (4.8/C9).
func (it *FindIterator) WithPositions(m Match) MatchWithPosition {
	return MatchWithPosition{
		Terminal: m.Terminal,
		Start:    m.Start,
		End:      m.End,
		StartPos: it.Position(m.Start),
		EndPos:   it.Position(m.End),
	}
}
