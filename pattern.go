package scnr

// Lookahead is a trailing-context assertion attached to a Pattern: the
// pattern only commits its match if the text immediately following it does
// (Positive) or does not (Positive=false) match Source.
type Lookahead struct {
	Positive bool
	Source   string
}

// Pattern is one entry in a ScannerMode's ordered pattern list. Its index
// within that list is its Priority for longest-match ties; callers do not
// set Priority directly, the builder derives it from list position.
type Pattern struct {
	Source    string
	Terminal  int
	Lookahead *Lookahead
}

// NewPattern creates a Pattern with no lookahead.
func NewPattern(source string, terminal int) Pattern {
	return Pattern{Source: source, Terminal: terminal}
}

// WithPositiveLookahead attaches a positive trailing-context assertion.
func (p Pattern) WithPositiveLookahead(source string) Pattern {
	p.Lookahead = &Lookahead{Positive: true, Source: source}
	return p
}

// WithNegativeLookahead attaches a negative trailing-context assertion.
func (p Pattern) WithNegativeLookahead(source string) Pattern {
	p.Lookahead = &Lookahead{Positive: false, Source: source}
	return p
}
