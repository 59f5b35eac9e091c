package nfa

import (
	"fmt"
	"regexp/syntax"
	"strings"

	"github.com/coregx/scnr/classes"
)

// CompilerConfig configures pattern compilation.
type CompilerConfig struct {
	// MaxRecursionDepth bounds AST recursion to guard against pathological
	// patterns. Zero selects the default.
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns sane defaults.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{MaxRecursionDepth: 100}
}

// Compiler parses a restricted regex grammar (C2) and compiles it into a
// class-id-labeled Thompson NFA (C3). It rejects anchors, inline flag
// groups, capturing groups and backreferences with ErrUnsupportedFeature.
type Compiler struct {
	config   CompilerConfig
	registry *classes.Registry
	builder  *Builder
	depth    int
}

// NewCompiler creates a compiler that registers character classes into reg.
func NewCompiler(reg *classes.Registry, config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = 100
	}
	return &Compiler{config: config, registry: reg}
}

// Compile parses pattern and compiles it into an NFA.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	if err := rejectFlagGroups(pattern); err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		// regexp/syntax has no backreferences and reports \1..\9 as an
		// invalid escape; surface those as an unsupported feature instead.
		if se, ok := err.(*syntax.Error); ok && se.Code == syntax.ErrInvalidEscape &&
			len(se.Expr) == 2 && se.Expr[1] >= '1' && se.Expr[1] <= '9' {
			err = fmt.Errorf("%w: backreference %s", ErrUnsupportedFeature, se.Expr)
		}
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	re = re.Simplify()

	if err := rejectUnsupported(re); err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	c.builder = NewBuilder()
	c.depth = 0

	start, end, err := c.compileRegexp(re)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	matchID := c.builder.AddMatch()
	if err := c.connect(end, matchID); err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	c.builder.SetStart(start)

	nfa, err := c.builder.Build(matchID)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return nfa, nil
}

// rejectFlagGroups rejects inline flag groups like (?i), (?i:...), (?s:...)
// and named captures (?P<name>...) by scanning the raw source: once parsed,
// regexp/syntax folds flags into the AST (e.g. case folding on character
// classes) and leaves no trace of the flag group itself, so the rejection
// must happen before parsing.
func rejectFlagGroups(pattern string) error {
	for i := 0; i+1 < len(pattern); i++ {
		if pattern[i] != '(' || pattern[i+1] != '?' {
			continue
		}
		rest := pattern[i+2:]
		if strings.HasPrefix(rest, "P<") || strings.HasPrefix(rest, "<") {
			return fmt.Errorf("%w: named capture group", ErrUnsupportedFeature)
		}
		if rest == "" {
			continue
		}
		switch rest[0] {
		case ':':
			continue // non-capturing group, always allowed
		case 'i', 'm', 's', 'U', '-':
			return fmt.Errorf("%w: inline flag group", ErrUnsupportedFeature)
		}
	}
	return nil
}

// rejectUnsupported walks the parsed AST and rejects anchors, word
// boundaries, and capturing groups.
func rejectUnsupported(re *syntax.Regexp) error {
	switch re.Op {
	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return fmt.Errorf("%w: anchor %v", ErrUnsupportedFeature, re.Op)
	case syntax.OpCapture:
		return fmt.Errorf("%w: capturing group", ErrUnsupportedFeature)
	}
	for _, sub := range re.Sub {
		if err := rejectUnsupported(sub); err != nil {
			return err
		}
	}
	return nil
}

// connect patches end to target, inserting an epsilon state if end is a
// Split state (which has two targets, not one) rather than a single-target
// state.
func (c *Compiler) connect(end, target StateID) error {
	if err := c.builder.Patch(end, target); err != nil {
		epsilon := c.builder.AddEpsilon(target)
		return c.builder.Patch(end, epsilon)
	}
	return nil
}

// compileRegexp recursively compiles a syntax.Regexp node, returning the
// (start, end) fragment boundary. end is a state whose forward reference
// still needs to be patched by the caller.
func (c *Compiler) compileRegexp(re *syntax.Regexp) (start, end StateID, err error) {
	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidState, InvalidState, ErrTooComplex
	}
	defer func() { c.depth-- }()

	switch re.Op {
	case syntax.OpLiteral:
		return c.compileLiteral(re.Rune)
	case syntax.OpCharClass:
		return c.compileCharClass(re.Rune)
	case syntax.OpAnyChar:
		return c.compileClass(c.registry.Intern([]classes.Range{{Lo: 0, Hi: 0x10FFFF}}))
	case syntax.OpAnyCharNotNL:
		return c.compileClass(c.registry.AnyExceptNewline())
	case syntax.OpConcat:
		return c.compileConcat(re.Sub)
	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub)
	case syntax.OpStar:
		return c.compileStar(re.Sub[0])
	case syntax.OpPlus:
		return c.compilePlus(re.Sub[0])
	case syntax.OpQuest:
		return c.compileQuest(re.Sub[0])
	case syntax.OpRepeat:
		return c.compileRepeat(re.Sub[0], re.Min, re.Max)
	case syntax.OpEmptyMatch:
		return c.compileEmptyMatch()
	default:
		return InvalidState, InvalidState, fmt.Errorf("%w: regex op %v", ErrUnsupportedFeature, re.Op)
	}
}

func (c *Compiler) compileClass(cid classes.ID) (start, end StateID, err error) {
	id := c.builder.AddClass(cid, InvalidState)
	return id, id, nil
}

func (c *Compiler) compileLiteral(runes []rune) (start, end StateID, err error) {
	if len(runes) == 0 {
		return c.compileEmptyMatch()
	}
	var first, prev StateID = InvalidState, InvalidState
	for _, r := range runes {
		id := c.builder.AddClass(c.registry.InternRune(r), InvalidState)
		if first == InvalidState {
			first = id
		}
		if prev != InvalidState {
			if err := c.builder.Patch(prev, id); err != nil {
				return InvalidState, InvalidState, err
			}
		}
		prev = id
	}
	return first, prev, nil
}

// compileCharClass compiles a character class whose ranges come straight
// from regexp/syntax (already a sequence of [lo,hi] rune pairs).
func (c *Compiler) compileCharClass(runePairs []rune) (start, end StateID, err error) {
	if len(runePairs) == 0 {
		return c.compileEmptyMatch()
	}
	ranges := make([]classes.Range, 0, len(runePairs)/2)
	for i := 0; i < len(runePairs); i += 2 {
		ranges = append(ranges, classes.Range{Lo: runePairs[i], Hi: runePairs[i+1]})
	}
	return c.compileClass(c.registry.Intern(ranges))
}

func (c *Compiler) compileConcat(subs []*syntax.Regexp) (start, end StateID, err error) {
	if len(subs) == 0 {
		return c.compileEmptyMatch()
	}
	start, end, err = c.compileRegexp(subs[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}
	for _, sub := range subs[1:] {
		nextStart, nextEnd, err := c.compileRegexp(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.connect(end, nextStart); err != nil {
			return InvalidState, InvalidState, err
		}
		end = nextEnd
	}
	return start, end, nil
}

func (c *Compiler) compileAlternate(subs []*syntax.Regexp) (start, end StateID, err error) {
	if len(subs) == 0 {
		return c.compileEmptyMatch()
	}
	if len(subs) == 1 {
		return c.compileRegexp(subs[0])
	}

	starts := make([]StateID, 0, len(subs))
	ends := make([]StateID, 0, len(subs))
	for _, sub := range subs {
		s, e, err := c.compileRegexp(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		starts = append(starts, s)
		ends = append(ends, e)
	}

	join := c.builder.AddEpsilon(InvalidState)
	for _, e := range ends {
		if err := c.connect(e, join); err != nil {
			return InvalidState, InvalidState, err
		}
	}
	return c.splitChain(starts), join, nil
}

// splitChain builds a right-leaning binary tree of Split states so that an
// n-way alternation costs n-1 extra states, matching the textbook
// Thompson construction for alternation with more than two branches.
func (c *Compiler) splitChain(targets []StateID) StateID {
	if len(targets) == 1 {
		return targets[0]
	}
	if len(targets) == 2 {
		return c.builder.AddSplit(targets[0], targets[1])
	}
	right := c.splitChain(targets[1:])
	return c.builder.AddSplit(targets[0], right)
}

func (c *Compiler) compileStar(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compileRegexp(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddSplit(subStart, end)
	if err := c.connect(subEnd, split); err != nil {
		return InvalidState, InvalidState, err
	}
	return split, end, nil
}

func (c *Compiler) compilePlus(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compileRegexp(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddSplit(subStart, end)
	if err := c.connect(subEnd, split); err != nil {
		return InvalidState, InvalidState, err
	}
	return subStart, end, nil
}

func (c *Compiler) compileQuest(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compileRegexp(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddSplit(subStart, end)
	if err := c.connect(subEnd, end); err != nil {
		return InvalidState, InvalidState, err
	}
	return split, end, nil
}

// compileRepeat unrolls {m,n} into concatenation plus optional tails, per
// 4.3: {m} is m copies, {m,} is m copies plus a star, {m,n} is m copies plus
// (n-m) optional copies in sequence.
func (c *Compiler) compileRepeat(sub *syntax.Regexp, minCount, maxCount int) (start, end StateID, err error) {
	if maxCount == -1 {
		if minCount == 0 {
			return c.compileStar(sub)
		}
		subs := repeatSubs(sub, minCount)
		subs = append(subs, &syntax.Regexp{Op: syntax.OpStar, Sub: []*syntax.Regexp{sub}})
		return c.compileConcat(subs)
	}
	if minCount == maxCount {
		if minCount == 0 {
			return c.compileEmptyMatch()
		}
		return c.compileConcat(repeatSubs(sub, minCount))
	}
	if minCount > maxCount {
		return InvalidState, InvalidState, fmt.Errorf("invalid repeat range {%d,%d}", minCount, maxCount)
	}
	subs := repeatSubs(sub, minCount)
	for i := 0; i < maxCount-minCount; i++ {
		subs = append(subs, &syntax.Regexp{Op: syntax.OpQuest, Sub: []*syntax.Regexp{sub}})
	}
	return c.compileConcat(subs)
}

func repeatSubs(sub *syntax.Regexp, n int) []*syntax.Regexp {
	subs := make([]*syntax.Regexp, n)
	for i := range subs {
		subs[i] = sub
	}
	return subs
}

func (c *Compiler) compileEmptyMatch() (start, end StateID, err error) {
	id := c.builder.AddEpsilon(InvalidState)
	return id, id, nil
}
