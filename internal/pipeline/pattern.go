package pipeline

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrNoInnerMatch indicates a pattern's outer delimiters matched but the
// required inner structure did not.
var ErrNoInnerMatch = errors.New("inner structure did not match")

// Match locates one occurrence of a pattern in a line.
// Line[Start:End] is the region that gets replaced; Captured is the text
// handed to Render.
type Match struct {
	Start    int
	End      int
	Captured string
}

// Pattern is a single inline rule.
//
// Find reports the occurrence that leaves the longest possible prefix before
// it (the right-most one). Render turns the captured text into HTML; an error
// marks the segment as malformed.
type Pattern interface {
	Name() string
	Find(line string) (Match, bool)
	Render(captured string) (string, error)
}

// RenderFunc renders the captured text of a match.
type RenderFunc func(captured string) (string, error)

// RegexpPattern is a Pattern driven by a regular expression of the form
// `(?s)^(prefix)...(captured)...(suffix)$`: the first group is kept before
// the replacement, the second is captured and the last is kept after it.
// Anything else between the first and last group is replaced.
type RegexpPattern struct {
	name   string
	re     *regexp.Regexp
	render RenderFunc
}

// Compile-time interface check.
var _ Pattern = (*RegexpPattern)(nil)

// NewRegexpPattern compiles expr into a RegexpPattern.
// A greedy leading group selects the right-most occurrence.
func NewRegexpPattern(name, expr string, render RenderFunc) (*RegexpPattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", name, err)
	}
	if re.NumSubexp() < 3 {
		return nil, fmt.Errorf("pattern %q: need prefix, captured and suffix groups, got %d", name, re.NumSubexp())
	}
	if render == nil {
		return nil, fmt.Errorf("pattern %q: nil render function", name)
	}
	return &RegexpPattern{name: name, re: re, render: render}, nil
}

// MustRegexpPattern is like NewRegexpPattern but panics on error.
// Used for the package-level built-ins.
func MustRegexpPattern(name, expr string, render RenderFunc) *RegexpPattern {
	p, err := NewRegexpPattern(name, expr, render)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the pattern name used in diagnostics.
func (p *RegexpPattern) Name() string { return p.name }

// Find returns the right-most occurrence in line.
func (p *RegexpPattern) Find(line string) (Match, bool) {
	loc := p.re.FindStringSubmatchIndex(line)
	if loc == nil {
		return Match{}, false
	}
	last := p.re.NumSubexp()
	prefixEnd := loc[3]
	suffixStart := loc[2*last]
	if prefixEnd < 0 || suffixStart < 0 || loc[4] < 0 {
		return Match{}, false
	}
	return Match{
		Start:    prefixEnd,
		End:      suffixStart,
		Captured: line[loc[4]:loc[5]],
	}, true
}

// Render renders captured text.
func (p *RegexpPattern) Render(captured string) (string, error) {
	return p.render(captured)
}

// patternFunc adapts a find function and a render function to Pattern.
type patternFunc struct {
	name   string
	find   func(line string) (Match, bool)
	render RenderFunc
}

func (p patternFunc) Name() string                           { return p.name }
func (p patternFunc) Find(line string) (Match, bool)         { return p.find(line) }
func (p patternFunc) Render(captured string) (string, error) { return p.render(captured) }

// NewPattern builds a Pattern from arbitrary find and render functions.
func NewPattern(name string, find func(line string) (Match, bool), render RenderFunc) Pattern {
	return patternFunc{name: name, find: find, render: render}
}
