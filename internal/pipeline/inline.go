package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-md2html/internal/diag"
)

// Placeholder runes from the Unicode Private Use Area. Rendered inline HTML is
// stashed and replaced by tokenStart + index + tokenEnd until the document is
// assembled, so later patterns and block escaping see it as opaque text.
const (
	tokenStart = "\uE000"
	tokenEnd   = "\uE001"
)

// Precompiled regex patterns for performance.
var (
	// Inline tokens
	tokenRe = regexp.MustCompile(tokenStart + `([0-9]+)` + tokenEnd)

	// Strict re-parse of bracketed segments
	linkShape  = regexp.MustCompile(`(?s)^\[(.*?)\]\(([^)]*)\)$`)
	imageShape = regexp.MustCompile(`(?s)^!\[(.*?)\]\(([^)]*)\)$`)

	// URL schemes neutralized in safe mode
	unsafeScheme = regexp.MustCompile(`(?i)^\s*(javascript|vbscript|data):`)

	tokenRunes = strings.NewReplacer(tokenStart, "", tokenEnd, "")
)

// Built-in pattern expressions. Each keeps the longest possible prefix, which
// selects the right-most occurrence on the line.
const (
	codeExpr     = "(?s)^(.*)`([^`]*)`(.*)$"
	emphasisExpr = `(?s)^(.*[^*]|)\*([^*\s](?:[^*]*[^*\s])?)\*((?:[^*].*)?)$`
	strongExpr   = `(?s)^(.*)\*\*(\S(?:.*?\S)?)\*\*(.*)$`
)

// Built-in pattern names.
const (
	PatternCode     = "code"
	PatternEmphasis = "emphasis"
	PatternStrong   = "strong"
	PatternLink     = "link"
	PatternImage    = "image"
)

// DefaultPatterns returns the built-in inline patterns in application order:
// code span, emphasis, strong, link, image.
func DefaultPatterns(safeMode bool) []Pattern {
	return []Pattern{
		MustRegexpPattern(PatternCode, codeExpr, wrapRender("code")),
		MustRegexpPattern(PatternEmphasis, emphasisExpr, wrapRender("em")),
		MustRegexpPattern(PatternStrong, strongExpr, wrapRender("strong")),
		NewPattern(PatternLink, findLink, renderLink(safeMode)),
		NewPattern(PatternImage, findImage, renderImage(safeMode)),
	}
}

// WrapRender returns a RenderFunc wrapping the captured text in tag with > escaped.
func WrapRender(tag string) RenderFunc {
	return wrapRender(tag)
}

func wrapRender(tag string) RenderFunc {
	return func(captured string) (string, error) {
		return "<" + tag + ">" + EscapeGT(captured) + "</" + tag + ">", nil
	}
}

func findLink(line string) (Match, bool)  { return findBracketed(line, false) }
func findImage(line string) (Match, bool) { return findBracketed(line, true) }

func renderLink(safeMode bool) RenderFunc {
	return func(captured string) (string, error) {
		m := linkShape.FindStringSubmatch(captured)
		if m == nil {
			return "", ErrNoInnerMatch
		}
		return fmt.Sprintf(`<a href="%s" title="%s" />`, EscapeAttr(targetURL(m[2], safeMode)), EscapeAttr(m[1])), nil
	}
}

func renderImage(safeMode bool) RenderFunc {
	return func(captured string) (string, error) {
		m := imageShape.FindStringSubmatch(captured)
		if m == nil {
			return "", ErrNoInnerMatch
		}
		return fmt.Sprintf(`<img src="%s" title="%s" />`, EscapeAttr(targetURL(m[2], safeMode)), EscapeAttr(m[1])), nil
	}
}

// targetURL trims the target and, in safe mode, replaces script and data URLs.
func targetURL(raw string, safeMode bool) string {
	u := strings.TrimSpace(raw)
	if safeMode && unsafeScheme.MatchString(u) {
		return "#"
	}
	return u
}

// stash holds rendered inline HTML for one conversion.
type stash struct {
	items []string
}

// put stores html and returns its placeholder token.
func (s *stash) put(html string) string {
	s.items = append(s.items, html)
	return tokenStart + strconv.Itoa(len(s.items)-1) + tokenEnd
}

// expand replaces every token in text with its HTML. Stashed HTML can itself
// hold tokens of earlier matches, so expansion repeats until none remain.
func (s *stash) expand(text string) string {
	for range len(s.items) + 1 {
		if !strings.Contains(text, tokenStart) {
			return text
		}
		text = tokenRe.ReplaceAllStringFunc(text, func(tok string) string {
			i, err := strconv.Atoi(tok[len(tokenStart) : len(tok)-len(tokenEnd)])
			if err != nil || i < 0 || i >= len(s.items) {
				return ""
			}
			return s.items[i]
		})
	}
	return text
}

// stripTokenRunes removes placeholder runes from user text.
func stripTokenRunes(text string) string {
	if !strings.ContainsAny(text, tokenStart+tokenEnd) {
		return text
	}
	return tokenRunes.Replace(text)
}

// inlineEngine applies patterns to single lines.
type inlineEngine struct {
	patterns []Pattern
	sink     diag.Sink
	stash    stash
}

// render applies each pattern once, in order, to line.
func (e *inlineEngine) render(line string) string {
	for _, p := range e.patterns {
		if p == nil {
			continue
		}
		m, ok := p.Find(line)
		if !ok {
			continue
		}
		if m.Start < 0 || m.End < m.Start || m.End > len(line) {
			e.sink.Record(diag.Critical, diag.PatternMatchFailure, p.Name()+": "+e.stash.expand(line))
			continue
		}
		html, err := p.Render(m.Captured)
		if err != nil {
			// The segment stays as literal text, opaque to later patterns.
			e.sink.Record(diag.Critical, diag.PatternMatchFailure, p.Name()+": "+e.stash.expand(m.Captured))
			html = EscapeGT(m.Captured)
		}
		line = line[:m.Start] + e.stash.put(html) + line[m.End:]
	}
	return line
}

// RenderInline applies patterns to one already-normalized line and returns
// the resulting HTML. Failures are recorded to sink.
func RenderInline(line string, patterns []Pattern, sink diag.Sink) string {
	if sink == nil {
		sink = diag.Nop
	}
	e := &inlineEngine{patterns: patterns, sink: sink}
	return e.stash.expand(e.render(line))
}
