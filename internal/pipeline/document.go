package pipeline

import (
	"strings"

	"github.com/alnah/go-md2html/internal/diag"
)

// Fixed document boilerplate.
const (
	DocumentHeader = "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Document</title>\n</head>\n<body>\n"
	DocumentFooter = "</body>\n</html>"
)

// Document is an assembled HTML document.
type Document struct {
	Header string
	Body   string
	Footer string
}

// String concatenates header, body and footer.
func (d Document) String() string {
	return d.Header + d.Body + d.Footer
}

// Wrap places body between the fixed header and footer.
func Wrap(body string) Document {
	return Document{Header: DocumentHeader, Body: body, Footer: DocumentFooter}
}

// Options configures a single Render call.
type Options struct {
	// Patterns is the ordered inline pattern list. Nil means DefaultPatterns(SafeMode).
	Patterns []Pattern
	// Substitutions run after the fixed pre-split escaping, in order.
	Substitutions []Substitution
	// Sink receives diagnostics. Nil discards them.
	Sink diag.Sink
	// SafeMode selects the safe built-in patterns when Patterns is nil.
	SafeMode bool
}

// Render converts markup text into an HTML document. It never fails: problems
// with single lines or spans are recorded to opts.Sink and rendered with a
// fallback.
func Render(text string, opts Options) Document {
	sink := opts.Sink
	if sink == nil {
		sink = diag.Nop
	}
	if strings.TrimSpace(text) == "" {
		sink.Record(diag.Warning, diag.EmptyInput, "")
		return Wrap("")
	}

	patterns := opts.Patterns
	if patterns == nil {
		patterns = DefaultPatterns(opts.SafeMode)
	}

	engine := &inlineEngine{patterns: patterns, sink: sink}
	raw := SplitLines(Normalize(text, opts.Substitutions))
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = engine.render(line)
	}

	blocks := &blockRenderer{sink: sink, readable: engine.stash.expand}
	var body strings.Builder
	for _, sec := range BuildSections(lines) {
		body.WriteString(blocks.render(sec))
	}
	return Wrap(engine.stash.expand(body.String()))
}
