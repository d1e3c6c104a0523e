package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Bare ampersand, or an ampersand that already starts an entity
	ampersand = regexp.MustCompile(`&(#[0-9]+;|#[xX][0-9a-fA-F]+;|[A-Za-z][A-Za-z0-9]*;)?`)
)

// Substitution is a character-level rewrite applied to the whole document
// before line splitting.
type Substitution struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply rewrites every match of the substitution in text.
func (s Substitution) Apply(text string) string {
	if s.Pattern == nil {
		return text
	}
	return s.Pattern.ReplaceAllString(text, s.Replacement)
}

// Normalize applies the fixed pre-split substitutions (CRLF/CR to LF, & and <
// escaping) followed by subs in order.
// Placeholder runes are stripped first so user text cannot forge inline tokens.
func Normalize(text string, subs []Substitution) string {
	text = stripTokenRunes(text)
	text = normalizeLineEndings(text)
	text = escapeAmpersands(text)
	text = strings.ReplaceAll(text, "<", "&lt;")
	for _, s := range subs {
		text = s.Apply(text)
	}
	return text
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(text string) string {
	return crlfOrCR.ReplaceAllString(text, "\n")
}

// escapeAmpersands escapes & unless it already begins a character reference,
// which keeps escaping idempotent.
func escapeAmpersands(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}
	return ampersand.ReplaceAllStringFunc(text, func(m string) string {
		if m == "&" {
			return "&amp;"
		}
		return m
	})
}

// EscapeGT escapes > for block content.
func EscapeGT(s string) string {
	return strings.ReplaceAll(s, ">", "&gt;")
}

// EscapeAttr escapes a value placed inside a double-quoted attribute.
func EscapeAttr(s string) string {
	return strings.ReplaceAll(EscapeGT(s), `"`, "&quot;")
}
