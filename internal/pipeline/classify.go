package pipeline

import (
	"regexp"
	"strings"
)

// Category is the structural class of a raw line.
type Category int

// Line categories, in classification priority order.
const (
	Text Category = iota
	Blank
	Heading
	SetextH1
	SetextH2
	Blockquote
	Code
	BulletItem
	OrderedItem
)

var categoryNames = [...]string{
	Text:        "text",
	Blank:       "blank",
	Heading:     "heading",
	SetextH1:    "setext-h1",
	SetextH2:    "setext-h2",
	Blockquote:  "blockquote",
	Code:        "code",
	BulletItem:  "bullet-item",
	OrderedItem: "ordered-item",
}

// String returns the category name.
func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// Precompiled regex patterns for performance.
var (
	// Setext markers (whole line)
	setextH1Re = regexp.MustCompile(`^=+\s*$`)
	setextH2Re = regexp.MustCompile(`^-{2,}\s*$`)

	// List items
	bulletItemRe  = regexp.MustCompile(`^ {0,3}[*+-]\s+(.*)$`)
	orderedItemRe = regexp.MustCompile(`^ {0,3}[0-9]+\.\s+(.*)$`)
)

// Classify maps line to its category. previous is the category of the line
// before it and only matters for setext markers, which need plain text above.
func Classify(line string, previous Category) Category {
	switch {
	case strings.TrimSpace(line) == "":
		return Blank
	case strings.HasPrefix(line, "#"):
		return Heading
	case setextH1Re.MatchString(line) && previous == Text:
		return SetextH1
	case setextH2Re.MatchString(line) && previous == Text:
		return SetextH2
	case strings.HasPrefix(line, "> "):
		return Blockquote
	case strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "    "):
		return Code
	case bulletItemRe.MatchString(line):
		return BulletItem
	case orderedItemRe.MatchString(line):
		return OrderedItem
	default:
		return Text
	}
}

// IsSetext reports whether c is a setext heading marker.
func (c Category) IsSetext() bool {
	return c == SetextH1 || c == SetextH2
}

// listItemContent returns the text after a list marker.
func listItemContent(line string, c Category) string {
	re := bulletItemRe
	if c == OrderedItem {
		re = orderedItemRe
	}
	if m := re.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return line
}

// codeContent strips one indentation level.
func codeContent(line string) string {
	if strings.HasPrefix(line, "\t") {
		return line[1:]
	}
	return strings.TrimPrefix(line, "    ")
}
