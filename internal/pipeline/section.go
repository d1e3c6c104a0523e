package pipeline

import "strings"

// Line is one line of the normalized, inline-rendered document.
type Line struct {
	Raw   string
	Index int
}

// Section is a run of lines bounded by headings.
type Section struct {
	Lines []Line
}

// BuildSections groups lines into sections. A section starts at every atx
// heading and at every setext marker; for a setext marker the content line
// above it moves into the new section. Empty sections are dropped.
func BuildSections(lines []string) []Section {
	var (
		sections []Section
		current  Section
		previous = Blank
	)
	flush := func() {
		if len(current.Lines) > 0 {
			sections = append(sections, current)
		}
		current = Section{}
	}

	for i, raw := range lines {
		line := Line{Raw: raw, Index: i}
		c := Classify(raw, previous)
		switch {
		case c == Heading:
			flush()
			current.Lines = append(current.Lines, line)
		case c.IsSetext() && len(current.Lines) > 0:
			content := current.Lines[len(current.Lines)-1]
			current.Lines = current.Lines[:len(current.Lines)-1]
			flush()
			current.Lines = append(current.Lines, content, line)
		default:
			current.Lines = append(current.Lines, line)
		}
		previous = c
	}
	flush()
	return sections
}

// SplitLines turns normalized text into lines. The text is terminated with
// two blank lines first so the last construct always closes.
func SplitLines(text string) []string {
	return strings.Split(text+"\n\n", "\n")
}
