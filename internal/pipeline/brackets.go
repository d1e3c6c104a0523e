package pipeline

import "strings"

// MaxBracketNesting is the deepest [...] nesting accepted inside link text,
// not counting the outer brackets.
const MaxBracketNesting = 6

// scanBracketed reads a balanced [...] group starting at line[open].
// It returns the index just past the closing bracket. Groups nested deeper
// than MaxBracketNesting, or never closed, are rejected.
func scanBracketed(line string, open int) (int, bool) {
	if open >= len(line) || line[open] != '[' {
		return 0, false
	}
	depth := 0
	for i := open; i < len(line); i++ {
		switch line[i] {
		case '[':
			depth++
			if depth > MaxBracketNesting+1 {
				return 0, false
			}
		case ']':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// scanTarget reads optional whitespace, '(' and the target up to the first
// ')' starting at line[pos]. A target left open ends at the next whitespace
// so the malformed segment still reaches Render and the rest of the line
// is untouched.
func scanTarget(line string, pos int) (int, bool) {
	for pos < len(line) && isSpace(line[pos]) {
		pos++
	}
	if pos >= len(line) || line[pos] != '(' {
		return 0, false
	}
	if end := strings.IndexByte(line[pos:], ')'); end >= 0 {
		return pos + end + 1, true
	}
	if end := strings.IndexAny(line[pos:], " \t\n\v\f\r"); end >= 0 {
		return pos + end, true
	}
	return len(line), true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r'
}

// findBracketed returns the right-most `[text](target)` segment. With image
// set the segment must start with '!'; otherwise a '[' preceded by '!' is
// skipped.
func findBracketed(line string, image bool) (Match, bool) {
	for i := strings.LastIndexByte(line, '['); i >= 0; i = strings.LastIndexByte(line[:i], '[') {
		bang := i > 0 && line[i-1] == '!'
		if bang != image {
			continue
		}
		closeAt, ok := scanBracketed(line, i)
		if !ok {
			continue
		}
		end, ok := scanTarget(line, closeAt)
		if !ok {
			continue
		}
		start := i
		if image {
			start = i - 1
		}
		return Match{Start: start, End: end, Captured: line[start:end]}, true
	}
	return Match{}, false
}
