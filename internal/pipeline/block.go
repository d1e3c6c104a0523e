package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-md2html/internal/diag"
)

// MaxHeadingLevel is the deepest atx heading rendered as a heading.
const MaxHeadingLevel = 6

// headingTooDeep prefixes the context of a heading-parse-failure.
var headingTooDeep = "heading deeper than " + strconv.Itoa(MaxHeadingLevel) + ": "

// Construct is a multi-line block whose closing tag is still pending.
type Construct int

// Open constructs.
const (
	None Construct = iota
	CodeBlock
	UnorderedList
	OrderedList
)

// constructs maps each open construct to its tags and to the category that
// keeps it open.
var constructs = map[Construct]struct {
	open, close string
	continues   Category
}{
	CodeBlock:     {open: "<pre><code>", close: "</code></pre>\n", continues: Code},
	UnorderedList: {open: "<ul>", close: "</ul>\n", continues: BulletItem},
	OrderedList:   {open: "<ol>", close: "</ol>\n", continues: OrderedItem},
}

// Precompiled regex patterns for performance.
var (
	// Atx heading: leading run and content
	headingRe = regexp.MustCompile(`^(#+)(.*)$`)

	// Closing run of an atx heading
	headingCloseRe = regexp.MustCompile(`#+\s*$`)

	// Blockquote content
	blockquoteRe = regexp.MustCompile(`^> (.*)$`)
)

// RenderState is the per-section state of the block renderer. Previous and
// PreviousCategory describe the line rendered last.
type RenderState struct {
	Previous         string
	PreviousCategory Category
	Open             Construct
	out              strings.Builder
}

// String returns the HTML emitted so far.
func (s *RenderState) String() string {
	return s.out.String()
}

// blockRenderer renders sections to HTML fragments.
type blockRenderer struct {
	sink diag.Sink
	// readable turns a tokenized line back into text for diagnostics.
	readable func(string) string
}

// RenderSection renders one section of plain (already inline-rendered) lines.
func RenderSection(sec Section, sink diag.Sink) string {
	if sink == nil {
		sink = diag.Nop
	}
	r := &blockRenderer{sink: sink, readable: func(s string) string { return s }}
	return r.render(sec)
}

func (r *blockRenderer) render(sec Section) string {
	st := RenderState{PreviousCategory: Blank}
	for i, line := range sec.Lines {
		c := Classify(line.Raw, st.PreviousCategory)
		r.closeUnless(&st, c)

		switch c {
		case Blank:
		case Heading:
			r.heading(&st, line.Raw)
		case SetextH1, SetextH2:
			level := 1
			if c == SetextH2 {
				level = 2
			}
			writeHeading(&st, level, strings.TrimSpace(st.Previous))
		case Blockquote:
			r.blockquote(&st, line.Raw)
		case Code:
			r.openOrContinue(&st, CodeBlock)
			st.out.WriteString(EscapeGT(codeContent(line.Raw)))
			st.out.WriteByte('\n')
		case BulletItem, OrderedItem:
			kind := UnorderedList
			if c == OrderedItem {
				kind = OrderedList
			}
			r.openOrContinue(&st, kind)
			st.out.WriteString("<li>" + EscapeGT(listItemContent(line.Raw, c)) + "</li>\n")
		default:
			if i+1 < len(sec.Lines) && Classify(sec.Lines[i+1].Raw, c).IsSetext() {
				// Emitted by the marker on the next line.
				break
			}
			writeParagraph(&st, line.Raw)
		}
		st.Previous = line.Raw
		st.PreviousCategory = c
	}
	r.closeUnless(&st, Blank)
	return st.String()
}

// closeUnless emits the pending closing tag when c does not continue the
// open construct.
func (r *blockRenderer) closeUnless(st *RenderState, c Category) {
	if st.Open == None {
		return
	}
	if k := constructs[st.Open]; k.continues != c {
		st.out.WriteString(k.close)
		st.Open = None
	}
}

// openOrContinue emits the opening tag of kind unless it is already open.
func (r *blockRenderer) openOrContinue(st *RenderState, kind Construct) {
	if st.Open == kind {
		return
	}
	st.out.WriteString(constructs[kind].open)
	st.Open = kind
}

func (r *blockRenderer) heading(st *RenderState, line string) {
	level, content, ok := parseHeading(line)
	if !ok {
		r.sink.Record(diag.Critical, diag.HeadingParseFailure, headingTooDeep+r.readable(line))
		writeParagraph(st, line)
		return
	}
	writeHeading(st, level, content)
}

func (r *blockRenderer) blockquote(st *RenderState, line string) {
	m := blockquoteRe.FindStringSubmatch(line)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		r.sink.Record(diag.Critical, diag.BlockquoteParseFailure, r.readable(line))
		writeParagraph(st, line)
		return
	}
	st.out.WriteString("<blockquote>" + m[1] + "</blockquote>\n")
}

// parseHeading returns the level and content of an atx heading line.
func parseHeading(line string) (int, string, bool) {
	m := headingRe.FindStringSubmatch(line)
	if m == nil || len(m[1]) > MaxHeadingLevel {
		return 0, "", false
	}
	content := headingCloseRe.ReplaceAllString(m[2], "")
	return len(m[1]), strings.TrimSpace(content), true
}

func writeHeading(st *RenderState, level int, content string) {
	tag := "h" + strconv.Itoa(level)
	st.out.WriteString("<" + tag + ">" + content + "</" + tag + ">\n")
}

func writeParagraph(st *RenderState, line string) {
	st.out.WriteString("<p>" + EscapeGT(line) + "</p>\n")
}
