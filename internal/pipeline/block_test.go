package pipeline

import (
	"strings"
	"testing"

	"github.com/alnah/go-md2html/internal/diag"
)

func section(raws ...string) Section {
	var s Section
	for i, r := range raws {
		s.Lines = append(s.Lines, Line{Raw: r, Index: i})
	}
	return s
}

// ---------------------------------------------------------------------------
// TestRenderSection - Block Rendering
// ---------------------------------------------------------------------------

func TestRenderSection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "paragraphs",
			lines: []string{"a", "b"},
			want:  "<p>a</p>\n<p>b</p>\n",
		},
		{
			name:  "paragraph escapes gt",
			lines: []string{"a > b"},
			want:  "<p>a &gt; b</p>\n",
		},
		{
			name:  "blank lines emit nothing",
			lines: []string{"a", "", "  ", "b"},
			want:  "<p>a</p>\n<p>b</p>\n",
		},
		{
			name:  "atx heading",
			lines: []string{"# Title"},
			want:  "<h1>Title</h1>\n",
		},
		{
			name:  "atx heading with closing run",
			lines: []string{"### Title ###"},
			want:  "<h3>Title</h3>\n",
		},
		{
			name:  "atx heading keeps inner hash",
			lines: []string{"## C# notes"},
			want:  "<h2>C# notes</h2>\n",
		},
		{
			name:  "atx heading closing run without space",
			lines: []string{"# Title##"},
			want:  "<h1>Title</h1>\n",
		},
		{
			name:  "atx heading closing run with trailing spaces",
			lines: []string{"## Title ##  "},
			want:  "<h2>Title</h2>\n",
		},
		{
			name:  "setext marker under setext marker",
			lines: []string{"Title", "===", "==="},
			want:  "<h1>Title</h1>\n<p>===</p>\n",
		},
		{
			name:  "level six heading",
			lines: []string{"###### six"},
			want:  "<h6>six</h6>\n",
		},
		{
			name:  "setext h1",
			lines: []string{"Title", "====="},
			want:  "<h1>Title</h1>\n",
		},
		{
			name:  "setext h2",
			lines: []string{"Title", "----", "body"},
			want:  "<h2>Title</h2>\n<p>body</p>\n",
		},
		{
			name:  "blockquote per line",
			lines: []string{"> one", "> two"},
			want:  "<blockquote>one</blockquote>\n<blockquote>two</blockquote>\n",
		},
		{
			name:  "code block",
			lines: []string{"    a", "\tb > c", "after"},
			want:  "<pre><code>a\nb &gt; c\n</code></pre>\n<p>after</p>\n",
		},
		{
			name:  "code block closed at section end",
			lines: []string{"    a"},
			want:  "<pre><code>a\n</code></pre>\n",
		},
		{
			name:  "unordered list",
			lines: []string{"- a", "* b", "+ c"},
			want:  "<ul><li>a</li>\n<li>b</li>\n<li>c</li>\n</ul>\n",
		},
		{
			name:  "ordered list then paragraph",
			lines: []string{"1. a", "2. b", "x"},
			want:  "<ol><li>a</li>\n<li>b</li>\n</ol>\n<p>x</p>\n",
		},
		{
			name:  "list item escapes gt",
			lines: []string{"- a > b"},
			want:  "<ul><li>a &gt; b</li>\n</ul>\n",
		},
		{
			name:  "switching list kind",
			lines: []string{"- a", "1. b"},
			want:  "<ul><li>a</li>\n</ul>\n<ol><li>b</li>\n</ol>\n",
		},
		{
			name:  "blank line splits list",
			lines: []string{"- a", "", "- b"},
			want:  "<ul><li>a</li>\n</ul>\n<ul><li>b</li>\n</ul>\n",
		},
		{
			name:  "code after list",
			lines: []string{"- a", "    code"},
			want:  "<ul><li>a</li>\n</ul>\n<pre><code>code\n</code></pre>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &diag.Recorder{}
			got := RenderSection(section(tt.lines...), rec)
			if got != tt.want {
				t.Errorf("RenderSection(%q) = %q, want %q", tt.lines, got, tt.want)
			}
			if d := rec.Diagnostics(); len(d) != 0 {
				t.Errorf("unexpected diagnostics: %v", d)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRenderSection_Fallbacks - Block-structure Failures
// ---------------------------------------------------------------------------

func TestRenderSection_Fallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		wantCode diag.Code
		wantCtx  string
		want     string
	}{
		{
			name:     "heading deeper than six",
			line:     "####### deep",
			wantCode: diag.HeadingParseFailure,
			wantCtx:  "heading deeper than 6: ####### deep",
			want:     "<p>####### deep</p>\n",
		},
		{
			name:     "blockquote without content",
			line:     ">   ",
			wantCode: diag.BlockquoteParseFailure,
			wantCtx:  ">   ",
			want:     "<p>&gt;   </p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &diag.Recorder{}
			got := RenderSection(section(tt.line), rec)
			if got != tt.want {
				t.Errorf("RenderSection(%q) = %q, want %q", tt.line, got, tt.want)
			}
			d := rec.Diagnostics()
			if len(d) != 1 {
				t.Fatalf("got %d diagnostics, want 1: %v", len(d), d)
			}
			if d[0].Code != tt.wantCode || d[0].Severity != diag.Critical || d[0].Context != tt.wantCtx {
				t.Errorf("diagnostic = %+v, want CRITICAL %s with context %q", d[0], tt.wantCode, tt.wantCtx)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRenderSection_Closure - Open Construct Properties
// ---------------------------------------------------------------------------

func TestRenderSection_CodeBlockClosure(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 6; n++ {
		lines := make([]string, 0, n+1)
		for i := 0; i < n; i++ {
			lines = append(lines, "    line")
		}
		lines = append(lines, "after")

		got := RenderSection(section(lines...), nil)
		if c := strings.Count(got, "<pre><code>"); c != 1 {
			t.Errorf("n=%d: %d opening tags, want 1", n, c)
		}
		if c := strings.Count(got, "</code></pre>"); c != 1 {
			t.Errorf("n=%d: %d closing tags, want 1", n, c)
		}
		if c := strings.Count(got, "line\n"); c != n {
			t.Errorf("n=%d: %d code lines, want %d", n, c, n)
		}
	}
}

func TestRenderSection_ListClosure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		marker    string
		open      string
		close     string
		withAfter bool
	}{
		{name: "bullets then text", marker: "- ", open: "<ul>", close: "</ul>", withAfter: true},
		{name: "bullets at section end", marker: "* ", open: "<ul>", close: "</ul>"},
		{name: "ordered then text", marker: "1. ", open: "<ol>", close: "</ol>", withAfter: true},
		{name: "ordered at section end", marker: "9. ", open: "<ol>", close: "</ol>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for n := 1; n <= 5; n++ {
				var lines []string
				for i := 0; i < n; i++ {
					lines = append(lines, tt.marker+"item")
				}
				if tt.withAfter {
					lines = append(lines, "after")
				}

				got := RenderSection(section(lines...), nil)
				if c := strings.Count(got, tt.open); c != 1 {
					t.Errorf("n=%d: %d %s tags, want 1 in %q", n, c, tt.open, got)
				}
				if c := strings.Count(got, "<li>"); c != n {
					t.Errorf("n=%d: %d <li> tags, want %d", n, c, n)
				}
				if c := strings.Count(got, tt.close); c != 1 {
					t.Errorf("n=%d: %d %s tags, want 1 in %q", n, c, tt.close, got)
				}
			}
		})
	}
}
