package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkEngine_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
	}{
		{
			name:         "heading with id",
			input:        "# Hello",
			wantContains: []string{`<h1 id="hello">Hello</h1>`},
		},
		{
			name:         "gfm table",
			input:        "| a | b |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "strikethrough",
			input:        "~~gone~~",
			wantContains: []string{"<del>gone</del>"},
		},
		{
			name:         "fenced code highlighted with classes",
			input:        "```go\nfunc main() {}\n```",
			wantContains: []string{`class="chroma"`},
		},
		{
			name:         "raw html omitted",
			input:        "<script>alert(1)</script>",
			wantContains: []string{"<!-- raw HTML omitted -->"},
		},
		{
			name:         "CRLF normalized",
			input:        "a\r\n\r\nb",
			wantContains: []string{"<p>a</p>", "<p>b</p>"},
		},
	}

	engine := NewGoldmarkEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := engine.Render(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if doc.Header != DocumentHeader || doc.Footer != DocumentFooter {
				t.Errorf("Render() did not use the fixed document frame")
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(doc.Body, want) {
					t.Errorf("Render().Body = %q, want to contain %q", doc.Body, want)
				}
			}
		})
	}
}

func TestGoldmarkEngine_RenderCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkEngine().Render(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want %v", err, context.Canceled)
	}
}
