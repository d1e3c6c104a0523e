package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrGoldmarkConversion indicates the goldmark engine failed.
var ErrGoldmarkConversion = errors.New("goldmark conversion failed")

// GoldmarkEngine renders full CommonMark with goldmark inside the same fixed
// document frame as Render.
type GoldmarkEngine struct {
	md goldmark.Markdown
}

// NewGoldmarkEngine creates a GoldmarkEngine with GFM, footnotes and chroma
// class-based highlighting. Raw HTML in the input is not passed through.
func NewGoldmarkEngine() *GoldmarkEngine {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &GoldmarkEngine{md: md}
}

// Render converts text to a Document. Goldmark has no context support, so
// the conversion runs in a goroutine and ctx only bounds the wait.
func (e *GoldmarkEngine) Render(ctx context.Context, text string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	type result struct {
		doc Document
		err error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := e.md.Convert([]byte(normalizeLineEndings(text)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrGoldmarkConversion, err)}
			return
		}
		done <- result{doc: Wrap(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return Document{}, ctx.Err()
	case r := <-done:
		return r.doc, r.err
	}
}
