package md2html

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-md2html/internal/diag"
	"github.com/alnah/go-md2html/internal/extension"
	"github.com/alnah/go-md2html/internal/pipeline"
	"github.com/alnah/go-md2html/internal/textenc"
)

// Compile-time interface implementation checks.
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
	_ Sink         = (*diag.Recorder)(nil)
)

// Converter orchestrates the markup-to-HTML pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
//
// The pattern and substitution lists are fixed when the converter is built,
// so Convert is safe for concurrent use. PDF export serializes on one browser.
type Converter struct {
	cfg           converterConfig
	patterns      []pipeline.Pattern
	substitutions []pipeline.Substitution
	applied       []string
	setup         []Diagnostic
	goldmark      *pipeline.GoldmarkEngine
	pdfConverter  pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Named extensions are resolved and applied here, once. An extension that
// cannot be found or that rejects its configuration is skipped and reported
// by SetupDiagnostics. Returns error for an unknown engine or an invalid
// custom extension registration.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{timeout: defaultTimeout, engine: EngineNative},
	}

	for _, opt := range opts {
		opt(c)
	}

	switch c.cfg.engine {
	case "", EngineNative:
		c.cfg.engine = EngineNative
	case EngineGoldmark:
		c.goldmark = pipeline.NewGoldmarkEngine()
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownEngine, c.cfg.engine, EngineNative, EngineGoldmark)
	}

	catalog := extension.NewCatalog()
	for _, ce := range c.cfg.custom {
		if err := catalog.Register(ce.name, ce.ext); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExtension, err)
		}
	}

	rec := &diag.Recorder{}
	registry := extension.NewRegistry(pipeline.DefaultPatterns(c.cfg.safeMode), nil)
	c.applied = extension.Apply(registry, catalog, c.cfg.extensions, c.cfg.extConfigs, diag.Tee(rec, c.cfg.sink))
	c.patterns = registry.Patterns()
	c.substitutions = registry.Substitutions()
	c.setup = rec.Diagnostics()

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert renders one document. Content problems never return an error:
// they are listed in Result.Diagnostics with a fallback rendering.
// Errors come from ctx, PDF export, or the goldmark engine.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Text != "" && input.Raw != nil {
		return nil, ErrConflictingInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := &diag.Recorder{}
	sink := diag.Tee(rec, c.cfg.sink)

	text, encoding := c.decode(input, sink)

	doc, err := c.render(ctx, text, sink)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page := doc.String()
	res := &Result{HTML: []byte(page), Encoding: encoding}

	if input.PDF {
		// Rewrite relative paths to absolute file:// URLs so Chrome can load
		// them from the temp file.
		if input.SourceDir != "" {
			page, err = pipeline.RewriteRelativePaths(page, input.SourceDir)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrPathRewrite, err)
			}
		}
		res.PDF, err = c.pdfConverter.ToPDF(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("converting to PDF: %w", err)
		}
	}

	res.Diagnostics = rec.Diagnostics()
	return res, nil
}

// decode returns the canonical text of input and its encoding name.
// Undecodable bytes are a warning and yield empty text.
func (c *Converter) decode(input Input, sink Sink) (string, string) {
	if input.Raw == nil {
		return input.Text, textenc.UTF8
	}
	text, encoding, err := textenc.Decode(input.Raw)
	if err != nil {
		sink.Record(diag.Warning, diag.DecodeFailure, err.Error())
		return "", ""
	}
	return text, encoding
}

// render runs the configured engine.
func (c *Converter) render(ctx context.Context, text string, sink Sink) (pipeline.Document, error) {
	if c.cfg.engine != EngineGoldmark {
		return pipeline.Render(text, pipeline.Options{
			Patterns:      c.patterns,
			Substitutions: c.substitutions,
			Sink:          sink,
		}), nil
	}

	if strings.TrimSpace(text) == "" {
		sink.Record(diag.Warning, diag.EmptyInput, "")
		return pipeline.Wrap(""), nil
	}
	doc, err := c.goldmark.Render(ctx, text)
	if err != nil {
		return pipeline.Document{}, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return doc, nil
}

// Extensions returns the names of the extensions that were applied.
func (c *Converter) Extensions() []string {
	out := make([]string, len(c.applied))
	copy(out, c.applied)
	return out
}

// SetupDiagnostics returns the extension-load failures recorded by NewConverter.
func (c *Converter) SetupDiagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.setup))
	copy(out, c.setup)
	return out
}

// Engine returns the renderer in use.
func (c *Converter) Engine() Engine {
	return c.cfg.engine
}

// Close releases resources (headless Chrome browser, if one was started).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
