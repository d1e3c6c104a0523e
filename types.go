package md2html

import (
	"github.com/alnah/go-md2html/internal/diag"
	"github.com/alnah/go-md2html/internal/extension"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Input is one document to convert.
type Input struct {
	// Text is markup already decoded to UTF-8.
	Text string
	// Raw is undecoded markup bytes. The encoding is detected.
	// Setting both Text and Raw is an error.
	Raw []byte
	// SourceDir resolves relative image and link paths for PDF export.
	SourceDir string
	// PDF also renders the document to PDF with headless Chrome.
	PDF bool
}

// Result holds the output of one conversion.
type Result struct {
	HTML []byte
	PDF  []byte // nil unless Input.PDF was set
	// Encoding is the detected encoding of Input.Raw ("utf-8" for Text).
	// Empty when Raw could not be decoded.
	Encoding string
	// Diagnostics lists the problems found in this document.
	Diagnostics []Diagnostic
}

// Engine selects the markup renderer.
type Engine string

// Available engines.
const (
	EngineNative   Engine = "native"
	EngineGoldmark Engine = "goldmark"
)

// Core types shared with the pipeline and extension packages.
type (
	Pattern       = pipeline.Pattern
	Match         = pipeline.Match
	RenderFunc    = pipeline.RenderFunc
	Substitution  = pipeline.Substitution
	Registry      = extension.Registry
	Extension     = extension.Extension
	ExtensionFunc = extension.Func
	Sink          = diag.Sink
	Diagnostic    = diag.Diagnostic
	Severity      = diag.Severity
	Code          = diag.Code
)

// Diagnostic severities.
const (
	SeverityDebug    = diag.Debug
	SeverityInfo     = diag.Info
	SeverityWarning  = diag.Warning
	SeverityError    = diag.Error
	SeverityCritical = diag.Critical
)

// Diagnostic codes.
const (
	CodePatternMatchFailure    = diag.PatternMatchFailure
	CodeHeadingParseFailure    = diag.HeadingParseFailure
	CodeBlockquoteParseFailure = diag.BlockquoteParseFailure
	CodeExtensionLoadFailure   = diag.ExtensionLoadFailure
	CodeEmptyInput             = diag.EmptyInput
	CodeDecodeFailure          = diag.DecodeFailure
)

// NewRegexpPattern builds an inline pattern from a three-group expression:
// leading text, captured content, trailing text.
func NewRegexpPattern(name, expr string, render RenderFunc) (Pattern, error) {
	p, err := pipeline.NewRegexpPattern(name, expr, render)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// BuiltinExtensions returns the names of the bundled extensions.
func BuiltinExtensions() []string {
	return extension.NewCatalog().Names()
}
