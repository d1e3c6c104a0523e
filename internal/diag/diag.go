// Package diag defines the diagnostic channel used by the conversion core.
//
// The core never writes logs itself. It records named events with a severity
// and the offending text to a Sink supplied by the caller. Routing (stderr,
// slog, in-memory collection) is the sink's business.
package diag

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Severity orders diagnostics from DEBUG to CRITICAL.
type Severity int

// Severity levels.
const (
	Debug Severity = iota
	Info
	Warning
	Error
	Critical
)

// String returns the upper-case level name.
func (s Severity) String() string {
	switch s {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Critical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("SEVERITY(%d)", int(s))
	}
}

// Code names a diagnostic event.
type Code string

// Event codes emitted by the core and its collaborators.
const (
	PatternMatchFailure    Code = "pattern-match-failure"
	HeadingParseFailure    Code = "heading-parse-failure"
	BlockquoteParseFailure Code = "blockquote-parse-failure"
	ExtensionLoadFailure   Code = "extension-load-failure"
	EmptyInput             Code = "empty-input"
	DecodeFailure          Code = "decode-failure"
)

// Diagnostic is one recorded event.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Context  string
}

// String formats the diagnostic the way the CLI prints it.
func (d Diagnostic) String() string {
	if d.Context == "" {
		return fmt.Sprintf("%s %s", d.Severity, d.Code)
	}
	return fmt.Sprintf("%s %s: %q", d.Severity, d.Code, d.Context)
}

// Sink receives diagnostics. Implementations must be safe for concurrent use
// when shared across conversions.
type Sink interface {
	Record(severity Severity, code Code, text string)
}

// Nop discards every diagnostic.
var Nop Sink = nopSink{}

type nopSink struct{}

func (nopSink) Record(Severity, Code, string) {}

// Recorder collects diagnostics in memory.
type Recorder struct {
	mu    sync.Mutex
	items []Diagnostic
}

// Record appends a diagnostic.
func (r *Recorder) Record(severity Severity, code Code, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Diagnostic{Severity: severity, Code: code, Context: text})
}

// Diagnostics returns a copy of everything recorded so far.
func (r *Recorder) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.items))
	copy(out, r.items)
	return out
}

// Has reports whether a diagnostic with the given code was recorded.
func (r *Recorder) Has(code Code) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.items {
		if d.Code == code {
			return true
		}
	}
	return false
}

// Tee fans a diagnostic out to several sinks. Nil sinks are skipped.
func Tee(sinks ...Sink) Sink {
	var live []Sink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	switch len(live) {
	case 0:
		return Nop
	case 1:
		return live[0]
	}
	return teeSink(live)
}

type teeSink []Sink

func (t teeSink) Record(severity Severity, code Code, text string) {
	for _, s := range t {
		s.Record(severity, code, text)
	}
}

// LevelCritical extends slog's levels above Error.
const LevelCritical = slog.LevelError + 4

// SlogLevel maps a severity to the slog level used by NewSlogSink.
func SlogLevel(s Severity) slog.Level {
	switch s {
	case Debug:
		return slog.LevelDebug
	case Info:
		return slog.LevelInfo
	case Warning:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	default:
		return LevelCritical
	}
}

// slogSink forwards diagnostics to a structured logger.
type slogSink struct {
	logger *slog.Logger
}

// NewSlogSink returns a Sink writing to logger. A nil logger yields Nop.
func NewSlogSink(logger *slog.Logger) Sink {
	if logger == nil {
		return Nop
	}
	return &slogSink{logger: logger}
}

func (s *slogSink) Record(severity Severity, code Code, text string) {
	s.logger.Log(context.Background(), SlogLevel(severity), string(code), slog.String("text", text))
}
