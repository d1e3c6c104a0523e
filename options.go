package md2html

import (
	"log/slog"
	"time"

	"github.com/alnah/go-md2html/internal/diag"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout    time.Duration
	engine     Engine
	safeMode   bool
	sink       diag.Sink
	extensions []string
	extConfigs map[string]map[string]any
	custom     []namedExtension
}

type namedExtension struct {
	name string
	ext  Extension
}

// defaultTimeout bounds PDF page loading when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF export timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithEngine selects the renderer. NewConverter rejects unknown engines.
func WithEngine(e Engine) Option {
	return func(c *Converter) {
		c.cfg.engine = e
	}
}

// WithSafeMode neutralizes javascript:, vbscript: and data: link and image
// targets to "#".
func WithSafeMode(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.safeMode = enabled
	}
}

// WithSink also sends every diagnostic to s, in addition to Result.Diagnostics.
// s must be safe for concurrent use if the converter is shared.
func WithSink(s Sink) Option {
	return func(c *Converter) {
		c.cfg.sink = s
	}
}

// WithLogger sends diagnostics to logger. CRITICAL maps above slog.LevelError.
func WithLogger(logger *slog.Logger) Option {
	return WithSink(diag.NewSlogSink(logger))
}

// WithExtensions enables named extensions, applied in order.
func WithExtensions(names ...string) Option {
	return func(c *Converter) {
		c.cfg.extensions = append(c.cfg.extensions, names...)
	}
}

// WithExtensionConfig passes options to the extension called name.
func WithExtensionConfig(name string, cfg map[string]any) Option {
	return func(c *Converter) {
		if c.cfg.extConfigs == nil {
			c.cfg.extConfigs = make(map[string]map[string]any)
		}
		c.cfg.extConfigs[name] = cfg
	}
}

// WithExtension registers ext under name so WithExtensions can enable it.
// It may replace a built-in of the same name.
func WithExtension(name string, ext Extension) Option {
	return func(c *Converter) {
		c.cfg.custom = append(c.cfg.custom, namedExtension{name: name, ext: ext})
	}
}
