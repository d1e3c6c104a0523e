// Package extension lets named add-ons extend the inline pattern list and
// the pre-split character substitutions before a conversion starts.
//
// An Extension receives a mutable Registry and its configuration mapping.
// The Registry is private to one converter (or one call), so extensions never
// mutate a pattern list another conversion is reading.
package extension

import (
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Registry is the mutable handle extensions append to.
type Registry struct {
	patterns []pipeline.Pattern
	subs     []pipeline.Substitution
}

// NewRegistry returns a Registry seeded with copies of patterns and subs.
func NewRegistry(patterns []pipeline.Pattern, subs []pipeline.Substitution) *Registry {
	return &Registry{
		patterns: append([]pipeline.Pattern(nil), patterns...),
		subs:     append([]pipeline.Substitution(nil), subs...),
	}
}

// AppendPattern adds p after every pattern already registered.
func (r *Registry) AppendPattern(p pipeline.Pattern) {
	if p != nil {
		r.patterns = append(r.patterns, p)
	}
}

// AppendSubstitution adds s after every substitution already registered.
func (r *Registry) AppendSubstitution(s pipeline.Substitution) {
	if s.Pattern != nil {
		r.subs = append(r.subs, s)
	}
}

// Patterns returns a copy of the pattern list.
func (r *Registry) Patterns() []pipeline.Pattern {
	return append([]pipeline.Pattern(nil), r.patterns...)
}

// Substitutions returns a copy of the substitution list.
func (r *Registry) Substitutions() []pipeline.Substitution {
	return append([]pipeline.Substitution(nil), r.subs...)
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	return NewRegistry(r.patterns, r.subs)
}

// Extension extends a Registry. cfg is the extension's own configuration and
// may be nil.
type Extension interface {
	Extend(r *Registry, cfg map[string]any) error
}

// Func adapts a plain function to Extension.
type Func func(r *Registry, cfg map[string]any) error

// Extend calls f.
func (f Func) Extend(r *Registry, cfg map[string]any) error {
	return f(r, cfg)
}

// Compile-time interface check.
var _ Extension = Func(nil)
