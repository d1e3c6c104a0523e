package extension

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// Built-in extension names.
const (
	Highlight     = "highlight"
	Strikethrough = "strikethrough"
	Autolink      = "autolink"
	Typography    = "typography"
)

var builtins = map[string]Extension{
	Highlight:     Func(extendHighlight),
	Strikethrough: Func(extendStrikethrough),
	Autolink:      Func(extendAutolink),
	Typography:    Func(extendTypography),
}

// Inline expressions for the built-in extensions. Input has already been
// through normalization, so < appears as &lt;.
const (
	highlightExpr     = `(?s)^(.*)==(\S(?:.*?\S)?)==(.*)$`
	strikethroughExpr = `(?s)^(.*)~~(\S(?:.*?\S)?)~~(.*)$`
	autolinkExpr      = `(?s)^(.*)&lt;(https?://[^\s>]+)>(.*)$`
)

// typographyRules are the substitutions of the typography extension, in
// application order.
var typographyRules = []struct {
	name string
	sub  pipeline.Substitution
}{
	{"copyright", pipeline.Substitution{Pattern: regexp.MustCompile(`\([cC]\)`), Replacement: "&copy;"}},
	{"registered", pipeline.Substitution{Pattern: regexp.MustCompile(`\([rR]\)`), Replacement: "&reg;"}},
	{"trademark", pipeline.Substitution{Pattern: regexp.MustCompile(`\([tT][mM]\)`), Replacement: "&trade;"}},
	{"ellipsis", pipeline.Substitution{Pattern: regexp.MustCompile(`\.\.\.`), Replacement: "&hellip;"}},
}

// extendHighlight adds ==text== to <mark>text</mark>. Config: class (string).
func extendHighlight(r *Registry, cfg map[string]any) error {
	class, err := stringOption(cfg, "class")
	if err != nil {
		return err
	}
	open := "<mark>"
	if class != "" {
		open = `<mark class="` + pipeline.EscapeAttr(class) + `">`
	}
	p, err := pipeline.NewRegexpPattern(Highlight, highlightExpr, func(captured string) (string, error) {
		return open + pipeline.EscapeGT(captured) + "</mark>", nil
	})
	if err != nil {
		return err
	}
	r.AppendPattern(p)
	return nil
}

// extendStrikethrough adds ~~text~~ to <del>text</del>.
func extendStrikethrough(r *Registry, _ map[string]any) error {
	p, err := pipeline.NewRegexpPattern(Strikethrough, strikethroughExpr, pipeline.WrapRender("del"))
	if err != nil {
		return err
	}
	r.AppendPattern(p)
	return nil
}

// extendAutolink turns <http://...> into an anchor.
func extendAutolink(r *Registry, _ map[string]any) error {
	p, err := pipeline.NewRegexpPattern(Autolink, autolinkExpr, func(captured string) (string, error) {
		u := pipeline.EscapeAttr(captured)
		return `<a href="` + u + `" title="` + u + `" />`, nil
	})
	if err != nil {
		return err
	}
	r.AppendPattern(p)
	return nil
}

// extendTypography adds entity substitutions. Config: skip (list of rule names).
func extendTypography(r *Registry, cfg map[string]any) error {
	skip, err := stringListOption(cfg, "skip")
	if err != nil {
		return err
	}
	known := make([]string, 0, len(typographyRules))
	for _, rule := range typographyRules {
		known = append(known, rule.name)
	}
	for _, name := range skip {
		if !slices.Contains(known, name) {
			return fmt.Errorf("%w: typography has no rule %q", ErrInvalidConfig, name)
		}
	}
	for _, rule := range typographyRules {
		if !slices.Contains(skip, rule.name) {
			r.AppendSubstitution(rule.sub)
		}
	}
	return nil
}

// stringOption reads an optional string value.
func stringOption(cfg map[string]any, key string) (string, error) {
	v, ok := cfg[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidConfig, key, v)
	}
	return s, nil
}

// stringListOption reads an optional list of strings. YAML decoding yields
// []any, programmatic callers usually pass []string.
func stringListOption(cfg map[string]any, key string) ([]string, error) {
	v, ok := cfg[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s entries must be strings, got %T", ErrInvalidConfig, key, item)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return []string{list}, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a list, got %T", ErrInvalidConfig, key, v)
	}
}
