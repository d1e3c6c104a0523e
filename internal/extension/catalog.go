package extension

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alnah/go-md2html/internal/diag"
)

// Catalog maps extension names to implementations. Names are matched
// case-insensitively. A Catalog is not safe for concurrent Register calls;
// populate it before sharing.
type Catalog struct {
	entries map[string]Extension
}

// NewCatalog returns a Catalog holding the built-in extensions.
func NewCatalog() *Catalog {
	c := &Catalog{entries: make(map[string]Extension, len(builtins))}
	for name, ext := range builtins {
		c.entries[name] = ext
	}
	return c
}

// Register adds or replaces the extension called name.
func (c *Catalog) Register(name string, ext Extension) error {
	key, err := normalizeName(name)
	if err != nil {
		return err
	}
	if ext == nil {
		return fmt.Errorf("%w: %q has no implementation", ErrInvalidExtensionName, name)
	}
	c.entries[key] = ext
	return nil
}

// Resolve returns the extension called name.
func (c *Catalog) Resolve(name string) (Extension, error) {
	key, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	ext, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, name)
	}
	return ext, nil
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Clone returns an independent copy of c.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{entries: make(map[string]Extension, len(c.entries))}
	for name, ext := range c.entries {
		out.entries[name] = ext
	}
	return out
}

// normalizeName lower-cases name after checking it is safe to use as a key.
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidExtensionName)
	}
	if strings.ContainsAny(name, "/\\. \t") {
		return "", fmt.Errorf("%w: %q", ErrInvalidExtensionName, name)
	}
	return strings.ToLower(name), nil
}

// Apply resolves each name in c and runs it against r with its configuration
// from configs. Extensions that cannot be resolved or that fail are recorded
// as extension-load-failure and skipped; the others still apply. It returns
// the names that were applied.
func Apply(r *Registry, c *Catalog, names []string, configs map[string]map[string]any, sink diag.Sink) []string {
	if sink == nil {
		sink = diag.Nop
	}
	applied := make([]string, 0, len(names))
	for _, name := range names {
		ext, err := c.Resolve(name)
		if err != nil {
			sink.Record(diag.Critical, diag.ExtensionLoadFailure, err.Error())
			continue
		}

		// Extend on a scratch copy so a failing extension leaves no partial edits.
		scratch := r.Clone()
		if err := ext.Extend(scratch, configFor(configs, name)); err != nil {
			sink.Record(diag.Critical, diag.ExtensionLoadFailure, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		*r = *scratch
		applied = append(applied, name)
	}
	return applied
}

// configFor looks name up in configs, falling back to a case-insensitive match.
func configFor(configs map[string]map[string]any, name string) map[string]any {
	if cfg, ok := configs[name]; ok {
		return cfg
	}
	for key, cfg := range configs {
		if strings.EqualFold(key, name) {
			return cfg
		}
	}
	return nil
}
