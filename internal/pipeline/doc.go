// Package pipeline implements the markup-to-HTML conversion core.
//
// The conversion runs in fixed stages:
//   - Normalization: line endings, global escaping of & and <, and any
//     character substitutions contributed by extensions
//   - Inline rendering: an ordered list of Patterns, each performing at most
//     one substitution per line on its right-most match
//   - Section building: lines are grouped at atx and setext heading boundaries
//   - Block rendering: each section is walked with a small state machine that
//     opens and closes code blocks and lists
//   - Assembly: the rendered sections are wrapped in a fixed HTML5 document
//
// Inline output is carried through block rendering as opaque placeholder
// tokens and expanded only after assembly, so block-level escaping of > never
// touches generated tags.
//
// The package also holds the goldmark engine used as an alternative backend
// and the relative path rewriting applied before PDF export.
package pipeline
