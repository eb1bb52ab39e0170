// Package ignore implements ports.IgnorePolicy with doublestar globs.
package ignore

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Globs excludes files matching any of its patterns. Patterns match
// against the slash-separated path, e.g. "**/.git/**" or "**/*.log".
type Globs struct {
	patterns []string
}

// NewGlobs builds a policy from the given patterns. Invalid patterns
// are kept but never match.
func NewGlobs(patterns []string) *Globs {
	return &Globs{patterns: patterns}
}

// Ignored reports whether file matches any configured pattern.
func (g *Globs) Ignored(file string) bool {
	path := filepath.ToSlash(file)
	for _, p := range g.patterns {
		ok, err := doublestar.Match(p, path)
		if err != nil {
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
