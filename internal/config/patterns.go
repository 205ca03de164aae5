package config

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/kildhq/kild/internal/kilderr"
)

// ValidatePatterns checks every include_patterns glob for syntactic
// validity, matching the original implementation's up-front validation
// so a bad pattern fails at config-load time rather than silently
// matching nothing during worktree seeding.
func (s IncludePatternsSection) ValidatePatterns() error {
	for _, p := range s.Patterns {
		if !doublestar.ValidatePattern(p) {
			return kilderr.ErrFileInvalidPattern(p, nil)
		}
	}
	return nil
}

// MatchesAny reports whether relPath matches any configured pattern.
func (s IncludePatternsSection) MatchesAny(relPath string) bool {
	for _, p := range s.Patterns {
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
	}
	return false
}
