package loader

import (
	"fmt"
	"path"
)

// DefaultKnownFailPatterns names the optional host libraries whose absence is
// tolerated when nothing else is configured.
var DefaultKnownFailPatterns = []string{"ldap"}

// KnownFailSet is the fixed allow-list of missing-library patterns. It is
// built once before the first load attempt and never mutated afterwards;
// matching is against the missing library's name, not the error message.
type KnownFailSet struct {
	patterns []string
}

// NewKnownFailSet validates the given glob patterns and returns an immutable
// set. An invalid pattern is a configuration error and is rejected up front
// rather than surfacing mid-batch.
func NewKnownFailSet(patterns []string) (KnownFailSet, error) {
	owned := make([]string, len(patterns))
	for i, pattern := range patterns {
		if _, err := path.Match(pattern, ""); err != nil {
			return KnownFailSet{}, fmt.Errorf("invalid known-fail pattern %q: %w", pattern, err)
		}
		owned[i] = pattern
	}
	return KnownFailSet{patterns: owned}, nil
}

// Matches reports whether the library name matches any pattern in the set.
func (s KnownFailSet) Matches(library string) bool {
	for _, pattern := range s.patterns {
		if ok, _ := path.Match(pattern, library); ok {
			return true
		}
	}
	return false
}

// Patterns returns a copy of the configured patterns, for logging.
func (s KnownFailSet) Patterns() []string {
	out := make([]string, len(s.patterns))
	copy(out, s.patterns)
	return out
}
