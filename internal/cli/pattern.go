// Package cli provides shared utilities for CLI commands.
package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// MatchEntry finds entry names containing the pattern as a substring.
// Returns an error when nothing matches; multiple matches are returned so
// the caller can report the ambiguity.
func MatchEntry(pattern string, names []string) ([]string, error) {
	var matches []string
	for _, name := range names {
		if strings.Contains(name, pattern) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no entry matching '%s'", pattern)
	}
	return matches, nil
}

// ExpandPattern expands a glob pattern against available entry names.
// If the pattern contains glob characters (*?[), it performs glob matching.
// Otherwise, it performs exact matching.
func ExpandPattern(pattern string, names []string) ([]string, error) {
	// Validate pattern syntax
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern '%s': %w", pattern, err)
	}

	if !strings.ContainsAny(pattern, "*?[") {
		for _, name := range names {
			if name == pattern {
				return []string{pattern}, nil
			}
		}
		return nil, fmt.Errorf("entry '%s' not found", pattern)
	}

	var matches []string
	for _, name := range names {
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return nil, err
		}
		if matched {
			matches = append(matches, name)
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("no entries match pattern '%s'", pattern)
	}

	return matches, nil
}

// SortNames returns a sorted copy of the names slice for display.
func SortNames(names []string) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return sorted
}
