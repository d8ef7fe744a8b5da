// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// SplitList splits a comma-separated value into its elements, trimming
// whitespace and dropping empties and duplicates. Order is preserved.
// Intended for list-valued environment variables.
//
// Example:
//
//	SplitList(" a, b ,a,,")
//	// Returns: []string{"a", "b"}
func SplitList(raw string) []string {
	return dedupe(strings.Split(raw, ","), false)
}

// SplitHosts is like SplitList but lowercases each element, since host
// names compare case-insensitively.
func SplitHosts(raw string) []string {
	return dedupe(strings.Split(raw, ","), true)
}

func dedupe(values []string, lower bool) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if lower {
			trimmed = strings.ToLower(trimmed)
		}
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
