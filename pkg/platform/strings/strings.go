// Package strings holds the list and matching helpers shared by forms and
// catalog filters.
package strings

import (
	"strings"
)

// DedupeAndTrim trims each value and drops empties and case-insensitive
// duplicates. The first spelling wins and order is preserved.
//
//	DedupeAndTrim([]string{" Hindi", "hindi", "", "English"})
//	// []string{"Hindi", "English"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

// SplitList splits a comma-separated value ("English, Hindi") and cleans it
// with DedupeAndTrim.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(s, ","))
}

// JoinList is the inverse of SplitList.
func JoinList(values []string) string {
	return strings.Join(DedupeAndTrim(values), ", ")
}

// IsAny reports whether a facet value means "no filter": empty or "All".
func IsAny(facet string) bool {
	f := strings.TrimSpace(facet)
	return f == "" || strings.EqualFold(f, "all")
}

// ContainsFold is a case-insensitive strings.Contains.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}
