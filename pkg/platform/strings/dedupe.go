// Package strings provides slice helpers for reason lists and config values.
package strings

import "strings"

// Dedupe drops exact repeats while keeping the first occurrence of each
// value in place. Values are compared verbatim, so "a" and "a " differ.
func Dedupe(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// DedupeAndTrim trims each element, drops blanks and repeats. Order is preserved.
//
//	DedupeAndTrim([]string{" §11 ", "§10", "§11", ""}) // []string{"§11", "§10"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return Dedupe(trimmed)
}

// SplitList parses a comma separated value into a deduplicated list.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(value, ","))
}
