package normalize

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// Code trims whitespace, uppercases, and strips non-alphanumeric characters.
// Returns "" for empty input.
func Code(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return nonAlphanumeric.ReplaceAllString(strings.ToUpper(s), "")
}

// CodeList splits a comma-separated code column into normalized codes,
// dropping empties. Returns nil for blank input.
func CodeList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if c := Code(part); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// DiagnosisList splits a comma-separated diagnosis column, trimming and
// uppercasing but preserving the dot in codes like F32.9.
func DiagnosisList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		c := strings.ToUpper(strings.TrimSpace(part))
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
