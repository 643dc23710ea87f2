package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// PersonName formats a name in the form's "Last, First" convention.
// Missing components are omitted rather than leaving a dangling comma.
func PersonName(last, first string) string {
	last = collapse(last)
	first = collapse(first)
	switch {
	case last == "":
		return first
	case first == "":
		return last
	default:
		return last + ", " + first
	}
}

// Initials reduces a name to privacy-mode initials: first initial, then last
// initial, each followed by a period. "Sarah" + "Johnson" yields "S.J.".
func Initials(last, first string) string {
	var b strings.Builder
	for _, part := range []string{collapse(first), collapse(last)} {
		if part == "" {
			continue
		}
		b.WriteByte(part[0])
		b.WriteByte('.')
	}
	return strings.ToUpper(b.String())
}

// FileSlug lowercases a display name and reduces it to [a-z0-9-] for use in
// generated filenames.
func FileSlug(name string) string {
	s := strings.ToLower(collapse(name))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func collapse(s string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
}
