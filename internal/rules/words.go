package rules

import (
	"strings"
	"unicode"
)

// words splits an identifier into its words. Case changes, underscores and
// digit runs separate words; an uppercase run followed by a lowercase letter
// ends before its last letter, so "HTTPServer" is "HTTP" and "Server".
func words(ident string) []string {
	runes := []rune(ident)

	var (
		out   []string
		start = -1
	)
	flush := func(end int) {
		if start >= 0 && end > start {
			out = append(out, string(runes[start:end]))
		}
		start = -1
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}

		prev := runes[i-1]
		switch {
		case unicode.IsDigit(r) != unicode.IsDigit(prev):
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush(i)
			start = i
		case unicode.IsLower(r) && unicode.IsUpper(prev) && i-1 > start:
			flush(i - 1)
			start = i - 1
		}
	}
	flush(len(runes))

	return out
}

// containsWord reports whether ident has one of the given words. With
// allowLower, the all-lowercase form of a word also matches, which covers
// the leading word of a camelCase identifier.
func containsWord(ident string, set []string, allowLower bool) (string, bool) {
	for _, w := range words(ident) {
		for _, candidate := range set {
			if w == candidate || (allowLower && w == strings.ToLower(candidate)) {
				return w, true
			}
		}
	}

	return "", false
}
