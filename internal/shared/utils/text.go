package utils

import (
	"strings"
	"unicode/utf8"
)

// NormalizeQuestion is the canonical key form for questions and triggers:
// trimmed and lower-cased.
func NormalizeQuestion(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RuneLen counts characters rather than bytes, so Cyrillic input validates
// the same way as Latin.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
