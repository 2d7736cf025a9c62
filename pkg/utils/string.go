// Package utils provides common utility functions.
package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CapitalizeWords title-cases the first rune of every whitespace-separated
// word, leaves the remaining runes as they are, and joins words with single spaces.
func CapitalizeWords(str string) string {
	words := strings.Fields(str)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError {
			continue
		}

		words[i] = string(unicode.ToTitle(r)) + w[size:]
	}

	return strings.Join(words, " ")
}

// FirstNonEmpty returns the first argument that is not blank after trimming.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}

	return ""
}

// TruncateString truncates a string to maxRunes runes, appending "..." when cut.
func TruncateString(str string, maxRunes int) string {
	if utf8.RuneCountInString(str) <= maxRunes {
		return str
	}

	runes := []rune(str)

	return string(runes[:maxRunes]) + "..."
}
