package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchCase reshapes the lowercase word to the capitalization of what the
// user typed: all caps when the input is all caps and longer than one rune,
// a capital first letter when the input starts with one.
func MatchCase(word, typed string) string {
	first, size := utf8.DecodeRuneInString(typed)
	if size == 0 || !unicode.IsUpper(first) {
		return word
	}
	if utf8.RuneCountInString(typed) > 1 && strings.ToUpper(typed) == typed {
		return strings.ToUpper(word)
	}
	r, n := utf8.DecodeRuneInString(word)
	if n == 0 {
		return word
	}
	return string(unicode.ToUpper(r)) + word[n:]
}
