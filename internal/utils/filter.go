package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsSeparator reports whether r splits text into tokens. Letters, digits and
// apostrophes stay inside a token.
func IsSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
}

// TokenFilter holds the rules applied to each raw token.
type TokenFilter struct {
	MinLen    int
	MaxLen    int // 0 means unbounded
	StopWords map[string]struct{}
	// Disabled keeps every non-empty token.
	Disabled bool
}

// DefaultTokenFilter accepts tokens of 1 to 24 runes that pass IsValidInput.
func DefaultTokenFilter() TokenFilter {
	return TokenFilter{MinLen: 1, MaxLen: 24}
}

// Tokenize splits text with the default filter.
func Tokenize(text string) []string {
	return DefaultTokenFilter().Tokenize(text)
}

// Tokenize lowercases text, splits it on separators and drops the tokens the
// filter rejects. Order is preserved.
func (f TokenFilter) Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), IsSeparator)
	tokens := fields[:0]
	for _, tok := range fields {
		tok = strings.Trim(tok, "'")
		if f.Keep(tok) {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Keep reports whether a lowercased token passes the filter.
func (f TokenFilter) Keep(tok string) bool {
	if tok == "" {
		return false
	}
	if f.Disabled {
		return true
	}
	n := utf8.RuneCountInString(tok)
	if n < f.MinLen || (f.MaxLen > 0 && n > f.MaxLen) {
		return false
	}
	if _, stop := f.StopWords[tok]; stop {
		return false
	}
	return IsValidInput(tok)
}

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ContainsSpecialChars checks if a string contains anything but letters,
// digits and apostrophes
func ContainsSpecialChars(s string) bool {
	return strings.ContainsFunc(s, IsSeparator)
}

// IsValidInput checks if input should be indexed or completed.
// Returns false for strings that are only numbers, contain special characters, or are repetitive
func IsValidInput(s string) bool {
	if len(s) == 0 {
		return false
	}
	if IsOnlyNumbers(s) {
		return false
	}
	if ContainsSpecialChars(s) {
		return false
	}
	return !IsRepetitive(s)
}

// IsRepetitive checks if a string is one character repeated 3+ times ("aaa", "www").
func IsRepetitive(s string) bool {
	if utf8.RuneCountInString(s) <= 2 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	for _, r := range s {
		if r != first {
			return false
		}
	}
	return true
}
