// Package suggest ties the directional tries and the frequency histograms
// together into an autocomplete engine over token streams.
package suggest

import "github.com/bastiangx/wordtrie/pkg/rank"

// Tokenizer turns raw text into normalized tokens. Filtering rules are the
// tokenizer's own business; the Completer indexes whatever it returns.
type Tokenizer interface {
	Tokenize(text string) []string
}

// TokenizerFunc adapts a function to Tokenizer.
type TokenizerFunc func(text string) []string

func (f TokenizerFunc) Tokenize(text string) []string { return f(text) }

// ICompleter defines the interface front ends use to drive a completion engine
type ICompleter interface {
	// Add indexes tokens and counts them and their adjacent pairs
	Add(tokens []string)
	AddText(text string)

	// Remove lowers the counts added by Add. Indexed words stay reachable.
	Remove(tokens []string)
	RemoveText(text string)

	// Complete tokenizes stub and returns up to limit ranked completions
	Complete(stub string, fuzzy bool, limit int) []string
	CompleteTokens(tokens []string, fuzzy bool, limit int) []string
	Suggest(stub string, fuzzy bool, limit int) []Suggestion

	Count(token string) int
	// CountFresh returns how many distinct tokens are not yet counted
	CountFresh(tokens []string) int
	PairCount(first, second string) int
	PrefixCount(prefix string) int
	MostCommon(n int) []rank.Pair

	// Stats returns statistics about the index
	Stats() map[string]int
}

var _ ICompleter = (*Completer)(nil)
