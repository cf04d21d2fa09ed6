// Package rank holds the frequency tables and ranking primitives used to
// order completions: token and token-pair histograms and a bounded top-k set.
package rank

import "fmt"

// Pair is a word with its occurrence count.
type Pair struct {
	Word  string
	Count int
}

// Less reports whether p ranks ahead of o: higher count first, then
// lexicographic by word.
func (p Pair) Less(o Pair) bool {
	if p.Count != o.Count {
		return p.Count > o.Count
	}
	return p.Word < o.Word
}

func (p Pair) String() string {
	return fmt.Sprintf("%s:%d", p.Word, p.Count)
}

// Words returns the words of pairs in order.
func Words(pairs []Pair) []string {
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.Word)
	}
	return out
}
