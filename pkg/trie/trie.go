// Package trie implements a character trie that can be walked from either end
// of a word and searched for completions within a bounded edit distance.
//
// One engine serves every walk direction; a Direction value supplies the few
// direction-specific primitives. In Full mode each added word also indexes
// all of its trailing substrings (every prefix for Prefix, every suffix for
// Suffix and InvertedSuffix), which makes substring-anchored lookups possible
// at the cost of quadratic node growth per word. Partial mode indexes the
// word alone.
//
// A Trie is not safe for concurrent use.
package trie

import (
	"fmt"
	"strings"
)

// Mode selects how much of each word is indexed.
type Mode int

const (
	// Partial indexes each word only.
	Partial Mode = iota
	// Full indexes each word and all of its trailing substrings.
	Full
)

func (m Mode) String() string {
	switch m {
	case Partial:
		return "partial"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "full" or "partial", case-insensitively.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full":
		return Full, true
	case "partial":
		return Partial, true
	default:
		return Partial, false
	}
}

// Trie is a direction-parameterised character trie.
type Trie struct {
	root  *node
	dir   Direction
	mode  Mode
	nodes int
	words int
}

// New creates an empty trie walking in dir.
func New(dir Direction, mode Mode) *Trie {
	return &Trie{
		root: &node{},
		dir:  dir,
		mode: mode,
	}
}

func (t *Trie) Mode() Mode           { return t.mode }
func (t *Trie) Direction() Direction { return t.dir }

// Nodes returns the number of nodes below the root.
func (t *Trie) Nodes() int { return t.nodes }

// Words returns the number of distinct whole words currently indexed.
func (t *Trie) Words() int { return t.words }

// Add indexes word and returns the number of node steps taken, including
// the steps spent re-indexing trailing substrings in Full mode.
func (t *Trie) Add(word string) int {
	return t.index([]rune(word), true)
}

func (t *Trie) index(w []rune, fullWord bool) int {
	if len(w) == 0 {
		return 0
	}
	steps := t.insert(w, fullWord)
	if t.mode == Full {
		steps += t.index(t.dir.Rest(w), false)
	}
	return steps
}

func (t *Trie) insert(w []rune, fullWord bool) int {
	n := t.root
	path := t.dir.Order(w)
	for _, c := range path {
		next, created := n.ensure(c)
		if created {
			t.nodes++
		}
		n = next
	}
	n.isEnd = true
	if fullWord && !n.isFullWordEnd {
		n.isFullWordEnd = true
		t.words++
	}
	return len(path)
}

// ContainsWord reports whether the exact path for word exists. With
// fullWordOnly the path must also end on a word passed to Add.
func (t *Trie) ContainsWord(word string, fullWordOnly bool) bool {
	w := []rune(word)
	if len(w) == 0 {
		return false
	}
	n := t.find(t.dir.Order(w))
	if n == nil {
		return false
	}
	if fullWordOnly {
		return n.isFullWordEnd
	}
	return true
}

func (t *Trie) find(path []rune) *node {
	n := t.root
	for _, c := range path {
		if n = n.child(c); n == nil {
			return nil
		}
	}
	return n
}

// each calls fn with the natural-order text of every whole word below n.
// path is the walk from the root to n.
func (t *Trie) each(n *node, path []rune, fn func(word string)) {
	if n.isFullWordEnd {
		fn(string(t.dir.Order(path)))
	}
	for _, c := range n.keys() {
		t.each(n.children[c], append(path, c), fn)
	}
}
