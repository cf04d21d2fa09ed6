package trie

import (
	"slices"
	"strings"
)

// Remove un-indexes word.
//
// In Partial mode the word's path is cleared and dead nodes are pruned. In
// Full mode the trailing substrings of word may be shared with other words,
// so Remove first scans for whole words to preserve, clears the chain of
// substrings indexed by word, then re-indexes the preserved words. The scan
// visits the whole trie; callers removing often should prefer Partial mode.
//
// Preserved words are found by walking from the root along word's own
// trailing substrings, then by a full scan for words that contain word or
// index one of the same trailing substrings. The full scan deliberately goes
// beyond the walk: a word sharing only an interior substring with word is
// invisible to the walk and would lose that substring. With both, the trie
// after Remove equals one built without word.
func (t *Trie) Remove(word string) {
	w := []rune(word)
	if len(w) == 0 {
		return
	}
	if t.mode == Partial {
		t.unindex(w, true)
		return
	}

	if n := t.find(t.dir.Order(w)); n == nil || !n.isFullWordEnd {
		return
	}

	keep := t.preserved(w)
	t.unindex(w, true)
	for rest := t.dir.Rest(w); len(rest) > 0; rest = t.dir.Rest(rest) {
		t.unindex(rest, false)
	}
	for _, p := range keep {
		t.Add(p)
	}
}

// preserved collects, in walk order, the whole words that must survive the
// removal of w.
func (t *Trie) preserved(w []rune) []string {
	removed := string(w)
	seen := make(map[string]struct{})
	var keep []string
	collect := func(candidate string) {
		if candidate == removed {
			return
		}
		if _, ok := seen[candidate]; ok {
			return
		}
		seen[candidate] = struct{}{}
		keep = append(keep, candidate)
	}

	// Words reachable by walking the removed word's own trailing substrings.
	for rest := w; len(rest) > 0; rest = t.dir.Rest(rest) {
		path := t.dir.Order(rest)
		if n := t.find(path); n != nil {
			t.each(n, slices.Clone(path), collect)
		}
	}

	chain := make(map[string]struct{})
	for rest := w; len(rest) > 0; rest = t.dir.Rest(rest) {
		chain[string(rest)] = struct{}{}
	}
	opposite := string(t.dir.Opposite(w))
	t.each(t.root, nil, func(candidate string) {
		if strings.Contains(candidate, opposite) && strings.Contains(candidate, removed) {
			collect(candidate)
			return
		}
		for rest := []rune(candidate); len(rest) > 0; rest = t.dir.Rest(rest) {
			if _, ok := chain[string(rest)]; ok {
				collect(candidate)
				return
			}
		}
	})
	return keep
}

// unindex clears the flags set by indexing w and prunes nodes left dead.
// A trailing substring that is itself a whole word keeps its flags.
func (t *Trie) unindex(w []rune, fullWord bool) {
	path := t.dir.Order(w)
	stack := make([]*node, 0, len(path)+1)
	n := t.root
	stack = append(stack, n)
	for _, c := range path {
		if n = n.child(c); n == nil {
			return
		}
		stack = append(stack, n)
	}

	switch {
	case fullWord:
		if n.isFullWordEnd {
			t.words--
		}
		n.isFullWordEnd = false
		n.isEnd = false
	case !n.isFullWordEnd:
		n.isEnd = false
	}

	for i := len(stack) - 1; i > 0; i-- {
		if !stack[i].dead() {
			break
		}
		delete(stack[i-1].children, stack[i].char)
		t.nodes--
	}
}
