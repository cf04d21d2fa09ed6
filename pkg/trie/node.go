package trie

import (
	"maps"
	"slices"
)

// node owns its children exclusively. A node stays in the tree only while
// isEnd, isFullWordEnd or len(children) > 0 holds.
type node struct {
	char          rune
	isEnd         bool
	isFullWordEnd bool
	children      map[rune]*node
}

func (n *node) child(c rune) *node {
	return n.children[c]
}

// ensure returns the child for c, creating it when missing.
func (n *node) ensure(c rune) (*node, bool) {
	if next, ok := n.children[c]; ok {
		return next, false
	}
	if n.children == nil {
		n.children = make(map[rune]*node, 1)
	}
	next := &node{char: c}
	n.children[c] = next
	return next, true
}

// keys lists child characters in rune order so walks are deterministic.
func (n *node) keys() []rune {
	if len(n.children) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(n.children))
}

func (n *node) terminal() bool {
	return n.isEnd || n.isFullWordEnd
}

func (n *node) dead() bool {
	return !n.terminal() && len(n.children) == 0
}
