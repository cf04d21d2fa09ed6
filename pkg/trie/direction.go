package trie

import "slices"

// Direction tells a Trie which end of a word it anchors on.
//
// Anchor is the character stripped at each level of a walk and Order is the
// full walk sequence, so Anchor(w) is always Order(w)[0]. Rest is the
// substring re-indexed from the root in Full mode, and Opposite is the
// character at the far end of the walk, used to pre-check candidates
// during removal.
type Direction struct {
	Name     string
	Anchor   func(word []rune) rune
	Opposite func(word []rune) rune
	Rest     func(word []rune) []rune
	Order    func(word []rune) []rune
}

// Prefix walks words back to front and, in Full mode, indexes every prefix of
// a word. A query fragment therefore matches the prefixes that end with it.
var Prefix = Direction{
	Name:     "prefix",
	Anchor:   lastRune,
	Opposite: firstRune,
	Rest:     dropLast,
	Order:    reversed,
}

// Suffix walks words front to back and, in Full mode, indexes every suffix.
// A query fragment matches the indexed strings that start with it.
var Suffix = Direction{
	Name:     "suffix",
	Anchor:   firstRune,
	Opposite: lastRune,
	Rest:     dropFirst,
	Order:    natural,
}

// InvertedSuffix walks words back to front like Prefix but re-indexes
// suffixes in Full mode. A query fragment matches words ending with it, which
// answers what precedes the fragment.
var InvertedSuffix = Direction{
	Name:     "inverted-suffix",
	Anchor:   lastRune,
	Opposite: firstRune,
	Rest:     dropFirst,
	Order:    reversed,
}

func firstRune(w []rune) rune {
	if len(w) == 0 {
		return 0
	}
	return w[0]
}

func lastRune(w []rune) rune {
	if len(w) == 0 {
		return 0
	}
	return w[len(w)-1]
}

func dropFirst(w []rune) []rune {
	if len(w) == 0 {
		return nil
	}
	return w[1:]
}

func dropLast(w []rune) []rune {
	if len(w) == 0 {
		return nil
	}
	return w[:len(w)-1]
}

func natural(w []rune) []rune {
	return w
}

// reversed never touches its argument; walks and results share backing arrays.
func reversed(w []rune) []rune {
	r := slices.Clone(w)
	slices.Reverse(r)
	return r
}
