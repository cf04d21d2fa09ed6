package trie

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// GetCompletions returns every indexed string that the query walks into,
// along with all indexed strings below it.
//
// With substringOnly set, or once query.Cost reaches maxEditDistance, only the
// exact walk is taken. Otherwise each query position may also be deleted,
// transposed with its successor, preceded by an inserted child character or
// substituted by one, each at a cost of one edit. Results are unique by text
// and keep the lowest cost seen, in discovery order.
func (t *Trie) GetCompletions(query CostString, maxEditDistance int, substringOnly bool) []Completion {
	q := t.dir.Order([]rune(query.Text))
	exact := substringOnly || query.Cost >= maxEditDistance
	if exact && len(q) > 0 && t.root.child(t.dir.Anchor([]rune(query.Text))) == nil {
		return nil
	}

	s := &search{
		dir:      t.dir,
		maxCost:  maxEditDistance,
		exact:    exact,
		results:  orderedmap.New[string, Completion](),
		explored: make(map[state]int),
	}
	s.walk(t.root, make([]rune, 0, len(q)+8), q, query.Cost)

	out := make([]Completion, 0, s.results.Len())
	for pair := s.results.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// state identifies a point in the search: a node (which fixes the walked
// path) and the part of the query still to be matched.
type state struct {
	n    *node
	rest string
}

type search struct {
	dir     Direction
	maxCost int
	exact   bool
	results *orderedmap.OrderedMap[string, Completion]
	// explored maps a state to the lowest cost it was entered with. Entering
	// it again at that cost or above cannot produce a cheaper result.
	explored map[state]int
}

// walk matches rest against the subtree of n. path holds the walk from the
// root to n and is only read for the duration of the call.
func (s *search) walk(n *node, path, rest []rune, cost int) {
	key := state{n: n, rest: string(rest)}
	if seen, ok := s.explored[key]; ok && seen <= cost {
		return
	}
	s.explored[key] = cost

	if len(rest) == 0 {
		s.tail(n, path, cost)
		return
	}

	c := rest[0]
	if next := n.child(c); next != nil {
		s.walk(next, append(path, c), rest[1:], cost)
	}
	if s.exact || cost >= s.maxCost {
		return
	}

	cost++
	// deletion
	s.walk(n, path, rest[1:], cost)
	// transposition
	if len(rest) > 1 && rest[0] != rest[1] {
		swapped := make([]rune, len(rest))
		copy(swapped, rest)
		swapped[0], swapped[1] = swapped[1], swapped[0]
		s.walk(n, path, swapped, cost)
	}
	for _, k := range n.keys() {
		next := n.children[k]
		// insertion
		s.walk(next, append(path, k), rest, cost)
		// substitution
		if k != c {
			s.walk(next, append(path, k), rest[1:], cost)
		}
	}
}

// tail emits n and everything indexed below it at the current cost.
func (s *search) tail(n *node, path []rune, cost int) {
	if n.terminal() {
		s.emit(path, cost, n.isFullWordEnd)
	}
	for _, k := range n.keys() {
		s.tail(n.children[k], append(path, k), cost)
	}
}

func (s *search) emit(path []rune, cost int, fullWord bool) {
	text := string(s.dir.Order(path))
	if prev, ok := s.results.Get(text); ok && prev.Cost <= cost {
		return
	}
	s.results.Set(text, Completion{
		CostString: CostString{Text: text, Cost: cost},
		FullWord:   fullWord,
	})
}
