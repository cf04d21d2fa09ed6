package rank

import "strings"

// Digram counts ordered word pairs as a Unigram of following words per
// leading word. Like Unigram it is case-insensitive and stores lower-cased
// words.
type Digram struct {
	following map[string]*Unigram
	pairs     int
}

func NewDigram() *Digram {
	return &Digram{following: make(map[string]*Unigram)}
}

func (d *Digram) Add(first, second string) {
	if first == "" || second == "" {
		return
	}
	first = strings.ToLower(first)
	h, ok := d.following[first]
	if !ok {
		h = NewUnigram()
		d.following[first] = h
	}
	if h.Count(second) == 0 {
		d.pairs++
	}
	h.Add(second)
}

// Remove drops one occurrence of the pair, deleting the leading word's table
// once it is empty.
func (d *Digram) Remove(first, second string) {
	first = strings.ToLower(first)
	h, ok := d.following[first]
	if !ok || h.Count(second) == 0 {
		return
	}
	h.Remove(second)
	if h.Count(second) == 0 {
		d.pairs--
	}
	if h.Len() == 0 {
		delete(d.following, first)
	}
}

func (d *Digram) Count(first, second string) int {
	if h, ok := d.following[strings.ToLower(first)]; ok {
		return h.Count(second)
	}
	return 0
}

// Len returns the number of distinct pairs.
func (d *Digram) Len() int { return d.pairs }

// Following returns up to n of the words most often seen after first.
func (d *Digram) Following(first string, n int) []Pair {
	if h, ok := d.following[strings.ToLower(first)]; ok {
		return h.MostCommon(n)
	}
	return nil
}

// GetOrderedResults probes every pair drawn from first and second in both
// orders and returns the best limit of them as "a b" words.
func (d *Digram) GetOrderedResults(first, second []string, limit int) []Pair {
	best := NewTopK(limit, Pair.Less)
	for _, a := range first {
		a = strings.ToLower(a)
		for _, b := range second {
			b = strings.ToLower(b)
			if count := d.Count(a, b); count > 0 {
				best.Insert(Pair{Word: a + " " + b, Count: count})
			}
			if count := d.Count(b, a); count > 0 {
				best.Insert(Pair{Word: b + " " + a, Count: count})
			}
		}
	}
	return best.Top(limit)
}
