package rank

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// topSize is the number of most frequent words Unigram keeps sorted.
const topSize = 15

// Unigram counts word occurrences. Words are stored lower-cased, so every
// method treats "Apple" and "apple" as the same word.
//
// Counts live in a patricia trie keyed by word. A small sorted cache of the
// most frequent words is maintained on every change; after removals it may
// miss words that were never in it, since words below the cache are not
// tracked in order.
type Unigram struct {
	counts *patricia.Trie
	size   int
	total  int
	top    []Pair
}

func NewUnigram() *Unigram {
	return &Unigram{
		counts: patricia.NewTrie(),
		top:    make([]Pair, 0, topSize),
	}
}

func (u *Unigram) Add(word string) { u.AddN(word, 1) }

// AddN adds n occurrences of word. Empty words and n <= 0 are ignored.
func (u *Unigram) AddN(word string, n int) {
	if word == "" || n <= 0 {
		return
	}
	word = strings.ToLower(word)
	count := u.Count(word)
	if count == 0 {
		u.size++
	}
	count += n
	u.counts.Set(patricia.Prefix(word), count)
	u.total += n
	u.promote(Pair{Word: word, Count: count})
}

// Remove drops one occurrence of word, deleting it once its count reaches
// zero. Unknown words are ignored.
func (u *Unigram) Remove(word string) {
	word = strings.ToLower(word)
	count := u.Count(word)
	if count == 0 {
		return
	}
	count--
	u.total--
	if count == 0 {
		u.counts.Delete(patricia.Prefix(word))
		u.size--
	} else {
		u.counts.Set(patricia.Prefix(word), count)
	}
	u.demote(Pair{Word: word, Count: count})
}

// Count returns the occurrences of word, 0 when unknown.
func (u *Unigram) Count(word string) int {
	if word == "" {
		return 0
	}
	item := u.counts.Get(patricia.Prefix(strings.ToLower(word)))
	if item == nil {
		return 0
	}
	count, ok := item.(int)
	if !ok {
		log.Errorf("Unknown item type: %T for word %s", item, word)
		return 0
	}
	return count
}

// Len returns the number of distinct words.
func (u *Unigram) Len() int { return u.size }

// Total returns the number of occurrences across all words.
func (u *Unigram) Total() int { return u.total }

// MostCommon returns up to n of the most frequent words, best first. At most
// topSize words are available.
func (u *Unigram) MostCommon(n int) []Pair {
	n = min(n, len(u.top))
	if n <= 0 {
		return nil
	}
	out := make([]Pair, n)
	copy(out, u.top[:n])
	return out
}

// CountPrefix sums the occurrences of every word starting with prefix.
func (u *Unigram) CountPrefix(prefix string) int {
	sum := 0
	err := u.counts.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)), func(_ patricia.Prefix, item patricia.Item) error {
		if count, ok := item.(int); ok {
			sum += count
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting count subtree: %v", err)
	}
	return sum
}

// GetOrderedResults ranks the candidates with a non-zero count and returns
// the best limit of them.
func (u *Unigram) GetOrderedResults(candidates []string, limit int) []Pair {
	best := NewTopK(limit, Pair.Less)
	for _, w := range candidates {
		w = strings.ToLower(w)
		if count := u.Count(w); count > 0 {
			best.Insert(Pair{Word: w, Count: count})
		}
	}
	return best.Top(limit)
}

// promote records p's new count in the top cache and moves it up.
func (u *Unigram) promote(p Pair) {
	i := u.indexOf(p.Word)
	switch {
	case i >= 0:
		u.top[i] = p
	case len(u.top) < topSize:
		u.top = append(u.top, p)
		i = len(u.top) - 1
	case p.Less(u.top[len(u.top)-1]):
		i = len(u.top) - 1
		u.top[i] = p
	default:
		return
	}
	for ; i > 0 && u.top[i].Less(u.top[i-1]); i-- {
		u.top[i], u.top[i-1] = u.top[i-1], u.top[i]
	}
}

// demote records p's lower count in the top cache and moves it down.
func (u *Unigram) demote(p Pair) {
	i := u.indexOf(p.Word)
	if i < 0 {
		return
	}
	if p.Count == 0 {
		u.top = append(u.top[:i], u.top[i+1:]...)
		return
	}
	u.top[i] = p
	for ; i+1 < len(u.top) && u.top[i+1].Less(u.top[i]); i++ {
		u.top[i], u.top[i+1] = u.top[i+1], u.top[i]
	}
}

func (u *Unigram) indexOf(word string) int {
	for i, p := range u.top {
		if p.Word == word {
			return i
		}
	}
	return -1
}
