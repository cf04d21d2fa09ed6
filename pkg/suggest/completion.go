package suggest

import (
	"slices"
	"strings"

	"github.com/bastiangx/wordtrie/pkg/rank"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/charmbracelet/log"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Suggestion is a ranked completion with the count it was ranked by.
type Suggestion struct {
	Word      string
	Frequency int
}

// Completer completes the last one or two tokens of an input.
//
// Fragments are located inside words with a prefix-walking trie holding
// every word prefix: looking a fragment up there yields the word prefixes
// ending in it. A suffix-walking trie of whole words then completes each of
// those to full words. Candidates are ranked by token counts for a single
// token and by adjacent pair counts for two.
//
// A Completer is not safe for concurrent use; callers sharing one must hold
// a lock that excludes queries during Add and Remove.
type Completer struct {
	prefixes *trie.Trie
	words    *trie.Trie
	vocab    *bloom.BloomFilter
	unigrams *rank.Unigram
	digrams  *rank.Digram
	opts     Options
	// filtered counts tokens the vocabulary filter ruled out without a
	// histogram lookup.
	filtered int
}

func NewCompleter(opts Options) *Completer {
	opts = opts.withDefaults()
	return &Completer{
		prefixes: trie.New(trie.Prefix, opts.PrefixMode),
		words:    trie.New(trie.Suffix, trie.Partial),
		vocab:    bloom.NewWithEstimates(uint(opts.ExpectedWords), opts.FalsePositiveRate),
		unigrams: rank.NewUnigram(),
		digrams:  rank.NewDigram(),
		opts:     opts,
	}
}

// Add indexes each token in both tries, counts it and counts each adjacent
// pair. Empty tokens are skipped.
func (c *Completer) Add(tokens []string) {
	prev := ""
	for _, tok := range normalize(tokens) {
		if c.unigrams.Count(tok) == 0 {
			c.index(tok)
		}
		c.unigrams.Add(tok)
		if prev != "" {
			c.digrams.Add(prev, tok)
		}
		prev = tok
	}
}

func (c *Completer) index(tok string) {
	steps := c.prefixes.Add(tok)
	steps += c.words.Add(tok)
	c.vocab.AddString(tok)
	log.Debugf("Indexed %q in %d steps", tok, steps)
}

func (c *Completer) AddText(text string) {
	c.Add(c.opts.Tokenizer.Tokenize(text))
}

// Remove lowers the counts Add raised for the same tokens. The tries are
// left untouched, so removed words still complete but rank below every
// counted word.
func (c *Completer) Remove(tokens []string) {
	prev := ""
	for _, tok := range normalize(tokens) {
		c.unigrams.Remove(tok)
		if prev != "" {
			c.digrams.Remove(prev, tok)
		}
		prev = tok
	}
}

func (c *Completer) RemoveText(text string) {
	c.Remove(c.opts.Tokenizer.Tokenize(text))
}

// Complete tokenizes stub and completes its final tokens.
func (c *Completer) Complete(stub string, fuzzy bool, limit int) []string {
	return c.CompleteTokens(c.opts.Tokenizer.Tokenize(stub), fuzzy, limit)
}

// CompleteTokens returns up to limit completions of the last one or two
// tokens, best first. Tokens before those are prepended unchanged to every
// result. A limit <= 0 uses the default limit.
func (c *Completer) CompleteTokens(tokens []string, fuzzy bool, limit int) []string {
	return rank.Words(c.rank(tokens, fuzzy, limit))
}

// Suggest is Complete with the counts used for ranking.
func (c *Completer) Suggest(stub string, fuzzy bool, limit int) []Suggestion {
	pairs := c.rank(c.opts.Tokenizer.Tokenize(stub), fuzzy, limit)
	out := make([]Suggestion, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, Suggestion{Word: p.Word, Frequency: p.Count})
	}
	return out
}

func (c *Completer) rank(tokens []string, fuzzy bool, limit int) []rank.Pair {
	tokens = normalize(tokens)
	if len(tokens) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = c.opts.DefaultLimit
	}

	last := tokens[len(tokens)-1]
	if len(tokens) == 1 {
		return c.rankWord(last, fuzzy, limit)
	}

	pairs := c.digrams.GetOrderedResults(
		c.candidates(tokens[len(tokens)-2], fuzzy, limit),
		c.candidates(last, fuzzy, limit),
		limit,
	)
	if lead := strings.Join(tokens[:len(tokens)-2], " "); lead != "" {
		for i := range pairs {
			pairs[i].Word = lead + " " + pairs[i].Word
		}
	}
	return pairs
}

// rankWord orders the completions of a single token. A token that is itself
// an indexed word is always returned, in the last slot if ranking left it
// out.
func (c *Completer) rankWord(token string, fuzzy bool, limit int) []rank.Pair {
	ranked := c.unigrams.GetOrderedResults(c.candidates(token, fuzzy, limit), limit)
	if !c.isWord(token) {
		return ranked
	}
	if slices.ContainsFunc(ranked, func(p rank.Pair) bool { return p.Word == token }) {
		return ranked
	}
	self := rank.Pair{Word: token, Count: c.unigrams.Count(token)}
	if len(ranked) < limit {
		return append(ranked, self)
	}
	ranked[len(ranked)-1] = self
	return ranked
}

// CountFresh returns how many distinct tokens have a zero count, the number
// of words adding tokens would bring into the vocabulary. Tokens the
// vocabulary filter has never seen are fresh without consulting the counts.
func (c *Completer) CountFresh(tokens []string) int {
	fresh := make(map[string]struct{})
	for _, tok := range normalize(tokens) {
		if _, ok := fresh[tok]; ok {
			continue
		}
		if !c.vocab.TestString(tok) {
			c.filtered++
			fresh[tok] = struct{}{}
			continue
		}
		if c.unigrams.Count(tok) == 0 {
			fresh[tok] = struct{}{}
		}
	}
	return len(fresh)
}

func (c *Completer) isWord(token string) bool {
	return c.vocab.TestString(token) && c.words.ContainsWord(token, true)
}

// candidates returns the unranked words containing token. With fuzzy set the
// fragment lookup tolerates edits, and a token with no candidates is retried
// with its last character dropped until something matches.
func (c *Completer) candidates(token string, fuzzy bool, limit int) []string {
	capacity := limit * c.opts.CandidateMultiplier
	for frag := []rune(token); len(frag) > 0; frag = frag[:len(frag)-1] {
		found := c.containing(string(frag), fuzzy, capacity)
		if found.Len() > 0 || !fuzzy {
			return keys(found)
		}
		log.Debugf("No completions for %q, backing off", string(frag))
	}
	return nil
}

// containing collects up to capacity whole words containing fragment, in
// discovery order.
func (c *Completer) containing(fragment string, fuzzy bool, capacity int) *orderedmap.OrderedMap[string, struct{}] {
	found := orderedmap.New[string, struct{}]()
	maxEdits := 0
	if fuzzy {
		maxEdits = c.opts.MaxEditDistance
	}
	for _, left := range c.prefixes.GetCompletions(trie.CostString{Text: fragment}, maxEdits, !fuzzy) {
		for _, w := range c.words.GetCompletions(trie.CostString{Text: left.Text}, 0, true) {
			if !w.FullWord {
				continue
			}
			found.Set(w.Text, struct{}{})
			if found.Len() >= capacity {
				return found
			}
		}
	}
	return found
}

func (c *Completer) Count(token string) int {
	return c.unigrams.Count(strings.ToLower(token))
}

func (c *Completer) PairCount(first, second string) int {
	return c.digrams.Count(strings.ToLower(first), strings.ToLower(second))
}

// PrefixCount sums the counts of every token starting with prefix.
func (c *Completer) PrefixCount(prefix string) int {
	return c.unigrams.CountPrefix(strings.ToLower(prefix))
}

// MostCommon returns up to n of the most frequent tokens.
func (c *Completer) MostCommon(n int) []rank.Pair {
	return c.unigrams.MostCommon(n)
}

func (c *Completer) Stats() map[string]int {
	return map[string]int{
		"tokens":       c.unigrams.Len(),
		"occurrences":  c.unigrams.Total(),
		"pairs":        c.digrams.Len(),
		"indexedWords": c.words.Words(),
		"prefixNodes":  c.prefixes.Nodes(),
		"wordNodes":    c.words.Nodes(),
	}
}

// normalize lowercases tokens and drops empty ones.
func normalize(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok = strings.ToLower(strings.TrimSpace(tok)); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func keys(m *orderedmap.OrderedMap[string, struct{}]) []string {
	out := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}
