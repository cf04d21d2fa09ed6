package suggest

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/rank"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func addTimes(c *Completer, counts map[string]int) {
	for word, n := range counts {
		for i := 0; i < n; i++ {
			c.Add([]string{word})
		}
	}
}

var fruitCounts = map[string]int{"cacao": 4, "ban": 1, "bad": 2, "band": 6, "banana": 5, "bandy": 3}

func TestCompleteRanking(t *testing.T) {
	c := NewCompleter(DefaultOptions())
	addTimes(c, fruitCounts)

	testCases := []struct {
		stub     string
		limit    int
		expected []string
	}{
		{"a", 10, []string{"band", "banana", "cacao", "bandy", "bad", "ban"}},
		{"a", 3, []string{"band", "banana", "cacao"}},
		{"nd", 10, []string{"band", "bandy"}},
		{"cao", 10, []string{"cacao"}},
		{"ANA", 10, []string{"banana"}},
		{"xyz", 10, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.stub, func(t *testing.T) {
			got := c.Complete(tc.stub, false, tc.limit)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Complete(%q, %d) = %v, expected %v", tc.stub, tc.limit, got, tc.expected)
			}
		})
	}
}

func TestCompleteDefaultLimit(t *testing.T) {
	c := NewCompleter(Options{DefaultLimit: 2, PrefixMode: trie.Full})
	addTimes(c, fruitCounts)
	if got := c.Complete("a", false, 0); !reflect.DeepEqual(got, []string{"band", "banana"}) {
		t.Errorf("Complete with zero limit = %v", got)
	}
}

func TestSuggestCarriesCounts(t *testing.T) {
	c := NewCompleter(DefaultOptions())
	addTimes(c, fruitCounts)
	got := c.Suggest("a", false, 3)
	expected := []Suggestion{{"band", 6}, {"banana", 5}, {"cacao", 4}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Suggest = %v, expected %v", got, expected)
	}
}

func TestKnownWordAlwaysReturned(t *testing.T) {
	c := NewCompleter(DefaultOptions())
	addTimes(c, map[string]int{"band": 1, "bandy": 5, "bandana": 4, "bands": 3})

	testCases := []struct {
		limit    int
		expected []string
	}{
		{2, []string{"bandy", "band"}},
		{1, []string{"band"}},
		{10, []string{"bandy", "bandana", "bands", "band"}},
	}
	for _, tc := range testCases {
		if got := c.Complete("band", false, tc.limit); !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("Complete(band, %d) = %v, expected %v", tc.limit, got, tc.expected)
		}
	}
}

func TestRemoveOnlyLowersRanking(t *testing.T) {
	c := NewCompleter(DefaultOptions())
	addTimes(c, map[string]int{"band": 6, "bandy": 3})

	if got := c.Complete("ban", false, 10); !reflect.DeepEqual(got, []string{"band", "bandy"}) {
		t.Fatalf("before removal Complete(ban) = %v", got)
	}
	for i := 0; i < 6; i++ {
		c.Remove([]string{"band"})
	}
	if c.Count("band") != 0 {
		t.Errorf("Count(band) = %d after removal", c.Count("band"))
	}
	if got := c.Complete("ban", false, 10); !reflect.DeepEqual(got, []string{"bandy"}) {
		t.Errorf("after removal Complete(ban) = %v, expected [bandy]", got)
	}
	// still indexed, so the bare word is still offered
	if got := c.Complete("band", false, 10); !reflect.DeepEqual(got, []string{"bandy", "band"}) {
		t.Errorf("after removal Complete(band) = %v, expected [bandy band]", got)
	}
	if c.Stats()["indexedWords"] != 2 {
		t.Errorf("indexedWords = %d, expected 2", c.Stats()["indexedWords"])
	}
}

func TestPairCompletion(t *testing.T) {
	c := NewCompleter(DefaultOptions())
	c.Add(strings.Fields("the quick brown fox jumps over the lazy dog"))

	testCases := []struct {
		description string
		tokens      []string
		fuzzy       bool
		expected    []string
	}{
		{"fragments of a seen pair", []string{"uic", "bro"}, true, []string{"quick brown"}},
		{"exact fragments", []string{"uic", "bro"}, false, []string{"quick brown"}},
		{"leading tokens are kept", []string{"see", "the", "la"}, false, []string{"see the lazy"}},
		{"pair seen in reverse order", []string{"fox", "brow"}, false, []string{"brown fox"}},
		{"unseen pair", []string{"dog", "quick"}, false, []string{}},
		{"empty tokens skipped", []string{"", "the", " ", "laz"}, false, []string{"the lazy"}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := c.CompleteTokens(tc.tokens, tc.fuzzy, 10)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("CompleteTokens(%q) = %v, expected %v", tc.tokens, got, tc.expected)
			}
		})
	}
}

func TestCharacterBackOff(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxEditDistance = 0
	c := NewCompleter(opts)
	c.Add(strings.Fields("the quick brown fox jumps over the lazy dog"))

	tokens := []string{"uiczz", "browq"}
	if got := c.CompleteTokens(tokens, true, 10); !reflect.DeepEqual(got, []string{"quick brown"}) {
		t.Errorf("fuzzy CompleteTokens(%q) = %v, expected [quick brown]", tokens, got)
	}
	if got := c.CompleteTokens(tokens, false, 10); len(got) != 0 {
		t.Errorf("exact CompleteTokens(%q) = %v, expected none", tokens, got)
	}
	// every letter occurs in the sentence, so only a digit backs off to nothing
	if got := c.CompleteTokens([]string{"999"}, true, 10); len(got) != 0 {
		t.Errorf("back-off to nothing returned %v", got)
	}
}

func TestFuzzyEditSearch(t *testing.T) {
	c := NewCompleter(DefaultOptions())
	addTimes(c, map[string]int{"quick": 2, "quiet": 1})

	if got := c.Complete("qiuck", false, 10); len(got) != 0 {
		t.Errorf("exact Complete(qiuck) = %v, expected none", got)
	}
	got := c.Complete("qiuck", true, 10)
	if len(got) == 0 || got[0] != "quick" {
		t.Errorf("fuzzy Complete(qiuck) = %v, expected quick first", got)
	}
}

func TestPrefixModeCoverage(t *testing.T) {
	testCases := []struct {
		mode     trie.Mode
		stub     string
		expected []string
	}{
		{trie.Full, "and", []string{"bandy"}},
		{trie.Partial, "and", []string{}},
		{trie.Partial, "an", []string{"ban", "bandy"}},
	}
	for _, tc := range testCases {
		opts := DefaultOptions()
		opts.PrefixMode = tc.mode
		c := NewCompleter(opts)
		c.Add([]string{"ban", "bandy"})
		if got := c.Complete(tc.stub, false, 10); !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("%v: Complete(%q) = %v, expected %v", tc.mode, tc.stub, got, tc.expected)
		}
	}
}

func TestEverySubstringCompletes(t *testing.T) {
	words := []string{"banana", "bandana", "cacao", "mississippi", "quick"}
	c := NewCompleter(DefaultOptions())
	c.Add(words)

	for _, w := range words {
		r := []rune(w)
		for i := 0; i < len(r); i++ {
			for j := i + 1; j <= len(r); j++ {
				s := string(r[i:j])
				if got := c.CompleteTokens([]string{s}, false, 50); !slices.Contains(got, w) {
					t.Errorf("CompleteTokens(%q) = %v, missing %q", s, got, w)
				}
			}
		}
	}
}

func TestDiagnostics(t *testing.T) {
	c := NewCompleter(DefaultOptions())
	c.AddText("The quick brown fox. The lazy dog!")

	if c.Count("the") != 2 || c.Count("THE") != 2 {
		t.Errorf("Count(the) = %d", c.Count("the"))
	}
	if c.PairCount("the", "quick") != 1 || c.PairCount("quick", "the") != 0 {
		t.Errorf("PairCount mismatch")
	}
	// sentences are not split, so the pair crosses the full stop
	if c.PairCount("fox", "the") != 1 {
		t.Errorf("PairCount(fox, the) = %d", c.PairCount("fox", "the"))
	}
	if got := c.MostCommon(1); !reflect.DeepEqual(got, []rank.Pair{{Word: "the", Count: 2}}) {
		t.Errorf("MostCommon(1) = %v", got)
	}
	if got := c.PrefixCount("t"); got != 2 {
		t.Errorf("PrefixCount(t) = %d", got)
	}

	stats := c.Stats()
	if stats["tokens"] != 6 || stats["occurrences"] != 7 || stats["pairs"] != 6 {
		t.Errorf("Stats() = %v", stats)
	}

	c.RemoveText("the lazy dog")
	if c.Count("the") != 1 || c.PairCount("lazy", "dog") != 0 {
		t.Errorf("RemoveText left the=%d lazy/dog=%d", c.Count("the"), c.PairCount("lazy", "dog"))
	}
}

func TestEmptyInput(t *testing.T) {
	c := NewCompleter(DefaultOptions())
	c.Add(nil)
	c.Remove([]string{"never", "seen"})
	if got := c.Complete("", true, 10); len(got) != 0 {
		t.Errorf("Complete on empty index = %v", got)
	}
	c.Add([]string{"band"})
	if got := c.CompleteTokens([]string{"", "  "}, false, 10); len(got) != 0 {
		t.Errorf("blank tokens completed to %v", got)
	}
}

func TestCustomTokenizer(t *testing.T) {
	opts := DefaultOptions()
	opts.Tokenizer = TokenizerFunc(strings.Fields)
	c := NewCompleter(opts)
	c.AddText("c3po r2d2 c3po")
	if got := c.Complete("3p", false, 10); !reflect.DeepEqual(got, []string{"c3po"}) {
		t.Errorf("Complete(3p) = %v", got)
	}
}

func TestCountFresh(t *testing.T) {
	c := NewCompleter(DefaultOptions())
	c.AddText("band banana")
	c.RemoveText("banana")

	got := c.CountFresh([]string{"zebra", "Band", "banana", "zebra", "apple", ""})
	// zebra and apple are new, banana was indexed but its count is back to zero
	if got != 3 {
		t.Errorf("CountFresh = %d, expected 3", got)
	}
	// only words never indexed are settled by the vocabulary filter
	if c.filtered != 2 {
		t.Errorf("vocabulary filter settled %d tokens, expected 2", c.filtered)
	}
	if c.CountFresh(nil) != 0 || c.CountFresh([]string{"band"}) != 0 {
		t.Error("known or empty tokens counted as fresh")
	}
	if c.filtered != 2 {
		t.Errorf("indexed token settled by the filter, filtered = %d", c.filtered)
	}
}
