package trie

import (
	"strings"
	"testing"
)

func TestAddAndContainsWord(t *testing.T) {
	testCases := []struct {
		description  string
		dir          Direction
		mode         Mode
		words        []string
		query        string
		fullWordOnly bool
		expected     bool
	}{
		{"partial whole word", Suffix, Partial, []string{"band"}, "band", true, true},
		{"partial path only", Suffix, Partial, []string{"band"}, "ban", false, true},
		{"partial path is not a word", Suffix, Partial, []string{"band"}, "ban", true, false},
		{"partial longer than indexed", Suffix, Partial, []string{"band"}, "bandy", false, false},
		{"partial suffix not indexed", Suffix, Partial, []string{"banana"}, "nana", false, false},
		{"full suffix reachable", Suffix, Full, []string{"banana"}, "nana", false, true},
		{"full suffix not a word", Suffix, Full, []string{"banana"}, "nana", true, false},
		{"full prefix reachable", Prefix, Full, []string{"banana"}, "bana", false, true},
		{"prefix partial ending reachable", Prefix, Partial, []string{"banana"}, "nana", false, true},
		{"prefix partial interior not reachable", Prefix, Partial, []string{"banana"}, "nan", false, false},
		{"prefix full interior reachable", Prefix, Full, []string{"banana"}, "nan", false, true},
		{"inverted suffix ending", InvertedSuffix, Full, []string{"band"}, "and", false, true},
		{"inverted suffix no prefixes", InvertedSuffix, Full, []string{"band"}, "ban", false, false},
		{"inverted suffix whole word", InvertedSuffix, Partial, []string{"band"}, "band", true, true},
		{"empty query", Suffix, Full, []string{"band"}, "", false, false},
		{"empty trie", Prefix, Partial, nil, "band", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			tr := New(tc.dir, tc.mode)
			for _, w := range tc.words {
				tr.Add(w)
			}
			if got := tr.ContainsWord(tc.query, tc.fullWordOnly); got != tc.expected {
				t.Errorf("ContainsWord(%q, %v) = %v, expected %v", tc.query, tc.fullWordOnly, got, tc.expected)
			}
		})
	}
}

func TestAddCost(t *testing.T) {
	testCases := []struct {
		dir   Direction
		mode  Mode
		word  string
		steps int
		nodes int
	}{
		{Suffix, Partial, "band", 4, 4},
		{Suffix, Full, "band", 10, 10},
		{Prefix, Full, "band", 10, 10},
		// every suffix shares the reversed path d-n-a-b
		{InvertedSuffix, Full, "band", 10, 4},
		{Suffix, Partial, "", 0, 0},
		{Suffix, Full, "ü", 1, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.dir.Name+"/"+tc.mode.String()+"/"+tc.word, func(t *testing.T) {
			tr := New(tc.dir, tc.mode)
			if got := tr.Add(tc.word); got != tc.steps {
				t.Errorf("Add(%q) = %d steps, expected %d", tc.word, got, tc.steps)
			}
			if tr.Nodes() != tc.nodes {
				t.Errorf("Nodes() = %d, expected %d", tr.Nodes(), tc.nodes)
			}
		})
	}
}

func TestAddTwiceKeepsWordCount(t *testing.T) {
	tr := New(Suffix, Full)
	tr.Add("band")
	nodes := tr.Nodes()
	tr.Add("band")
	if tr.Words() != 1 {
		t.Errorf("Words() = %d, expected 1", tr.Words())
	}
	if tr.Nodes() != nodes {
		t.Errorf("Nodes() grew from %d to %d on re-add", nodes, tr.Nodes())
	}
}

func TestParseMode(t *testing.T) {
	testCases := []struct {
		input    string
		expected Mode
		ok       bool
	}{
		{"full", Full, true},
		{" Partial ", Partial, true},
		{"FULL", Full, true},
		{"both", Partial, false},
	}
	for _, tc := range testCases {
		got, ok := ParseMode(tc.input)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParseMode(%q) = (%v, %v), expected (%v, %v)", tc.input, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestDirectionPrimitives(t *testing.T) {
	word := []rune("band")
	for _, dir := range []Direction{Prefix, Suffix, InvertedSuffix} {
		order := dir.Order(word)
		if dir.Anchor(word) != order[0] {
			t.Errorf("%s: Anchor = %q, expected first walk rune %q", dir.Name, dir.Anchor(word), order[0])
		}
		if dir.Opposite(word) != order[len(order)-1] {
			t.Errorf("%s: Opposite = %q, expected last walk rune %q", dir.Name, dir.Opposite(word), order[len(order)-1])
		}
		if string(dir.Order(order)) != "band" {
			t.Errorf("%s: Order is not its own inverse", dir.Name)
		}
		if string(word) != "band" {
			t.Fatalf("%s: Order mutated its argument", dir.Name)
		}
	}
	if got := string(Prefix.Rest(word)); got != "ban" {
		t.Errorf("Prefix.Rest = %q", got)
	}
	if got := string(Suffix.Rest(word)); got != "and" {
		t.Errorf("Suffix.Rest = %q", got)
	}
	if got := string(InvertedSuffix.Rest(word)); got != "and" {
		t.Errorf("InvertedSuffix.Rest = %q", got)
	}
}

func TestCostStringIdentity(t *testing.T) {
	a := CostString{Text: "band", Cost: 2}
	b := CostString{Text: "band", Cost: 0}
	if !a.Equal(b) {
		t.Error("equal text with different cost should be equal")
	}
	if !b.Cheaper(a) || a.Cheaper(b) {
		t.Error("Cheaper should compare cost only")
	}
	if a.Equal(CostString{Text: "bands", Cost: 2}) {
		t.Error("different text should not be equal")
	}
	if !strings.Contains(a.String(), "band") {
		t.Errorf("String() = %q", a.String())
	}
}
