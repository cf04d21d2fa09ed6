package trie

import "fmt"

// CostString is a candidate string with the edit cost spent producing it.
// Identity is the text alone; Cost only decides which duplicate survives.
type CostString struct {
	Text string
	Cost int
}

// Equal reports whether both strings carry the same text, whatever their cost.
func (s CostString) Equal(other CostString) bool {
	return s.Text == other.Text
}

// Cheaper reports whether s was reached with strictly fewer edits than other.
func (s CostString) Cheaper(other CostString) bool {
	return s.Cost < other.Cost
}

func (s CostString) String() string {
	return fmt.Sprintf("%s(%d)", s.Text, s.Cost)
}

// Completion is a single search result. FullWord is set when the text was
// passed to Add as a whole word rather than reached as an indexed substring.
type Completion struct {
	CostString
	FullWord bool
}
