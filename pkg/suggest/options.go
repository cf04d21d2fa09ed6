package suggest

import (
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/trie"
)

// Options configures a Completer.
type Options struct {
	// PrefixMode is the indexing mode of the trie that locates fragments
	// inside words. Full finds fragments anywhere; Partial only at word ends.
	PrefixMode trie.Mode
	// MaxEditDistance bounds the edit search used by fuzzy queries.
	MaxEditDistance int
	// CandidateMultiplier inflates the requested limit when collecting
	// unranked candidates.
	CandidateMultiplier int
	DefaultLimit        int
	// ExpectedWords and FalsePositiveRate size the vocabulary filter.
	ExpectedWords     int
	FalsePositiveRate float64
	Tokenizer         Tokenizer
}

// DefaultOptions returns the recommended options. NewCompleter also falls
// back to them for unset numeric fields and a nil Tokenizer.
func DefaultOptions() Options {
	return Options{
		PrefixMode:          trie.Full,
		MaxEditDistance:     1,
		CandidateMultiplier: 3,
		DefaultLimit:        10,
		ExpectedWords:       100000,
		FalsePositiveRate:   0.01,
		Tokenizer:           utils.DefaultTokenFilter(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxEditDistance < 0 {
		o.MaxEditDistance = 0
	}
	if o.CandidateMultiplier <= 0 {
		o.CandidateMultiplier = d.CandidateMultiplier
	}
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = d.DefaultLimit
	}
	if o.ExpectedWords <= 0 {
		o.ExpectedWords = d.ExpectedWords
	}
	if o.FalsePositiveRate <= 0 || o.FalsePositiveRate >= 1 {
		o.FalsePositiveRate = d.FalsePositiveRate
	}
	if o.Tokenizer == nil {
		o.Tokenizer = d.Tokenizer
	}
	return o
}
