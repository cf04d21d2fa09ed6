// Package cli provides a line-based front end for feeding and querying a
// completer interactively, mainly for debugging.
package cli

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler reads lines and either changes the index or completes them.
//
// A line starting with '+' adds its text and one starting with '-' removes
// it. '?' toggles fuzzy matching, '#' prints the summed count of tokens
// starting with the rest of the line and '!' prints index statistics.
// Anything else is completed.
type InputHandler struct {
	completer       suggest.ICompleter
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
	fuzzy           bool
	requestCount    int

	in  io.Reader
	out *log.Logger
}

// NewInputHandler creates a handler reading stdin and printing to stderr.
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
		in:              os.Stdin,
		out:             logger.NewWithWriter(os.Stderr, "", log.InfoLevel, false, false, log.TextFormatter),
	}
}

// WithIO redirects the handler to read r and print to w.
func (h *InputHandler) WithIO(r io.Reader, w io.Writer) *InputHandler {
	h.in = r
	h.out = logger.NewWithWriter(w, "", log.InfoLevel, false, false, log.TextFormatter)
	return h
}

// SetFuzzy sets whether completions tolerate typos.
func (h *InputHandler) SetFuzzy(fuzzy bool) {
	h.fuzzy = fuzzy
}

// Start runs the loop until the input ends.
func (h *InputHandler) Start() error {
	h.out.Print("wordtrie CLI")
	h.out.Print("+text adds, -text removes, ? toggles fuzzy, #prefix counts, ! shows stats")
	h.out.Print("anything else is completed (Ctrl+D to exit)")

	scanner := bufio.NewScanner(h.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
	return scanner.Err()
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	switch line[0] {
	case '+':
		h.completer.AddText(line[1:])
		h.out.Printf("indexed, %d distinct tokens", h.completer.Stats()["tokens"])
	case '-':
		h.completer.RemoveText(line[1:])
		h.out.Printf("removed, %d distinct tokens", h.completer.Stats()["tokens"])
	case '?':
		h.fuzzy = !h.fuzzy
		h.out.Printf("fuzzy matching: %v", h.fuzzy)
	case '#':
		prefix := strings.TrimSpace(line[1:])
		h.out.Printf("%q: %s occurrences", prefix, formatWithCommas(h.completer.PrefixCount(prefix)))
	case '!':
		h.printStats(h.completer.Stats())
		h.printSuggestions("most common", h.topSuggestions())
	default:
		h.complete(line)
	}
}

// complete validates prefix the way the server does, then prints its
// suggestions.
func (h *InputHandler) complete(prefix string) {
	if n := utf8.RuneCountInString(prefix); n < h.minPrefixLength {
		log.Errorf("Prefix too short: %s", prefix)
		return
	} else if n > h.maxPrefixLength {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}

	if !h.noFilter {
		fields := strings.Fields(prefix)
		if !utils.IsValidInput(strings.ToLower(fields[len(fields)-1])) {
			h.out.Printf("No suggestions for prefix: '%s' (filtered out)", prefix)
			return
		}
	} else {
		log.Debug("Input filtering disabled")
	}

	start := time.Now()
	suggestions := h.completer.Suggest(prefix, h.fuzzy, h.suggestLimit)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		h.out.Printf("No suggestions found for prefix: '%s'", prefix)
		return
	}
	h.printSuggestions("prefix '"+prefix+"'", suggestions)
}

func (h *InputHandler) topSuggestions() []suggest.Suggestion {
	pairs := h.completer.MostCommon(h.suggestLimit)
	out := make([]suggest.Suggestion, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, suggest.Suggestion{Word: p.Word, Frequency: p.Count})
	}
	return out
}
