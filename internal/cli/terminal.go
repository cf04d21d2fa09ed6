package cli

import (
	"slices"
	"strconv"
	"strings"

	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
)

var (
	wordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	labelStyle = lipgloss.NewStyle().Bold(true)
)

func (h *InputHandler) printSuggestions(title string, suggestions []suggest.Suggestion) {
	h.out.Printf("Found %d suggestions for %s:", len(suggestions), title)
	for i, s := range suggestions {
		h.out.Printf("%2d. %-40s (freq: %8s)", i+1, wordStyle.Render(s.Word), formatWithCommas(s.Frequency))
	}
}

func (h *InputHandler) printStats(stats map[string]int) {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		h.out.Printf("%-14s %10s", labelStyle.Render(k), formatWithCommas(stats[k]))
	}
}

// formatWithCommas formats an integer with comma separators
func formatWithCommas(n int) string {
	if n < 0 {
		return "-" + formatWithCommas(-n)
	}
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
