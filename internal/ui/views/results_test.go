package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldIndexMapsBoundsToOriginalString(t *testing.T) {
	// U+023A lowercases from 2 to 3 bytes, U+0130 from 2 to 1
	cases := []struct {
		name  string
		text  string
		query string
		start int
		end   int
	}{
		{"ascii", "Active Search", "search", 7, 13},
		{"lowered rune grows", "Ⱥalpha", "alpha", 2, 7},
		{"lowered rune shrinks", "İstanbul Guide", "istanbul", 0, 9},
		{"match spans the folded rune", "İstanbul Guide", "İstan", 0, 6},
		{"no match", "Active Search", "zzz", -1, -1},
		{"empty query", "Active Search", "", -1, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := foldIndex(tc.text, strings.ToLower(tc.query))
			assert.Equal(t, tc.start, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestHighlightMatchKeepsNonASCIITitlesIntact(t *testing.T) {
	rr := NewResultRenderer(NewStyles(), true)

	for _, title := range []string{
		"Ⱥalpha",
		"İstanbul Guide",
		"Café Setup",
	} {
		out := rr.HighlightMatch(title, "alpha")
		plain := ansiRE.ReplaceAllString(out, "")
		assert.Equal(t, title, plain, "highlighting must never alter the title text")
	}
}

func TestHighlightMatchMissLeavesTextUntouched(t *testing.T) {
	rr := NewResultRenderer(NewStyles(), true)

	assert.Equal(t, "Alpha Page", rr.HighlightMatch("Alpha Page", "zzz"))
	assert.Equal(t, "Alpha Page", rr.HighlightMatch("Alpha Page", ""))
}
