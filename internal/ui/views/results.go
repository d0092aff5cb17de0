package views

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"docdex/internal/domain"
	"docdex/internal/history"
)

// ResultRenderer renders result and recency rows
type ResultRenderer struct {
	styles         *Styles
	showCategories bool
}

// NewResultRenderer creates a new result renderer
func NewResultRenderer(styles *Styles, showCategories bool) *ResultRenderer {
	return &ResultRenderer{
		styles:         styles,
		showCategories: showCategories,
	}
}

// RenderEntryRow renders one searchable entry as a single row. Exactly one
// row per list carries the active marker at any time. A non-empty query has
// its first occurrence in the title emphasized.
func (rr *ResultRenderer) RenderEntryRow(entry domain.Entry, active bool, width int, query string) string {
	marker := "  "
	if active {
		marker = "▸ "
	}

	kind := lipgloss.NewStyle().
		Foreground(lipgloss.Color(KindColor(string(entry.Kind)))).
		Render(fmt.Sprintf("[%s]", entry.Kind))

	var title string
	switch {
	case active:
		title = rr.styles.ActiveRow.Render(entry.Title)
	case query != "":
		title = rr.styles.RowTitle.Render(rr.HighlightMatch(entry.Title, query))
	default:
		title = rr.styles.RowTitle.Render(entry.Title)
	}

	row := marker + title + " " + kind
	if rr.showCategories && entry.Category != "" {
		row += " " + rr.styles.Category.Render(entry.Category)
	}
	if entry.Description != "" {
		row += rr.styles.RowDesc.Render(" — " + entry.Description)
	}

	return truncateRow(row, width)
}

// RenderRecentRow renders one recency row
func (rr *ResultRenderer) RenderRecentRow(recent history.RecentQuery, active bool, width int) string {
	marker := "  "
	if active {
		marker = "▸ "
	}

	title := rr.styles.RowTitle.Render(recent.Title)
	if active {
		title = rr.styles.ActiveRow.Render(recent.Title)
	}

	row := marker + title + rr.styles.Dim.Render(" · "+relativeTime(recent.Timestamp))
	if recent.URL != "" {
		row += rr.styles.RowDesc.Render(" " + recent.URL)
	}

	return truncateRow(row, width)
}

// truncateRow clips a rendered row to the available width
func truncateRow(row string, width int) string {
	if width <= 0 || lipgloss.Width(row) <= width {
		return row
	}
	// Clip on plain text; styled truncation mid-sequence is not worth the
	// complexity for single-line rows
	plain := ansiRE.ReplaceAllString(row, "")
	runes := []rune(plain)
	if len(runes) <= width {
		return plain
	}
	return string(runes[:width-1]) + "…"
}

// relativeTime formats a timestamp as a short age ("3d ago")
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// HighlightMatch emphasizes the first case-insensitive occurrence of query
// inside text
func (rr *ResultRenderer) HighlightMatch(text, query string) string {
	if query == "" {
		return text
	}
	start, end := foldIndex(text, strings.ToLower(query))
	if start < 0 {
		return text
	}
	return text[:start] + rr.styles.Highlight.Render(text[start:end]) + text[end:]
}

// foldIndex locates the first occurrence of lowerQuery in text under
// rune-wise lowercase folding and returns byte bounds into the original
// string. Lowercasing can change a rune's encoded length, so byte offsets
// found in a lowered copy of text cannot be applied to text itself.
func foldIndex(text, lowerQuery string) (int, int) {
	if lowerQuery == "" {
		return -1, -1
	}
	for start := 0; start < len(text); {
		_, size := utf8.DecodeRuneInString(text[start:])

		matched := 0
		end := start
		for end < len(text) && matched < len(lowerQuery) {
			r, n := utf8.DecodeRuneInString(text[end:])
			lowered := string(unicode.ToLower(r))
			if !strings.HasPrefix(lowerQuery[matched:], lowered) {
				break
			}
			matched += len(lowered)
			end += n
		}
		if matched == len(lowerQuery) {
			return start, end
		}

		start += size
	}
	return -1, -1
}
