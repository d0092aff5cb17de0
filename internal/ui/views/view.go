package views

import (
	"fmt"
	"strings"
	"time"

	"docdex/internal/domain"
	"docdex/internal/history"
	"docdex/internal/index"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	// Browse list
	Entries        []domain.Entry
	BrowseIndex    int
	ViewportOffset int
	ViewportHeight int

	// Search overlay
	SearchOpen    bool
	Query         string
	TextInputView string
	Results       []index.Result
	Recent        []history.RecentQuery
	ShowingRecent bool
	SelectedIndex int

	// Shared chrome
	Scanning      bool
	DocsFound     int
	StatusMessage string
	Stats         index.Stats
	ShowHelp      bool
	HelpContent   string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	resultRow   *ResultRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showCategories bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		resultRow:   NewResultRenderer(styles, showCategories),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	main := r.renderBrowse(state)

	if state.ShowHelp {
		return r.popupRender.RenderPopupOverlay(main, state.HelpContent, state.Height, state.Width)
	}

	if state.SearchOpen {
		overlay := r.renderSearchOverlay(state)
		return r.popupRender.RenderPopupOverlay(main, overlay, state.Height, state.Width)
	}

	return main
}

// renderBrowse renders the full-screen entry list
func (r *Renderer) renderBrowse(state ViewState) string {
	content := &strings.Builder{}

	// Title with scan indicator
	logo := r.styles.Title.Render("docdex")
	if state.Scanning {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		logo += "  " + r.styles.Scan.Render(fmt.Sprintf("%s Scanning docs (%d found)", spinner[frame], state.DocsFound))
	}
	content.WriteString(logo)
	content.WriteString("\n")

	if len(state.Entries) == 0 {
		if state.Scanning {
			content.WriteString(r.styles.Dim.Render("Discovering documentation..."))
		} else {
			content.WriteString(r.styles.Dim.Render("No docs or examples indexed. Check docs_dir in the config."))
		}
		content.WriteString("\n")
	} else {
		r.renderEntryList(content, state)
	}

	// Status bar
	status := fmt.Sprintf("%d entries · %d examples · %d docs",
		state.Stats.TotalEntries, state.Stats.ExamplesCount, state.Stats.DocsCount)
	if state.StatusMessage != "" {
		status += "  " + r.styles.Toast.Render(state.StatusMessage)
	}
	content.WriteString(r.styles.Status.Render(status))
	content.WriteString("\n")

	// Help footer
	content.WriteString(r.styles.Help.Render("ctrl+k or / to search · enter open · y copy url · r rescan · ? help · q quit"))

	return r.styles.Main.Render(content.String())
}

// renderEntryList writes the viewport-clipped browse rows
func (r *Renderer) renderEntryList(content *strings.Builder, state ViewState) {
	total := len(state.Entries)
	offset := state.ViewportOffset
	height := state.ViewportHeight
	if height <= 0 {
		height = total
	}
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}

	end := offset + height
	if end > total {
		end = total
	}

	if offset > 0 {
		content.WriteString(r.styles.Scroll.Render("↑ (more above)"))
		content.WriteString("\n")
	}

	for i := offset; i < end; i++ {
		row := r.resultRow.RenderEntryRow(state.Entries[i], i == state.BrowseIndex, state.Width-4, "")
		content.WriteString(row)
		content.WriteString("\n")
	}

	if end < total {
		content.WriteString(r.styles.Scroll.Render("↓ (more below)"))
		content.WriteString("\n")
	}
}

// renderSearchOverlay renders the palette popup content
func (r *Renderer) renderSearchOverlay(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.styles.Prompt.Render("Search: "))
	content.WriteString(state.TextInputView)
	content.WriteString("\n\n")

	if state.ShowingRecent {
		r.renderRecentRows(content, state)
	} else {
		r.renderResultRows(content, state)
	}

	content.WriteString("\n")
	if state.ShowingRecent {
		content.WriteString(r.styles.Help.Render("↑/↓ navigate · enter run · ctrl+x remove · ctrl+l clear all · esc close"))
	} else {
		content.WriteString(r.styles.Help.Render("↑/↓ navigate · enter open · ctrl+y copy url · esc close"))
	}

	return content.String()
}

func (r *Renderer) renderResultRows(content *strings.Builder, state ViewState) {
	if state.Query == "" {
		content.WriteString(r.styles.Dim.Render("Type to search docs and examples"))
		content.WriteString("\n")
		return
	}
	if len(state.Results) == 0 {
		content.WriteString(r.styles.Dim.Render(fmt.Sprintf("No results for %q", state.Query)))
		content.WriteString("\n")
		return
	}

	for i, res := range state.Results {
		row := r.resultRow.RenderEntryRow(res.Entry, i == state.SelectedIndex, overlayRowWidth(state.Width), state.Query)
		content.WriteString(row)
		content.WriteString("\n")
	}
}

func (r *Renderer) renderRecentRows(content *strings.Builder, state ViewState) {
	if len(state.Recent) == 0 {
		content.WriteString(r.styles.Dim.Render("No recent searches"))
		content.WriteString("\n")
		return
	}

	content.WriteString(r.styles.Dim.Render("Recent searches"))
	content.WriteString("\n")
	for i, rec := range state.Recent {
		row := r.resultRow.RenderRecentRow(rec, i == state.SelectedIndex, overlayRowWidth(state.Width))
		content.WriteString(row)
		content.WriteString("\n")
	}
}

// overlayRowWidth leaves room for the popup border and padding
func overlayRowWidth(termWidth int) int {
	w := termWidth - 10
	if w < 20 {
		w = 20
	}
	return w
}
