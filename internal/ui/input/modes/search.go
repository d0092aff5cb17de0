package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"docdex/internal/ui/input/types"
)

// SearchMode drives the search overlay: text edits fall through to the
// shared text input, everything else is selection movement or a commit.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "up", "ctrl+p":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "down", "ctrl+n":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "home":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case "end":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "enter":
		// Enter with no active selection is a no-op
		if ctx.SelectedIndex() < 0 {
			return nil, true
		}
		return []types.Action{types.ConfirmAction{}}, true

	case "ctrl+y":
		if ctx.SelectedIndex() < 0 {
			return nil, true
		}
		return []types.Action{types.CopyURLAction{}}, true

	case "ctrl+x":
		// Remove the selected recency row; only meaningful on the recent list
		if !ctx.ShowingRecent() || ctx.SelectedIndex() < 0 {
			return nil, true
		}
		return []types.Action{types.RemoveRecentAction{}}, true

	case "ctrl+l":
		if !ctx.ShowingRecent() {
			return nil, true
		}
		return []types.Action{types.ClearRecentAction{}}, true
	}

	// esc/ctrl+c and plain text fall through to the base mode
	return m.TextInputMode.HandleKey(msg, ctx)
}
