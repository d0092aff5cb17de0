package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// ConfirmAction commits the current selection
type ConfirmAction struct{}

func (a ConfirmAction) Type() string { return "confirm" }

// OpenSearchAction opens the search overlay
type OpenSearchAction struct{}

func (a OpenSearchAction) Type() string { return "open_search" }

// RemoveRecentAction removes the selected recency row
type RemoveRecentAction struct{}

func (a RemoveRecentAction) Type() string { return "remove_recent" }

// ClearRecentAction clears the whole recency list
type ClearRecentAction struct{}

func (a ClearRecentAction) Type() string { return "clear_recent" }

// CopyURLAction copies the selected entry's URL to the clipboard
type CopyURLAction struct{}

func (a CopyURLAction) Type() string { return "copy_url" }

// OpenPagerAction opens the highlighted entry in the pager without committing
type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

// RefreshAction requests a docs rescan
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

// ToggleHelpAction shows or hides help
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// QuitAction exits the application
type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
