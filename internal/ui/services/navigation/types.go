package navigation

// NoSelection is the Idle selection index
const NoSelection = -1

// State holds result selection state. SelectedIndex is NoSelection when no
// row is active; otherwise it is a valid position in [0, Count).
type State struct {
	SelectedIndex int
	Count         int
}

// Event types for selection changes
type SelectionMovedEvent struct {
	OldIndex int
	NewIndex int
}

type SelectionResetEvent struct{}
