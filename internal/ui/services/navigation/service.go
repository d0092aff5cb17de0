package navigation

import (
	"docdex/internal/ui/services/events"
)

// Service tracks the keyboard selection over the currently rendered result
// rows. Arrow movement wraps around both ends; any change to the underlying
// result set resets the selection to Idle before the next key is handled.
type Service struct {
	state *State
	bus   events.EventBus
}

// NewService creates a new navigation service
func NewService(bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state: &State{
			SelectedIndex: NoSelection,
			Count:         0,
		},
		bus: bus,
	}
}

// SetItems records the current result row count. A changed count invalidates
// the selection; a stale out-of-range index is treated as Idle either way.
func (s *Service) SetItems(count int) {
	if count < 0 {
		count = 0
	}
	changed := count != s.state.Count
	s.state.Count = count

	if changed || s.state.SelectedIndex >= count {
		s.reset()
	}
}

// Selected returns the current selection index, or NoSelection when idle.
// An index that went stale relative to the item count reads as NoSelection.
func (s *Service) Selected() int {
	if s.state.SelectedIndex < 0 || s.state.SelectedIndex >= s.state.Count {
		return NoSelection
	}
	return s.state.SelectedIndex
}

// Count returns the current item count
func (s *Service) Count() int {
	return s.state.Count
}

// MoveNext advances the selection by one, wrapping past the end. From Idle
// the first row is selected.
func (s *Service) MoveNext() {
	if s.state.Count == 0 {
		return
	}

	old := s.Selected()
	next := old + 1
	if next >= s.state.Count {
		next = 0
	}
	s.moveTo(old, next)
}

// MovePrevious retreats the selection by one, wrapping before the start.
// From Idle the last row is selected.
func (s *Service) MovePrevious() {
	if s.state.Count == 0 {
		return
	}

	old := s.Selected()
	prev := old - 1
	if prev < 0 {
		prev = s.state.Count - 1
	}
	s.moveTo(old, prev)
}

// JumpToStart selects the first row
func (s *Service) JumpToStart() {
	if s.state.Count == 0 {
		return
	}
	s.moveTo(s.Selected(), 0)
}

// JumpToEnd selects the last row
func (s *Service) JumpToEnd() {
	if s.state.Count == 0 {
		return
	}
	s.moveTo(s.Selected(), s.state.Count-1)
}

// Reset returns the selection to Idle
func (s *Service) Reset() {
	s.reset()
}

func (s *Service) reset() {
	if s.state.SelectedIndex == NoSelection {
		return
	}
	s.state.SelectedIndex = NoSelection
	s.bus.Publish(SelectionResetEvent{})
}

func (s *Service) moveTo(old, next int) {
	s.state.SelectedIndex = next
	if old != next {
		s.bus.Publish(SelectionMovedEvent{
			OldIndex: old,
			NewIndex: next,
		})
	}
}
