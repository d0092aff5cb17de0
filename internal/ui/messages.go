package ui

import (
	"time"

	"docdex/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for animations
type tickMsg time.Time

// searchDebounceMsg fires when a scheduled search delay elapses. A stale
// sequence number means the timer was superseded by a newer keystroke.
type searchDebounceMsg struct {
	seq int
}

// statusExpiredMsg clears a transient status toast
type statusExpiredMsg struct {
	seq int
}

// pagerClosedMsg contains the result of a pager invocation
type pagerClosedMsg struct {
	err error
}

// clipboardResultMsg contains the result of a clipboard write
type clipboardResultMsg struct {
	url string
	err error
}
