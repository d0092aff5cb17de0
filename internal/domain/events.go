package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDocDiscovered   EventType = "DocDiscovered"
	EventScanStarted     EventType = "ScanStarted"
	EventScanCompleted   EventType = "ScanCompleted"
	EventScanRequested   EventType = "ScanRequested"
	EventRescanRequested EventType = "RescanRequested"
	EventIndexRebuilt    EventType = "IndexRebuilt"
	EventHistoryChanged  EventType = "HistoryChanged"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DocDiscoveredEvent is emitted when a markdown document is found
type DocDiscoveredEvent struct {
	Entry Entry
}

func (e DocDiscoveredEvent) Type() EventType { return EventDocDiscovered }

// ScanStartedEvent is emitted when doc scanning begins
type ScanStartedEvent struct {
	Root string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted when doc scanning finishes
type ScanCompletedEvent struct {
	DocsFound int
	Entries   []Entry // every doc the scan produced, in discovery order
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// ScanRequestedEvent asks the discovery service to scan a directory
type ScanRequestedEvent struct {
	Root string
}

func (e ScanRequestedEvent) Type() EventType { return EventScanRequested }

// RescanRequestedEvent is emitted by the watcher when docs change on disk
type RescanRequestedEvent struct {
	Root string
}

func (e RescanRequestedEvent) Type() EventType { return EventRescanRequested }

// IndexRebuiltEvent is emitted after the search index is rebuilt
type IndexRebuiltEvent struct {
	TotalEntries int
}

func (e IndexRebuiltEvent) Type() EventType { return EventIndexRebuilt }

// HistoryChangedEvent is emitted when the recent-queries list is mutated
type HistoryChangedEvent struct {
	Count int
}

func (e HistoryChangedEvent) Type() EventType { return EventHistoryChanged }

// ConfigLoadedEvent is emitted when configuration has been read
type ConfigLoadedEvent struct {
	DocsDir string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration has been written
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
