package domain

// EntryKind distinguishes catalog examples from discovered docs
type EntryKind string

const (
	KindExample EntryKind = "example"
	KindDoc     EntryKind = "doc"
)

// Entry represents a single searchable item
type Entry struct {
	ID           string
	Title        string
	Description  string
	Content      string
	URL          string
	Kind         EntryKind
	Category     string
	LearnMoreURL string // link to docs, examples only ("" if none)
	Path         string // source file on disk, docs only ("" for examples)
}

// ScanProgress represents the current doc scanning state
type ScanProgress struct {
	IsScanning  bool
	DocsFound   int
	CurrentPath string
}
