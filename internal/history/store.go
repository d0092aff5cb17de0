package history

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"docdex/internal/eventbus"
)

// DefaultMaxEntries bounds the recency list when no limit is configured
const DefaultMaxEntries = 10

// RecentQuery is one committed search query
type RecentQuery struct {
	Query     string
	URL       string
	Title     string
	Timestamp time.Time
}

// persistedQuery is the wire form: a JSON object with a Unix-millisecond
// timestamp, stored most-recent-first in a single array.
type persistedQuery struct {
	Query     string `json:"query"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Timestamp int64  `json:"timestamp"`
}

// Store is a bounded, deduplicated, most-recent-first list of past search
// queries. Persistence is a convenience: storage failures are logged and the
// store degrades to its in-memory list, never surfacing an error to callers.
type Store struct {
	storage Storage
	bus     eventbus.EventBus
	max     int
	entries []RecentQuery
	now     func() time.Time
}

// NewStore creates a store and loads the persisted list once
func NewStore(storage Storage, max int, bus eventbus.EventBus) *Store {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	s := &Store{
		storage: storage,
		bus:     bus,
		max:     max,
		now:     time.Now,
	}
	s.entries = s.load()
	return s
}

// load reads the persisted sequence; unavailable or malformed content yields
// an empty list
func (s *Store) load() []RecentQuery {
	if s.storage == nil {
		return nil
	}

	data, err := s.storage.Read()
	if err != nil {
		log.Printf("History storage not available: %v", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var persisted []persistedQuery
	if err := json.Unmarshal(data, &persisted); err != nil {
		log.Printf("History content malformed, starting empty: %v", err)
		return nil
	}

	entries := make([]RecentQuery, 0, len(persisted))
	for _, p := range persisted {
		if strings.TrimSpace(p.Query) == "" {
			continue
		}
		entries = append(entries, RecentQuery{
			Query:     p.Query,
			URL:       p.URL,
			Title:     p.Title,
			Timestamp: time.UnixMilli(p.Timestamp),
		})
	}
	if len(entries) > s.max {
		entries = entries[:s.max]
	}
	return entries
}

// Add records a committed query at the front of the list. Empty queries are
// ignored. An existing entry with the same query (case-insensitive, trimmed)
// is moved to the front rather than duplicated.
func (s *Store) Add(query, url, title string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	if title == "" {
		title = query
	}

	filtered := s.entries[:0:0]
	for _, e := range s.entries {
		if !strings.EqualFold(strings.TrimSpace(e.Query), query) {
			filtered = append(filtered, e)
		}
	}

	entry := RecentQuery{
		Query:     query,
		URL:       url,
		Title:     title,
		Timestamp: s.now(),
	}
	s.entries = append([]RecentQuery{entry}, filtered...)
	if len(s.entries) > s.max {
		s.entries = s.entries[:s.max]
	}

	s.persist()
}

// Remove deletes all entries matching the query case-insensitively
func (s *Store) Remove(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	filtered := s.entries[:0:0]
	for _, e := range s.entries {
		if !strings.EqualFold(strings.TrimSpace(e.Query), query) {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == len(s.entries) {
		return // no match, nothing to persist
	}

	s.entries = filtered
	s.persist()
}

// Clear empties the list
func (s *Store) Clear() {
	if len(s.entries) == 0 {
		return
	}
	s.entries = nil
	s.persist()
}

// All returns a snapshot of the current list, most-recent-first
func (s *Store) All() []RecentQuery {
	out := make([]RecentQuery, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries
func (s *Store) Len() int {
	return len(s.entries)
}

// persist writes the current list; failures are logged, never propagated
func (s *Store) persist() {
	if s.bus != nil {
		s.bus.Publish(eventbus.HistoryChangedEvent{Count: len(s.entries)})
	}
	if s.storage == nil {
		return
	}

	persisted := make([]persistedQuery, 0, len(s.entries))
	for _, e := range s.entries {
		persisted = append(persisted, persistedQuery{
			Query:     e.Query,
			URL:       e.URL,
			Title:     e.Title,
			Timestamp: e.Timestamp.UnixMilli(),
		})
	}

	data, err := json.Marshal(persisted)
	if err != nil {
		log.Printf("Failed to encode history: %v", err)
		return
	}
	if err := s.storage.Write(data); err != nil {
		log.Printf("Failed to persist history: %v", err)
	}
}
