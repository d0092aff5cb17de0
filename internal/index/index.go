package index

import (
	"sort"
	"strings"
	"sync"

	"docdex/internal/domain"
	"docdex/internal/eventbus"
)

// DefaultLimit is the maximum number of results returned when the caller
// does not specify one
const DefaultLimit = 10

// Match scoring weights: a title hit outranks a description hit outranks a
// content hit, and a title that starts with the query gets an extra bonus.
const (
	titleScore       = 100
	titlePrefixBonus = 20
	descriptionScore = 50
	contentScore     = 25
)

// matchType ranks where the strongest hit occurred (title > description > content)
type matchType int

const (
	matchNone matchType = iota
	matchContent
	matchDescription
	matchTitle
)

// Result is one scored search hit
type Result struct {
	Entry domain.Entry
	Score int
}

// Stats summarizes the index contents
type Stats struct {
	TotalEntries  int
	ExamplesCount int
	DocsCount     int
}

// Index is an in-memory search index over docs and catalog examples with
// case-insensitive substring matching and relevance ranking.
type Index struct {
	mu      sync.RWMutex
	entries []domain.Entry
	bus     eventbus.EventBus
}

// New creates an empty index
func New(bus eventbus.EventBus) *Index {
	return &Index{bus: bus}
}

// Rebuild replaces the full entry set
func (ix *Index) Rebuild(entries []domain.Entry) {
	ix.mu.Lock()
	ix.entries = make([]domain.Entry, len(entries))
	copy(ix.entries, entries)
	total := len(ix.entries)
	ix.mu.Unlock()

	if ix.bus != nil {
		ix.bus.Publish(eventbus.IndexRebuiltEvent{TotalEntries: total})
	}
}

// Add appends a single entry, replacing any existing entry with the same ID
func (ix *Index) Add(entry domain.Entry) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for i, e := range ix.entries {
		if e.ID == entry.ID {
			ix.entries[i] = entry
			return
		}
	}
	ix.entries = append(ix.entries, entry)
}

// Entries returns a snapshot of all indexed entries
func (ix *Index) Entries() []domain.Entry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]domain.Entry, len(ix.entries))
	copy(out, ix.entries)
	return out
}

// Stats returns index counts by kind
func (ix *Index) Stats() Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	s := Stats{TotalEntries: len(ix.entries)}
	for _, e := range ix.entries {
		switch e.Kind {
		case domain.KindExample:
			s.ExamplesCount++
		case domain.KindDoc:
			s.DocsCount++
		}
	}
	return s
}

// scoredResult pairs a hit with its ranking keys
type scoredResult struct {
	score int
	match matchType
	entry domain.Entry
}

// Search filters entries by case-insensitive substring match over title,
// description and content, ranked by relevance. An empty query returns no
// results.
func (ix *Index) Search(query string, limit int) []Result {
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := strings.ToLower(query)

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var scored []scoredResult
	for _, entry := range ix.entries {
		score := 0
		match := matchNone

		title := strings.ToLower(entry.Title)
		if strings.Contains(title, q) {
			score += titleScore
			match = matchTitle
			if strings.HasPrefix(title, q) {
				score += titlePrefixBonus
			}
		}

		if strings.Contains(strings.ToLower(entry.Description), q) {
			score += descriptionScore
			if match < matchDescription {
				match = matchDescription
			}
		}

		if strings.Contains(strings.ToLower(entry.Content), q) {
			score += contentScore
			if match < matchContent {
				match = matchContent
			}
		}

		if score > 0 {
			scored = append(scored, scoredResult{score: score, match: match, entry: entry})
		}
	}

	// Highest score first, then strongest match location, then alphabetical
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].match != scored[j].match {
			return scored[i].match > scored[j].match
		}
		return scored[i].entry.Title < scored[j].entry.Title
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	results := make([]Result, 0, len(scored))
	for _, s := range scored {
		results = append(results, Result{Entry: s.entry, Score: s.score})
	}
	return results
}
