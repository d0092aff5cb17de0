package discovery

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdex/internal/domain"
	"docdex/internal/eventbus"
)

// collectingBus records published events for assertions
type collectingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *collectingBus) Publish(event eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *collectingBus) Subscribe(eventType eventbus.EventType, handler eventbus.EventHandler) func() {
	return func() {}
}

func (b *collectingBus) snapshot() []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]eventbus.DomainEvent, len(b.events))
	copy(out, b.events)
	return out
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDocExtractsTitleAndDescription(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "core-concepts.md", "# Core Concepts\n\nSignals are the reactive primitive.\n\nMore text.\n")

	entry, err := LoadDoc(path)
	require.NoError(t, err)

	assert.Equal(t, "docs-core-concepts", entry.ID)
	assert.Equal(t, "Core Concepts", entry.Title)
	assert.Equal(t, "Signals are the reactive primitive.", entry.Description)
	assert.Equal(t, "/docs/core-concepts/", entry.URL)
	assert.Equal(t, domain.KindDoc, entry.Kind)
	assert.Equal(t, path, entry.Path)
}

func TestLoadDocFallsBackToSlugTitle(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "best-practices.md", "just prose, no heading\n")

	entry, err := LoadDoc(path)
	require.NoError(t, err)

	assert.Equal(t, "Best Practices", entry.Title)
}

func TestLoadDocTruncatesLongDescription(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("x", 200)
	path := writeDoc(t, dir, "long.md", "# Long\n\n"+long+"\n")

	entry, err := LoadDoc(path)
	require.NoError(t, err)

	assert.Len(t, []rune(entry.Description), descriptionLimit+3)
	assert.True(t, strings.HasSuffix(entry.Description, "..."))
}

func TestDocSlugIndexVariants(t *testing.T) {
	assert.Equal(t, "index", DocSlug("/docs/index.md"))
	assert.Equal(t, "index", DocSlug("/docs/index-old.md"))
	assert.Equal(t, "installation", DocSlug("/docs/installation.md"))
}

func TestStartScanPublishesDiscoveredDocs(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "alpha.md", "# Alpha\n\nFirst doc.\n")
	writeDoc(t, dir, "beta.md", "# Beta\n\nSecond doc.\n")
	writeDoc(t, dir, "notes.txt", "not markdown")

	bus := &collectingBus{}
	svc := NewDiscoveryService(bus)

	require.NoError(t, svc.StartScan(context.Background(), dir))

	// Wait for the completion event
	deadline := time.Now().Add(2 * time.Second)
	var completed *eventbus.ScanCompletedEvent
	for time.Now().Before(deadline) {
		for _, e := range bus.snapshot() {
			if c, ok := e.(eventbus.ScanCompletedEvent); ok {
				completed = &c
			}
		}
		if completed != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	require.NotNil(t, completed, "scan should complete")
	assert.Equal(t, 2, completed.DocsFound)

	// Completion carries the full result set itself; consumers must not have
	// to reassemble it from the per-doc events
	var carried []string
	for _, entry := range completed.Entries {
		carried = append(carried, entry.Title)
	}
	assert.ElementsMatch(t, []string{"Alpha", "Beta"}, carried)

	var discovered []string
	for _, e := range bus.snapshot() {
		if d, ok := e.(eventbus.DocDiscoveredEvent); ok {
			discovered = append(discovered, d.Entry.Title)
		}
	}
	assert.ElementsMatch(t, []string{"Alpha", "Beta"}, discovered)
}

func TestStartScanRejectsConcurrentScans(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 50; i++ {
		writeDoc(t, dir, "doc"+string(rune('a'+i%26))+strings.Repeat("x", i)+".md", "# Doc\n\nBody.\n")
	}

	bus := &collectingBus{}
	svc := NewDiscoveryService(bus)

	require.NoError(t, svc.StartScan(context.Background(), dir))
	// Second scan while the first is running is refused; if the first already
	// finished the second is simply allowed, so only assert no panic either way.
	_ = svc.StartScan(context.Background(), dir)
	svc.StopScan()
}
