package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdex/internal/config"
	"docdex/internal/domain"
	"docdex/internal/eventbus"
	"docdex/internal/history"
	"docdex/internal/index"
)

// nullDomainBus discards publishes; the model tests drive events directly.
type nullDomainBus struct{}

func (nullDomainBus) Publish(eventbus.DomainEvent) {}
func (nullDomainBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

type memStorage struct {
	data []byte
}

func (s *memStorage) Read() ([]byte, error) { return s.data, nil }
func (s *memStorage) Write(b []byte) error {
	s.data = append([]byte(nil), b...)
	return nil
}

func newTestModel(t *testing.T, entries ...domain.Entry) *Model {
	t.Helper()

	bus := nullDomainBus{}
	idx := index.New(bus)
	idx.Rebuild(entries)

	cfg := config.DefaultConfig()
	cfg.UISettings.PagerOnEnter = true

	recents := history.NewStore(&memStorage{}, cfg.MaxRecent, bus)

	m := NewModel(cfg, idx, recents, bus)
	m.width = 100
	m.height = 40
	m.copyFn = func(string) error { return nil }
	m.pagerFn = func(string) error { return nil }
	return m
}

func pressKey(m *Model, msg tea.KeyMsg) {
	m.handleKey(msg)
}

func pressCtrlK(m *Model) {
	pressKey(m, tea.KeyMsg{Type: tea.KeyCtrlK})
}

func typeText(m *Model, text string) {
	for _, r := range text {
		pressKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func flushSearch(m *Model) {
	m.Update(searchDebounceMsg{seq: m.debounceSeq})
}

func TestOpenSearchStartsIdle(t *testing.T) {
	m := newTestModel(t, domain.Entry{ID: "alpha", Title: "Alpha Page", URL: "/alpha", Content: "alpha body", Kind: domain.KindDoc})

	pressCtrlK(m)

	assert.True(t, m.searchOpen)
	assert.True(t, m.ShowingRecent())
	assert.Equal(t, -1, m.SelectedIndex())
}

func TestTypingResetsSelection(t *testing.T) {
	m := newTestModel(t,
		domain.Entry{ID: "alpha", Title: "Alpha Page", URL: "/alpha", Content: "alpha body", Kind: domain.KindDoc},
		domain.Entry{ID: "alpine", Title: "Alpine Notes", URL: "/alpine", Content: "alpha adjacent", Kind: domain.KindDoc},
	)

	pressCtrlK(m)
	typeText(m, "alp")
	flushSearch(m)
	require.Len(t, m.results, 2)

	pressKey(m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 0, m.SelectedIndex())

	// Any edit to the query drops the highlight back to idle
	typeText(m, "h")
	assert.Equal(t, -1, m.SelectedIndex())
}

func TestDebounceSupersededTimerIsIgnored(t *testing.T) {
	m := newTestModel(t,
		domain.Entry{ID: "alpha", Title: "Alpha Page", URL: "/alpha", Kind: domain.KindDoc},
	)

	pressCtrlK(m)
	typeText(m, "al")
	staleSeq := m.debounceSeq
	typeText(m, "p")
	require.NotEqual(t, staleSeq, m.debounceSeq)

	m.Update(searchDebounceMsg{seq: staleSeq})
	assert.Empty(t, m.query, "stale timer must not run a search")

	flushSearch(m)
	assert.Equal(t, "alp", m.query)
	assert.Len(t, m.results, 1)
}

func TestConfirmRecordsQueryAndNavigates(t *testing.T) {
	m := newTestModel(t,
		domain.Entry{ID: "alpha", Title: "Alpha Page", URL: "/alpha", Content: "alpha body", Kind: domain.KindDoc},
	)

	var pagerContent string
	m.pagerFn = func(content string) error {
		pagerContent = content
		return nil
	}

	pressCtrlK(m)
	typeText(m, "alpha")
	flushSearch(m)
	require.Len(t, m.results, 1)

	pressKey(m, tea.KeyMsg{Type: tea.KeyDown})
	cmd := m.confirmSelection()
	require.NotNil(t, cmd)
	cmd()

	recent := m.recents.All()
	require.Len(t, recent, 1)
	assert.Equal(t, "alpha", recent[0].Query)
	assert.Equal(t, "/alpha", recent[0].URL)
	assert.Equal(t, "Alpha Page", recent[0].Title)

	assert.False(t, m.searchOpen, "confirm closes the overlay")
	assert.Equal(t, "alpha body", pagerContent)
}

func TestConfirmWithoutSelectionIsNoOp(t *testing.T) {
	m := newTestModel(t,
		domain.Entry{ID: "alpha", Title: "Alpha Page", URL: "/alpha", Kind: domain.KindDoc},
	)

	pressCtrlK(m)
	typeText(m, "alpha")
	flushSearch(m)
	require.Equal(t, -1, m.SelectedIndex())

	cmd := m.confirmSelection()
	assert.Nil(t, cmd)
	assert.True(t, m.searchOpen, "overlay stays open with no active row")
	assert.Empty(t, m.recents.All())
}

func TestConfirmRecentPromotesEntry(t *testing.T) {
	m := newTestModel(t)
	m.recents.Add("older", "/older", "Older Page")
	m.recents.Add("newer", "/newer", "Newer Page")

	var copied string
	m.copyFn = func(url string) error {
		copied = url
		return nil
	}

	pressCtrlK(m)
	require.True(t, m.ShowingRecent())
	require.Equal(t, 2, m.ResultCount())

	// Second row is the older entry
	pressKey(m, tea.KeyMsg{Type: tea.KeyDown})
	pressKey(m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.SelectedIndex())

	cmd := m.confirmSelection()
	require.NotNil(t, cmd)
	cmd()

	recent := m.recents.All()
	require.Len(t, recent, 2)
	assert.Equal(t, "older", recent[0].Query)
	assert.Equal(t, "/older", copied)
}

func TestSelectionWrapsInOverlay(t *testing.T) {
	m := newTestModel(t,
		domain.Entry{ID: "alpha", Title: "Alpha Page", URL: "/alpha", Kind: domain.KindDoc},
		domain.Entry{ID: "alpine", Title: "Alpine Notes", URL: "/alpine", Kind: domain.KindDoc},
	)

	pressCtrlK(m)
	typeText(m, "alp")
	flushSearch(m)
	require.Len(t, m.results, 2)

	pressKey(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.SelectedIndex(), "up from idle lands on the last row")

	pressKey(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.SelectedIndex(), "down from the last row wraps to the first")
}

func TestEscapeClosesOverlay(t *testing.T) {
	m := newTestModel(t, domain.Entry{ID: "alpha", Title: "Alpha Page", URL: "/alpha", Kind: domain.KindDoc})

	pressCtrlK(m)
	typeText(m, "alpha")
	flushSearch(m)
	require.True(t, m.searchOpen)

	pressKey(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searchOpen)
	assert.Empty(t, m.query)
	assert.Empty(t, m.results)
}

func TestIndexChangeResetsSelectionUnderOpenOverlay(t *testing.T) {
	m := newTestModel(t,
		domain.Entry{ID: "alpha", Title: "Alpha Page", URL: "/alpha", Kind: domain.KindDoc},
	)

	pressCtrlK(m)
	typeText(m, "alp")
	flushSearch(m)
	pressKey(m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 0, m.SelectedIndex())

	m.Update(EventMsg{Event: eventbus.DocDiscoveredEvent{Entry: domain.Entry{
		ID: "alpine", Title: "Alpine Notes", URL: "/alpine", Kind: domain.KindDoc,
	}}})

	assert.Len(t, m.results, 2, "open overlay re-runs the query on index changes")
	assert.Equal(t, -1, m.SelectedIndex(), "result-set change drops the highlight")
}

func TestRemoveRecentShrinksList(t *testing.T) {
	m := newTestModel(t)
	m.recents.Add("older", "/older", "Older Page")
	m.recents.Add("newer", "/newer", "Newer Page")

	pressCtrlK(m)
	pressKey(m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 0, m.SelectedIndex())

	pressKey(m, tea.KeyMsg{Type: tea.KeyCtrlX})

	recent := m.recents.All()
	require.Len(t, recent, 1)
	assert.Equal(t, "older", recent[0].Query)
	assert.Equal(t, 1, m.ResultCount())
}

func TestEmptyQueryShowsRecentAgain(t *testing.T) {
	m := newTestModel(t, domain.Entry{ID: "alpha", Title: "Alpha Page", URL: "/alpha", Kind: domain.KindDoc})
	m.recents.Add("alpha", "/alpha", "Alpha Page")

	pressCtrlK(m)
	typeText(m, "alpha")
	flushSearch(m)
	require.False(t, m.ShowingRecent())

	pressKey(m, tea.KeyMsg{Type: tea.KeyBackspace})
	pressKey(m, tea.KeyMsg{Type: tea.KeyBackspace})
	pressKey(m, tea.KeyMsg{Type: tea.KeyBackspace})
	pressKey(m, tea.KeyMsg{Type: tea.KeyBackspace})
	pressKey(m, tea.KeyMsg{Type: tea.KeyBackspace})

	assert.True(t, m.ShowingRecent())
	assert.Equal(t, 1, m.ResultCount())
	assert.Equal(t, -1, m.SelectedIndex())
}

func TestScanEventsDriveBrowseList(t *testing.T) {
	m := newTestModel(t)
	require.Empty(t, m.entries)

	m.Update(EventMsg{Event: eventbus.ScanStartedEvent{Root: "/docs"}})
	assert.True(t, m.scan.IsScanning)

	m.Update(EventMsg{Event: eventbus.DocDiscoveredEvent{Entry: domain.Entry{
		ID: "guide", Title: "Guide", URL: "/docs/guide/", Kind: domain.KindDoc,
	}}})
	m.Update(EventMsg{Event: eventbus.ScanCompletedEvent{DocsFound: 1}})

	assert.False(t, m.scan.IsScanning)
	require.Len(t, m.entries, 1)
	assert.Equal(t, "Guide", m.entries[0].Title)
}

func TestStatusToastExpiresOnlyForMatchingSeq(t *testing.T) {
	m := newTestModel(t)

	m.setStatus("first")
	staleSeq := m.statusSeq
	m.setStatus("second")

	m.Update(statusExpiredMsg{seq: staleSeq})
	assert.Equal(t, "second", m.statusMessage)

	m.Update(statusExpiredMsg{seq: m.statusSeq})
	assert.Empty(t, m.statusMessage)
}

func TestViewRendersWithoutPanic(t *testing.T) {
	m := newTestModel(t, domain.Entry{ID: "alpha", Title: "Alpha Page", URL: "/alpha", Kind: domain.KindDoc})

	out := m.View()
	assert.NotEmpty(t, out)

	pressCtrlK(m)
	typeText(m, "alpha")
	flushSearch(m)
	out = m.View()
	assert.NotEmpty(t, out)
}
