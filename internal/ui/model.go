package ui

import (
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"docdex/internal/config"
	"docdex/internal/domain"
	"docdex/internal/eventbus"
	"docdex/internal/history"
	"docdex/internal/index"
	"docdex/internal/ui/input"
	inputtypes "docdex/internal/ui/input/types"
	"docdex/internal/ui/services/events"
	"docdex/internal/ui/services/navigation"
	"docdex/internal/ui/views"
)

// debounceDelay is how long input must pause before a search fires
const debounceDelay = 150 * time.Millisecond

// statusDuration is how long a transient toast stays visible
const statusDuration = 3 * time.Second

// Model represents the UI state
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	idx     *index.Index
	recents *history.Store

	// UI-specific state
	width          int
	height         int
	viewportOffset int
	browseIndex    int
	entries        []domain.Entry // ordered browse list, rebuilt from the index
	scan           domain.ScanProgress
	showHelp       bool
	statusMessage  string
	statusSeq      int

	// Search overlay state
	searchOpen   bool
	pendingQuery string // text in the input, not yet searched
	query        string // last query actually searched
	results      []index.Result
	debounceSeq  int

	// Handlers
	nav          *navigation.Service
	inputHandler *input.Handler
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	pager        *PagerOps

	// Injectable side effects, swapped out in tests
	copyFn  func(string) error
	pagerFn func(content string) error

	// Last committed navigation target, for the status line
	lastNavigatedURL string
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, idx *index.Index, recents *history.Store, bus eventbus.EventBus) *Model {
	pager := NewPagerOps(nil)

	m := &Model{
		bus:          bus,
		config:       cfg,
		idx:          idx,
		recents:      recents,
		nav:          navigation.NewService(events.NewBus()),
		inputHandler: input.New(),
		renderer:     views.NewRenderer(cfg.UISettings.ShowCategories),
		helpRenderer: NewHelpRenderer(),
		pager:        pager,
		copyFn:       clipboard.WriteAll,
	}
	m.pagerFn = pager.ShowInPager
	m.refreshEntries()

	return m
}

// SetProgram wires the Bubble Tea program reference needed by the pager
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureBrowseVisible()
		return m, nil

	case tickMsg:
		// Keep ticking while there is something animated on screen
		if m.scan.IsScanning {
			return m, tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
				return tickMsg(t)
			})
		}
		return m, nil

	case EventMsg:
		return m, m.handleDomainEvent(msg.Event)

	case searchDebounceMsg:
		// A newer keystroke superseded this timer
		if msg.seq != m.debounceSeq {
			return m, nil
		}
		m.runSearch()
		return m, nil

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
		}
		return m, nil

	case clipboardResultMsg:
		if msg.err != nil {
			return m, m.setStatus("Clipboard unavailable, copy manually: " + msg.url)
		}
		return m, m.setStatus("Copied " + msg.url)

	case pagerClosedMsg:
		if msg.err != nil {
			log.Printf("Pager error: %v", msg.err)
			return m, m.setStatus("Could not open pager")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.inputHandler.Update(msg)
}

// handleKey routes a key press through the input handler and applies actions
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	actions, inputCmd := m.inputHandler.HandleKey(msg, m)

	cmds := []tea.Cmd{inputCmd}
	for _, action := range actions {
		cmds = append(cmds, m.applyAction(action))
	}

	return m, tea.Batch(cmds...)
}

// applyAction executes one action produced by the input layer
func (m *Model) applyAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.QuitAction:
		return tea.Quit

	case inputtypes.NavigateAction:
		m.navigate(a.Direction)
		return nil

	case inputtypes.OpenSearchAction:
		m.openSearch()
		return nil

	case inputtypes.CancelTextAction:
		m.closeSearch()
		return nil

	case inputtypes.UpdateTextAction:
		return m.onQueryChanged(a.Text)

	case inputtypes.ConfirmAction:
		return m.confirmSelection()

	case inputtypes.CopyURLAction:
		return m.copySelectedURL()

	case inputtypes.RemoveRecentAction:
		m.removeSelectedRecent()
		return nil

	case inputtypes.ClearRecentAction:
		m.recents.Clear()
		m.nav.SetItems(0)
		return m.setStatus("Recent searches cleared")

	case inputtypes.OpenPagerAction:
		return m.openBrowseSelection()

	case inputtypes.RefreshAction:
		m.bus.Publish(eventbus.ScanRequestedEvent{Root: m.config.DocsDir})
		return m.setStatus("Rescanning " + m.config.DocsDir)

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp
		return nil
	}

	return nil
}

// handleDomainEvent reacts to events forwarded from the domain bus
func (m *Model) handleDomainEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ScanStartedEvent:
		m.scan = domain.ScanProgress{IsScanning: true}
		return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case eventbus.ScanCompletedEvent:
		m.scan.IsScanning = false
		m.refreshEntries()
		m.rerunSearch()
		return m.setStatus("Indexed " + pluralize(e.DocsFound, "doc"))

	case eventbus.DocDiscoveredEvent:
		m.scan.DocsFound++
		m.scan.CurrentPath = e.Entry.Path
		m.idx.Add(e.Entry)
		m.refreshEntries()
		m.rerunSearch()
		return nil

	case eventbus.IndexRebuiltEvent:
		m.refreshEntries()
		m.rerunSearch()
		return nil

	case eventbus.RescanRequestedEvent:
		return m.setStatus("Docs changed on disk, rescanning")

	case eventbus.HistoryChangedEvent:
		if m.showingRecent() {
			m.nav.SetItems(m.recents.Len())
		}
		return nil

	case eventbus.ErrorEvent:
		log.Printf("Domain error: %s: %v", e.Message, e.Err)
		return m.setStatus(e.Message)
	}

	return nil
}

// navigate moves the overlay selection or the browse cursor
func (m *Model) navigate(direction string) {
	if m.searchOpen {
		switch direction {
		case "up":
			m.nav.MovePrevious()
		case "down":
			m.nav.MoveNext()
		case "home":
			m.nav.JumpToStart()
		case "end":
			m.nav.JumpToEnd()
		}
		return
	}

	// Browse cursor clamps instead of wrapping
	switch direction {
	case "up":
		if m.browseIndex > 0 {
			m.browseIndex--
		}
	case "down":
		if m.browseIndex < len(m.entries)-1 {
			m.browseIndex++
		}
	case "home":
		m.browseIndex = 0
	case "end":
		m.browseIndex = len(m.entries) - 1
	}
	if m.browseIndex < 0 {
		m.browseIndex = 0
	}
	m.ensureBrowseVisible()
}

// openSearch opens the overlay with an empty query and idle selection
func (m *Model) openSearch() {
	m.searchOpen = true
	m.pendingQuery = ""
	m.query = ""
	m.results = nil
	m.nav.SetItems(m.recents.Len())
	m.nav.Reset()
}

// closeSearch tears the overlay down
func (m *Model) closeSearch() {
	m.searchOpen = false
	m.pendingQuery = ""
	m.query = ""
	m.results = nil
	m.nav.Reset()
}

// onQueryChanged reacts to edited input text: the selection resets
// immediately, the search itself is debounced
func (m *Model) onQueryChanged(text string) tea.Cmd {
	m.pendingQuery = text
	m.nav.Reset()

	if strings.TrimSpace(text) == "" {
		// Empty query shows the recency list without waiting for the timer
		m.query = ""
		m.results = nil
		m.nav.SetItems(m.recents.Len())
		return nil
	}

	m.debounceSeq++
	seq := m.debounceSeq
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

// runSearch executes the pending query against the index
func (m *Model) runSearch() {
	m.query = m.pendingQuery
	if strings.TrimSpace(m.query) == "" {
		m.results = nil
		m.nav.SetItems(m.recents.Len())
		return
	}

	m.results = m.idx.Search(m.query, index.DefaultLimit)
	m.nav.SetItems(len(m.results))
}

// rerunSearch refreshes results after the index changed underneath an open
// overlay; the selection resets before any later key press is handled
func (m *Model) rerunSearch() {
	if !m.searchOpen || strings.TrimSpace(m.query) == "" {
		return
	}
	m.results = m.idx.Search(m.query, index.DefaultLimit)
	m.nav.SetItems(len(m.results))
	m.nav.Reset()
}

// confirmSelection commits the active row: records the query, closes the
// overlay and navigates to the row's target
func (m *Model) confirmSelection() tea.Cmd {
	selected := m.nav.Selected()
	if selected < 0 {
		return nil
	}

	if m.showingRecent() {
		recent := m.recents.All()
		if selected >= len(recent) {
			return nil
		}
		rec := recent[selected]
		m.recents.Add(rec.Query, rec.URL, rec.Title)

		if rec.URL == "" {
			// No stored target: re-run the query in place
			m.inputHandler.TextInput().SetValue(rec.Query)
			m.pendingQuery = rec.Query
			m.runSearch()
			return nil
		}

		m.closeSearch()
		m.inputHandler.Reset()
		if path := m.entryByURL(rec.URL); path != nil {
			return m.navigateTo(path.URL, path.Title, path.Content)
		}
		return m.navigateTo(rec.URL, rec.Title, "")
	}

	if selected >= len(m.results) {
		return nil
	}
	entry := m.results[selected].Entry

	if q := strings.TrimSpace(m.query); q != "" {
		m.recents.Add(q, entry.URL, entry.Title)
	}

	m.closeSearch()
	m.inputHandler.Reset()
	return m.navigateTo(entry.URL, entry.Title, entry.Content)
}

// entryByURL resolves a stored recency URL back to a live index entry
func (m *Model) entryByURL(url string) *domain.Entry {
	for _, e := range m.idx.Entries() {
		if e.URL == url {
			return &e
		}
	}
	return nil
}

// navigateTo performs the commit's navigation: docs open in the pager,
// anything without content has its URL copied instead
func (m *Model) navigateTo(url, title, content string) tea.Cmd {
	m.lastNavigatedURL = url

	if content != "" && m.config.UISettings.PagerOnEnter {
		return func() tea.Msg {
			return pagerClosedMsg{err: m.pagerFn(content)}
		}
	}

	return m.copyURL(url)
}

// copySelectedURL copies the active row's URL without committing
func (m *Model) copySelectedURL() tea.Cmd {
	selected := m.nav.Selected()

	var url string
	switch {
	case m.searchOpen && m.showingRecent():
		recent := m.recents.All()
		if selected < 0 || selected >= len(recent) {
			return nil
		}
		url = recent[selected].URL
	case m.searchOpen:
		if selected < 0 || selected >= len(m.results) {
			return nil
		}
		url = m.results[selected].Entry.URL
	default:
		if m.browseIndex < 0 || m.browseIndex >= len(m.entries) {
			return nil
		}
		url = m.entries[m.browseIndex].URL
	}

	if url == "" {
		return m.setStatus("No URL on this entry")
	}
	return m.copyURL(url)
}

func (m *Model) copyURL(url string) tea.Cmd {
	return func() tea.Msg {
		return clipboardResultMsg{url: url, err: m.copyFn(url)}
	}
}

// removeSelectedRecent removes the active recency row
func (m *Model) removeSelectedRecent() {
	selected := m.nav.Selected()
	recent := m.recents.All()
	if selected < 0 || selected >= len(recent) {
		return
	}
	m.recents.Remove(recent[selected].Query)
	m.nav.SetItems(m.recents.Len())
}

// openBrowseSelection opens the highlighted browse entry in the pager
func (m *Model) openBrowseSelection() tea.Cmd {
	if m.browseIndex < 0 || m.browseIndex >= len(m.entries) {
		return nil
	}
	entry := m.entries[m.browseIndex]
	return m.navigateTo(entry.URL, entry.Title, entry.Content)
}

// refreshEntries rebuilds the ordered browse list from the index
func (m *Model) refreshEntries() {
	m.entries = m.idx.Entries()
	sort.Slice(m.entries, func(i, j int) bool {
		if m.entries[i].Kind != m.entries[j].Kind {
			// Examples before docs
			return m.entries[i].Kind == domain.KindExample
		}
		return m.entries[i].Title < m.entries[j].Title
	})

	if m.browseIndex >= len(m.entries) {
		m.browseIndex = len(m.entries) - 1
	}
	if m.browseIndex < 0 {
		m.browseIndex = 0
	}
	m.ensureBrowseVisible()
}

// ensureBrowseVisible keeps the browse cursor inside the viewport
func (m *Model) ensureBrowseVisible() {
	height := m.viewportHeight()
	if m.browseIndex < m.viewportOffset {
		m.viewportOffset = m.browseIndex
	} else if m.browseIndex >= m.viewportOffset+height {
		m.viewportOffset = m.browseIndex - height + 1
	}
	if m.viewportOffset < 0 {
		m.viewportOffset = 0
	}
}

// viewportHeight reserves space for the header, status bar and help line
func (m *Model) viewportHeight() int {
	h := m.height - 8
	if h < 1 {
		h = 1
	}
	return h
}

// showingRecent reports whether the overlay is on the recency list
func (m *Model) showingRecent() bool {
	return m.searchOpen && strings.TrimSpace(m.pendingQuery) == ""
}

// setStatus shows a transient toast and schedules its expiry
func (m *Model) setStatus(message string) tea.Cmd {
	m.statusMessage = message
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

// View renders the UI
func (m *Model) View() string {
	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Entries:        m.entries,
		BrowseIndex:    m.browseIndex,
		ViewportOffset: m.viewportOffset,
		ViewportHeight: m.viewportHeight(),
		SearchOpen:     m.searchOpen,
		Query:          m.query,
		TextInputView:  m.inputHandler.TextInput().View(),
		Results:        m.results,
		Recent:         m.recents.All(),
		ShowingRecent:  m.showingRecent(),
		SelectedIndex:  m.nav.Selected(),
		Scanning:       m.scan.IsScanning,
		DocsFound:      m.scan.DocsFound,
		StatusMessage:  m.statusMessage,
		Stats:          m.idx.Stats(),
		ShowHelp:       m.showHelp,
	}
	if m.showHelp {
		state.HelpContent = m.helpRenderer.RenderHelpContent()
	}

	return m.renderer.Render(state)
}

// Context interface for the input layer

// ResultCount returns the number of rows the overlay is showing
func (m *Model) ResultCount() int {
	if m.showingRecent() {
		return m.recents.Len()
	}
	return len(m.results)
}

// SelectedIndex returns the active overlay row, -1 when idle
func (m *Model) SelectedIndex() int {
	if !m.searchOpen {
		if len(m.entries) == 0 {
			return -1
		}
		return m.browseIndex
	}
	return m.nav.Selected()
}

// QueryText returns the current input text
func (m *Model) QueryText() string {
	return m.pendingQuery
}

// ShowingRecent reports whether the recency list is on screen
func (m *Model) ShowingRecent() bool {
	return m.showingRecent()
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
