package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"docdex/internal/config"
	"docdex/internal/discovery"
	"docdex/internal/domain"
	"docdex/internal/eventbus"
	"docdex/internal/history"
	"docdex/internal/index"
	"docdex/internal/ui"
	"docdex/internal/watch"
)

func main() {
	// Parse command line arguments
	var docsDir string
	var noWatch bool
	flag.StringVar(&docsDir, "dir", "", "Directory to scan for documentation")
	flag.StringVar(&docsDir, "d", "", "Directory to scan for documentation (shorthand)")
	flag.BoolVar(&noWatch, "no-watch", false, "Disable rescanning when files change")
	flag.Parse()

	// If no directory specified, check for remaining args
	if docsDir == "" && flag.NArg() > 0 {
		docsDir = flag.Arg(0)
	}

	// Set up logging
	logFile, err := os.OpenFile("docdex.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}
	if docsDir != "" {
		cfg.DocsDir = docsDir
	}
	absDir, err := filepath.Abs(cfg.DocsDir)
	if err != nil {
		fmt.Printf("Error resolving path %q: %v\n", cfg.DocsDir, err)
		os.Exit(1)
	}
	cfg.DocsDir = absDir

	// Initialize services
	idx := index.New(bus)
	recents := history.NewStore(history.NewFileStorage(cfg.HistoryPath), cfg.MaxRecent, bus)
	discoverySvc := discovery.NewDiscoveryService(bus)

	// Catalog examples declared in config are part of the index from the start
	examples := exampleEntries(cfg)
	idx.Rebuild(examples)

	// A completed scan carries its full entry set; rebuilding from it is what
	// clears out entries whose files were deleted
	bus.Subscribe(eventbus.EventScanCompleted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ScanCompletedEvent); ok {
			idx.Rebuild(append(append([]domain.Entry{}, examples...), event.Entries...))
		}
	})

	// File watcher turns filesystem changes into rescans
	bus.Subscribe(eventbus.EventRescanRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.RescanRequestedEvent); ok {
			bus.Publish(eventbus.ScanRequestedEvent{Root: event.Root})
		}
	})

	// Create UI model
	uiModel := ui.NewModel(cfg, idx, recents, bus)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Forward domain events into the UI message loop
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventScanStarted,
		eventbus.EventScanCompleted,
		eventbus.EventDocDiscovered,
		eventbus.EventIndexRebuilt,
		eventbus.EventRescanRequested,
		eventbus.EventHistoryChanged,
		eventbus.EventError,
	} {
		bus.Subscribe(eventType, forward)
	}

	// Start watching the docs tree unless disabled
	if !noWatch {
		watcher, err := watch.New(bus, cfg.DocsDir, watch.DefaultCoalesceDelay)
		if err != nil {
			log.Printf("File watching unavailable: %v", err)
		} else {
			watcher.Start(ctx)
			defer watcher.Stop()
		}
	}

	// Start initial scan
	go func() {
		if err := discoverySvc.StartScan(ctx, cfg.DocsDir); err != nil {
			log.Printf("Initial scan failed: %v", err)
			bus.Publish(eventbus.ErrorEvent{Message: "Scan failed for " + cfg.DocsDir, Err: err})
		}
	}()

	// Run the UI
	log.Printf("Starting UI for %s", cfg.DocsDir)
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	discoverySvc.StopScan()
	cancel()
}

// exampleEntries converts configured catalog examples into index entries
func exampleEntries(cfg *config.Config) []domain.Entry {
	entries := make([]domain.Entry, 0, len(cfg.Examples))
	for _, ex := range cfg.Examples {
		entries = append(entries, domain.Entry{
			ID:           ex.ID,
			Title:        ex.Title,
			Description:  ex.Description,
			Content:      ex.Content,
			URL:          ex.URL,
			Kind:         domain.KindExample,
			Category:     ex.Category,
			LearnMoreURL: ex.LearnMoreURL,
		})
	}
	return entries
}
