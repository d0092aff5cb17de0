package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"docdex/internal/domain"
	"docdex/internal/eventbus"
)

// descriptionLimit caps the extracted doc description length in runes
const descriptionLimit = 150

// DiscoveryService finds markdown documents in the filesystem
type DiscoveryService interface {
	StartScan(ctx context.Context, root string) error
	StopScan()
}

// discoveryService is the concrete implementation
type discoveryService struct {
	bus        eventbus.EventBus
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(bus eventbus.EventBus) DiscoveryService {
	ds := &discoveryService{
		bus: bus,
	}

	// Subscribe to scan requests
	bus.Subscribe(eventbus.EventScanRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ScanRequestedEvent); ok {
			go ds.StartScan(context.Background(), event.Root)
		}
	})

	return ds
}

// StartScan starts scanning for markdown documents
func (ds *discoveryService) StartScan(ctx context.Context, root string) error {
	ds.mu.Lock()
	if ds.isScanning {
		ds.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	ds.isScanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	ds.cancelFunc = cancel
	ds.mu.Unlock()

	ds.bus.Publish(eventbus.ScanStartedEvent{Root: root})

	var found []domain.Entry

	ds.wg.Add(1)
	go func() {
		defer ds.wg.Done()
		defer func() {
			ds.mu.Lock()
			ds.isScanning = false
			ds.cancelFunc = nil
			ds.mu.Unlock()

			// The completion event carries the full entry set so consumers
			// never have to reassemble it from per-doc events, whose
			// handlers run concurrently
			ds.bus.Publish(eventbus.ScanCompletedEvent{
				DocsFound: len(found),
				Entries:   found,
			})
		}()

		found = ds.scanDirectory(scanCtx, root)
	}()

	return nil
}

// StopScan stops any ongoing scan
func (ds *discoveryService) StopScan() {
	ds.mu.Lock()
	if ds.cancelFunc != nil {
		ds.cancelFunc()
	}
	ds.mu.Unlock()
	ds.wg.Wait()
}

// scanDirectory walks root, publishes an event per markdown file found and
// returns the collected entries
func (ds *discoveryService) scanDirectory(ctx context.Context, root string) []domain.Entry {
	var found []domain.Entry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			// Skip hidden directories
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		entry, err := LoadDoc(path)
		if err != nil {
			log.Printf("Skipping unreadable doc %s: %v", path, err)
			return nil
		}

		found = append(found, entry)
		ds.bus.Publish(eventbus.DocDiscoveredEvent{Entry: entry})
		return nil
	})
	if err != nil && err != context.Canceled {
		log.Printf("Doc scan of %s stopped: %v", root, err)
	}

	return found
}

// LoadDoc reads one markdown file and builds its index entry. The title comes
// from the first heading (falling back to the Title Cased slug), the
// description from the first non-heading paragraph line.
func LoadDoc(path string) (domain.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("failed to read doc: %w", err)
	}

	content := string(data)
	slug := DocSlug(path)
	title := extractTitle(content)
	if title == "" {
		title = kebabToTitle(slug)
	}

	description := extractDescription(content)
	if description == "" {
		description = "Documentation for " + title
	}

	return domain.Entry{
		ID:          "docs-" + slug,
		Title:       title,
		Description: description,
		Content:     content,
		URL:         docURL(slug),
		Kind:        domain.KindDoc,
		Category:    "Documentation",
		Path:        path,
	}, nil
}

// DocSlug derives the entry slug from a file path
func DocSlug(path string) string {
	slug := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.HasPrefix(slug, "index") {
		return "index"
	}
	return slug
}

func docURL(slug string) string {
	if slug == "index" {
		return "/docs/"
	}
	return "/docs/" + slug + "/"
}

// extractTitle returns the text of the first markdown heading
func extractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}

// extractDescription returns the first non-heading paragraph line, truncated
func extractDescription(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if i == 0 {
			continue // skip the title line
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		runes := []rune(line)
		if len(runes) > descriptionLimit {
			return string(runes[:descriptionLimit]) + "..."
		}
		return line
	}
	return ""
}

// kebabToTitle converts kebab-case to Title Case
func kebabToTitle(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || unicode.IsSpace(r)
	})
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
