package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.Fail(t, "condition not met before deadline")
}

func TestPublishReachesSubscriber(t *testing.T) {
	bus := New()

	var mu sync.Mutex
	var received []DomainEvent
	bus.Subscribe(EventScanStarted, func(e DomainEvent) {
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
	})

	bus.Publish(ScanStartedEvent{Root: "/docs"})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	})

	mu.Lock()
	defer mu.Unlock()
	event, ok := received[0].(ScanStartedEvent)
	require.True(t, ok)
	assert.Equal(t, "/docs", event.Root)
}

func TestSubscribersAreTypeScoped(t *testing.T) {
	bus := New()

	var mu sync.Mutex
	scanCount := 0
	historyCount := 0
	bus.Subscribe(EventScanCompleted, func(DomainEvent) {
		mu.Lock()
		scanCount++
		mu.Unlock()
	})
	bus.Subscribe(EventHistoryChanged, func(DomainEvent) {
		mu.Lock()
		historyCount++
		mu.Unlock()
	})

	bus.Publish(ScanCompletedEvent{DocsFound: 3})
	bus.Publish(ScanCompletedEvent{DocsFound: 4})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return scanCount == 2
	})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, historyCount)
}

func TestMultipleSubscribersAllFire(t *testing.T) {
	bus := New()

	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		bus.Subscribe(EventIndexRebuilt, func(DomainEvent) {
			wg.Done()
		})
	}

	bus.Publish(IndexRebuiltEvent{TotalEntries: 12})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("not all subscribers received the event")
	}
}

func TestPanickingHandlerDoesNotKillDispatch(t *testing.T) {
	bus := New()

	bus.Subscribe(EventError, func(DomainEvent) {
		panic("handler blew up")
	})

	var mu sync.Mutex
	received := false
	bus.Subscribe(EventError, func(DomainEvent) {
		mu.Lock()
		received = true
		mu.Unlock()
	})

	bus.Publish(ErrorEvent{Message: "boom"})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return received
	})

	// The bus must still dispatch after the panic
	mu.Lock()
	received = false
	mu.Unlock()
	bus.Publish(ErrorEvent{Message: "again"})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return received
	})
}
