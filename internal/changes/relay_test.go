package changes

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeBroker struct {
	mu         sync.Mutex
	published  []string
	publishErr error
	block      chan struct{}
	msgs       chan string
	closed     bool
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{msgs: make(chan string)}
}

func (f *fakeBroker) Publish(ctx context.Context, _ string, payload string) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, payload)
	return f.publishErr
}

func (f *fakeBroker) Subscribe(_ context.Context, _ string) (<-chan string, func() error) {
	return f.msgs, func() error {
		f.mu.Lock()
		f.closed = true
		f.mu.Unlock()
		return nil
	}
}

func (f *fakeBroker) publishedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

func waitPublished(t *testing.T, broker *fakeBroker, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for broker.publishedCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d forwarded signals, got %d", n, broker.publishedCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func startRelay(t *testing.T, relay *Relay) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestRelayPublishNotifiesLocallyAndForwards(t *testing.T) {
	hub := NewHub()
	broker := newFakeBroker()
	relay := NewRelay(hub, broker, "league:changes")
	startRelay(t, relay)

	local := 0
	hub.Subscribe(func() { local++ })
	relay.Publish()

	if local != 1 {
		t.Fatalf("expected 1 local signal, got %d", local)
	}
	waitPublished(t, broker, 1)
	broker.mu.Lock()
	defer broker.mu.Unlock()
	if broker.published[0] != relay.origin {
		t.Fatalf("expected origin to be forwarded, got %v", broker.published)
	}
}

func TestRelayPublishSurvivesBrokerFailure(t *testing.T) {
	hub := NewHub()
	broker := newFakeBroker()
	broker.publishErr = errors.New("redis down")
	relay := NewRelay(hub, broker, "league:changes")
	startRelay(t, relay)

	local := 0
	hub.Subscribe(func() { local++ })
	relay.Publish()
	waitPublished(t, broker, 1)
	relay.Publish()
	waitPublished(t, broker, 2)

	if local != 2 {
		t.Fatalf("expected local subscribers to be notified, got %d", local)
	}
}

func TestRelayPublishDoesNotWaitOnSlowBroker(t *testing.T) {
	hub := NewHub()
	broker := newFakeBroker()
	broker.block = make(chan struct{})
	relay := NewRelay(hub, broker, "league:changes")
	startRelay(t, relay)

	local := 0
	hub.Subscribe(func() { local++ })

	start := time.Now()
	for i := 0; i < 20; i++ {
		relay.Publish()
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("publish waited on the broker for %v", elapsed)
	}
	if local != 20 {
		t.Fatalf("expected every local signal delivered, got %d", local)
	}

	close(broker.block)
	waitPublished(t, broker, 1)
	time.Sleep(20 * time.Millisecond)
	if n := broker.publishedCount(); n > 2 {
		t.Fatalf("expected queued signals to collapse, got %d forwards", n)
	}
}

func TestRelayRunReplaysRemoteSignalsOnly(t *testing.T) {
	hub := NewHub()
	broker := newFakeBroker()
	relay := NewRelay(hub, broker, "league:changes")

	signals := make(chan struct{}, 4)
	hub.Subscribe(func() { signals <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx) }()

	broker.msgs <- relay.origin
	broker.msgs <- "another-instance"

	select {
	case <-signals:
	case <-time.After(time.Second):
		t.Fatalf("expected remote signal to be replayed")
	}
	select {
	case <-signals:
		t.Fatalf("own signal must not be replayed")
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	broker.mu.Lock()
	defer broker.mu.Unlock()
	if !broker.closed {
		t.Fatalf("expected subscription to be closed")
	}
}
