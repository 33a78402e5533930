// Package changes tells open clients that some write happened so they can
// reload. Signals carry no payload and no ordering guarantee.
package changes

import "sync"

// Hub is an in-process publish/subscribe point. Every subscriber is added
// and removed independently.
type Hub struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]func()
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]func())}
}

// Subscribe registers fn and returns a function that removes it. The
// returned function may be called more than once.
func (h *Hub) Subscribe(fn func()) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Publish calls every current subscriber. Callbacks run outside the lock so
// they may subscribe or unsubscribe themselves.
func (h *Hub) Publish() {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Subscribers returns the number of active subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
