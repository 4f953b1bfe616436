// internal/store/watch.go
//
// In-process watch fan-out shared by the store implementations. All writes
// in this deployment flow through one process, so a write-side publish is
// enough to give Watch its push semantics, the same contract a hosted
// realtime store would provide over the network.

package store

import (
	"context"
	"sync"
)

// watchBuffer is the per-subscriber channel capacity. A slow consumer
// drops its oldest pending snapshot, never the newest.
const watchBuffer = 8

type watchHub struct {
	mu   sync.Mutex
	subs map[string]map[int]chan Event
	next int
}

func newWatchHub() *watchHub {
	return &watchHub{subs: make(map[string]map[int]chan Event)}
}

// subscribe registers a watcher for id and tears it down when ctx ends.
// A non-nil initial event is queued before the watcher can observe any
// later publish, so subscribers always see the current snapshot first.
func (h *watchHub) subscribe(ctx context.Context, id string, initial *Event) <-chan Event {
	ch := make(chan Event, watchBuffer)

	h.mu.Lock()
	if h.subs[id] == nil {
		h.subs[id] = make(map[int]chan Event)
	}
	key := h.next
	h.next++
	if initial != nil {
		ch <- *initial
	}
	h.subs[id][key] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		if m, ok := h.subs[id]; ok {
			if _, live := m[key]; live {
				delete(m, key)
				close(ch)
			}
			if len(m) == 0 {
				delete(h.subs, id)
			}
		}
		h.mu.Unlock()
	}()

	return ch
}

// publish delivers ev to every watcher of id.
func (h *watchHub) publish(id string, ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[id] {
		send(ch, ev)
	}
}

// closeAll delivers a final event to id's watchers and closes them,
// used when the game is deleted.
func (h *watchHub) closeAll(id string, ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key, ch := range h.subs[id] {
		send(ch, ev)
		close(ch)
		delete(h.subs[id], key)
	}
	delete(h.subs, id)
}

// send pushes ev without blocking: if the buffer is full the oldest
// pending event is discarded first, so the newest snapshot always lands.
func send(ch chan Event, ev Event) {
	for {
		select {
		case ch <- ev:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
