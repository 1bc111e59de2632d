package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jaminalder/codex-battleship/internal/constants"
)

type subscriber struct {
	ch        chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func (s *subscriber) close() {
	s.closeOnce.Do(func() {
		close(s.ch)
		close(s.done)
	})
}

// Hub fans events out to per-match subscribers. A subscriber that cannot keep
// up is closed and dropped rather than blocking the emitter.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[*subscriber]struct{}
	render func(Event) []byte
	buffer int
}

// NewHub returns a hub that encodes events as JSON.
func NewHub() *Hub { return NewHubWithRenderer(nil) }

// NewHubWithRenderer allows injecting the payload encoding.
func NewHubWithRenderer(renderer func(Event) []byte) *Hub {
	if renderer == nil {
		renderer = encodeJSON
	}
	return &Hub{
		subs:   make(map[string]map[*subscriber]struct{}),
		render: renderer,
		buffer: constants.EventBuffer,
	}
}

func encodeJSON(e Event) []byte {
	b, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return b
}

// Subscribe registers a subscriber for a match. The channel is closed when ctx
// ends, when unsubscribe is called, or when the subscriber falls behind.
func (h *Hub) Subscribe(ctx context.Context, matchID string) (<-chan []byte, func()) {
	h.mu.Lock()
	set := h.subs[matchID]
	if set == nil {
		set = make(map[*subscriber]struct{})
		h.subs[matchID] = set
	}
	sub := &subscriber{ch: make(chan []byte, h.buffer), done: make(chan struct{})}
	set[sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			h.remove(matchID, sub)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			unsub()
		case <-sub.done:
		}
	}()
	return sub.ch, unsub
}

// Emit implements Sink. Sends never block.
func (h *Hub) Emit(_ context.Context, e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[e.MatchID]
	if len(set) == 0 {
		return
	}
	payload := h.render(e)
	for sub := range set {
		select {
		case sub.ch <- payload:
		default:
			sub.close()
			delete(set, sub)
		}
	}
	if len(set) == 0 {
		delete(h.subs, e.MatchID)
	}
}

// Subscribers reports the live subscriber count for a match.
func (h *Hub) Subscribers(matchID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[matchID])
}

func (h *Hub) remove(matchID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[matchID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, matchID)
		}
	}
	sub.close()
}
