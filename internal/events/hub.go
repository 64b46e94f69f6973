package events

import (
	"sync"
	"time"

	"github.com/jianshanacademy/camp-portal/internal/domain/applicant"
)

// StatusEvent is published whenever an application's public status
// changes, feeding the admin dashboard stream.
type StatusEvent struct {
	ApplicationID uint             `json:"application_id"`
	UserID        uint             `json:"user_id"`
	From          applicant.Status `json:"from"`
	To            applicant.Status `json:"to"`
	At            time.Time        `json:"at"`
}

// Hub fans status events out to subscribers. Slow subscribers drop
// events instead of blocking publishers.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan StatusEvent]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[chan StatusEvent]struct{}),
	}
}

func (h *Hub) Subscribe() (<-chan StatusEvent, func()) {
	ch := make(chan StatusEvent, 16)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) Publish(ev StatusEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
