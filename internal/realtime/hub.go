package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	SentAt  time.Time   `json:"sentAt"`
}

// Directory tracks which users hold a live connection.
type Directory interface {
	Register(userID uuid.UUID, ch chan Event)
	Unregister(userID uuid.UUID)
	IsOnline(userID uuid.UUID) bool
	Send(userID uuid.UUID, event Event) bool
}

type Hub struct {
	mu    sync.RWMutex
	conns map[uuid.UUID]chan Event
}

func NewHub() *Hub {
	return &Hub{conns: make(map[uuid.UUID]chan Event)}
}

// Register makes ch the user's delivery channel. A previous channel is
// closed so its writer stops.
func (h *Hub) Register(userID uuid.UUID, ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.conns[userID]; ok && old != ch {
		close(old)
	}
	h.conns[userID] = ch
}

func (h *Hub) Unregister(userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.conns[userID]; ok {
		close(ch)
		delete(h.conns, userID)
	}
}

// Detach unregisters userID only while ch is still its current channel.
func (h *Hub) Detach(userID uuid.UUID, ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cur, ok := h.conns[userID]; ok && cur == ch {
		close(cur)
		delete(h.conns, userID)
	}
}

func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[userID]
	return ok
}

// Send never blocks. It reports false when the user is offline or the
// connection's buffer is full.
func (h *Hub) Send(userID uuid.UUID, event Event) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ch, ok := h.conns[userID]
	if !ok {
		return false
	}
	if event.SentAt.IsZero() {
		event.SentAt = time.Now().UTC()
	}
	select {
	case ch <- event:
		return true
	default:
		return false
	}
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
