// Package realtime pushes session changes to connected websocket observers.
// Observers only receive; nothing they send is applied to session state.
package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub tracks the websocket clients of every session.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		log:     log,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.clients[c.key] == nil {
		h.clients[c.key] = make(map[*Client]struct{})
	}
	h.clients[c.key][c] = struct{}{}
	h.mu.Unlock()
}

// Unregister drops the client and closes its outbound queue. Safe to call
// more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set := h.clients[c.key]; set != nil {
		if _, ok := set[c]; ok {
			delete(set, c)
			close(c.send)
		}
		if len(set) == 0 {
			delete(h.clients, c.key)
		}
	}
	h.mu.Unlock()
}

// Publish queues payload for every client of the session. It never blocks:
// a client whose queue is full is disconnected.
func (h *Hub) Publish(key string, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("Failed to encode realtime message", zap.String("session", key), zap.Error(err))
		return
	}

	var slow []*Client
	h.mu.RLock()
	for c := range h.clients[key] {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn("Dropping slow realtime client", zap.String("session", key))
		h.Unregister(c)
	}
}

// Count reports how many clients observe the session.
func (h *Hub) Count(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[key])
}
