package realtime

import (
	"sync"
)

// Hub tracks dashboard watcher sessions and fans inbox events out to all of
// them. Every watcher sees the whole inbox (the console has no per-thread
// subscriptions), so the hub needs no room bookkeeping: attach, broadcast,
// detach.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Connection // sessionID -> connection
}

// NewHub constructs an initialized Hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*Connection)}
}

// Attach registers a connection and starts its write loop.
func (h *Hub) Attach(conn *Connection) {
	h.mu.Lock()
	h.sessions[conn.ID] = conn
	h.mu.Unlock()

	conn.Start()
}

// Detach removes a connection if it is still tracked.
func (h *Hub) Detach(conn *Connection) {
	h.mu.Lock()
	delete(h.sessions, conn.ID)
	h.mu.Unlock()
}

// Broadcast writes payload to every attached watcher and reports how many
// sends succeeded. Slow watchers drop out via the connection's bounded buffer.
func (h *Hub) Broadcast(payload []byte) int {
	h.mu.RLock()
	delivered := 0
	for _, conn := range h.sessions {
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	h.mu.RUnlock()
	return delivered
}

// Close terminates all tracked connections and clears hub state.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]*Connection, 0, len(h.sessions))
	for _, conn := range h.sessions {
		sessions = append(sessions, conn)
	}
	h.sessions = make(map[string]*Connection)
	h.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "hub shutdown")
	}
}
