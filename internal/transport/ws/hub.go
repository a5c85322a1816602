package ws

import (
	"sync"

	"github.com/fadechat/room-broker/internal/service"
)

// Hub tracks which connections are attached to which room's notification
// channel. Broadcasts addressed to a room reach exactly its attached
// connections.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[service.Sender]struct{} // room code -> set of connections
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[service.Sender]struct{})}
}

func (h *Hub) Attach(roomCode string, c service.Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rs, ok := h.rooms[roomCode]
	if !ok {
		rs = make(map[service.Sender]struct{})
		h.rooms[roomCode] = rs
	}
	rs[c] = struct{}{}
}

func (h *Hub) Detach(roomCode string, c service.Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if rs, ok := h.rooms[roomCode]; ok {
		delete(rs, c)
		if len(rs) == 0 {
			delete(h.rooms, roomCode)
		}
	}
}

func (h *Hub) Broadcast(roomCode, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if rs, ok := h.rooms[roomCode]; ok {
		for c := range rs {
			_ = c.Send(event, payload) // best-effort
		}
	}
}

// CloseRoom drops the room's whole channel after its final broadcast.
func (h *Hub) CloseRoom(roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, roomCode)
}
