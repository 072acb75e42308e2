package realtime

import (
	"context"
	"sync"

	"github.com/AanchalGupta0502/SocialeX/internal/logging"
)

// Hub is the registry of live connections and the chat rooms they joined.
// Frames are encoded once by the caller and handed to each client's buffer.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]*Client
	logger  logging.Logger
}

func NewHub(logger logging.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.id] = c
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info(context.Background(), "client connected", "client_id", c.id, "clients", n)
}

// Unregister removes c from the registry and from every room, and stops its
// writer. Calling it twice is harmless.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, known := h.clients[c.id]
	delete(h.clients, c.id)
	for room := range c.rooms {
		h.leaveLocked(c, room)
	}
	n := len(h.clients)
	h.mu.Unlock()

	c.close()
	if known {
		h.logger.Info(context.Background(), "client disconnected", "client_id", c.id, "clients", n)
	}
}

// Join adds c to room. Joining twice is a no-op; unregistered clients are
// ignored.
func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]*Client)
		h.rooms[room] = members
	}
	members[c.id] = c
	c.rooms[room] = struct{}{}
}

func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, room)
}

func (h *Hub) leaveLocked(c *Client, room string) {
	delete(c.rooms, room)
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, c.id)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Broadcast queues frame for every connected client.
func (h *Hub) Broadcast(frame []byte) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.Send(frame)
	}
}

// BroadcastToRoom queues frame for every member of room except exceptID.
func (h *Hub) BroadcastToRoom(room string, frame []byte, exceptID string) {
	h.mu.RLock()
	members := h.rooms[room]
	targets := make([]*Client, 0, len(members))
	for id, c := range members {
		if id != exceptID {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.Send(frame)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// CloseAll disconnects every client.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	all := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		all = append(all, c)
	}
	h.mu.RUnlock()

	for _, c := range all {
		h.Unregister(c)
	}
}
