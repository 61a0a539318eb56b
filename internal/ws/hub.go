// Package ws pushes inbox events to connected browsers, so sellers see
// purchase notifications without reloading.
package ws

import (
	"log/slog"
	"sync"
)

// Event types.
const (
	EventNotification = "notification"
	EventInboxCleared = "inbox_cleared"
)

// Event is one message pushed to an owner's open sessions.
type Event struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

// Hub tracks connected clients per username and fans out inbox events.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	send       chan targetedEvent

	mu      sync.RWMutex
	clients map[string]map[*Client]bool
}

type targetedEvent struct {
	owner string
	event Event
}

// NewHub creates an empty hub. Call Run in a goroutine before serving.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		send:       make(chan targetedEvent, 16),
		clients:    make(map[string]map[*Client]bool),
	}
}

// Run is the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case te := <-h.send:
			h.fanOut(te.owner, te.event)
		}
	}
}

// Send queues an event for all of owner's connected sessions. Owners with no
// open session miss nothing: the inbox itself is persisted separately.
func (h *Hub) Send(owner string, e Event) {
	h.send <- targetedEvent{owner: owner, event: e}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.username] == nil {
		h.clients[client.username] = make(map[*Client]bool)
	}
	h.clients[client.username][client] = true
	slog.Info("live session connected", "user", client.username,
		"sessions", len(h.clients[client.username]))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions := h.clients[client.username]
	if sessions == nil || !sessions[client] {
		return
	}
	delete(sessions, client)
	close(client.sendCh)
	if len(sessions) == 0 {
		delete(h.clients, client.username)
	}
	slog.Info("live session disconnected", "user", client.username)
}

func (h *Hub) fanOut(owner string, e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[owner] {
		select {
		case client.sendCh <- e:
		default:
			// Slow consumer; drop the event rather than block the hub.
			slog.Warn("dropping event for slow live session", "user", owner)
		}
	}
}
