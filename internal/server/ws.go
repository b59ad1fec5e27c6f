package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// EventsHandler pushes alert and state-change events to WebSocket clients.
type EventsHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewEventsHandler creates an EventsHandler with no clients.
func NewEventsHandler() *EventsHandler {
	return &EventsHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep the connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Broadcast sends one event to every connected client. Write failures are
// ignored; the read loop notices the dead connection and removes it.
func (h *EventsHandler) Broadcast(event any) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// ClientCount returns the number of connected clients.
func (h *EventsHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
