// server/internal/socket/hub.go
package socket

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks connected dashboard clients, keyed by PHC name.
type Hub struct {
	clients map[string]*websocket.Conn
	// mu guards the clients map against concurrent handler goroutines.
	mu sync.RWMutex
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a new client to the Hub.
func (h *Hub) Register(clientID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[clientID] = conn
	log.Printf("WebSocket client registered: %s", clientID)
}

// Unregister removes a client from the Hub.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[clientID]; ok {
		delete(h.clients, clientID)
		log.Printf("WebSocket client unregistered: %s", clientID)
	}
}

// Send delivers a message to one client. A missing client is not an error;
// the dashboard may simply be offline.
func (h *Hub) Send(clientID string, message []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[clientID]
	if !ok {
		log.Printf("WebSocket client not found, could not send message: %s", clientID)
		return nil
	}

	return conn.WriteMessage(websocket.TextMessage, message)
}

// Broadcast pushes a message to every connected client. Used for overload
// alerts and restock-sweep notifications. Write errors are logged per client
// and do not stop the fan-out.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for clientID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket broadcast to %s failed: %v", clientID, err)
		}
	}
}
