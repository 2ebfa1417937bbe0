package ws

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/ivanmarin/orbit/internal/logger"
)

// Hub manages all active WebSocket clients and routes notifications.
type Hub struct {
	// clients maps userID → client.
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	direct     chan *directMsg

	log *logger.Logger
}

type directMsg struct {
	userID uuid.UUID
	data   []byte
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan *directMsg, 256),
		log:        log,
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if old, ok := h.clients[client.userID]; ok {
				h.drop(old)
			}
			h.clients[client.userID] = client
			h.log.Info("ws hub: user connected", "user_id", client.userID, "total", len(h.clients))

		case client := <-h.unregister:
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				close(client.send)
				close(client.done)
				h.log.Info("ws hub: user disconnected", "user_id", client.userID, "total", len(h.clients))
			}

		case msg := <-h.direct:
			client, ok := h.clients[msg.userID]
			if !ok {
				continue
			}
			select {
			case client.send <- msg.data:
			default:
				// Client buffer full - disconnect
				delete(h.clients, msg.userID)
				h.drop(client)
			}
		}
	}
}

// SendToUser delivers an event to the user's connected session, if any.
// Delivery is best-effort; an offline user simply misses the event.
func (h *Hub) SendToUser(userID uuid.UUID, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("ws hub: marshal error", "error", err)
		return
	}
	h.direct <- &directMsg{userID: userID, data: data}
}

func (h *Hub) drop(client *Client) {
	close(client.send)
	close(client.done)
}
