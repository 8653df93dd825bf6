package hub

import (
	"encoding/json"
	"log"
	"sync"
)

// Message types published for an event.
const (
	TypeEventUpdated   = "event.updated"
	TypeAttendeeJoined = "attendee.joined"
	TypeAttendeeLeft   = "attendee.left"
)

// Message is a real-time notification about one event, sent to its subscribers.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client is a single subscriber. The SSE handler reads encoded messages from it.
type Client chan []byte

// Hub tracks the subscribers of every event.
type Hub struct {
	events map[uint]map[Client]bool
	mu     sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		events: make(map[uint]map[Client]bool),
	}
}

// Subscribe adds a client to an event's feed.
func (h *Hub) Subscribe(eventID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.events[eventID]; !ok {
		h.events[eventID] = make(map[Client]bool)
	}
	h.events[eventID][client] = true
}

// Unsubscribe removes a client from an event's feed and closes it.
func (h *Hub) Unsubscribe(eventID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.events[eventID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client)
			if len(clients) == 0 {
				delete(h.events, eventID)
			}
		}
	}
}

// Subscribers returns how many clients follow an event.
func (h *Hub) Subscribers(eventID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.events[eventID])
}

// Broadcast sends a message to every client of an event.
// Clients whose buffer is full miss the message rather than block the sender.
func (h *Hub) Broadcast(eventID uint, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.events[eventID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(msg)
	if err != nil {
		log.Printf("hub: encode %s for event %d: %v", msg.Type, eventID, err)
		return
	}

	for client := range clients {
		select {
		case client <- messageBytes:
		default:
		}
	}
}
