package hub

import (
	"encoding/json"
	"sync"
)

// EventRatingSubmitted is published after a rating is stored.
const EventRatingSubmitted = "rating_submitted"

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Client is the channel an SSE handler drains for one subscriber.
type Client chan []byte

// Hub fans out events to the subscribers of each game.
type Hub struct {
	games map[uint]map[Client]bool
	mu    sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		games: make(map[uint]map[Client]bool),
	}
}

// NewClient returns a buffered client channel.
func NewClient() Client {
	return make(Client, 8)
}

// Subscribe registers client for events about gameID.
func (h *Hub) Subscribe(gameID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.games[gameID]; !ok {
		h.games[gameID] = make(map[Client]bool)
	}
	h.games[gameID][client] = true
}

// Unsubscribe removes client and closes its channel.
func (h *Hub) Unsubscribe(gameID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.games[gameID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client)
			if len(clients) == 0 {
				delete(h.games, gameID)
			}
		}
	}
}

// Broadcast sends event to every subscriber of gameID. Slow clients whose
// buffer is full miss the event rather than blocking the caller.
func (h *Hub) Broadcast(gameID uint, event Event) error {
	if h == nil {
		return nil
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.games[gameID]
	if !ok {
		return nil
	}

	messageBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	for client := range clients {
		select {
		case client <- messageBytes:
		default:
		}
	}
	return nil
}

// Subscribers reports how many clients follow gameID.
func (h *Hub) Subscribers(gameID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}
