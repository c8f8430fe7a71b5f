package presence

import (
	"context"
	"encoding/json"
	"log"
)

// Event is a presence or lifecycle notification fanned out to every
// connected socket.
type Event struct {
	Type    string      `json:"type"`
	UserID  string      `json:"userId,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	EventUserOnline     = "user_online"
	EventUserOffline    = "user_offline"
	EventNewRequest     = "new_request"
	EventRequestClaimed = "request_claimed"
	EventBookingUpdate  = "booking_update"
)

// Hub fans events out to connected clients. All registration and
// broadcast traffic funnels through the run loop, so no locking is
// needed around the client set.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run processes hub traffic until the context is cancelled, then closes
// every remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			log.Println("presence hub stopped")
			return
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("presence: client connected, %d online", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("presence: client disconnected, %d online", len(h.clients))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Broadcast queues an event for every connected client. A full broadcast
// queue drops the event rather than blocking the caller.
func (h *Hub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("presence: failed to marshal event: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		log.Printf("presence: broadcast queue full, dropping %s", event.Type)
	}
}
