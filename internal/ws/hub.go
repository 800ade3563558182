package ws

import "log"

// RoomEvent is a payload addressed to every session subscribed to one room.
type RoomEvent struct {
	RoomID uint
	Data   []byte
}

// Hub maintains the set of connected clients per chat room and fans
// messages out to the sessions subscribed to the same room. Delivery is
// at-most-once per session; a dead socket is dropped without affecting the
// other subscribers.
type Hub struct {
	// Connected clients, keyed by room.
	rooms map[uint]map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Room-addressed outbound events.
	Broadcast chan RoomEvent
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uint]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan RoomEvent, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			clients, ok := h.rooms[client.RoomID]
			if !ok {
				clients = make(map[*Client]bool)
				h.rooms[client.RoomID] = clients
			}
			clients[client] = true
			log.Printf("user %d joined room %d (%d connected)", client.UserID, client.RoomID, len(clients))

		case client := <-h.Unregister:
			if clients, ok := h.rooms[client.RoomID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.rooms, client.RoomID)
					}
					log.Printf("user %d left room %d", client.UserID, client.RoomID)
				}
			}

		case event := <-h.Broadcast:
			for client := range h.rooms[event.RoomID] {
				select {
				case client.Send <- event.Data:
				default:
					// Slow or dead session; drop it so the rest of the
					// room keeps receiving.
					close(client.Send)
					delete(h.rooms[event.RoomID], client)
				}
			}
		}
	}
}
