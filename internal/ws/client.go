package ws

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/Praveenkaushik12/CollegeFied/internal/marketplace"
	"github.com/gofiber/contrib/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096 // 4KB
)

// Client is a middleman between one websocket connection and the hub. A
// client is bound to a single chat room for its whole lifetime.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Buffered channel of outbound messages.
	Send chan []byte

	// Identity and room, fixed at connect time.
	UserID uint
	RoomID uint

	// ReadOnly is set when the room was inactive at connect time. The
	// client may keep reading history but every send is rejected.
	ReadOnly bool

	// Chats persists messages; its guard re-checks room activity on every
	// send, so a room deactivated mid-connection also blocks.
	Chats *marketplace.ChatService
}

// inboundFrame is what connected clients send us.
type inboundFrame struct {
	Message string `json:"message"`
}

// InfoEvent tells the client whether the room accepts new messages.
func InfoEvent(readOnly bool) []byte {
	text := "Chat is active."
	if readOnly {
		text = "Chat is inactive. You can read messages but cannot send new ones."
	}
	data, _ := json.Marshal(map[string]interface{}{
		"type":      "info",
		"read_only": readOnly,
		"message":   text,
	})
	return data
}

func errorEvent(text string) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type":    "error",
		"message": text,
	})
	return data
}

// ReadPump pumps frames from the websocket connection into the chat store
// and the hub.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, frame, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}
		c.handleFrame(frame)
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket frame.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleFrame(frame []byte) {
	var in inboundFrame
	if err := json.Unmarshal(frame, &in); err != nil {
		log.Printf("error unmarshalling frame: %v", err)
		return
	}
	if in.Message == "" {
		return
	}

	if c.ReadOnly {
		c.Send <- errorEvent("Chat is inactive. You cannot send new messages.")
		return
	}

	// Persist first; broadcast order equals persisted order.
	msg, err := c.Chats.SendMessage(c.RoomID, c.UserID, in.Message)
	if err != nil {
		if errors.Is(err, marketplace.ErrChatInactive) {
			// Room got deactivated after we connected.
			c.ReadOnly = true
			c.Send <- errorEvent("Chat is inactive. You cannot send new messages.")
			return
		}
		log.Printf("error saving message in room %d: %v", c.RoomID, err)
		return
	}

	data, _ := json.Marshal(map[string]interface{}{
		"message":   msg.Content,
		"sender":    msg.Sender.Username,
		"timestamp": msg.CreatedAt,
	})
	c.Hub.Broadcast <- RoomEvent{RoomID: c.RoomID, Data: data}
}
