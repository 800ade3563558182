package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"github.com/Praveenkaushik12/CollegeFied/internal/marketplace"
	"github.com/Praveenkaushik12/CollegeFied/internal/ws"
	"github.com/Praveenkaushik12/CollegeFied/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	Hub   *ws.Hub
	Chats *marketplace.ChatService
}

func NewChatHandler(hub *ws.Hub, chats *marketplace.ChatService) *ChatHandler {
	return &ChatHandler{Hub: hub, Chats: chats}
}

// SendMessageRequest defines the payload for the REST send fallback
type SendMessageRequest struct {
	Content string `json:"content"`
}

// WebSocketUpgradeMiddleware ensures the client is trying to upgrade to WebSocket
func (h *ChatHandler) WebSocketUpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler returns the websocket handler for GET /ws/chat/:roomID.
//
// Connections are rejected for unauthenticated callers, unknown rooms and
// callers who are neither the room's buyer nor its seller. An inactive room
// still accepts its members read-only; the info event announces which mode
// the session is in.
func (h *ChatHandler) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		userID, err := utils.ParseToken(c.Query("token"))
		if err != nil || userID == 0 {
			log.Println("Unauthenticated WebSocket connection rejected")
			c.Close()
			return
		}

		roomID, err := parseRoomID(c.Params("roomID"))
		if err != nil {
			c.Close()
			return
		}

		room, err := h.Chats.GetRoom(roomID)
		if err != nil {
			log.Printf("WebSocket connect to unknown room %d", roomID)
			c.Close()
			return
		}

		if userID != room.BuyerID && userID != room.SellerID {
			log.Printf("User %d is not a member of room %d, closing", userID, roomID)
			c.Close()
			return
		}

		client := &ws.Client{
			Hub:      h.Hub,
			Conn:     c,
			Send:     make(chan []byte, 256),
			UserID:   userID,
			RoomID:   roomID,
			ReadOnly: !room.IsActive,
			Chats:    h.Chats,
		}

		client.Hub.Register <- client

		// Tell the frontend whether this session may send.
		client.Send <- ws.InfoEvent(client.ReadOnly)

		go client.WritePump()
		client.ReadPump()
	})
}

// MyChats - GET /api/chats
func (h *ChatHandler) MyChats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	rooms, err := h.Chats.ListRoomsForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch chats"})
	}

	return c.JSON(fiber.Map{"data": rooms})
}

// GetMessages - GET /api/chats/:roomID/messages?since_id=N
//
// The poll fallback for clients without a live socket. History stays
// readable after the room goes inactive.
func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	roomID, err := c.ParamsInt("roomID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room ID"})
	}
	sinceID := c.QueryInt("since_id", 0)

	messages, err := h.Chats.ListMessages(uint(roomID), userID, uint(sinceID))
	if err != nil {
		return coreError(c, err)
	}

	return c.JSON(fiber.Map{"messages": messages})
}

// SendMessage - POST /api/chats/:roomID/messages
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	roomID, err := c.ParamsInt("roomID")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room ID"})
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message content is required"})
	}

	message, err := h.Chats.SendMessage(uint(roomID), userID, req.Content)
	if err != nil {
		return coreError(c, err)
	}

	// Mirror to any live sessions in the room.
	data, _ := json.Marshal(fiber.Map{
		"message":   message.Content,
		"sender":    message.Sender.Username,
		"timestamp": message.CreatedAt,
	})
	h.Hub.Broadcast <- ws.RoomEvent{RoomID: uint(roomID), Data: data}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Message sent", "data": message})
}

func parseRoomID(raw string) (uint, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid room ID")
	}
	return uint(id), nil
}
