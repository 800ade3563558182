package marketplace

import (
	"errors"

	"github.com/Praveenkaushik12/CollegeFied/models"
	"gorm.io/gorm"
)

// ChatService maintains the 1:1 link between an active request and its chat
// room, and guards every message write on room activity. It implements the
// RoomCoordinator interface consumed by the Engine.
type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// EnsureRoom gets or creates the room for (product, buyer, seller) and
// reactivates it if a prior rejection left it inactive.
func (s *ChatService) EnsureRoom(tx *gorm.DB, productID, buyerID, sellerID uint) error {
	var room models.ChatRoom
	err := tx.Where("product_id = ? AND buyer_id = ? AND seller_id = ?", productID, buyerID, sellerID).
		First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		room = models.ChatRoom{
			ProductID: productID,
			BuyerID:   buyerID,
			SellerID:  sellerID,
			IsActive:  true,
		}
		return tx.Create(&room).Error
	}
	if err != nil {
		return err
	}
	if !room.IsActive {
		return tx.Model(&room).Update("is_active", true).Error
	}
	return nil
}

// DeactivateRoom flips the room inactive. History is kept; a missing room is
// a no-op.
func (s *ChatService) DeactivateRoom(tx *gorm.DB, productID, buyerID, sellerID uint) error {
	var room models.ChatRoom
	err := tx.Where("product_id = ? AND buyer_id = ? AND seller_id = ?", productID, buyerID, sellerID).
		First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if room.IsActive {
		return tx.Model(&room).Update("is_active", false).Error
	}
	return nil
}

// GetRoom loads a room with its participants.
func (s *ChatService) GetRoom(roomID uint) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := s.db.Preload("Buyer").Preload("Seller").First(&room, roomID).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// SendMessage persists a message after re-checking membership and room
// activity against the database. Inactive rooms reject sends with
// ErrChatInactive.
func (s *ChatService) SendMessage(roomID, senderID uint, content string) (*models.Message, error) {
	var message models.Message
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var room models.ChatRoom
		if err := tx.First(&room, roomID).Error; err != nil {
			return err
		}
		if senderID != room.BuyerID && senderID != room.SellerID {
			return ErrUnauthorized
		}
		if !room.IsActive {
			return ErrChatInactive
		}

		message = models.Message{
			ChatRoomID: roomID,
			SenderID:   senderID,
			Content:    content,
		}
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Preload("Sender").First(&message, message.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListMessages returns room history in send order, optionally only messages
// newer than sinceID (the poll fallback for reconnecting clients). Members
// of inactive rooms may still read.
func (s *ChatService) ListMessages(roomID, userID, sinceID uint) ([]models.Message, error) {
	var room models.ChatRoom
	if err := s.db.First(&room, roomID).Error; err != nil {
		return nil, err
	}
	if userID != room.BuyerID && userID != room.SellerID {
		return nil, ErrUnauthorized
	}

	q := s.db.Preload("Sender").Where("chat_room_id = ?", roomID)
	if sinceID > 0 {
		q = q.Where("id > ?", sinceID)
	}

	var messages []models.Message
	if err := q.Order("id asc").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// ListRoomsForUser returns every room the user takes part in, newest first.
func (s *ChatService) ListRoomsForUser(userID uint) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := s.db.Preload("Buyer").Preload("Seller").Preload("Product").
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("created_at desc").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
