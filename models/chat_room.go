package models

import "time"

// ChatRoom links a buyer and a seller around one product. A room opens when
// the buyer's request is accepted and is deactivated (never deleted) when the
// request is rejected, so message history stays readable.
type ChatRoom struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_room_triple" json:"product_id"`
	BuyerID   uint `gorm:"not null;uniqueIndex:idx_room_triple" json:"buyer_id"`
	SellerID  uint `gorm:"not null;uniqueIndex:idx_room_triple" json:"seller_id"`
	IsActive  bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Buyer   User    `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Seller  User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

type Message struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ChatRoomID uint   `gorm:"index;not null" json:"chat_room_id"`
	SenderID   uint   `gorm:"index;not null" json:"sender_id"`
	Content    string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Sender User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
