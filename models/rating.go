package models

import "time"

// Rating is the buyer's post-sale score for a seller. One rating per
// (buyer, product), allowed only within the 7-day window after the sale.
type Rating struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	BuyerID   uint    `gorm:"not null;uniqueIndex:idx_rating_buyer_product" json:"buyer_id"`
	SellerID  uint    `gorm:"index;not null" json:"seller_id"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_rating_buyer_product" json:"product_id"`
	Score     float64 `gorm:"type:decimal(3,1);not null" json:"score"`
	Review    string  `gorm:"type:text" json:"review"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Buyer  User `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Seller User `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}
