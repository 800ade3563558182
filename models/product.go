package models

import "time"

// Product status values. Except for the manual seller transition to sold,
// status is owned by the request projector and must not be written directly.
const (
	ProductStatusAvailable   = "available"
	ProductStatusReserved    = "reserved"
	ProductStatusUnavailable = "unavailable"
	ProductStatusSold        = "sold"
)

type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	SellerID    uint    `gorm:"index;not null" json:"seller_id"`
	Title       string  `gorm:"size:100;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"size:50;index" json:"category"`
	Status      string  `gorm:"default:'available';size:20" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Seller User           `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Images []ProductImage `json:"images,omitempty"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	ImageURL  string `gorm:"not null" json:"image_url"`
}
