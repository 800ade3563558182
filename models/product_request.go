package models

import "time"

// ProductRequest status values. A request is "active" while accepted or
// approved; at most one request per product may be active at a time.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

type ProductRequest struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	BuyerID   uint   `gorm:"index;not null" json:"buyer_id"`
	SellerID  uint   `gorm:"index;not null" json:"seller_id"` // copied from the product at creation
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	Status    string `gorm:"default:'pending';size:20" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Buyer   User    `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Seller  User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// IsActive reports whether the request currently reserves the product.
func (r *ProductRequest) IsActive() bool {
	return r.Status == RequestStatusAccepted || r.Status == RequestStatusApproved
}
