package models

import (
	"time"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username string `gorm:"unique;not null;size:100" json:"username"`
	Email    string `gorm:"unique;not null;size:255" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Accounts start unverified; the OTP confirmation flips this.
	IsEmailVerified bool `gorm:"default:false" json:"is_email_verified"`

	// Soft deactivation; users are never hard-deleted.
	IsActive bool `gorm:"default:true" json:"is_active"`
	IsAdmin  bool `gorm:"default:false" json:"is_admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
