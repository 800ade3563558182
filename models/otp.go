package models

import "time"

const otpValidity = 5 * time.Minute

// OTP is the one-time email verification code issued at registration.
type OTP struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Code   string `gorm:"size:6;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// IsValid reports whether the code is still inside its validity window.
func (o *OTP) IsValid() bool {
	return time.Since(o.CreatedAt) < otpValidity
}
