package models

import "time"

// UserProfile holds the marketplace identity of a user. A profile row is
// created automatically at registration with Name defaulted to the username;
// the remaining fields are filled in by the user before they can trade.
type UserProfile struct {
	ID     uint `gorm:"primaryKey" json:"-"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Name        string `gorm:"size:255" json:"name"`
	Address     string `gorm:"type:text" json:"address"`
	Course      string `gorm:"size:100" json:"course"`
	CollegeYear int    `json:"college_year"` // 1..4
	Gender      string `gorm:"size:20" json:"gender"`
	ImageURL    string `json:"image_url"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// MissingFields reports which required profile fields are still empty.
// A buyer cannot send a product request until this returns nothing.
func (p *UserProfile) MissingFields() []string {
	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Address == "" {
		missing = append(missing, "address")
	}
	if p.Course == "" {
		missing = append(missing, "course")
	}
	if p.CollegeYear == 0 {
		missing = append(missing, "college_year")
	}
	if p.Gender == "" {
		missing = append(missing, "gender")
	}
	return missing
}
