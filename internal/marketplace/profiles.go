package marketplace

import (
	"errors"

	"github.com/Praveenkaushik12/CollegeFied/models"
	"gorm.io/gorm"
)

// ProfileStore is the default ProfileChecker backed by the user_profiles
// table. A user without a profile row counts as missing everything.
type ProfileStore struct{}

func (ProfileStore) MissingFields(tx *gorm.DB, userID uint) ([]string, error) {
	var profile models.UserProfile
	err := tx.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []string{"name", "address", "course", "college_year", "gender"}, nil
	}
	if err != nil {
		return nil, err
	}
	return profile.MissingFields(), nil
}
