package config

import (
	"log"

	"github.com/Praveenkaushik12/CollegeFied/models"
	"github.com/Praveenkaushik12/CollegeFied/utils"
	"gorm.io/gorm"
)

// SeedCategories installs the fixed marketplace catalog.
func SeedCategories(db *gorm.DB) {
	categories := []models.Category{
		{Name: "Books & Study Material", Slug: "books"},
		{Name: "Electronics & Accessories", Slug: "electronics"},
		{Name: "Hostel Essentials", Slug: "hostel"},
		{Name: "Stationery & Art Supplies", Slug: "stationery"},
		{Name: "Sports & Fitness", Slug: "sports"},
		{Name: "Clothing & Accessories", Slug: "clothing"},
		{Name: "Musical Instruments", Slug: "music"},
		{Name: "Bicycles & Vehicles", Slug: "vehicles"},
		{Name: "Miscellaneous", Slug: "misc"},
	}

	for _, category := range categories {
		var existing models.Category
		if err := db.Where("slug = ?", category.Slug).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&category).Error; err != nil {
				log.Printf("Failed to seed category %s: %v", category.Slug, err)
			}
		}
	}
}

func SeedUsers(db *gorm.DB) {
	log.Println("🌱 Seeding users...")

	password, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Username:        "student1",
			Email:           "student1@kiet.edu",
			Password:        password,
			IsEmailVerified: true,
		},
		{
			Username:        "student2",
			Email:           "student2@kiet.edu",
			Password:        password,
			IsEmailVerified: true,
		},
	}

	for _, user := range users {
		var existingUser models.User
		if err := db.Where("email = ?", user.Email).First(&existingUser).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&user).Error; err != nil {
					log.Printf("Failed to seed user %s: %v", user.Username, err)
				} else {
					// Every account gets a profile shell named after the username.
					profile := models.UserProfile{UserID: user.ID, Name: user.Username}
					if err := db.Create(&profile).Error; err != nil {
						log.Printf("Failed to seed profile for %s: %v", user.Username, err)
					}
					log.Printf("User seeded: %s (ID: %d)", user.Username, user.ID)
				}
			}
		} else {
			log.Printf("User already exists: %s", user.Username)
		}
	}

	log.Println("✅ Seeding complete.")
}
