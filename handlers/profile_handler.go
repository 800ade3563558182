package handlers

import (
	"github.com/Praveenkaushik12/CollegeFied/internal/marketplace"
	"github.com/Praveenkaushik12/CollegeFied/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	DB      *gorm.DB
	Ratings *marketplace.RatingGate
}

func NewProfileHandler(db *gorm.DB, ratings *marketplace.RatingGate) *ProfileHandler {
	return &ProfileHandler{DB: db, Ratings: ratings}
}

// UpdateProfileRequest defines the editable profile fields
type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Course      *string `json:"course"`
	CollegeYear *int    `json:"college_year"`
	Gender      *string `json:"gender"`
	ImageURL    *string `json:"image_url"`
}

// GetMyProfile - GET /api/profile
func (h *ProfileHandler) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	return h.renderProfile(c, userID)
}

// GetUserProfile - GET /api/users/:id/profile
func (h *ProfileHandler) GetUserProfile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	return h.renderProfile(c, uint(id))
}

func (h *ProfileHandler) renderProfile(c *fiber.Ctx, userID uint) error {
	var profile models.UserProfile
	if err := h.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	average, err := h.Ratings.SellerAverage(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch rating"})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user_id":        profile.UserID,
			"name":           profile.Name,
			"address":        profile.Address,
			"course":         profile.Course,
			"college_year":   profile.CollegeYear,
			"gender":         profile.Gender,
			"image_url":      profile.ImageURL,
			"average_rating": average,
		},
	})
}

// UpdateMyProfile - PUT /api/profile
func (h *ProfileHandler) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if req.CollegeYear != nil && (*req.CollegeYear < 1 || *req.CollegeYear > 4) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "College year must be between 1 and 4"})
	}

	var profile models.UserProfile
	if err := h.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Course != nil {
		updates["course"] = *req.Course
	}
	if req.CollegeYear != nil {
		updates["college_year"] = *req.CollegeYear
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&profile).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update profile"})
		}
	}

	return h.renderProfile(c, userID)
}
