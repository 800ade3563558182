package handlers

import (
	"github.com/Praveenkaushik12/CollegeFied/internal/marketplace"

	"github.com/gofiber/fiber/v2"
)

type RatingHandler struct {
	Gate *marketplace.RatingGate
}

func NewRatingHandler(gate *marketplace.RatingGate) *RatingHandler {
	return &RatingHandler{Gate: gate}
}

// CreateRatingRequest defines the payload for rating a seller
type CreateRatingRequest struct {
	ProductID uint    `json:"product_id"`
	Score     float64 `json:"score"`
	Review    string  `json:"review"`
}

// CreateRating - POST /api/ratings
func (h *RatingHandler) CreateRating(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var req CreateRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	rating, err := h.Gate.CreateRating(userID, req.ProductID, req.Score, req.Review)
	if err != nil {
		return coreError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Rating submitted", "data": rating})
}

// SellerRatings - GET /api/users/:id/ratings
func (h *RatingHandler) SellerRatings(c *fiber.Ctx) error {
	sellerID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	ratings, err := h.Gate.SellerRatings(uint(sellerID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch ratings"})
	}

	average, err := h.Gate.SellerAverage(uint(sellerID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch ratings"})
	}

	return c.JSON(fiber.Map{
		"data":           ratings,
		"average_rating": average,
	})
}
