package handlers

import (
	"github.com/Praveenkaushik12/CollegeFied/internal/marketplace"
	"github.com/Praveenkaushik12/CollegeFied/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RequestHandler struct {
	DB     *gorm.DB
	Engine *marketplace.Engine
}

func NewRequestHandler(db *gorm.DB, engine *marketplace.Engine) *RequestHandler {
	return &RequestHandler{DB: db, Engine: engine}
}

// UpdateRequestStatus defines the payload for a status transition
type UpdateRequestStatus struct {
	Status string `json:"status"`
}

// CreateRequest - POST /api/products/:id/requests
func (h *RequestHandler) CreateRequest(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	userID := c.Locals("user_id").(uint)

	request, err := h.Engine.CreateRequest(userID, uint(productID))
	if err != nil {
		return coreError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Request sent", "data": request})
}

// UpdateRequest - PATCH /api/requests/:id
func (h *RequestHandler) UpdateRequest(c *fiber.Ctx) error {
	requestID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID"})
	}
	userID := c.Locals("user_id").(uint)

	var req UpdateRequestStatus
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status is required"})
	}

	request, err := h.Engine.Transition(uint(requestID), userID, req.Status)
	if err != nil {
		return coreError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Request updated", "data": request})
}

// CancelRequest - PATCH /api/requests/:id/cancel
func (h *RequestHandler) CancelRequest(c *fiber.Ctx) error {
	requestID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID"})
	}
	userID := c.Locals("user_id").(uint)

	request, err := h.Engine.CancelRequest(uint(requestID), userID)
	if err != nil {
		return coreError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Request cancelled", "data": request})
}

// DeleteRequest - DELETE /api/requests/:id
func (h *RequestHandler) DeleteRequest(c *fiber.Ctx) error {
	requestID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID"})
	}
	userID := c.Locals("user_id").(uint)

	if err := h.Engine.DeleteRequest(uint(requestID), userID); err != nil {
		return coreError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Request deleted"})
}

// ListSent - GET /api/requests/sent
func (h *RequestHandler) ListSent(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var requests []models.ProductRequest
	if err := h.DB.Preload("Product").Preload("Seller", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, username")
	}).Where("buyer_id = ?", userID).Order("created_at desc").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch requests"})
	}

	return c.JSON(fiber.Map{"data": requests})
}

// ListReceived - GET /api/requests/received
func (h *RequestHandler) ListReceived(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var requests []models.ProductRequest
	if err := h.DB.Preload("Product").Preload("Buyer", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, username")
	}).Where("seller_id = ?", userID).Order("created_at desc").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch requests"})
	}

	return c.JSON(fiber.Map{"data": requests})
}
