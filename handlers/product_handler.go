package handlers

import (
	"strconv"
	"strings"

	"github.com/Praveenkaushik12/CollegeFied/internal/marketplace"
	"github.com/Praveenkaushik12/CollegeFied/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB     *gorm.DB
	Engine *marketplace.Engine
}

func NewProductHandler(db *gorm.DB, engine *marketplace.Engine) *ProductHandler {
	return &ProductHandler{DB: db, Engine: engine}
}

// CreateProductRequest
type CreateProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
}

// UpdateProductRequest
type UpdateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Status      *string  `json:"status"`
}

// CreateProduct - POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	userID := c.Locals("user_id").(uint)

	// Sellers need a complete profile too, same rule as buyers.
	missing, err := marketplace.ProfileStore{}.MissingFields(h.DB, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not check profile"})
	}
	if len(missing) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Complete your profile to sell a product. Missing fields: " + strings.Join(missing, ", "),
		})
	}

	product := models.Product{
		SellerID:    userID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Status:      models.ProductStatusAvailable,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		for _, url := range req.Images {
			image := models.ProductImage{ProductID: product.ID, ImageURL: url}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": product})
}

// GetAllProducts - GET /api/products
func (h *ProductHandler) GetAllProducts(c *fiber.Ctx) error {
	var products []models.Product
	query := h.DB.Preload("Seller", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, username, email")
	}).Preload("Images")

	// Filter by Status, default to open listings
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status = ?", models.ProductStatusAvailable)
	}

	// Filter by Category
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	// Sort by Newest
	query = query.Order("created_at desc")

	if err := query.Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	return c.JSON(fiber.Map{"data": products})
}

// GetProduct - GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	var product models.Product

	if err := h.DB.Preload("Seller", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, username, email")
	}).Preload("Images").First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	return c.JSON(fiber.Map{"data": product})
}

// UpdateProduct - PUT /api/products/:id
//
// A sold product is frozen entirely. Status cannot be edited here at all:
// available/reserved/unavailable are written only by the request projector,
// and the sold transition has its own endpoint.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID := c.Locals("user_id").(uint)

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	if product.SellerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}
	if product.Status == models.ProductStatusSold {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You cannot update a sold product"})
	}
	if req.Status != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status updates are automatic; use the sold endpoint to close a sale",
		})
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&product).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update product"})
		}
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// MarkSold - PATCH /api/products/:id/sold
//
// The one manual status write. The engine rejects every open request on the
// product and closes their chat rooms in the same transaction.
func (h *ProductHandler) MarkSold(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID := c.Locals("user_id").(uint)

	product, err := h.Engine.MarkProductSold(uint(id), userID)
	if err != nil {
		return coreError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product marked as sold", "data": product})
}

// DeleteProduct - DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID := c.Locals("user_id").(uint)

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	// Check ownership
	if product.SellerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	if err := h.DB.Delete(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete product"})
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}
