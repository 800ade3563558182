package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/Praveenkaushik12/CollegeFied/internal/marketplace"
	"github.com/Praveenkaushik12/CollegeFied/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func setupProductApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db := setupTestDB(t)
	engine := marketplace.NewEngine(db, marketplace.NewChatService(db), marketplace.ProfileStore{})
	handler := NewProductHandler(db, engine)

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/products", testAuth, handler.CreateProduct)
	api.Get("/products", handler.GetAllProducts)
	api.Get("/products/:id", handler.GetProduct)
	api.Put("/products/:id", testAuth, handler.UpdateProduct)
	api.Patch("/products/:id/sold", testAuth, handler.MarkSold)
	api.Delete("/products/:id", testAuth, handler.DeleteProduct)
	return app, db
}

func TestCreateProductEndpoint(t *testing.T) {
	app, db := setupProductApp(t)
	seller := createTestUser(t, db, "seller")

	resp := doJSON(t, app, http.MethodPost, "/api/products", seller.ID, fiber.Map{
		"title":    "Drafting Table",
		"price":    1200,
		"category": "stationery",
		"images":   []string{"/uploads/table.jpg"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	var count int64
	db.Model(&models.ProductImage{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 product image, got %d", count)
	}
}

func TestCreateProductRequiresCompleteProfile(t *testing.T) {
	app, db := setupProductApp(t)

	user := models.User{Username: "bare", Email: "bare@kiet.edu", Password: "hashed", IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	db.Create(&models.UserProfile{UserID: user.ID, Name: "bare"})

	resp := doJSON(t, app, http.MethodPost, "/api/products", user.ID, fiber.Map{
		"title": "-", "price": 1, "category": "misc",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestGetAllProductsDefaultsToAvailable(t *testing.T) {
	app, db := setupProductApp(t)
	seller := createTestUser(t, db, "seller")

	open := createTestProduct(t, db, seller.ID)
	sold := createTestProduct(t, db, seller.ID)
	db.Model(&sold).UpdateColumn("status", models.ProductStatusSold)

	resp := doJSON(t, app, http.MethodGet, "/api/products", 0, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var body struct {
		Data []models.Product `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].ID != open.ID {
		t.Errorf("Expected only the available product, got %d items", len(body.Data))
	}

	// Explicit filter surfaces the sold one.
	resp = doJSON(t, app, http.MethodGet, "/api/products?status=sold", 0, nil)
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].ID != sold.ID {
		t.Errorf("Expected only the sold product, got %d items", len(body.Data))
	}
}

func TestUpdateProductGuards(t *testing.T) {
	app, db := setupProductApp(t)
	seller := createTestUser(t, db, "seller")
	other := createTestUser(t, db, "other")
	product := createTestProduct(t, db, seller.ID)
	path := fmt.Sprintf("/api/products/%d", product.ID)

	// Only the owner may edit.
	resp := doJSON(t, app, http.MethodPut, path, other.ID, fiber.Map{"price": 300})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status %d, got %d", http.StatusForbidden, resp.StatusCode)
	}

	// Direct status writes are refused.
	resp = doJSON(t, app, http.MethodPut, path, seller.ID, fiber.Map{"status": "reserved"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPut, path, seller.ID, fiber.Map{"price": 300})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	// Sold products are frozen.
	db.Model(&models.Product{}).Where("id = ?", product.ID).UpdateColumn("status", models.ProductStatusSold)
	resp = doJSON(t, app, http.MethodPut, path, seller.ID, fiber.Map{"price": 100})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}
}

func TestMarkSoldEndpoint(t *testing.T) {
	app, db := setupProductApp(t)
	seller := createTestUser(t, db, "seller")
	other := createTestUser(t, db, "other")
	product := createTestProduct(t, db, seller.ID)
	path := fmt.Sprintf("/api/products/%d/sold", product.ID)

	resp := doJSON(t, app, http.MethodPatch, path, other.ID, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status %d, got %d", http.StatusForbidden, resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPatch, path, seller.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPatch, path, seller.ID, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}
}
