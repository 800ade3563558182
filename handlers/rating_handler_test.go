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

func setupRatingApp(t *testing.T) (*fiber.App, *gorm.DB, *marketplace.Engine) {
	db := setupTestDB(t)
	engine := marketplace.NewEngine(db, marketplace.NewChatService(db), marketplace.ProfileStore{})
	handler := NewRatingHandler(marketplace.NewRatingGate(db))

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/ratings", testAuth, handler.CreateRating)
	api.Get("/users/:id/ratings", testAuth, handler.SellerRatings)
	return app, db, engine
}

func sellThrough(t *testing.T, db *gorm.DB, engine *marketplace.Engine, seller, buyer models.User) models.Product {
	t.Helper()
	product := createTestProduct(t, db, seller.ID)
	request, err := engine.CreateRequest(buyer.ID, product.ID)
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if _, err := engine.Transition(request.ID, seller.ID, models.RequestStatusAccepted); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := engine.Transition(request.ID, seller.ID, models.RequestStatusApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := engine.MarkProductSold(product.ID, seller.ID); err != nil {
		t.Fatalf("MarkProductSold failed: %v", err)
	}
	return product
}

func TestCreateRatingEndpoint(t *testing.T) {
	app, db, engine := setupRatingApp(t)
	seller := createTestUser(t, db, "seller")
	buyer := createTestUser(t, db, "buyer")
	product := sellThrough(t, db, engine, seller, buyer)

	// Unsold product is a conflict.
	unsold := createTestProduct(t, db, seller.ID)
	resp := doJSON(t, app, http.MethodPost, "/api/ratings", buyer.ID, fiber.Map{
		"product_id": unsold.ID, "score": 4,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}

	// Out-of-range score.
	resp = doJSON(t, app, http.MethodPost, "/api/ratings", buyer.ID, fiber.Map{
		"product_id": product.ID, "score": 9,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/ratings", buyer.ID, fiber.Map{
		"product_id": product.ID, "score": 4.5, "review": "quick handover",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	// One rating per buyer per product.
	resp = doJSON(t, app, http.MethodPost, "/api/ratings", buyer.ID, fiber.Map{
		"product_id": product.ID, "score": 1,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/ratings", seller.ID), buyer.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var body struct {
		Data          []models.Rating `json:"data"`
		AverageRating float64         `json:"average_rating"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(body.Data) != 1 {
		t.Errorf("Expected 1 rating, got %d", len(body.Data))
	}
	if body.AverageRating != 4.5 {
		t.Errorf("Expected average 4.5, got %v", body.AverageRating)
	}
}
