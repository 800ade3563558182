package main

import (
	"log"

	"github.com/Praveenkaushik12/CollegeFied/config"
	"github.com/Praveenkaushik12/CollegeFied/handlers"
	"github.com/Praveenkaushik12/CollegeFied/internal/marketplace"
	"github.com/Praveenkaushik12/CollegeFied/internal/ws"
	"github.com/Praveenkaushik12/CollegeFied/middleware"
	"github.com/Praveenkaushik12/CollegeFied/utils"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.LoadConfig()

	db := config.ConnectDatabase(cfg)
	if err := config.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "CollegeFied Backend",
		ServerHeader: "CollegeFied Backend Server/1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		},
	})

	middleware.SetupMiddleware(app)

	// Core services: the chat coordinator is injected into the lifecycle
	// engine so request transitions and room state move together.
	chats := marketplace.NewChatService(db)
	engine := marketplace.NewEngine(db, chats, marketplace.ProfileStore{})
	ratings := marketplace.NewRatingGate(db)

	hub := ws.NewHub()
	go hub.Run()

	// Handlers
	authHandler := handlers.NewAuthHandler(db, utils.LogMailer{})
	profileHandler := handlers.NewProfileHandler(db, ratings)
	categoryHandler := handlers.NewCategoryHandler(db)
	productHandler := handlers.NewProductHandler(db, engine)
	requestHandler := handlers.NewRequestHandler(db, engine)
	ratingHandler := handlers.NewRatingHandler(ratings)
	chatHandler := handlers.NewChatHandler(hub, chats)
	uploadHandler := handlers.NewUploadHandler()

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	app.Static("/uploads", "./uploads")

	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify-otp", authHandler.VerifyOTP)
	auth.Post("/change-password", utils.AuthMiddleware, authHandler.ChangePassword)

	// Profiles
	api.Get("/profile", utils.AuthMiddleware, profileHandler.GetMyProfile)
	api.Put("/profile", utils.AuthMiddleware, profileHandler.UpdateMyProfile)
	api.Get("/users/:id/profile", utils.AuthMiddleware, profileHandler.GetUserProfile)
	api.Get("/users/:id/ratings", utils.AuthMiddleware, ratingHandler.SellerRatings)

	// Categories
	api.Get("/categories", categoryHandler.GetCategories)

	// Products
	api.Post("/products", utils.AuthMiddleware, productHandler.CreateProduct)
	api.Get("/products", productHandler.GetAllProducts)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Put("/products/:id", utils.AuthMiddleware, productHandler.UpdateProduct)
	api.Patch("/products/:id/sold", utils.AuthMiddleware, productHandler.MarkSold)
	api.Delete("/products/:id", utils.AuthMiddleware, productHandler.DeleteProduct)

	// Product requests
	api.Post("/products/:id/requests", utils.AuthMiddleware, requestHandler.CreateRequest)
	api.Get("/requests/sent", utils.AuthMiddleware, requestHandler.ListSent)
	api.Get("/requests/received", utils.AuthMiddleware, requestHandler.ListReceived)
	api.Patch("/requests/:id", utils.AuthMiddleware, requestHandler.UpdateRequest)
	api.Patch("/requests/:id/cancel", utils.AuthMiddleware, requestHandler.CancelRequest)
	api.Delete("/requests/:id", utils.AuthMiddleware, requestHandler.DeleteRequest)

	// Ratings
	api.Post("/ratings", utils.AuthMiddleware, ratingHandler.CreateRating)

	// Chats (REST fallback)
	api.Get("/chats", utils.AuthMiddleware, chatHandler.MyChats)
	api.Get("/chats/:roomID/messages", utils.AuthMiddleware, chatHandler.GetMessages)
	api.Post("/chats/:roomID/messages", utils.AuthMiddleware, chatHandler.SendMessage)

	// Uploads
	api.Post("/upload", utils.AuthMiddleware, uploadHandler.UploadImage)

	// Realtime chat (JWT via ?token= query parameter)
	app.Get("/ws/chat/:roomID", chatHandler.WebSocketUpgradeMiddleware, chatHandler.Handler())

	middleware.SetupErrorHandler(app)

	log.Printf("🚀 Server starting on host %s in port %s mode", cfg.HOST, cfg.AppPort)

	if err := app.Listen(cfg.HOST + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
