package main

import (
	"log"
	"time"

	"github.com/anjiri1684/english_assistant/ai"
	"github.com/anjiri1684/english_assistant/auth"
	config "github.com/anjiri1684/english_assistant/configs"
	"github.com/anjiri1684/english_assistant/database"
	"github.com/anjiri1684/english_assistant/handlers"
	"github.com/anjiri1684/english_assistant/notifications"
	"github.com/anjiri1684/english_assistant/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	database.ConnectDB(cfg.DatabaseURL)
	database.Migrate()

	mailer := notifications.NewBrevoService(cfg.BrevoAPIKey, cfg.EmailSender)
	aiClient := ai.NewClient(cfg.AIAPIKey, "")
	tokens := auth.NewTokenService(cfg.JWTSecret)

	authHandler := handlers.NewAuthHandler(tokens, mailer, cfg.FrontendURL)
	userHandler := handlers.NewUserHandler()
	conversationHandler := handlers.NewConversationHandler()
	aiHandler := handlers.NewAIHandler(aiClient)

	app := fiber.New(fiber.Config{
		AppName:      "AI English Assistant",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": message,
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is running...")
	})

	routes.AuthRoutes(app, authHandler, cfg.JWTSecret)
	routes.UserRoutes(app, userHandler, cfg.JWTSecret)
	routes.ConversationRoutes(app, conversationHandler, cfg.JWTSecret)
	routes.AIRoutes(app, aiHandler, cfg.JWTSecret)

	log.Printf("🚀 Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
