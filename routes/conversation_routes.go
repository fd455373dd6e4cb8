package routes

import (
	"github.com/anjiri1684/english_assistant/handlers"
	"github.com/anjiri1684/english_assistant/middleware"
	"github.com/gofiber/fiber/v2"
)

func ConversationRoutes(app *fiber.App, h *handlers.ConversationHandler, jwtSecret string) {
	conversations := app.Group("/api/conversations",
		middleware.Protected(jwtSecret),
		middleware.WithUser(),
	)

	conversations.Post("", h.CreateConversation)
	conversations.Get("", h.GetConversations)
	conversations.Get("/:id", h.GetConversationByID)
	conversations.Patch("/:id", h.UpdateConversation)
	conversations.Delete("/:id", h.DeleteConversation)
}
