package routes

import (
	"github.com/anjiri1684/english_assistant/handlers"
	"github.com/anjiri1684/english_assistant/middleware"
	"github.com/gofiber/fiber/v2"
)

func AIRoutes(app *fiber.App, h *handlers.AIHandler, jwtSecret string) {
	ai := app.Group("/api/ai",
		middleware.Protected(jwtSecret),
		middleware.WithUser(),
	)

	ai.Post("/chat", h.Chat)
	ai.Post("/suggestions", h.Suggestions)
	ai.Post("/topic-suggestion", h.TopicSuggestion)
	ai.Post("/random-sentence", h.RandomSentence)
}
