package routes

import (
	"github.com/anjiri1684/english_assistant/handlers"
	"github.com/anjiri1684/english_assistant/middleware"
	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App, h *handlers.UserHandler, jwtSecret string) {
	users := app.Group("/api/users",
		middleware.Protected(jwtSecret),
		middleware.WithUser(),
		middleware.AdminRequired(),
	)

	users.Post("", h.CreateUser)
	users.Get("", h.GetAllUsers)
	users.Patch("/:id", h.UpdateUserRole)
	users.Delete("/:id", h.DeleteUser)
}
