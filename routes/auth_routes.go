package routes

import (
	"github.com/anjiri1684/english_assistant/handlers"
	"github.com/anjiri1684/english_assistant/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, h *handlers.AuthHandler, jwtSecret string) {
	auth := app.Group("/api/auth")

	auth.Post("/signup", h.Signup)
	auth.Post("/login", h.Login)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Post("/reset-password", h.ResetPassword)

	me := auth.Group("", middleware.Protected(jwtSecret), middleware.WithUser())
	me.Get("/me", h.GetProfile)
	me.Patch("/me", h.UpdateProfile)
	me.Post("/change-password", h.ChangePassword)
}
