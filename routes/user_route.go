package routes

import (
	controllers "github.com/vasanthreddy12/e-commerce/controllers/user"

	"github.com/gofiber/fiber/v2"
)

// UserRoute mounts the auth endpoints. loginLimiter caps attempts on register
// and login.
func UserRoute(api fiber.Router, h *controllers.UserController, protect, loginLimiter fiber.Handler) {
	auth := api.Group("/auth")

	auth.Post("/register", loginLimiter, h.UserSignUp)
	auth.Post("/login", loginLimiter, h.UserSignIn)
	auth.Post("/logout", protect, h.UserSignOut)

	auth.Get("/profile", protect, h.GetUserProfile)
	auth.Put("/profile", protect, h.UpdateUserProfile)
}
