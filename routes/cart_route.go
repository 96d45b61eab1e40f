package routes

import (
	cartController "github.com/vasanthreddy12/e-commerce/controllers/cart"

	"github.com/gofiber/fiber/v2"
)

func CartRoutes(api fiber.Router, h *cartController.CartController, protect fiber.Handler) {
	cart := api.Group("/cart", protect)

	cart.Get("/", h.GetCart)
	cart.Post("/", h.AddToCart)
	cart.Delete("/", h.ClearCart)

	//Refill from an abandoned online order
	cart.Post("/restore", h.RestoreCart)

	cart.Put("/:productId", h.UpdateCartItem)
	cart.Delete("/:productId", h.RemoveFromCart)
}
