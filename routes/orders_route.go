package routes

import (
	orderController "github.com/vasanthreddy12/e-commerce/controllers/orders"
	"github.com/vasanthreddy12/e-commerce/middlewares"

	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(api fiber.Router, h *orderController.OrderController, protect fiber.Handler) {
	orders := api.Group("/orders", protect)

	orders.Post("/", h.CreateOrder)
	orders.Get("/", middlewares.AdminOnly, h.GetOrders)
	orders.Get("/myorders", h.GetMyOrders)

	orders.Post("/verify-payment", h.VerifyPayment)
	orders.Post("/cancel-payment", h.CancelPayment)

	orders.Get("/:id", h.GetOrderById)
	orders.Put("/:id/status", middlewares.AdminOnly, h.UpdateOrderStatus)
}
