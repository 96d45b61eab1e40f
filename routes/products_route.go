package routes

import (
	controllers "github.com/vasanthreddy12/e-commerce/controllers/products"
	"github.com/vasanthreddy12/e-commerce/middlewares"

	"github.com/gofiber/fiber/v2"
)

func ProductsRoute(api fiber.Router, h *controllers.ProductController, protect fiber.Handler) {
	products := api.Group("/products")

	products.Get("/", h.GetAllProducts)
	products.Get("/:id", h.FetchProductDetails)

	//For admin
	products.Post("/", protect, middlewares.AdminOnly, h.AddProduct)
	products.Put("/:id", protect, middlewares.AdminOnly, h.UpdateProduct)
	products.Delete("/:id", protect, middlewares.AdminOnly, h.DeleteProduct)
}
