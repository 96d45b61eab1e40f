package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/vasanthreddy12/e-commerce/requests"
	"github.com/vasanthreddy12/e-commerce/responses"
	"github.com/vasanthreddy12/e-commerce/services"
)

func (h *ProductController) FetchProductDetails(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	// Convert the productId string to an ObjectID
	productID, err := requests.ObjectID(c.Params("id"), services.ErrProductNotFound)
	if err != nil {
		return responses.Error(c, err)
	}

	product, err := h.products.Get(ctx, productID)
	if err != nil {
		return responses.Error(c, err)
	}

	// If product is found, return the product details
	return responses.OK(c, "Product fetched successfully", fiber.Map{
		"status":  "success",
		"product": product,
	})
}
