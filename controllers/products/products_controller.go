package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vasanthreddy12/e-commerce/models"
	"github.com/vasanthreddy12/e-commerce/requests"
	"github.com/vasanthreddy12/e-commerce/responses"
	"github.com/vasanthreddy12/e-commerce/services"
)

type ProductController struct {
	products *services.ProductService
	timeout  time.Duration
}

func New(products *services.ProductService, timeout time.Duration) *ProductController {
	return &ProductController{products: products, timeout: timeout}
}

// GetAllProducts pages the catalog. ?search= matches name and description,
// ?category= filters, ?sort=price:desc orders.
func (h *ProductController) GetAllProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	page, limit := requests.Page(c)
	search := c.Query("search")
	if search == "" {
		search = c.Query("name")
	}

	result, err := h.products.List(ctx, models.ProductQuery{
		Category: models.Category(c.Query("category")),
		Search:   search,
		Sort:     c.Query("sort"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return responses.Error(c, err)
	}

	return responses.OK(c, "Successfully fetched products", fiber.Map{
		"currentPage":   result.Page,
		"totalPages":    result.Pages,
		"totalProducts": result.Total,
		"products":      result.Products,
	})
}

// Only for admin
func (h *ProductController) AddProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	var productReq requests.CreateProductRequest
	if err := requests.Parse(c, &productReq); err != nil {
		return responses.Error(c, err)
	}

	product, err := h.products.Create(ctx, productReq.Product())
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.Created(c, "Product added successfully", fiber.Map{"product": product})
}

// Only for admin
func (h *ProductController) UpdateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	productID, err := requests.ObjectID(c.Params("id"), services.ErrProductNotFound)
	if err != nil {
		return responses.Error(c, err)
	}
	var updateReq requests.UpdateProductRequest
	if err := requests.Parse(c, &updateReq); err != nil {
		return responses.Error(c, err)
	}

	product, err := h.products.Update(ctx, productID, updateReq.Update())
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Product updated successfully", fiber.Map{"product": product})
}

// Only for admin
func (h *ProductController) DeleteProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	productID, err := requests.ObjectID(c.Params("id"), services.ErrProductNotFound)
	if err != nil {
		return responses.Error(c, err)
	}
	if err := h.products.Delete(ctx, productID); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Product removed", nil)
}
