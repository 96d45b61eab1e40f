package cartController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vasanthreddy12/e-commerce/middlewares"
	"github.com/vasanthreddy12/e-commerce/models"
	"github.com/vasanthreddy12/e-commerce/requests"
	"github.com/vasanthreddy12/e-commerce/responses"
	"github.com/vasanthreddy12/e-commerce/services"
)

type CartController struct {
	carts   *services.CartService
	timeout time.Duration
}

func New(carts *services.CartService, timeout time.Duration) *CartController {
	return &CartController{carts: carts, timeout: timeout}
}

func cartResult(cart models.Cart) fiber.Map {
	return fiber.Map{"cart": cart}
}

func (h *CartController) GetCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	cart, err := h.carts.Get(ctx, middlewares.UserID(c))
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Successfully fetched cart", cartResult(cart))
}

func (h *CartController) AddToCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	var request requests.AddToCartRequest
	if err := requests.Parse(c, &request); err != nil {
		return responses.Error(c, err)
	}
	productID, err := requests.ObjectID(request.ProductID, services.ErrProductNotFound)
	if err != nil {
		return responses.Error(c, err)
	}

	cart, err := h.carts.AddItem(ctx, middlewares.UserID(c), productID, request.Quantity)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Item added to cart", cartResult(cart))
}

func (h *CartController) UpdateCartItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	productID, err := requests.ObjectID(c.Params("productId"), services.ErrCartItemNotFound)
	if err != nil {
		return responses.Error(c, err)
	}
	var request requests.UpdateCartItemRequest
	if err := requests.Parse(c, &request); err != nil {
		return responses.Error(c, err)
	}

	cart, err := h.carts.UpdateItem(ctx, middlewares.UserID(c), productID, request.Quantity)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Cart updated", cartResult(cart))
}

func (h *CartController) RemoveFromCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	productID, err := requests.ObjectID(c.Params("productId"), services.ErrCartItemNotFound)
	if err != nil {
		return responses.Error(c, err)
	}
	cart, err := h.carts.RemoveItem(ctx, middlewares.UserID(c), productID)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Item removed from cart", cartResult(cart))
}

func (h *CartController) ClearCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	cart, err := h.carts.Clear(ctx, middlewares.UserID(c))
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Cart cleared", cartResult(cart))
}

// RestoreCart refills the cart from an order whose online payment was abandoned.
func (h *CartController) RestoreCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	var request requests.RestoreCartRequest
	if err := requests.Parse(c, &request); err != nil {
		return responses.Error(c, err)
	}
	cart, err := h.carts.Restore(ctx, middlewares.UserID(c), request.OrderID)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Cart restored successfully", cartResult(cart))
}
