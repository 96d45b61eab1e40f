// Package responses renders the JSON envelope every endpoint answers with and
// maps service errors onto HTTP statuses.
package responses

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/vasanthreddy12/e-commerce/requests"
	"github.com/vasanthreddy12/e-commerce/services"
)

type Response struct {
	Status  int        `json:"status"`
	Message string     `json:"message"`
	Result  *fiber.Map `json:"result"`
}

func OK(c *fiber.Ctx, message string, result fiber.Map) error {
	return Send(c, fiber.StatusOK, message, result)
}

func Created(c *fiber.Ctx, message string, result fiber.Map) error {
	return Send(c, fiber.StatusCreated, message, result)
}

func Send(c *fiber.Ctx, status int, message string, result fiber.Map) error {
	resp := Response{Status: status, Message: message}
	if result != nil {
		resp.Result = &result
	}
	return c.Status(status).JSON(resp)
}

type mapping struct {
	err     error
	status  int
	message string
}

var errorMappings = []mapping{
	{services.ErrProductNotFound, fiber.StatusNotFound, "Product not found"},
	{services.ErrOrderNotFound, fiber.StatusNotFound, "Order not found"},
	{services.ErrCartItemNotFound, fiber.StatusNotFound, "Item not found in cart"},
	{services.ErrUserNotFound, fiber.StatusNotFound, "User not found"},
	{services.ErrInsufficientStock, fiber.StatusBadRequest, "Insufficient stock"},
	{services.ErrInvalidQuantity, fiber.StatusBadRequest, "Quantity must be at least 1"},
	{services.ErrEmptyCart, fiber.StatusBadRequest, "Cart is empty"},
	{services.ErrInvalidPaymentMethod, fiber.StatusBadRequest, "Invalid payment method"},
	{services.ErrInvalidStatus, fiber.StatusBadRequest, "Invalid order status"},
	{services.ErrInvalidTransition, fiber.StatusBadRequest, "Order status transition not allowed"},
	{services.ErrOrderClosed, fiber.StatusBadRequest, "Order is already closed"},
	{services.ErrPaymentVerificationFailed, fiber.StatusBadRequest, "Payment verification failed"},
	{services.ErrEmailTaken, fiber.StatusBadRequest, "User already exists"},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized, "Invalid credentials"},
	{services.ErrUnauthorized, fiber.StatusUnauthorized, "Not authorized"},
	{services.ErrForbidden, fiber.StatusForbidden, "Admin access required"},
}

// Error writes err as an envelope. Unknown errors become a 500 with a generic
// message; the detail only goes to the log.
func Error(c *fiber.Ctx, err error) error {
	var verr *requests.ValidationError
	if errors.As(err, &verr) {
		return Send(c, fiber.StatusBadRequest, "Validation failed", fiber.Map{"errors": verr.Fields})
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return Send(c, m.status, m.message, nil)
		}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Send(c, fe.Code, fe.Message, nil)
	}

	log.Errorw("request failed", "method", c.Method(), "path", c.Path(), "requestId", c.Locals("requestid"), "error", err)
	return Send(c, fiber.StatusInternalServerError, "Server Error", nil)
}
