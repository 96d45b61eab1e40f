package controllers

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

type OrderController struct {
	orders *services.OrderService
	// razorpayKeyID is handed to the client to open the checkout widget.
	razorpayKeyID string
	timeout       time.Duration
}

func New(orders *services.OrderService, razorpayKeyID string, timeout time.Duration) *OrderController {
	return &OrderController{orders: orders, razorpayKeyID: razorpayKeyID, timeout: timeout}
}

func (h *OrderController) CreateOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	var orderReq requests.CreateOrderRequest
	if err := requests.Parse(c, &orderReq); err != nil {
		return responses.Error(c, err)
	}

	checkout, err := h.orders.CreateOrder(ctx, middlewares.UserID(c), services.CreateOrderInput{
		ShippingAddress: orderReq.ShippingAddress,
		PaymentMethod:   orderReq.PaymentMethod,
	})
	if err != nil {
		return responses.Error(c, err)
	}

	result := fiber.Map{"order": checkout.Order}
	if checkout.Payment != nil {
		result["razorpayOrderId"] = checkout.Payment.ID
		result["amount"] = checkout.Payment.Amount
		result["currency"] = checkout.Payment.Currency
		result["key_id"] = h.razorpayKeyID
	}
	return responses.Created(c, "Order created successfully", result)
}

// VerifyPayment checks the gateway signature relayed by the client.
func (h *OrderController) VerifyPayment(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	var verifyReq requests.VerifyPaymentRequest
	if err := requests.Parse(c, &verifyReq); err != nil {
		return responses.Error(c, err)
	}

	order, err := h.orders.VerifyPayment(ctx, services.VerifyPaymentInput{
		GatewayOrderID: verifyReq.OrderID,
		PaymentID:      verifyReq.PaymentID,
		Signature:      verifyReq.Signature,
	})
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Payment verified successfully", fiber.Map{
		"orderId":         order.ID.Hex(),
		"paymentId":       verifyReq.PaymentID,
		"razorpayOrderId": verifyReq.OrderID,
	})
}

func (h *OrderController) CancelPayment(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	var cancelReq requests.CancelPaymentRequest
	if err := requests.Parse(c, &cancelReq); err != nil {
		return responses.Error(c, err)
	}

	order, err := h.orders.CancelPayment(ctx, cancelReq.OrderID)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Payment cancelled and order updated", fiber.Map{"order": order})
}

func (h *OrderController) GetMyOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	page, limit := requests.Page(c)
	orders, err := h.orders.ListMine(ctx, middlewares.UserID(c), page, limit)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Successfully fetched orders", pageResult(orders))
}

// GetOrders lists every order; admin only.
func (h *OrderController) GetOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	page, limit := requests.Page(c)
	orders, err := h.orders.ListAll(ctx, models.OrderStatus(c.Query("status")), page, limit)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Successfully fetched orders", pageResult(orders))
}

func (h *OrderController) GetOrderById(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	orderID, err := requests.ObjectID(c.Params("id"), services.ErrOrderNotFound)
	if err != nil {
		return responses.Error(c, err)
	}
	order, err := h.orders.GetFor(ctx, orderID, middlewares.UserID(c), middlewares.Role(c))
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Successfully fetched order", fiber.Map{"order": order})
}

func (h *OrderController) UpdateOrderStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	orderID, err := requests.ObjectID(c.Params("id"), services.ErrOrderNotFound)
	if err != nil {
		return responses.Error(c, err)
	}
	var statusReq requests.UpdateStatusRequest
	if err := requests.Parse(c, &statusReq); err != nil {
		return responses.Error(c, err)
	}

	order, err := h.orders.UpdateStatus(ctx, orderID, statusReq.Status)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Order status updated", fiber.Map{"order": order})
}

func pageResult(p services.OrderPage) fiber.Map {
	return fiber.Map{
		"orders":      p.Orders,
		"currentPage": p.Page,
		"totalPages":  p.Pages,
		"totalOrders": p.Total,
	}
}
