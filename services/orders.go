package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/vasanthreddy12/e-commerce/models"
	"github.com/vasanthreddy12/e-commerce/payments"
	"github.com/vasanthreddy12/e-commerce/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	reasonInvalidSignature = "Invalid signature"
	reasonUserCancelled    = "Payment cancelled by user"
)

type OrderConfig struct {
	// KeySecret signs gateway callbacks.
	KeySecret string
	Currency  string
}

type OrderService struct {
	orders    repositories.OrderRepository
	carts     repositories.CartRepository
	inventory *Inventory
	gateway   payments.Gateway
	cfg       OrderConfig
	now       func() time.Time
}

func NewOrderService(stores repositories.Stores, gateway payments.Gateway, cfg OrderConfig) *OrderService {
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	return &OrderService{
		orders:    stores.Orders,
		carts:     stores.Carts,
		inventory: NewInventory(stores.Products),
		gateway:   gateway,
		cfg:       cfg,
		now:       time.Now,
	}
}

type CreateOrderInput struct {
	ShippingAddress models.ShippingAddress
	PaymentMethod   models.PaymentMethod
}

// Checkout is a newly created order plus, for online payment, the gateway
// order the client has to pay against.
type Checkout struct {
	Order   models.Order
	Payment *payments.GatewayOrder
}

// CreateOrder turns the user's cart into an order. The order is inserted, the
// cart emptied, stock taken and, for online payment, a gateway order opened.
// If a later step fails the earlier ones are compensated: the order is marked
// failed, the cart refilled and the stock put back.
func (s *OrderService) CreateOrder(ctx context.Context, userID primitive.ObjectID, in CreateOrderInput) (Checkout, error) {
	if in.PaymentMethod != models.PaymentCOD && in.PaymentMethod != models.PaymentOnline {
		return Checkout{}, ErrInvalidPaymentMethod
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return Checkout{}, ErrEmptyCart
	}
	if err != nil {
		return Checkout{}, fmt.Errorf("%w: load cart: %v", ErrServerFault, err)
	}
	if len(cart.Items) == 0 {
		return Checkout{}, ErrEmptyCart
	}

	order := models.NewOrderFromCart(cart, in.ShippingAddress, in.PaymentMethod, s.now())
	if err := s.orders.Insert(ctx, &order); err != nil {
		return Checkout{}, fmt.Errorf("%w: insert order: %v", ErrServerFault, err)
	}

	checkout := newSaga("create-order")
	checkout.onRollback("mark-order-failed", func(ctx context.Context) error {
		order.MarkFailed("checkout aborted", s.now())
		return s.orders.Update(ctx, &order)
	})

	saved := cart
	saved.Items = append([]models.CartItem{}, cart.Items...)
	cart.Clear()
	cart.Recalculate()
	if err := s.carts.Save(ctx, &cart); err != nil {
		checkout.compensate(ctx, err)
		return Checkout{}, fmt.Errorf("%w: clear cart: %v", ErrServerFault, err)
	}
	checkout.onRollback("restore-cart", func(ctx context.Context) error {
		return s.carts.Save(ctx, &saved)
	})

	lines := linesOf(order.Items)
	if err := s.inventory.Reserve(ctx, lines); err != nil {
		checkout.compensate(ctx, err)
		return Checkout{}, err
	}
	checkout.onRollback("release-stock", func(ctx context.Context) error {
		_, err := s.inventory.Release(ctx, lines)
		return err
	})

	if order.PaymentMethod != models.PaymentOnline {
		log.Infow("order created", "order", order.ID.Hex(), "user", userID.Hex(), "method", order.PaymentMethod)
		return Checkout{Order: order}, nil
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, order.AmountMinor(), s.cfg.Currency, order.ID.Hex())
	if err != nil {
		checkout.compensate(ctx, err)
		return Checkout{}, fmt.Errorf("%w: %v", ErrServerFault, err)
	}
	order.GatewayOrderID = gatewayOrder.ID
	order.UpdatedAt = s.now()
	if err := s.orders.Update(ctx, &order); err != nil {
		order.GatewayOrderID = ""
		checkout.compensate(ctx, err)
		return Checkout{}, fmt.Errorf("%w: attach gateway order: %v", ErrServerFault, err)
	}

	log.Infow("order created", "order", order.ID.Hex(), "user", userID.Hex(), "method", order.PaymentMethod, "gatewayOrder", gatewayOrder.ID)
	return Checkout{Order: order, Payment: &gatewayOrder}, nil
}

type VerifyPaymentInput struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// VerifyPayment reconciles the signed gateway callback with its order. A valid
// signature marks the order paid and empties the owner's cart; an invalid one
// cancels the order, puts its stock back and returns
// ErrPaymentVerificationFailed.
func (s *OrderService) VerifyPayment(ctx context.Context, in VerifyPaymentInput) (models.Order, error) {
	order, err := s.findByGatewayOrderID(ctx, in.GatewayOrderID)
	if err != nil {
		return models.Order{}, err
	}

	valid := payments.VerifySignature(s.cfg.KeySecret, in.GatewayOrderID, in.PaymentID, in.Signature)

	if order.IsPaid {
		if valid {
			return order, nil
		}
		return order, ErrPaymentVerificationFailed
	}
	if order.Status.Terminal() {
		return order, ErrOrderClosed
	}

	if !valid {
		result := &models.PaymentResult{
			ID:             in.PaymentID,
			GatewayOrderID: in.GatewayOrderID,
			Status:         models.ResultFailed,
			Error:          reasonInvalidSignature,
		}
		if err := s.closeOrder(ctx, &order, result); err != nil {
			return order, fmt.Errorf("%w: cancel unverified order: %v", ErrServerFault, err)
		}
		log.Warnw("payment signature mismatch", "order", order.ID.Hex(), "gatewayOrder", in.GatewayOrderID)
		return order, ErrPaymentVerificationFailed
	}

	order.MarkPaid(in.PaymentID, in.Signature, s.now())
	if err := s.orders.Update(ctx, &order); err != nil {
		s.abandonPayment(ctx, order.ID, err)
		return models.Order{}, fmt.Errorf("%w: record payment: %v", ErrServerFault, err)
	}

	if err := s.emptyCart(ctx, order.UserID); err != nil {
		log.Errorw("could not clear cart after payment", "user", order.UserID.Hex(), "error", err)
	}

	log.Infow("payment verified", "order", order.ID.Hex(), "payment", in.PaymentID)
	return order, nil
}

// abandonPayment runs when a payment could not be recorded. The order is
// reloaded and, unless someone else already closed or paid it, cancelled with
// its stock put back.
func (s *OrderService) abandonPayment(ctx context.Context, orderID primitive.ObjectID, cause error) {
	ctx, cancel := detachedContext(ctx)
	defer cancel()

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		log.Errorw("could not reload order after payment fault", "order", orderID.Hex(), "error", err)
		return
	}
	if order.IsPaid || order.Status.Terminal() {
		return
	}
	result := &models.PaymentResult{
		GatewayOrderID: order.GatewayOrderID,
		Status:         models.ResultFailed,
		Error:          cause.Error(),
	}
	if err := s.closeOrder(ctx, &order, result); err != nil {
		log.Errorw("could not cancel order after payment fault", "order", orderID.Hex(), "error", err)
	}
}

// CancelPayment handles the client abandoning the gateway checkout. Cancelling
// an already cancelled order succeeds without effect.
func (s *OrderService) CancelPayment(ctx context.Context, gatewayOrderID string) (models.Order, error) {
	order, err := s.findByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.Status == models.OrderCancelled {
		return order, nil
	}
	if order.IsPaid || order.Status.Terminal() {
		return order, ErrOrderClosed
	}

	result := &models.PaymentResult{
		GatewayOrderID: gatewayOrderID,
		Status:         models.ResultCancelled,
		Error:          reasonUserCancelled,
	}
	if err := s.closeOrder(ctx, &order, result); err != nil {
		return models.Order{}, fmt.Errorf("%w: cancel payment: %v", ErrServerFault, err)
	}
	log.Infow("payment cancelled", "order", order.ID.Hex(), "gatewayOrder", gatewayOrderID)
	return order, nil
}

// UpdateStatus applies an admin status change. Cancelling puts the stock back.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() || status == models.OrderFailed {
		return models.Order{}, ErrInvalidStatus
	}
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if !models.CanTransition(order.Status, status) {
		return order, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, status)
	}

	now := s.now()
	switch status {
	case models.OrderCancelled:
		if err := s.closeOrder(ctx, &order, nil); err != nil {
			return models.Order{}, fmt.Errorf("%w: cancel order: %v", ErrServerFault, err)
		}
		return order, nil
	case models.OrderDelivered:
		order.MarkDelivered(now)
	default:
		order.Status = status
		order.UpdatedAt = now
	}

	if err := s.orders.Update(ctx, &order); err != nil {
		return models.Order{}, fmt.Errorf("%w: update status: %v", ErrServerFault, err)
	}
	return order, nil
}

// closeOrder cancels the order and restores its stock. When the cancellation
// cannot be persisted the restored stock is taken back again.
func (s *OrderService) closeOrder(ctx context.Context, order *models.Order, result *models.PaymentResult) error {
	restored, err := s.inventory.Release(ctx, linesOf(order.Items))
	if err != nil {
		log.Errorw("partial stock restore", "order", order.ID.Hex(), "restored", len(restored), "error", err)
	}

	order.MarkCancelled(result, s.now())
	if err := s.orders.Update(ctx, order); err != nil {
		detached, cancel := detachedContext(ctx)
		defer cancel()
		s.inventory.Reclaim(detached, restored)
		return err
	}
	return nil
}

// Get returns the order by id, or ErrOrderNotFound.
func (s *OrderService) Get(ctx context.Context, orderID primitive.ObjectID) (models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: load order: %v", ErrServerFault, err)
	}
	return order, nil
}

// GetFor returns the order if the caller owns it or is an admin.
func (s *OrderService) GetFor(ctx context.Context, orderID, callerID primitive.ObjectID, role models.Role) (models.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.UserID != callerID && role != models.RoleAdmin {
		return models.Order{}, ErrUnauthorized
	}
	return order, nil
}

// OrderPage is one page of a listing.
type OrderPage struct {
	Orders []models.Order `json:"orders"`
	Total  int64          `json:"total"`
	Page   int64          `json:"page"`
	Pages  int64          `json:"pages"`
}

func (s *OrderService) ListMine(ctx context.Context, userID primitive.ObjectID, page, limit int64) (OrderPage, error) {
	return s.list(ctx, models.OrderQuery{UserID: userID, Page: page, Limit: limit})
}

// ListAll lists every user's orders, optionally by status.
func (s *OrderService) ListAll(ctx context.Context, status models.OrderStatus, page, limit int64) (OrderPage, error) {
	if status != "" && !status.Valid() {
		return OrderPage{}, ErrInvalidStatus
	}
	return s.list(ctx, models.OrderQuery{Status: status, Page: page, Limit: limit})
}

func (s *OrderService) list(ctx context.Context, q models.OrderQuery) (OrderPage, error) {
	q.Page, q.Limit = normalizePage(q.Page, q.Limit)
	orders, total, err := s.orders.List(ctx, q)
	if err != nil {
		return OrderPage{}, fmt.Errorf("%w: list orders: %v", ErrServerFault, err)
	}
	return OrderPage{Orders: orders, Total: total, Page: q.Page, Pages: pageCount(total, q.Limit)}, nil
}

func (s *OrderService) findByGatewayOrderID(ctx context.Context, gatewayOrderID string) (models.Order, error) {
	if gatewayOrderID == "" {
		return models.Order{}, ErrOrderNotFound
	}
	order, err := s.orders.FindByGatewayOrderID(ctx, gatewayOrderID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: load order: %v", ErrServerFault, err)
	}
	return order, nil
}

func (s *OrderService) emptyCart(ctx context.Context, userID primitive.ObjectID) error {
	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(cart.Items) == 0 {
		return nil
	}
	cart.Clear()
	cart.Recalculate()
	return s.carts.Save(ctx, &cart)
}
