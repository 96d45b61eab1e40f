package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderFailed     OrderStatus = "failed"
)

// fulfilment position of the forward statuses; cancelled and failed sit outside it.
var stage = map[OrderStatus]int{
	OrderPending:    0,
	OrderProcessing: 1,
	OrderShipped:    2,
	OrderDelivered:  3,
}

func (s OrderStatus) Valid() bool {
	_, forward := stage[s]
	return forward || s == OrderCancelled || s == OrderFailed
}

// Terminal statuses accept no further transition.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled || s == OrderFailed
}

// CanTransition reports whether an order in from may move to to.
// Forward moves along pending, processing, shipped, delivered may skip stages.
// Cancelled is reachable from any non-terminal status. Failed is only set by
// the checkout saga, never by a transition.
func CanTransition(from, to OrderStatus) bool {
	if from.Terminal() || from == to {
		return false
	}
	if to == OrderCancelled {
		return true
	}
	fromStage, ok := stage[from]
	if !ok {
		return false
	}
	toStage, ok := stage[to]
	return ok && toStage > fromStage
}

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

// PaymentStatus separates "placed, waiting for the gateway" from "paid" while
// Status stays processing for both.
type PaymentStatus string

const (
	PaymentAwaiting     PaymentStatus = "awaiting_payment"
	PaymentOnDelivery   PaymentStatus = "cash_on_delivery"
	PaymentCompleted    PaymentStatus = "completed"
	PaymentFailed       PaymentStatus = "failed"
	PaymentCancelled    PaymentStatus = "cancelled"
	PaymentNotCollected PaymentStatus = "not_collected"
)

// Values of PaymentResult.Status.
const (
	ResultCompleted = "completed"
	ResultFailed    = "failed"
	ResultCancelled = "cancelled"
)

// OrderItem is a frozen copy of a cart line.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"product" bson:"product"`
	Name      string             `json:"name" bson:"name"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Price     decimal.Decimal    `json:"price" bson:"price"`
}

type ShippingAddress struct {
	Address    string `json:"address" bson:"address" validate:"required"`
	City       string `json:"city" bson:"city" validate:"required"`
	PostalCode string `json:"postalCode" bson:"postalCode" validate:"required"`
	Country    string `json:"country" bson:"country" validate:"required"`
	State      string `json:"state,omitempty" bson:"state,omitempty"`
}

type PaymentResult struct {
	ID             string    `json:"id,omitempty" bson:"id,omitempty"`
	GatewayOrderID string    `json:"razorpayOrderId,omitempty" bson:"razorpayOrderId,omitempty"`
	Signature      string    `json:"signature,omitempty" bson:"signature,omitempty"`
	Status         string    `json:"status" bson:"status"`
	UpdateTime     time.Time `json:"update_time" bson:"update_time"`
	Error          string    `json:"error,omitempty" bson:"error,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id"`
	UserID          primitive.ObjectID `json:"user" bson:"user"`
	Items           []OrderItem        `json:"items" bson:"items"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   PaymentMethod      `json:"paymentMethod" bson:"paymentMethod"`
	Subtotal        decimal.Decimal    `json:"subtotal" bson:"subtotal"`
	Shipping        decimal.Decimal    `json:"shipping" bson:"shipping"`
	Tax             decimal.Decimal    `json:"tax" bson:"tax"`
	Total           decimal.Decimal    `json:"total" bson:"total"`
	Status          OrderStatus        `json:"status" bson:"status"`
	PaymentStatus   PaymentStatus      `json:"paymentStatus" bson:"paymentStatus"`
	IsPaid          bool               `json:"isPaid" bson:"isPaid"`
	PaidAt          *time.Time         `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	IsDelivered     bool               `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt     *time.Time         `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	IsCancelled     bool               `json:"isCancelled" bson:"isCancelled"`
	CancelledAt     *time.Time         `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	PaymentResult   *PaymentResult     `json:"paymentResult,omitempty" bson:"paymentResult,omitempty"`
	GatewayOrderID  string             `json:"razorpayOrderId,omitempty" bson:"razorpayOrderId,omitempty"`
	Version         int64              `json:"-" bson:"version"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NewOrderFromCart freezes the cart's items and its last saved totals.
// Totals are copied, not recomputed.
func NewOrderFromCart(cart Cart, addr ShippingAddress, method PaymentMethod, now time.Time) Order {
	items := make([]OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	paymentStatus := PaymentOnDelivery
	if method == PaymentOnline {
		paymentStatus = PaymentAwaiting
	}

	return Order{
		ID:              primitive.NewObjectID(),
		UserID:          cart.UserID,
		Items:           items,
		ShippingAddress: addr,
		PaymentMethod:   method,
		Subtotal:        cart.Subtotal,
		Shipping:        cart.Shipping,
		Tax:             cart.Tax,
		Total:           cart.Total,
		Status:          OrderProcessing,
		PaymentStatus:   paymentStatus,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// AmountMinor is the total in minor currency units, rounded half away from zero.
func (o Order) AmountMinor() int64 {
	return o.Total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (o *Order) MarkPaid(paymentID, signature string, now time.Time) {
	o.IsPaid = true
	o.PaidAt = &now
	o.Status = OrderProcessing
	o.PaymentStatus = PaymentCompleted
	o.PaymentResult = &PaymentResult{
		ID:             paymentID,
		GatewayOrderID: o.GatewayOrderID,
		Signature:      signature,
		Status:         ResultCompleted,
		UpdateTime:     now,
	}
	o.UpdatedAt = now
}

// MarkCancelled closes the order. result may be nil when no payment outcome is
// recorded (admin cancellation).
func (o *Order) MarkCancelled(result *PaymentResult, now time.Time) {
	o.Status = OrderCancelled
	o.IsCancelled = true
	o.CancelledAt = &now
	if result != nil {
		result.UpdateTime = now
		o.PaymentResult = result
		switch result.Status {
		case ResultFailed:
			o.PaymentStatus = PaymentFailed
		case ResultCancelled:
			o.PaymentStatus = PaymentCancelled
		}
	} else if !o.IsPaid {
		o.PaymentStatus = PaymentNotCollected
	}
	o.UpdatedAt = now
}

// MarkFailed records a checkout that could not complete.
func (o *Order) MarkFailed(reason string, now time.Time) {
	o.Status = OrderFailed
	o.PaymentStatus = PaymentNotCollected
	o.PaymentResult = &PaymentResult{Status: ResultFailed, Error: reason, UpdateTime: now}
	o.UpdatedAt = now
}

func (o *Order) MarkDelivered(now time.Time) {
	o.Status = OrderDelivered
	o.IsDelivered = true
	o.DeliveredAt = &now
	o.UpdatedAt = now
}

// OrderQuery pages orders; a zero UserID lists every user's orders.
type OrderQuery struct {
	UserID primitive.ObjectID
	Status OrderStatus
	Page   int64
	Limit  int64
}
