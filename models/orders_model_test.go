package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanTransition(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderPending:    {OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled},
		OrderProcessing: {OrderShipped, OrderDelivered, OrderCancelled},
		OrderShipped:    {OrderDelivered, OrderCancelled},
	}
	all := []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderFailed}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderShipped.Valid())
	assert.True(t, OrderFailed.Valid())
	assert.False(t, OrderStatus("lost").Valid())
}

func TestNewOrderFromCartCopiesSavedTotals(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	cart.Items = []CartItem{{ProductID: primitive.NewObjectID(), Name: "Lamp", Quantity: 2, Price: d("500")}}
	cart.Recalculate()
	// a stale snapshot must be carried into the order as-is
	cart.Items[0].Price = d("999")

	order := NewOrderFromCart(cart, ShippingAddress{Address: "1 Main", City: "Pune", PostalCode: "411001", Country: "IN"}, PaymentOnline, time.Now())

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Lamp", order.Items[0].Name)
	assert.True(t, order.Total.Equal(d("1250")))
	assert.Equal(t, OrderProcessing, order.Status)
	assert.Equal(t, PaymentAwaiting, order.PaymentStatus)
	assert.False(t, order.IsPaid)
	assert.Equal(t, cart.UserID, order.UserID)
}

func TestAmountMinor(t *testing.T) {
	assert.Equal(t, int64(172500), Order{Total: d("1725")}.AmountMinor())
	assert.Equal(t, int64(13449), Order{Total: d("134.4885")}.AmountMinor())
	assert.Equal(t, int64(1001), Order{Total: d("10.005")}.AmountMinor())
}

func TestMarkCancelledRecordsPaymentOutcome(t *testing.T) {
	now := time.Now()
	order := Order{Status: OrderProcessing, PaymentStatus: PaymentAwaiting}

	order.MarkCancelled(&PaymentResult{Status: ResultFailed, Error: "Invalid signature"}, now)

	assert.Equal(t, OrderCancelled, order.Status)
	assert.True(t, order.IsCancelled)
	require.NotNil(t, order.CancelledAt)
	assert.Equal(t, PaymentFailed, order.PaymentStatus)
	assert.Equal(t, now, order.PaymentResult.UpdateTime)
}
