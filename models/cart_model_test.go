package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCartRecalculate(t *testing.T) {
	cases := []struct {
		name     string
		items    []CartItem
		subtotal string
		shipping string
		tax      string
		total    string
	}{
		{"empty cart is all zero", nil, "0", "0", "0", "0"},
		{"exactly threshold still pays shipping", []CartItem{{Quantity: 2, Price: d("500")}}, "1000", "100", "150", "1250"},
		{"above threshold ships free", []CartItem{{Quantity: 3, Price: d("500")}}, "1500", "0", "225", "1725"},
		{"mixed lines", []CartItem{{Quantity: 1, Price: d("19.99")}, {Quantity: 4, Price: d("2.50")}}, "29.99", "100", "4.4985", "134.4885"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cart := NewCart(primitive.NewObjectID())
			cart.Items = tc.items
			cart.Recalculate()

			assert.True(t, d(tc.subtotal).Equal(cart.Subtotal), "subtotal %s", cart.Subtotal)
			assert.True(t, d(tc.shipping).Equal(cart.Shipping), "shipping %s", cart.Shipping)
			assert.True(t, d(tc.tax).Equal(cart.Tax), "tax %s", cart.Tax)
			assert.True(t, d(tc.total).Equal(cart.Total), "total %s", cart.Total)
			assert.True(t, cart.Total.Equal(cart.Subtotal.Add(cart.Shipping).Add(cart.Tax)))
			assert.NotNil(t, cart.Items)
		})
	}
}

func TestCartRemoveAndFind(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	cart := NewCart(primitive.NewObjectID())
	cart.Items = []CartItem{{ProductID: a, Quantity: 1}, {ProductID: b, Quantity: 2}}

	assert.Equal(t, 1, cart.Find(b))

	cart.Remove(a)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, -1, cart.Find(a))

	cart.Remove(primitive.NewObjectID())
	assert.Len(t, cart.Items, 1)

	cart.Clear()
	assert.Empty(t, cart.Items)
}
