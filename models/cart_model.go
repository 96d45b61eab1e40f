package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	FreeShippingThreshold = decimal.NewFromInt(1000)
	ShippingFee           = decimal.NewFromInt(100)
	TaxRate               = decimal.RequireFromString("0.15")
)

type CartItem struct {
	ProductID primitive.ObjectID `json:"product" bson:"product"`
	Name      string             `json:"name" bson:"name"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Price     decimal.Decimal    `json:"price" bson:"price"`
}

// Cart is keyed by UserID; there is at most one per user.
type Cart struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user" bson:"user"`
	Items     []CartItem         `json:"items" bson:"items"`
	Subtotal  decimal.Decimal    `json:"subtotal" bson:"subtotal"`
	Shipping  decimal.Decimal    `json:"shipping" bson:"shipping"`
	Tax       decimal.Decimal    `json:"tax" bson:"tax"`
	Total     decimal.Decimal    `json:"total" bson:"total"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func NewCart(userID primitive.ObjectID) Cart {
	return Cart{ID: primitive.NewObjectID(), UserID: userID, Items: []CartItem{}}
}

// Recalculate derives the totals from the items. It must run before every save.
func (c *Cart) Recalculate() {
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	if len(c.Items) == 0 {
		c.Subtotal, c.Shipping, c.Tax, c.Total = decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
		return
	}

	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := ShippingFee
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	c.Subtotal = subtotal
	c.Shipping = shipping
	c.Tax = subtotal.Mul(TaxRate)
	c.Total = subtotal.Add(shipping).Add(c.Tax)
}

// Find returns the index of the line for productID, or -1.
func (c *Cart) Find(productID primitive.ObjectID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) Remove(productID primitive.ObjectID) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
}
