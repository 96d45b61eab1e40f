package requests

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasanthreddy12/e-commerce/models"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	out := map[string]string{}
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestCreateOrderRequestValidation(t *testing.T) {
	err := Validate(&CreateOrderRequest{
		ShippingAddress: models.ShippingAddress{Address: "1 Main St", City: "Pune"},
		PaymentMethod:   "card",
	})
	fields := fieldsOf(t, err)
	assert.Equal(t, "is required", fields["shippingAddress.postalCode"])
	assert.Equal(t, "is required", fields["shippingAddress.country"])
	assert.Contains(t, fields["paymentMethod"], "cod online")

	assert.NoError(t, Validate(&CreateOrderRequest{
		ShippingAddress: models.ShippingAddress{Address: "1 Main St", City: "Pune", PostalCode: "411001", Country: "India"},
		PaymentMethod:   models.PaymentOnline,
	}))
}

func TestDecimalFieldsValidateAsNumbers(t *testing.T) {
	req := CreateProductRequest{
		Name: "Lamp", Description: "Warm light", Image: "/lamp.png",
		Category: models.CategoryHome, Price: decimal.RequireFromString("-1.50"),
	}
	assert.Contains(t, fieldsOf(t, Validate(&req)), "price")

	req.Price = decimal.RequireFromString("19.99")
	assert.NoError(t, Validate(&req))

	negative := decimal.NewFromInt(-5)
	assert.Contains(t, fieldsOf(t, Validate(&UpdateProductRequest{Price: &negative})), "price")
	assert.NoError(t, Validate(&UpdateProductRequest{}))
}

func TestCartRequestValidation(t *testing.T) {
	fields := fieldsOf(t, Validate(&AddToCartRequest{ProductID: "nope", Quantity: 0}))
	assert.Equal(t, "must be a valid id", fields["productId"])
	assert.Equal(t, "is required", fields["quantity"])

	assert.NoError(t, Validate(&AddToCartRequest{ProductID: "65f1c0a2b3d4e5f607182930", Quantity: 2}))
}

func TestStatusRequestRejectsFailed(t *testing.T) {
	assert.Contains(t, fieldsOf(t, Validate(&UpdateStatusRequest{Status: models.OrderFailed})), "status")
	assert.NoError(t, Validate(&UpdateStatusRequest{Status: models.OrderShipped}))
}
