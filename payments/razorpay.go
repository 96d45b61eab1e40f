// Package payments talks to the Razorpay gateway and checks the signatures it
// hands back to the browser after checkout.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/razorpay/razorpay-go"
)

var ErrGateway = errors.New("payment gateway error")

// GatewayOrder is the gateway-side order a client pays against.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Gateway creates gateway orders. Amounts are in minor currency units.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (GatewayOrder, error)
}

type Razorpay struct {
	client *razorpay.Client
}

func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{client: razorpay.NewClient(keyID, keySecret)}
}

func (r *Razorpay) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return GatewayOrder{}, err
	}

	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	razorpayOrder, err := r.client.Order.Create(data, nil)
	if err != nil {
		return GatewayOrder{}, fmt.Errorf("%w: create order: %v", ErrGateway, err)
	}

	id, ok := razorpayOrder["id"].(string)
	if !ok || id == "" {
		return GatewayOrder{}, fmt.Errorf("%w: response has no order id", ErrGateway)
	}
	order := GatewayOrder{ID: id, Amount: amountMinor, Currency: currency}
	if c, ok := razorpayOrder["currency"].(string); ok && c != "" {
		order.Currency = c
	}
	// JSON numbers decode as float64.
	if a, ok := razorpayOrder["amount"].(float64); ok {
		order.Amount = int64(a)
	}
	return order, nil
}

// Signature is the hex HMAC-SHA256 of "orderID|paymentID" keyed by secret.
func Signature(secret, gatewayOrderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature compares in constant time. An empty secret never verifies.
func VerifySignature(secret, gatewayOrderID, paymentID, signature string) bool {
	if secret == "" {
		return false
	}
	expected := Signature(secret, gatewayOrderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
