package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vasanthreddy12/e-commerce/models"
	"github.com/vasanthreddy12/e-commerce/payments"
	"github.com/vasanthreddy12/e-commerce/repositories"
)

const testKeySecret = "test_key_secret"

var errStoreDown = errors.New("store unavailable")

type gatewayCall struct {
	Amount   int64
	Currency string
	Receipt  string
}

type fakeGateway struct {
	mu    sync.Mutex
	err   error
	calls []gatewayCall
}

func (g *fakeGateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string) (payments.GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, gatewayCall{Amount: amountMinor, Currency: currency, Receipt: receipt})
	if g.err != nil {
		return payments.GatewayOrder{}, g.err
	}
	return payments.GatewayOrder{
		ID:       fmt.Sprintf("order_test_%d", len(g.calls)),
		Amount:   amountMinor,
		Currency: currency,
	}, nil
}

// flakyOrders fails the next failUpdates calls to Update.
type flakyOrders struct {
	repositories.OrderRepository
	failUpdates int
}

func (r *flakyOrders) Update(ctx context.Context, o *models.Order) error {
	if r.failUpdates > 0 {
		r.failUpdates--
		return errStoreDown
	}
	return r.OrderRepository.Update(ctx, o)
}
