package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasanthreddy12/e-commerce/models"
	"github.com/vasanthreddy12/e-commerce/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCartFixture(t *testing.T, stock int) (*CartService, repositories.Stores, models.Product) {
	t.Helper()
	stores := repositories.NewMemoryStores()
	p := models.Product{Name: "Running Shoes", Price: decimal.NewFromInt(200), Category: models.CategorySports, Stock: stock}
	require.NoError(t, stores.Products.Insert(context.Background(), &p))
	return NewCartService(stores), stores, p
}

func TestGetCreatesEmptyCart(t *testing.T) {
	svc, stores, _ := newCartFixture(t, 5)
	user := primitive.NewObjectID()

	cart, err := svc.Get(context.Background(), user)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())

	_, err = stores.Carts.FindByUser(context.Background(), user)
	assert.NoError(t, err)
}

func TestAddItemReplacesExistingLine(t *testing.T) {
	ctx := context.Background()
	svc, _, p := newCartFixture(t, 5)
	user := primitive.NewObjectID()

	_, err := svc.AddItem(ctx, user, p.ID, 2)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, user, p.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, cart.Subtotal.Equal(decimal.NewFromInt(600)))
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, p := newCartFixture(t, 5)
	user := primitive.NewObjectID()

	_, err := svc.AddItem(ctx, user, p.ID, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	_, err = svc.AddItem(ctx, user, p.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.AddItem(ctx, user, primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateItemRefreshesPrice(t *testing.T) {
	ctx := context.Background()
	svc, stores, p := newCartFixture(t, 5)
	user := primitive.NewObjectID()

	_, err := svc.UpdateItem(ctx, user, p.ID, 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	_, err = svc.AddItem(ctx, user, p.ID, 1)
	require.NoError(t, err)
	price := decimal.NewFromInt(250)
	_, err = stores.Products.Update(ctx, p.ID, models.ProductUpdate{Price: &price})
	require.NoError(t, err)

	cart, err := svc.UpdateItem(ctx, user, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, cart.Items[0].Price.Equal(price))
	assert.True(t, cart.Subtotal.Equal(decimal.NewFromInt(500)))

	_, err = svc.UpdateItem(ctx, user, p.ID, 9)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	_, err = svc.UpdateItem(ctx, user, primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	svc, _, p := newCartFixture(t, 5)
	user := primitive.NewObjectID()

	cart, err := svc.RemoveItem(ctx, user, p.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.AddItem(ctx, user, p.ID, 2)
	require.NoError(t, err)
	cart, err = svc.RemoveItem(ctx, user, p.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())

	_, err = svc.AddItem(ctx, user, p.ID, 2)
	require.NoError(t, err)
	cart, err = svc.Clear(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Subtotal.IsZero())
	assert.True(t, cart.Shipping.IsZero())
	assert.True(t, cart.Tax.IsZero())
	assert.True(t, cart.Total.IsZero())
}
