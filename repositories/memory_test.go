package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasanthreddy12/e-commerce/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedProduct(t *testing.T, repo ProductRepository, name string, price string, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		Category:    models.CategoryElectronics,
		Stock:       stock,
	}
	require.NoError(t, repo.Insert(context.Background(), &p))
	return p
}

func TestDecrementStockIsConditional(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	p := seedProduct(t, stores.Products, "Headphones", "500", 3)

	require.NoError(t, stores.Products.DecrementStock(ctx, p.ID, 2))
	assert.ErrorIs(t, stores.Products.DecrementStock(ctx, p.ID, 2), ErrInsufficientStock)
	assert.ErrorIs(t, stores.Products.DecrementStock(ctx, primitive.NewObjectID(), 1), ErrNotFound)

	got, err := stores.Products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	require.NoError(t, stores.Products.IncrementStock(ctx, p.ID, 4))
	got, _ = stores.Products.FindByID(ctx, p.ID)
	assert.Equal(t, 5, got.Stock)
}

func TestProductListFiltersSortsAndPages(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	seedProduct(t, stores.Products, "Red Shirt", "20", 1)
	seedProduct(t, stores.Products, "Blue Shirt", "10", 1)
	seedProduct(t, stores.Products, "Lamp", "30", 1)

	products, total, err := stores.Products.List(ctx, models.ProductQuery{Search: "shirt", Sort: "price:asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, products, 2)
	assert.Equal(t, "Blue Shirt", products[0].Name)

	products, total, err = stores.Products.List(ctx, models.ProductQuery{Sort: "price:desc", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Blue Shirt", products[0].Name)

	products, _, err = stores.Products.List(ctx, models.ProductQuery{Category: models.CategoryBooks})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestOrderUpdateRejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	order := models.Order{ID: primitive.NewObjectID(), Status: models.OrderProcessing, CreatedAt: time.Now()}
	require.NoError(t, stores.Orders.Insert(ctx, &order))
	assert.EqualValues(t, 1, order.Version)

	stale := order
	order.Status = models.OrderShipped
	require.NoError(t, stores.Orders.Update(ctx, &order))
	assert.EqualValues(t, 2, order.Version)

	stale.Status = models.OrderCancelled
	assert.ErrorIs(t, stores.Orders.Update(ctx, &stale), ErrConflict)

	got, err := stores.Orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, got.Status)
}

func TestOrderLookupByGatewayID(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	order := models.Order{ID: primitive.NewObjectID(), GatewayOrderID: "order_abc"}
	require.NoError(t, stores.Orders.Insert(ctx, &order))

	got, err := stores.Orders.FindByGatewayOrderID(ctx, "order_abc")
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = stores.Orders.FindByGatewayOrderID(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderListNewestFirstForUser(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	user := primitive.NewObjectID()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		o := models.Order{ID: primitive.NewObjectID(), UserID: user, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, stores.Orders.Insert(ctx, &o))
	}
	other := models.Order{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()}
	require.NoError(t, stores.Orders.Insert(ctx, &other))

	orders, total, err := stores.Orders.List(ctx, models.OrderQuery{UserID: user})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, orders, 3)
	assert.True(t, orders[0].CreatedAt.After(orders[2].CreatedAt))
}

func TestCartSaveIsCopied(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	user := primitive.NewObjectID()

	cart := models.NewCart(user)
	cart.Items = append(cart.Items, models.CartItem{ProductID: primitive.NewObjectID(), Quantity: 1})
	require.NoError(t, stores.Carts.Save(ctx, &cart))

	cart.Items[0].Quantity = 9
	got, err := stores.Carts.FindByUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Items[0].Quantity)

	_, err = stores.Carts.FindByUser(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserEmailIsUniqueCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()

	require.NoError(t, stores.Users.Insert(ctx, &models.User{Name: "Ann", Email: "Ann@Example.com"}))
	assert.ErrorIs(t, stores.Users.Insert(ctx, &models.User{Name: "Ann", Email: "ann@example.com"}), ErrDuplicate)

	got, err := stores.Users.FindByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	require.NoError(t, stores.Users.UpdateName(ctx, got.ID, "Annie"))
	got, _ = stores.Users.FindByID(ctx, got.ID)
	assert.Equal(t, "Annie", got.Name)
}
