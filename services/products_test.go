package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasanthreddy12/e-commerce/models"
	"github.com/vasanthreddy12/e-commerce/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProductLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(repositories.NewMemoryStores())

	created, err := svc.Create(ctx, models.Product{
		ID:       primitive.NewObjectID(),
		Name:     "Paperback",
		Price:    decimal.RequireFromString("12.99"),
		Category: models.CategoryBooks,
		Stock:    4,
	})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	stock := 9
	updated, err := svc.Update(ctx, created.ID, models.ProductUpdate{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Stock)
	assert.Equal(t, "Paperback", updated.Name)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("12.99")))

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrProductNotFound)
	_, err = svc.Update(ctx, created.ID, models.ProductUpdate{Stock: &stock})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductListPaging(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(repositories.NewMemoryStores())
	for i := 0; i < 25; i++ {
		_, err := svc.Create(ctx, models.Product{
			Name:     fmt.Sprintf("Item %02d", i),
			Price:    decimal.NewFromInt(int64(i + 1)),
			Category: models.CategoryOther,
		})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, models.ProductQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 25, page.Total)
	assert.EqualValues(t, 3, page.Pages)
	assert.Len(t, page.Products, 5)

	page, err = svc.List(ctx, models.ProductQuery{Sort: "price:desc"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Page)
	require.Len(t, page.Products, 10)
	assert.True(t, page.Products[0].Price.Equal(decimal.NewFromInt(25)))

	page, err = svc.List(ctx, models.ProductQuery{Category: models.CategoryBooks})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Zero(t, page.Pages)
}
