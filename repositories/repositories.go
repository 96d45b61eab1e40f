// Package repositories persists the storefront documents. Every method is a
// single-document operation; nothing here spans documents.
package repositories

import (
	"context"
	"errors"

	"github.com/vasanthreddy12/e-commerce/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound = errors.New("document not found")
	// ErrConflict means the document changed since it was read.
	ErrConflict = errors.New("document was modified concurrently")
	// ErrInsufficientStock is returned by a conditional decrement that would go below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicate         = errors.New("duplicate key")
)

type ProductRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	List(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error)
	Insert(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, u models.ProductUpdate) (models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DecrementStock takes qty units only if at least qty are in stock.
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	// IncrementStock adds qty units unconditionally.
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

type CartRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (models.Cart, error)
	// Save upserts the cart keyed by its user.
	Save(ctx context.Context, cart *models.Cart) error
}

type OrderRepository interface {
	Insert(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (models.Order, error)
	List(ctx context.Context, q models.OrderQuery) ([]models.Order, int64, error)
	// Update replaces the order if its stored version still equals o.Version,
	// then bumps o.Version. A stale version yields ErrConflict.
	Update(ctx context.Context, o *models.Order) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Insert(ctx context.Context, u *models.User) error
	UpdateName(ctx context.Context, id primitive.ObjectID, name string) error
}

// Stores bundles one repository per collection.
type Stores struct {
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
	Users    UserRepository
}

func pageBounds(page, limit int64) (skip, lim int64) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	return (page - 1) * limit, limit
}
