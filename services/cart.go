package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vasanthreddy12/e-commerce/models"
	"github.com/vasanthreddy12/e-commerce/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartService owns the per-user cart. Every mutation reads the cart, changes
// its items, recomputes the totals and saves it back.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
	orders   repositories.OrderRepository
}

func NewCartService(stores repositories.Stores) *CartService {
	return &CartService{carts: stores.Carts, products: stores.Products, orders: stores.Orders}
}

// Get returns the user's cart, creating an empty one on first access.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return models.Cart{}, fmt.Errorf("%w: load cart: %v", ErrServerFault, err)
	}

	cart = models.NewCart(userID)
	cart.Recalculate()
	if err := s.carts.Save(ctx, &cart); err != nil {
		return models.Cart{}, fmt.Errorf("%w: create cart: %v", ErrServerFault, err)
	}
	return cart, nil
}

// AddItem puts quantity units of the product in the cart. A product already in
// the cart has its quantity and price replaced, not summed.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (models.Cart, error) {
	product, err := s.availableProduct(ctx, productID, quantity)
	if err != nil {
		return models.Cart{}, err
	}
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}

	if i := cart.Find(productID); i >= 0 {
		cart.Items[i].Quantity = quantity
		cart.Items[i].Price = product.Price
		cart.Items[i].Name = product.Name
		cart.Items[i].Image = product.Image
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}
	return s.save(ctx, cart)
}

// UpdateItem changes the quantity of a line already in the cart and refreshes
// its price.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (models.Cart, error) {
	product, err := s.availableProduct(ctx, productID, quantity)
	if err != nil {
		return models.Cart{}, err
	}
	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Cart{}, ErrCartItemNotFound
	}
	if err != nil {
		return models.Cart{}, fmt.Errorf("%w: load cart: %v", ErrServerFault, err)
	}

	i := cart.Find(productID)
	if i < 0 {
		return models.Cart{}, ErrCartItemNotFound
	}
	cart.Items[i].Quantity = quantity
	cart.Items[i].Price = product.Price
	return s.save(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (models.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}
	cart.Remove(productID)
	return s.save(ctx, cart)
}

func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) (models.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}
	cart.Clear()
	return s.save(ctx, cart)
}

// Restore refills the cart with the items of one of the user's orders, found by
// its gateway order id. It is used after an abandoned online payment.
func (s *CartService) Restore(ctx context.Context, userID primitive.ObjectID, gatewayOrderID string) (models.Cart, error) {
	if gatewayOrderID == "" {
		return models.Cart{}, ErrOrderNotFound
	}
	order, err := s.orders.FindByGatewayOrderID(ctx, gatewayOrderID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Cart{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Cart{}, fmt.Errorf("%w: load order: %v", ErrServerFault, err)
	}
	if order.UserID != userID {
		return models.Cart{}, ErrUnauthorized
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}
	cart.Items = make([]models.CartItem, 0, len(order.Items))
	for _, item := range order.Items {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return s.save(ctx, cart)
}

func (s *CartService) availableProduct(ctx context.Context, productID primitive.ObjectID, quantity int) (models.Product, error) {
	if quantity < 1 {
		return models.Product{}, ErrInvalidQuantity
	}
	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: load product: %v", ErrServerFault, err)
	}
	if quantity > product.Stock {
		return models.Product{}, ErrInsufficientStock
	}
	return product, nil
}

func (s *CartService) save(ctx context.Context, cart models.Cart) (models.Cart, error) {
	cart.Recalculate()
	if err := s.carts.Save(ctx, &cart); err != nil {
		return models.Cart{}, fmt.Errorf("%w: save cart: %v", ErrServerFault, err)
	}
	return cart, nil
}
