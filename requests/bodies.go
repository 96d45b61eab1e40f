package requests

import (
	"github.com/shopspring/decimal"
	"github.com/vasanthreddy12/e-commerce/models"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required,mongodb"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type RestoreCartRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

type CreateOrderRequest struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress" validate:"required"`
	PaymentMethod   models.PaymentMethod   `json:"paymentMethod" validate:"required,oneof=cod online"`
}

// VerifyPaymentRequest is the callback the client relays after checkout.
// OrderID is the gateway order id.
type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

type CancelPaymentRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Category    models.Category `json:"category" validate:"required,oneof=Electronics Fashion Books Home Sports Other"`
	Image       string          `json:"image" validate:"required"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Rating      float64         `json:"rating" validate:"gte=0,lte=5"`
	NumReviews  int             `json:"numReviews" validate:"gte=0"`
}

func (r CreateProductRequest) Product() models.Product {
	return models.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Image:       r.Image,
		Stock:       r.Stock,
		Rating:      r.Rating,
		NumReviews:  r.NumReviews,
	}
}

// UpdateProductRequest is a partial update; absent fields stay as they are.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Category    *models.Category `json:"category" validate:"omitempty,oneof=Electronics Fashion Books Home Sports Other"`
	Image       *string          `json:"image"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	Rating      *float64         `json:"rating" validate:"omitempty,gte=0,lte=5"`
	NumReviews  *int             `json:"numReviews" validate:"omitempty,gte=0"`
}

func (r UpdateProductRequest) Update() models.ProductUpdate {
	return models.ProductUpdate{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Image:       r.Image,
		Stock:       r.Stock,
		Rating:      r.Rating,
		NumReviews:  r.NumReviews,
	}
}
