package services

import "errors"

// Sentinels returned by the services. Anything else that escapes a service is
// wrapped in ErrServerFault.
var (
	ErrProductNotFound           = errors.New("product not found")
	ErrOrderNotFound             = errors.New("order not found")
	ErrCartItemNotFound          = errors.New("item not found in cart")
	ErrUserNotFound              = errors.New("user not found")
	ErrInsufficientStock         = errors.New("insufficient stock")
	ErrInvalidQuantity           = errors.New("quantity must be at least 1")
	ErrEmptyCart                 = errors.New("cart is empty")
	ErrInvalidPaymentMethod      = errors.New("invalid payment method")
	ErrInvalidStatus             = errors.New("invalid order status")
	ErrInvalidTransition         = errors.New("order status transition not allowed")
	ErrOrderClosed               = errors.New("order is already closed")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrUnauthorized              = errors.New("not authorized")
	ErrForbidden                 = errors.New("admin access required")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrEmailTaken                = errors.New("user already exists")
	ErrServerFault               = errors.New("server error")
)
