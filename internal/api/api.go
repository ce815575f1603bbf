package api

import (
	"context"

	"storefront-client/internal/model"
)

// AuthAPI defines the authentication endpoints.
type AuthAPI interface {
	// Login exchanges credentials for a user and bearer token.
	Login(ctx context.Context, creds model.Credentials) (*model.AuthResult, error)

	// Register creates an account and returns its user and bearer token.
	Register(ctx context.Context, reg model.Registration) (*model.AuthResult, error)
}

// ProductAPI defines the product catalogue endpoints.
type ProductAPI interface {
	// ListProducts retrieves the whole catalogue.
	ListProducts(ctx context.Context) ([]model.Product, error)

	// GetProduct retrieves a single product by ID.
	GetProduct(ctx context.Context, id string) (*model.Product, error)

	// CreateProduct creates a product (admin only).
	CreateProduct(ctx context.Context, input model.ProductInput) (*model.Product, error)

	// UpdateProduct replaces a product's fields (admin only).
	UpdateProduct(ctx context.Context, id string, input model.ProductInput) (*model.Product, error)

	// DeleteProduct removes a product (admin only).
	DeleteProduct(ctx context.Context, id string) error
}

// CartAPI defines the cart endpoints of the authenticated user.
type CartAPI interface {
	// GetCart retrieves the current cart.
	GetCart(ctx context.Context) (*model.Cart, error)

	// AddToCart adjusts a product's quantity by delta and returns the updated cart.
	AddToCart(ctx context.Context, productID string, delta int) (*model.Cart, error)

	// RemoveFromCart removes a product line and returns the updated cart.
	RemoveFromCart(ctx context.Context, productID string) (*model.Cart, error)
}

// OrderAPI defines the order endpoints.
type OrderAPI interface {
	// Checkout turns the server-side cart into an order.
	Checkout(ctx context.Context, req model.CheckoutRequest) (*model.Order, error)

	// ListOrders retrieves the authenticated user's orders.
	ListOrders(ctx context.Context) ([]model.Order, error)

	// ListAllOrders retrieves every order in the store (admin only).
	ListAllOrders(ctx context.Context) ([]model.Order, error)
}
