package api

import (
	"context"
	"net/http"

	"storefront-client/internal/model"
)

// Checkout handles POST /api/orders/checkout.
func (c *Client) Checkout(ctx context.Context, req model.CheckoutRequest) (*model.Order, error) {
	raw, err := c.do(ctx, call{method: http.MethodPost, path: PathCheckout, body: req})
	if err != nil {
		return nil, err
	}
	return decodeObject[model.Order](raw, "order", "data")
}

// ListOrders handles GET /api/orders.
func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	raw, err := c.do(ctx, call{method: http.MethodGet, path: PathOrders})
	if err != nil {
		return nil, err
	}
	return decodeList[model.Order](raw, "data", "orders")
}

// ListAllOrders handles GET /api/orders/all.
func (c *Client) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	raw, err := c.do(ctx, call{method: http.MethodGet, path: PathOrdersAll})
	if err != nil {
		return nil, err
	}
	return decodeList[model.Order](raw, "data", "orders")
}
