package api

import (
	"context"
	"net/http"

	"storefront-client/internal/model"
)

// GetCart handles GET /api/cart.
func (c *Client) GetCart(ctx context.Context) (*model.Cart, error) {
	raw, err := c.do(ctx, call{method: http.MethodGet, path: PathCart})
	if err != nil {
		return nil, err
	}
	return decodeObject[model.Cart](raw, "data", "cart")
}

// AddToCart handles POST /api/cart/add.
func (c *Client) AddToCart(ctx context.Context, productID string, delta int) (*model.Cart, error) {
	raw, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   PathCartAdd,
		body:   model.CartAddRequest{ProductID: productID, Quantity: delta},
	})
	if err != nil {
		return nil, err
	}
	return decodeObject[model.Cart](raw, "data", "cart")
}

// RemoveFromCart handles POST /api/cart/remove.
func (c *Client) RemoveFromCart(ctx context.Context, productID string) (*model.Cart, error) {
	raw, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   PathCartRemove,
		body:   model.CartRemoveRequest{ProductID: productID},
	})
	if err != nil {
		return nil, err
	}
	return decodeObject[model.Cart](raw, "data", "cart")
}
