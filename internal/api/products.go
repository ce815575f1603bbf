package api

import (
	"context"
	"net/http"

	"storefront-client/internal/model"
)

// ListProducts handles GET /api/products.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	raw, err := c.do(ctx, call{method: http.MethodGet, path: PathProducts})
	if err != nil {
		return nil, err
	}
	return decodeList[model.Product](raw, "products", "data")
}

// GetProduct handles GET /api/products/{id}.
func (c *Client) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	raw, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   PathProductByID(id),
		route:  routeProductByID,
	})
	if err != nil {
		return nil, err
	}
	return decodeObject[model.Product](raw, "product", "data", "result")
}

// CreateProduct handles POST /api/products.
func (c *Client) CreateProduct(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	raw, err := c.do(ctx, call{method: http.MethodPost, path: PathProducts, body: input})
	if err != nil {
		return nil, err
	}
	return decodeObject[model.Product](raw, "product", "data", "result")
}

// UpdateProduct handles PUT /api/products/{id}.
func (c *Client) UpdateProduct(ctx context.Context, id string, input model.ProductInput) (*model.Product, error) {
	raw, err := c.do(ctx, call{
		method: http.MethodPut,
		path:   PathProductByID(id),
		route:  routeProductByID,
		body:   input,
	})
	if err != nil {
		return nil, err
	}
	return decodeObject[model.Product](raw, "product", "data", "result")
}

// DeleteProduct handles DELETE /api/products/{id}.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, call{
		method: http.MethodDelete,
		path:   PathProductByID(id),
		route:  routeProductByID,
	})
	return err
}
