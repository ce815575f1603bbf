package api

import "net/url"

// REST endpoints of the storefront API.
const (
	PathRegister   = "/api/auth/register"
	PathLogin      = "/api/auth/login"
	PathProducts   = "/api/products"
	PathCart       = "/api/cart"
	PathCartAdd    = "/api/cart/add"
	PathCartRemove = "/api/cart/remove"
	PathCheckout   = "/api/orders/checkout"
	PathOrders     = "/api/orders"
	PathOrdersAll  = "/api/orders/all"

	// routeProductByID is the metrics label for product/{id} paths.
	routeProductByID = "/api/products/{id}"
)

// PathProductByID returns the path of a single product.
func PathProductByID(id string) string {
	return PathProducts + "/" + url.PathEscape(id)
}
