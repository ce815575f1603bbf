package model

import "github.com/shopspring/decimal"

// Cart is the server-owned cart of the authenticated user.
type Cart struct {
	ID    string     `json:"_id,omitempty"`
	Items []CartItem `json:"items"`
}

// CartItem is a single product line in the cart.
type CartItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// Subtotal returns price times quantity, or zero when the product is not populated.
func (i CartItem) Subtotal() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ProductID returns the referenced product ID.
func (i CartItem) ProductID() string {
	if i.Product == nil {
		return ""
	}
	return i.Product.ID
}

// Total sums the subtotals of all items.
// It is always computed from the item list, never accumulated.
func (c *Cart) Total() decimal.Decimal {
	if c == nil {
		return decimal.Zero
	}
	return TotalOf(c.Items)
}

// TotalOf sums the subtotals of the given items.
func TotalOf(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CartAddRequest is the payload for POST /api/cart/add.
type CartAddRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartRemoveRequest is the payload for POST /api/cart/remove.
type CartRemoveRequest struct {
	ProductID string `json:"productId"`
}
