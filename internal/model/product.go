package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

func init() {
	// The storefront API expects prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents an item in the storefront catalogue.
type Product struct {
	ID          string          `json:"_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

// UnmarshalJSON accepts either a populated product object or a bare product ID.
func (p *Product) UnmarshalJSON(data []byte) error {
	if id, ok := bareID(data); ok {
		*p = Product{ID: id}
		return nil
	}

	type alias Product
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Product(a)
	return nil
}

// ProductInput is the create/update payload for a product.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}
