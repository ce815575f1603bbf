package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode is how an order is paid for.
type PaymentMode string

const (
	PaymentCOD  PaymentMode = "COD"
	PaymentUPI  PaymentMode = "UPI"
	PaymentCard PaymentMode = "Card"
)

// ParsePaymentMode validates a payment mode name.
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch mode := PaymentMode(s); mode {
	case PaymentCOD, PaymentUPI, PaymentCard:
		return mode, nil
	default:
		return "", ErrInvalidPaymentMode
	}
}

// Order is an immutable snapshot of a completed purchase.
type Order struct {
	ID          string           `json:"_id,omitempty"`
	User        *User            `json:"user,omitempty"`
	Items       []OrderItem      `json:"items"`
	TotalPrice  *decimal.Decimal `json:"totalPrice,omitempty"`
	PaymentMode PaymentMode      `json:"paymentMode"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// OrderItem captures a product line with its price at purchase time.
type OrderItem struct {
	Product         *Product         `json:"product"`
	Quantity        int              `json:"quantity"`
	PriceAtPurchase *decimal.Decimal `json:"priceAtPurchase,omitempty"`
}

// UnitPrice returns the price snapshot, falling back to the live product price.
func (i OrderItem) UnitPrice() decimal.Decimal {
	if i.PriceAtPurchase != nil {
		return *i.PriceAtPurchase
	}
	if i.Product != nil {
		return i.Product.Price
	}
	return decimal.Zero
}

// Subtotal returns unit price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total returns the server total when present, otherwise the sum of item subtotals.
func (o *Order) Total() decimal.Decimal {
	if o.TotalPrice != nil {
		return *o.TotalPrice
	}
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// DisplayID returns the short upper-case order reference shown to users.
func (o *Order) DisplayID() string {
	if o.ID == "" {
		return "UNKNOWN"
	}
	id := o.ID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}

// CheckoutRequest is the payload for POST /api/orders/checkout.
type CheckoutRequest struct {
	PaymentMode PaymentMode `json:"paymentMode"`
}
