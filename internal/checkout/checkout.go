// Package checkout places an order from the current cart.
package checkout

import (
	"context"

	"storefront-client/internal/form"
	"storefront-client/internal/model"
	"storefront-client/internal/store"

	"github.com/rs/zerolog"
)

// Cart is the part of the cart store checkout depends on.
type Cart interface {
	State() store.CartState
	Clear()
}

// Orders is the part of the order store checkout depends on.
type Orders interface {
	Checkout(ctx context.Context, mode model.PaymentMode) (*model.Order, error)
}

// Flow validates a checkout form and submits the order.
type Flow struct {
	cart   Cart
	orders Orders
	logger zerolog.Logger
}

// NewFlow creates a checkout flow over the given stores.
func NewFlow(cart Cart, orders Orders, logger zerolog.Logger) *Flow {
	return &Flow{
		cart:   cart,
		orders: orders,
		logger: logger.With().Str("component", "checkout").Logger(),
	}
}

// PlaceOrder submits the order when the cart has items and the form is
// valid. Invalid forms are returned as form.Errors. The local cart is
// cleared only after the order is confirmed.
func (f *Flow) PlaceOrder(ctx context.Context, checkoutForm form.CheckoutForm) (*model.Order, error) {
	if len(f.cart.State().Items) == 0 {
		return nil, model.ErrEmptyCart
	}

	if errs := checkoutForm.Validate(); len(errs) > 0 {
		f.logger.Debug().Int("invalid_fields", len(errs)).Msg("checkout form rejected")
		return nil, errs
	}

	order, err := f.orders.Checkout(ctx, checkoutForm.PaymentMode)
	if err != nil {
		return nil, err
	}

	f.cart.Clear()

	f.logger.Info().
		Str("order_id", order.ID).
		Str("display_id", order.DisplayID()).
		Msg("order placed, cart cleared")

	return order, nil
}
