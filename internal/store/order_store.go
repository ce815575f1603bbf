package store

import (
	"context"
	"sync"

	"storefront-client/internal/api"
	"storefront-client/internal/model"

	"github.com/rs/zerolog"
)

// OrderState is a snapshot of the order store.
type OrderState struct {
	Orders  []model.Order
	Loading bool
	Error   string
}

// OrderStore caches order history and places new orders.
type OrderStore struct {
	api    api.OrderAPI
	flight inflight
	logger zerolog.Logger

	mu     sync.RWMutex
	orders []model.Order
	err    string
}

// NewOrderStore creates an empty order store.
func NewOrderStore(orderAPI api.OrderAPI, logger zerolog.Logger) *OrderStore {
	return &OrderStore{
		api:    orderAPI,
		orders: []model.Order{},
		logger: logger.With().Str("store", "order").Logger(),
	}
}

// FetchOrders loads the authenticated user's orders.
func (s *OrderStore) FetchOrders(ctx context.Context) error {
	return s.fetch(ctx, "fetch-orders", s.api.ListOrders)
}

// FetchAllOrders loads every order in the store (admin only).
func (s *OrderStore) FetchAllOrders(ctx context.Context) error {
	return s.fetch(ctx, "fetch-all-orders", s.api.ListAllOrders)
}

// fetch clears the cached list, then fills it from list. The list stays
// empty when the request fails.
func (s *OrderStore) fetch(ctx context.Context, op string, list func(context.Context) ([]model.Order, error)) error {
	_, err := do(&s.flight, flightKey(op), func() ([]model.Order, error) {
		s.mu.Lock()
		s.orders = []model.Order{}
		s.err = ""
		s.mu.Unlock()

		orders, err := list(ctx)
		if err != nil {
			s.logger.Error().Err(err).Str("op", op).Msg("failed to fetch orders")
			s.setError(api.Message(err, "Failed to fetch orders"))
			return nil, err
		}

		s.mu.Lock()
		s.orders = orders
		s.mu.Unlock()

		s.logger.Debug().Str("op", op).Int("count", len(orders)).Msg("orders fetched")
		return orders, nil
	})
	return err
}

// Checkout turns the server-side cart into an order and prepends it to the
// cached list. The local cart is not touched.
func (s *OrderStore) Checkout(ctx context.Context, mode model.PaymentMode) (*model.Order, error) {
	if _, err := model.ParsePaymentMode(string(mode)); err != nil {
		return nil, err
	}

	return do(&s.flight, flightKey("checkout", string(mode)), func() (*model.Order, error) {
		s.setError("")

		order, err := s.api.Checkout(ctx, model.CheckoutRequest{PaymentMode: mode})
		if err != nil {
			s.logger.Error().Err(err).Str("payment_mode", string(mode)).Msg("checkout failed")
			s.setError(api.Message(err, "Checkout failed"))
			return nil, err
		}

		s.mu.Lock()
		s.orders = append([]model.Order{*order}, s.orders...)
		s.mu.Unlock()

		s.logger.Info().
			Str("order_id", order.ID).
			Str("payment_mode", string(mode)).
			Msg("order placed successfully")
		return order, nil
	})
}

// Find returns the cached order with the given id.
func (s *OrderStore) Find(id string) (*model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			order := s.orders[i]
			return &order, true
		}
	}
	return nil, false
}

// ClearError resets the recorded error message.
func (s *OrderStore) ClearError() {
	s.setError("")
}

// State returns a snapshot of the store.
func (s *OrderStore) State() OrderState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]model.Order, len(s.orders))
	copy(orders, s.orders)

	return OrderState{
		Orders:  orders,
		Loading: s.flight.busy(),
		Error:   s.err,
	}
}

func (s *OrderStore) setError(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}
