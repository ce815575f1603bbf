package store

import (
	"context"
	"strconv"
	"sync"

	"storefront-client/internal/api"
	"storefront-client/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CartState is a snapshot of the cart store.
type CartState struct {
	Cart       *model.Cart
	Items      []model.CartItem
	TotalPrice decimal.Decimal
	Loading    bool
	Error      string
}

// CartStore caches the server-side cart of the authenticated user.
type CartStore struct {
	api    api.CartAPI
	flight inflight
	logger zerolog.Logger

	mu    sync.RWMutex
	cart  *model.Cart
	items []model.CartItem
	total decimal.Decimal
	err   string
}

// NewCartStore creates an empty cart store.
func NewCartStore(cartAPI api.CartAPI, logger zerolog.Logger) *CartStore {
	return &CartStore{
		api:    cartAPI,
		items:  []model.CartItem{},
		total:  decimal.Zero,
		logger: logger.With().Str("store", "cart").Logger(),
	}
}

// FetchCart replaces the cached cart with the server's. On failure the
// cache is reset to an empty cart.
func (s *CartStore) FetchCart(ctx context.Context) error {
	_, err := do(&s.flight, flightKey("fetch-cart"), func() (*model.Cart, error) {
		s.setError("")

		cart, err := s.api.GetCart(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to fetch cart")
			s.mu.Lock()
			s.cart = nil
			s.items = []model.CartItem{}
			s.total = decimal.Zero
			s.err = api.Message(err, "Failed to fetch cart")
			s.mu.Unlock()
			return nil, err
		}

		s.apply(cart)
		return cart, nil
	})
	return err
}

// AddToCart adjusts a product's quantity by delta, which may be negative.
// The resulting quantity is not checked here; see UpdateQuantity.
func (s *CartStore) AddToCart(ctx context.Context, productID string, delta int) (*model.Cart, error) {
	if productID == "" {
		return nil, model.ErrMissingProductID
	}

	key := flightKey("add-to-cart", productID, strconv.Itoa(delta))
	return do(&s.flight, key, func() (*model.Cart, error) {
		s.setError("")

		cart, err := s.api.AddToCart(ctx, productID, delta)
		if err != nil {
			s.logger.Error().Err(err).Str("product_id", productID).Int("delta", delta).Msg("failed to add to cart")
			s.setError(api.Message(err, "Failed to add to cart"))
			return nil, err
		}

		s.apply(cart)
		s.logger.Debug().Str("product_id", productID).Int("delta", delta).Msg("cart updated")
		return cart, nil
	})
}

// UpdateQuantity changes a line's quantity from current by change.
// A resulting quantity below 1 is rejected without contacting the server.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, current, change int) error {
	if current+change < 1 {
		s.logger.Warn().
			Str("product_id", productID).
			Int("quantity", current).
			Int("change", change).
			Msg("invalid quantity")
		return model.ErrInvalidQuantity
	}

	_, err := s.AddToCart(ctx, productID, change)
	return err
}

// RemoveFromCart drops a product line from the cart.
func (s *CartStore) RemoveFromCart(ctx context.Context, productID string) error {
	if productID == "" {
		return model.ErrMissingProductID
	}

	_, err := do(&s.flight, flightKey("remove-from-cart", productID), func() (*model.Cart, error) {
		s.setError("")

		cart, err := s.api.RemoveFromCart(ctx, productID)
		if err != nil {
			s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to remove from cart")
			s.setError(api.Message(err, "Failed to remove from cart"))
			return nil, err
		}

		s.apply(cart)
		return cart, nil
	})
	return err
}

// Clear resets the local cache without contacting the server.
func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = nil
	s.items = []model.CartItem{}
	s.total = decimal.Zero
}

// ClearError resets the recorded error message.
func (s *CartStore) ClearError() {
	s.setError("")
}

// State returns a snapshot of the store.
func (s *CartStore) State() CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.CartItem, len(s.items))
	copy(items, s.items)

	return CartState{
		Cart:       s.cart,
		Items:      items,
		TotalPrice: s.total,
		Loading:    s.flight.busy(),
		Error:      s.err,
	}
}

// apply swaps in a server cart; the total is recomputed from its items.
func (s *CartStore) apply(cart *model.Cart) {
	items := []model.CartItem{}
	if cart != nil && cart.Items != nil {
		items = cart.Items
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = cart
	s.items = items
	s.total = model.TotalOf(items)
}

func (s *CartStore) setError(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}
