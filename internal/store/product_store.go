package store

import (
	"context"
	"strings"
	"sync"

	"storefront-client/internal/api"
	"storefront-client/internal/model"

	"github.com/rs/zerolog"
)

// ProductState is a snapshot of the product store.
type ProductState struct {
	Products       []model.Product
	CurrentProduct *model.Product
	Loading        bool
	Error          string
}

// ProductStore caches the catalogue and the product being viewed.
type ProductStore struct {
	api    api.ProductAPI
	flight inflight
	logger zerolog.Logger

	mu       sync.RWMutex
	products []model.Product
	current  *model.Product
	err      string
}

// NewProductStore creates an empty product store.
func NewProductStore(productAPI api.ProductAPI, logger zerolog.Logger) *ProductStore {
	return &ProductStore{
		api:      productAPI,
		products: []model.Product{},
		logger:   logger.With().Str("store", "product").Logger(),
	}
}

// FetchProducts replaces the cached catalogue. On failure it is emptied.
func (s *ProductStore) FetchProducts(ctx context.Context) error {
	_, err := do(&s.flight, flightKey("fetch-products"), func() ([]model.Product, error) {
		s.setError("")

		products, err := s.api.ListProducts(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()

		if err != nil {
			s.logger.Error().Err(err).Msg("failed to fetch products")
			s.products = []model.Product{}
			s.err = api.Message(err, "Failed to fetch products")
			return nil, err
		}

		s.products = products
		s.logger.Debug().Int("count", len(products)).Msg("products fetched")
		return products, nil
	})
	return err
}

// FetchProductByID loads a single product as the current one. The current
// product is reset first so a stale one is never shown.
func (s *ProductStore) FetchProductByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrMissingProductID
	}

	return do(&s.flight, flightKey("fetch-product", id), func() (*model.Product, error) {
		s.mu.Lock()
		s.current = nil
		s.err = ""
		s.mu.Unlock()

		product, err := s.api.GetProduct(ctx, id)
		if err != nil {
			s.logger.Error().Err(err).Str("product_id", id).Msg("failed to fetch product")
			s.setError(api.Message(err, "Failed to fetch product"))
			return nil, err
		}

		s.mu.Lock()
		s.current = product
		s.mu.Unlock()
		return product, nil
	})
}

// CreateProduct creates a product and appends it once the server confirms.
func (s *ProductStore) CreateProduct(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	return do(&s.flight, flightKey("create-product", digest(input)), func() (*model.Product, error) {
		s.setError("")

		product, err := s.api.CreateProduct(ctx, input)
		if err != nil {
			s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
			s.setError(api.Message(err, "Failed to create product"))
			return nil, err
		}

		s.mu.Lock()
		s.products = append(s.products, *product)
		s.mu.Unlock()

		s.logger.Info().Str("product_id", product.ID).Msg("product created")
		return product, nil
	})
}

// UpdateProduct replaces a product's fields and the cached entry with the same id.
func (s *ProductStore) UpdateProduct(ctx context.Context, id string, input model.ProductInput) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrMissingProductID
	}

	return do(&s.flight, flightKey("update-product", id, digest(input)), func() (*model.Product, error) {
		s.setError("")

		product, err := s.api.UpdateProduct(ctx, id, input)
		if err != nil {
			s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
			s.setError(api.Message(err, "Failed to update product"))
			return nil, err
		}

		s.mu.Lock()
		products := make([]model.Product, len(s.products))
		for i, p := range s.products {
			if p.ID == id {
				p = *product
			}
			products[i] = p
		}
		s.products = products
		if s.current != nil && s.current.ID == id {
			s.current = product
		}
		s.mu.Unlock()

		s.logger.Info().Str("product_id", id).Msg("product updated")
		return product, nil
	})
}

// DeleteProduct removes a product and drops it from the cache.
func (s *ProductStore) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return model.ErrMissingProductID
	}

	_, err := do(&s.flight, flightKey("delete-product", id), func() (struct{}, error) {
		s.setError("")

		if err := s.api.DeleteProduct(ctx, id); err != nil {
			s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
			s.setError(api.Message(err, "Failed to delete product"))
			return struct{}{}, err
		}

		s.mu.Lock()
		products := make([]model.Product, 0, len(s.products))
		for _, p := range s.products {
			if p.ID != id {
				products = append(products, p)
			}
		}
		s.products = products
		if s.current != nil && s.current.ID == id {
			s.current = nil
		}
		s.mu.Unlock()

		s.logger.Info().Str("product_id", id).Msg("product deleted")
		return struct{}{}, nil
	})
	return err
}

// Search filters the cached catalogue by a case-insensitive substring of
// name or description. An empty term returns every product.
func (s *ProductStore) Search(term string) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if term == "" ||
			strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			out = append(out, p)
		}
	}
	return out
}

// ClearError resets the recorded error message.
func (s *ProductStore) ClearError() {
	s.setError("")
}

// State returns a snapshot of the store.
func (s *ProductStore) State() ProductState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]model.Product, len(s.products))
	copy(products, s.products)

	return ProductState{
		Products:       products,
		CurrentProduct: s.current,
		Loading:        s.flight.busy(),
		Error:          s.err,
	}
}

func (s *ProductStore) setError(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}
