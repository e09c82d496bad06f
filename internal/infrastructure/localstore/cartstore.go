package localstore

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/teleshop/client/internal/domain/cart"
)

// CartStore persists the shopping cart as a single JSON blob under KeyCart.
// Per the cart contract it signals no error conditions: a missing or
// unparseable blob loads as an empty cart, and saves are best effort.
type CartStore struct {
	store  Store
	logger *zap.Logger
}

// NewCartStore creates a cart store on top of a blob store.
func NewCartStore(store Store, logger *zap.Logger) *CartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartStore{store: store, logger: logger.Named("cartstore")}
}

// Load reads the persisted cart. Absent or corrupt state degrades silently
// to an empty cart.
func (s *CartStore) Load(ctx context.Context) cart.Cart {
	data, ok, err := s.store.Get(ctx, KeyCart)
	if err != nil {
		s.logger.Warn("Failed to read persisted cart, starting empty", zap.Error(err))
		return cart.Empty()
	}
	if !ok {
		return cart.Empty()
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		s.logger.Warn("Persisted cart is corrupt, resetting", zap.Error(err))
		return cart.Empty()
	}
	return c
}

// Save overwrites the persisted cart. Failures are logged, never surfaced.
func (s *CartStore) Save(ctx context.Context, c cart.Cart) {
	data, err := json.Marshal(c)
	if err != nil {
		s.logger.Warn("Failed to serialize cart", zap.Error(err))
		return
	}
	if err := s.store.Put(ctx, KeyCart, data); err != nil {
		s.logger.Warn("Failed to persist cart", zap.Error(err))
	}
}
