// internal/domain/cart/store.go
package cart

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Store holds the working cart for one device session. It restores from the
// repository at construction and writes the full item list back after every
// successful mutation. Concurrent sessions on the same key are last write
// wins; the store makes no attempt to merge.
type Store struct {
	repo   Repository
	key    string
	items  []CartItem
	logger *logrus.Logger
}

// NewStore restores the persisted cart for the given session key. A missing
// or unreadable persisted entry yields an empty cart, never an error.
func NewStore(ctx context.Context, repo Repository, key string, logger *logrus.Logger) (*Store, error) {
	items, err := repo.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to restore cart: %w", err)
	}

	return &Store{
		repo:   repo,
		key:    key,
		items:  items,
		logger: logger,
	}, nil
}

// Items returns a copy of the current item list
func (s *Store) Items() []CartItem {
	return cloneItems(s.items)
}

// Totals returns the derived item count and subtotal
func (s *Store) Totals() Totals {
	return computeTotals(s.items)
}

// IsInCart reports whether the product is present
func (s *Store) IsInCart(productID string) bool {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			return true
		}
	}
	return false
}

// GetQuantity returns the quantity held for the product, zero if absent
func (s *Store) GetQuantity(productID string) int {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			return s.items[i].Quantity
		}
	}
	return 0
}

// IsEmpty reports whether the cart holds no items
func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

// AddItem adds the product with the requested quantity, or increments the
// existing line if the product is already present. The stock guard applies
// to the requested quantity only; incrementing an existing line does not
// re-check accumulated quantity against stock.
func (s *Store) AddItem(ctx context.Context, product Product, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	if product.Stock < quantity {
		return ErrInsufficientStock
	}

	snapshot := cloneItems(s.items)

	found := false
	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, CartItem{Product: product, Quantity: quantity})
	}

	if err := s.persist(ctx); err != nil {
		s.items = snapshot
		return err
	}
	return nil
}

// UpdateQuantity sets the line to an absolute quantity. A quantity of zero
// or less removes the line. Raising the line above available stock is
// rejected and leaves the cart unchanged.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}

	idx := -1
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrItemNotFound
	}
	if s.items[idx].Product.Stock < quantity {
		return ErrInsufficientStock
	}

	snapshot := cloneItems(s.items)
	s.items[idx].Quantity = quantity

	if err := s.persist(ctx); err != nil {
		s.items = snapshot
		return err
	}
	return nil
}

// RemoveItem drops the product's line. Removing an absent product is a
// no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	idx := -1
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	snapshot := cloneItems(s.items)
	s.items = append(s.items[:idx], s.items[idx+1:]...)

	if err := s.persist(ctx); err != nil {
		s.items = snapshot
		return err
	}
	return nil
}

// Clear empties the cart and deletes the persisted entry rather than
// writing back an empty list
func (s *Store) Clear(ctx context.Context) error {
	snapshot := cloneItems(s.items)
	s.items = []CartItem{}

	if err := s.repo.Delete(ctx, s.key); err != nil {
		s.items = snapshot
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Replace swaps the whole item list for a fetched canonical one
func (s *Store) Replace(ctx context.Context, items []CartItem) error {
	snapshot := cloneItems(s.items)
	s.items = cloneItems(items)

	if err := s.persist(ctx); err != nil {
		s.items = snapshot
		return err
	}
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.key, s.items); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"session": s.key,
				"error":   err.Error(),
			}).Error("Failed to persist cart")
		}
		return err
	}
	return nil
}
