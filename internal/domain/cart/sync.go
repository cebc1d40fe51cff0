// internal/domain/cart/sync.go
package cart

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-gateway/internal/backend"
)

const remoteSyncTimeout = 10 * time.Second

// RemoteCart is the subset of the backend client the sync service mirrors
// mutations onto.
type RemoteCart interface {
	FetchCart(ctx context.Context, token string) ([]backend.CartItem, bool, error)
	AddCartItem(ctx context.Context, token, productID string, quantity int) error
	UpdateCartItem(ctx context.Context, token, productID string, quantity int) error
	RemoveCartItem(ctx context.Context, token, productID string) error
	ClearCart(ctx context.Context, token string) error
}

// SyncService applies every mutation to the local store first, then mirrors
// it onto the remote cart best-effort when the session carries a token.
// Remote failures never roll back the local change; they surface as
// warnings.
type SyncService struct {
	store    *Store
	remote   RemoteCart
	token    string
	logger   *logrus.Logger
	warnings chan string
	pending  sync.WaitGroup
}

// NewSyncService wraps a store with best-effort remote mirroring. An empty
// token means a guest session; all remote calls are skipped.
func NewSyncService(store *Store, remote RemoteCart, token string, logger *logrus.Logger) *SyncService {
	return &SyncService{
		store:    store,
		remote:   remote,
		token:    token,
		logger:   logger,
		warnings: make(chan string, 16),
	}
}

// Store exposes the underlying local store for reads
func (s *SyncService) Store() *Store {
	return s.store
}

// Items returns the current local item list
func (s *SyncService) Items() []CartItem {
	return s.store.Items()
}

// Totals returns the current local totals
func (s *SyncService) Totals() Totals {
	return s.store.Totals()
}

// Warnings returns the channel carrying sync failure notices. The channel
// is buffered; when full, further warnings are dropped.
func (s *SyncService) Warnings() <-chan string {
	return s.warnings
}

// Wait blocks until all detached remote calls have finished. Intended for
// tests and for draining on shutdown.
func (s *SyncService) Wait() {
	s.pending.Wait()
}

// AddItem applies the add locally, then mirrors it remotely
func (s *SyncService) AddItem(ctx context.Context, product Product, quantity int) error {
	if err := s.store.AddItem(ctx, product, quantity); err != nil {
		return err
	}
	s.mirror("add item to cart", func(ctx context.Context) error {
		return s.remote.AddCartItem(ctx, s.token, product.ID, quantity)
	})
	return nil
}

// UpdateQuantity applies the quantity change locally, then mirrors it
func (s *SyncService) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if err := s.store.UpdateQuantity(ctx, productID, quantity); err != nil {
		return err
	}
	s.mirror("update cart item", func(ctx context.Context) error {
		if quantity <= 0 {
			return s.remote.RemoveCartItem(ctx, s.token, productID)
		}
		return s.remote.UpdateCartItem(ctx, s.token, productID, quantity)
	})
	return nil
}

// RemoveItem applies the removal locally, then mirrors it
func (s *SyncService) RemoveItem(ctx context.Context, productID string) error {
	if err := s.store.RemoveItem(ctx, productID); err != nil {
		return err
	}
	s.mirror("remove cart item", func(ctx context.Context) error {
		return s.remote.RemoveCartItem(ctx, s.token, productID)
	})
	return nil
}

// Clear empties the local cart and mirrors the clear remotely
func (s *SyncService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.mirror("clear cart", func(ctx context.Context) error {
		return s.remote.ClearCart(ctx, s.token)
	})
	return nil
}

// ClearLocalOnly empties the local cart without touching the remote one.
// Used after order placement, where the backend clears its own cart.
func (s *SyncService) ClearLocalOnly(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Fetch pulls the canonical remote cart and overwrites the local one with
// it. The local cart is replaced only when the response carried a
// well-formed item list; otherwise it is left untouched.
func (s *SyncService) Fetch(ctx context.Context) error {
	if s.token == "" {
		return nil
	}

	remote, ok, err := s.remote.FetchCart(ctx, s.token)
	if err != nil {
		return err
	}
	if !ok {
		if s.logger != nil {
			s.logger.Warn("Remote cart response was malformed, keeping local cart")
		}
		return nil
	}

	return s.store.Replace(ctx, fromBackendItems(remote))
}

// mirror runs the remote call detached from the request. Failures are
// logged and pushed onto the warnings channel only.
func (s *SyncService) mirror(op string, call func(ctx context.Context) error) {
	if s.token == "" {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), remoteSyncTimeout)
		defer cancel()

		if err := call(ctx); err != nil {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{
					"operation": op,
					"error":     err.Error(),
				}).Warn("Failed to sync cart with server")
			}
			select {
			case s.warnings <- "Failed to sync cart with server: " + op:
			default:
			}
		}
	}()
}

// fromBackendItems converts wire cart items to domain items, skipping
// entries without a product
func fromBackendItems(items []backend.CartItem) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, it := range items {
		if it.Product == nil {
			continue
		}
		out = append(out, CartItem{
			Product: Product{
				ID:       it.Product.ID,
				Name:     it.Product.Name,
				Price:    it.Product.Price,
				Image:    it.Product.Image,
				Category: it.Product.Category,
				Stock:    it.Product.Stock,
			},
			Quantity: it.Quantity,
		})
	}
	return out
}
