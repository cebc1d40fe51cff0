// internal/domain/cart/repository.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cart blobs are kept well past a browsing session; they stand in for the
// original client's durable local storage.
const cartTTL = 30 * 24 * time.Hour

// Repository persists the serialized cart item list under a single key per
// device session. Absence or corruption of the stored value reads as an
// empty cart; it is never an error to the caller.
type Repository interface {
	Load(ctx context.Context, key string) ([]CartItem, error)
	Save(ctx context.Context, key string, items []CartItem) error
	Delete(ctx context.Context, key string) error
}

// RedisRepository stores each cart as one JSON blob in Redis
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a Redis-backed cart repository
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("storefront:cart:%s", sessionID)
}

// Load reads and deserializes the cart blob. A missing key or a blob that
// fails to parse both yield an empty item list.
func (r *RedisRepository) Load(ctx context.Context, key string) ([]CartItem, error) {
	data, err := r.client.Get(ctx, cartKey(key)).Result()
	if err == redis.Nil {
		return []CartItem{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		// Corrupt blob, treat as empty rather than failing the session
		return []CartItem{}, nil
	}
	if items == nil {
		items = []CartItem{}
	}

	return items, nil
}

// Save serializes and stores the full item list
func (r *RedisRepository) Save(ctx context.Context, key string, items []CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(key), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// Delete removes the persisted entry entirely, distinct from saving an
// empty list
func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, cartKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// MemoryRepository is an in-process Repository used by tests and by local
// development without Redis.
type MemoryRepository struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryRepository creates an in-memory cart repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{blobs: make(map[string][]byte)}
}

func (r *MemoryRepository) Load(ctx context.Context, key string) ([]CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.blobs[key]
	if !exists {
		return []CartItem{}, nil
	}

	var items []CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return []CartItem{}, nil
	}
	if items == nil {
		items = []CartItem{}
	}
	return items, nil
}

func (r *MemoryRepository) Save(ctx context.Context, key string, items []CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[key] = data
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blobs, key)
	return nil
}

// Has reports whether a persisted entry exists for the key
func (r *MemoryRepository) Has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.blobs[key]
	return exists
}
