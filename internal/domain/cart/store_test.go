// internal/domain/cart/store_test.go
package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id string, price float64, stock int) Product {
	return Product{ID: id, Name: "Product " + id, Price: price, Stock: stock}
}

func newTestStore(t *testing.T) (*Store, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	store, err := NewStore(context.Background(), repo, "session-1", nil)
	require.NoError(t, err)
	return store, repo
}

func TestStore_AddItem_NewProduct(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.AddItem(ctx, testProduct("p1", 10, 5), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, store.GetQuantity("p1"))
	assert.True(t, store.IsInCart("p1"))

	totals := store.Totals()
	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 20.0, totals.Subtotal)
}

func TestStore_AddItem_IncrementsExistingLine(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, testProduct("p1", 10, 5), 2))
	require.NoError(t, store.AddItem(ctx, testProduct("p1", 10, 5), 1))

	assert.Len(t, store.Items(), 1)
	assert.Equal(t, 3, store.GetQuantity("p1"))

	totals := store.Totals()
	assert.Equal(t, 3, totals.ItemCount)
	assert.Equal(t, 30.0, totals.Subtotal)
}

func TestStore_AddItem_InsufficientStock(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.AddItem(ctx, testProduct("p1", 10, 1), 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.True(t, store.IsEmpty())
}

func TestStore_AddItem_DefaultsQuantityToOne(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, testProduct("p1", 10, 5), 0))
	assert.Equal(t, 1, store.GetQuantity("p1"))
}

func TestStore_UpdateQuantity(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.AddItem(ctx, testProduct("p1", 10, 5), 2))

	require.NoError(t, store.UpdateQuantity(ctx, "p1", 4))
	assert.Equal(t, 4, store.GetQuantity("p1"))
}

func TestStore_UpdateQuantity_OverStockRejected(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.AddItem(ctx, testProduct("p1", 10, 3), 2))

	err := store.UpdateQuantity(ctx, "p1", 5)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, store.GetQuantity("p1"))
}

func TestStore_UpdateQuantity_UnknownProduct(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.UpdateQuantity(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestStore_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.AddItem(ctx, testProduct("p1", 10, 5), 2))

	require.NoError(t, store.UpdateQuantity(ctx, "p1", 0))
	assert.False(t, store.IsInCart("p1"))
}

func TestStore_RemoveItem_AbsentIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.AddItem(ctx, testProduct("p1", 10, 5), 1))

	require.NoError(t, store.RemoveItem(ctx, "missing"))
	assert.Equal(t, 1, store.GetQuantity("p1"))
}

func TestStore_Clear_DeletesPersistedEntry(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.AddItem(ctx, testProduct("p1", 10, 5), 2))
	require.True(t, repo.Has("session-1"))

	require.NoError(t, store.Clear(ctx))

	assert.True(t, store.IsEmpty())
	assert.False(t, repo.Has("session-1"))
}

func TestStore_RestoresPersistedCart(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first, err := NewStore(ctx, repo, "session-1", nil)
	require.NoError(t, err)
	require.NoError(t, first.AddItem(ctx, testProduct("p1", 10, 5), 2))

	second, err := NewStore(ctx, repo, "session-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, second.GetQuantity("p1"))
}

func TestStore_RestoreFromMissingKeyIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	assert.True(t, store.IsEmpty())
	assert.Equal(t, Totals{}, store.Totals())
}

func TestStore_RestoreFromCorruptBlobIsEmpty(t *testing.T) {
	repo := NewMemoryRepository()
	repo.blobs["session-1"] = []byte("{not json")

	store, err := NewStore(context.Background(), repo, "session-1", nil)
	require.NoError(t, err)
	assert.True(t, store.IsEmpty())
}

func TestStore_TotalsAcrossProducts(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, testProduct("p1", 10, 5), 2))
	require.NoError(t, store.AddItem(ctx, testProduct("p2", 5.5, 5), 3))

	totals := store.Totals()
	assert.Equal(t, 5, totals.ItemCount)
	assert.InDelta(t, 36.5, totals.Subtotal, 0.001)
}
