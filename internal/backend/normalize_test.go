// internal/backend/normalize_test.go
package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProducts_Shapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
		ok   bool
	}{
		{"products key", `{"products":[{"id":"p1","price":10,"stock":5}]}`, 1, true},
		{"data key", `{"data":[{"id":"p1"},{"id":"p2"}]}`, 2, true},
		{"bare array", `[{"id":"p1"}]`, 1, true},
		{"empty bare array", `[]`, 0, true},
		{"unknown shape", `{"results":[{"id":"p1"}]}`, 0, false},
		{"not json", `oops`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, ok := DecodeProducts([]byte(tt.body))
			assert.Equal(t, tt.ok, ok)
			assert.Len(t, products, tt.want)
		})
	}
}

func TestDecodeOrders_Shapes(t *testing.T) {
	orders, ok := DecodeOrders([]byte(`{"orders":[{"id":"o1","total":20}]}`))
	require.True(t, ok)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)

	_, ok = DecodeOrders([]byte(`{"nope":true}`))
	assert.False(t, ok)
}

func TestDecodeCartItems_NestedCartShape(t *testing.T) {
	body := `{"cart":{"items":[{"product":{"id":"p1","price":10,"stock":5},"quantity":2}]}}`

	items, ok := DecodeCartItems([]byte(body))
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestDecodeCartItems_FlatAndBareShapes(t *testing.T) {
	flat := `{"items":[{"product":{"id":"p1"},"quantity":1}]}`
	items, ok := DecodeCartItems([]byte(flat))
	require.True(t, ok)
	assert.Len(t, items, 1)

	bare := `[{"product":{"id":"p1"},"quantity":1}]`
	items, ok = DecodeCartItems([]byte(bare))
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestDecodeCartItems_MalformedItemRejectsWholeList(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing product", `{"items":[{"quantity":2}]}`},
		{"empty product id", `{"items":[{"product":{"id":""},"quantity":2}]}`},
		{"zero quantity", `{"items":[{"product":{"id":"p1"},"quantity":0}]}`},
		{"unknown shape", `{"lines":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := DecodeCartItems([]byte(tt.body))
			assert.False(t, ok)
		})
	}
}

func TestDecodeCartItems_EmptyListIsOK(t *testing.T) {
	items, ok := DecodeCartItems([]byte(`{"items":[]}`))
	require.True(t, ok)
	assert.Empty(t, items)
}
