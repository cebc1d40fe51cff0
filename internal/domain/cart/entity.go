// internal/domain/cart/entity.go
package cart

// Product is the catalog snapshot a cart item was added with. The cart
// never mutates products; it only reads price and stock at the moment of a
// cart operation.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image,omitempty"`
	Category      string   `json:"category,omitempty"`
	Discount      float64  `json:"discount,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	Stock         int      `json:"stock"`
	Tags          []string `json:"tags,omitempty"`
}

// CartItem pairs a product snapshot with a quantity. At most one item per
// product id exists in a cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Totals represents derived cart totals. Both values are recomputed from
// the current items on every call, never cached.
type Totals struct {
	ItemCount int     `json:"item_count"`
	Subtotal  float64 `json:"subtotal"`
}

func computeTotals(items []CartItem) Totals {
	var totals Totals
	for _, item := range items {
		totals.ItemCount += item.Quantity
		totals.Subtotal += item.Product.Price * float64(item.Quantity)
	}
	return totals
}

func cloneItems(items []CartItem) []CartItem {
	cloned := make([]CartItem, len(items))
	copy(cloned, items)
	return cloned
}
